package form

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntParseStripsNonDigits(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"12a3", 123},
		{"500", 500},
		{" 1,000 ", 1000},
		{"-42", 42}, // minus is not a digit
	}
	for _, tc := range cases {
		f := &Field{Path: "engine/visits", Type: Int, Text: tc.raw}
		v, err := f.Parse()
		require.NoError(t, err, "raw %q", tc.raw)
		assert.Equal(t, tc.want, v, "raw %q", tc.raw)
	}
}

func TestIntParseEmptyAfterStrip(t *testing.T) {
	f := &Field{Path: "engine/visits", Type: Int, Text: "abc"}
	_, err := f.Parse()
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "engine/visits", perr.Path)
}

func TestFloatFilterUnsignedNeverKeepsMinus(t *testing.T) {
	f := &Field{Path: "p", Type: Float, Signed: false}
	f.InsertText("-1")
	f.InsertText("2.-5")
	f.InsertText("-")
	assert.NotContains(t, f.Text, "-")
	assert.Equal(t, "12.5", f.Text)
}

func TestFloatFilterSignedMinusOnlyLeading(t *testing.T) {
	f := &Field{Path: "p", Type: Float, Signed: true}
	f.InsertText("-1")
	f.InsertText("2-3")
	assert.Equal(t, "-123", f.Text)

	// a minus after position 0 is removed, not relocated
	f = &Field{Path: "p", Type: Float, Signed: true}
	f.InsertText("1-2")
	assert.Equal(t, "12", f.Text)
}

func TestFloatFilterSingleDecimalPoint(t *testing.T) {
	f := &Field{Path: "p", Type: Float, Signed: true}
	f.InsertText("1.2.3")
	assert.Equal(t, "1.23", f.Text)
	f.InsertText(".4")
	assert.Equal(t, "1.234", f.Text)
	assert.Equal(t, 1, strings.Count(f.Text, "."))
}

func TestFloatParseNormalizedText(t *testing.T) {
	f := &Field{Path: "p", Type: Float, Signed: true}
	f.InsertText("-12.5")
	v, err := f.Parse()
	require.NoError(t, err)
	assert.Equal(t, -12.5, v)
}

func TestFloatParseEmptyIsError(t *testing.T) {
	f := &Field{Path: "p", Type: Float, Signed: true}
	_, err := f.Parse()
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestNormalizeFloat(t *testing.T) {
	cases := []struct {
		in     string
		signed bool
		want   string
	}{
		{"1.2.3", true, "1.23"},
		{"-1-2", true, "-12"},
		{"-1-2", false, "12"},
		{"abc", true, ""},
		{"0.04", true, "0.04"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeFloat(tc.in, tc.signed), "in %q signed %v", tc.in, tc.signed)
	}
}

func TestBoolFromText(t *testing.T) {
	f := &Field{Path: "p", Type: Bool}
	f.SetText("True")
	assert.True(t, f.Active)
	f.SetText("false")
	assert.False(t, f.Active)

	v, err := f.Parse()
	require.NoError(t, err)
	assert.Equal(t, false, v)
}

func TestChoiceFallsBackToFirstEntry(t *testing.T) {
	f := &Field{
		Path: "game/rules",
		Type: Choice,
		Choices: []ChoiceEntry{
			{Label: "Japanese", Ref: "japanese"},
			{Label: "Chinese", Ref: "chinese"},
		},
	}
	f.Text = "Chinese"
	v, err := f.Parse()
	require.NoError(t, err)
	assert.Equal(t, "chinese", v)

	f.Text = "No Such Ruleset"
	v, err = f.Parse()
	require.NoError(t, err)
	assert.Equal(t, "japanese", v)
}

func TestStringIdentity(t *testing.T) {
	f := &Field{Path: "engine/model", Type: String, Text: "models/b18.bin.gz"}
	v, err := f.Parse()
	require.NoError(t, err)
	assert.Equal(t, "models/b18.bin.gz", v)
}
