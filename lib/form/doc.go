// Package form builds editable field trees over a config.Store and
// moves values between the two.
//
// A FormTree is rebuilt each time a settings surface opens and thrown
// away when it closes; nothing in it is persisted. Pull seeds field
// display state from the store, Collect gathers typed values back out
// of the fields, failing fast on the first unparseable input.
package form
