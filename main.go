package main

import (
	"fmt"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/go-i2p/logger"
	"github.com/spf13/cobra"

	"github.com/go-baduk/reconfig/lib/config"
	"github.com/go-baduk/reconfig/lib/engine"
	"github.com/go-baduk/reconfig/lib/form"
	"github.com/go-baduk/reconfig/lib/reconcile"
	"github.com/go-baduk/reconfig/lib/sched"
	"github.com/go-baduk/reconfig/lib/tui"
)

var log = logger.GetGoI2PLogger()

type filePersister struct{ path string }

func (p filePersister) Save(s config.Store) error {
	return config.Save(s, p.path)
}

type printNotifier struct{}

func (printNotifier) NotifyStateChanged() {
	color.Green("state changed")
}

func newSession(store config.Store) (*reconcile.Session, *sched.Queue) {
	queue := sched.New()
	session := &reconcile.Session{
		Store:     store,
		Scheme:    reconcile.CategoryScheme{Store: store},
		Policy:    reconcile.DefaultPolicy(store),
		Persister: filePersister{path: config.DefaultConfigPath()},
		Notifier:  printNotifier{},
	}
	if eng, err := engine.New(store.Slice("engine")); err == nil {
		session.Engine = engine.NewManager(eng, queue, printNotifier{}.NotifyStateChanged)
	} else {
		log.WithError(err).Warn("engine unavailable, engine effects disabled")
	}
	return session, queue
}

func main() {
	root := &cobra.Command{
		Use:   "reconfig",
		Short: "Settings reconciliation for the analysis engine",
	}
	root.PersistentFlags().StringVar(&config.CfgFile, "config", "", "config file (default $HOME/.reconfig/config.yaml)")

	root.AddCommand(showCmd(), getCmd(), setCmd(), editCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print every setting",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.Load()
			if err != nil {
				return err
			}
			flat := store.Flatten()
			paths := make([]string, 0, len(flat))
			for p := range flat {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			for _, p := range paths {
				fmt.Printf("%s = %v\n", color.CyanString(p), flat[p])
			}
			return nil
		},
	}
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <category/key>",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.Load()
			if err != nil {
				return err
			}
			data, err := config.ExportJSON(store)
			if err != nil {
				return err
			}
			result := config.QueryJSON(data, args[0])
			if !result.Exists() {
				return fmt.Errorf("no setting %s", args[0])
			}
			fmt.Println(result.String())
			return nil
		},
	}
}

func setCmd() *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "set <category/key> <value>",
		Short: "Change one setting and run its side effects",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.Load()
			if err != nil {
				return err
			}
			path, raw := args[0], args[1]

			// field type follows the currently stored value
			f := form.FieldForValue(store.Get(path), path)
			f.SetText(raw)

			session, queue := newSession(store)
			session.Tree = form.NewContainer("cli", form.NewFieldNode(f))

			changed, err := session.Apply(save)
			for p := range changed {
				color.Yellow("%s = %v", p, store.Get(p))
			}
			queue.RunPending()
			if err != nil {
				return err
			}
			if len(changed) == 0 {
				fmt.Println("no change")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", true, "save the config file after applying")
	return cmd
}

func editCmd() *cobra.Command {
	var ignore []string
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit settings in a terminal form",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := config.Load()
			if err != nil {
				return err
			}
			session, queue := newSession(store)
			session.Tree = form.Build(store, form.BuildOptions{IgnoreCategories: ignore})

			_, err = tea.NewProgram(tui.New(session, queue)).Run()
			return err
		},
	}
	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "categories to leave out of the form")
	return cmd
}
