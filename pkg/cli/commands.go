package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/harrisonrobin/taskpad/pkg/clock"
	"github.com/harrisonrobin/taskpad/pkg/config"
	"github.com/harrisonrobin/taskpad/pkg/model"
	"github.com/harrisonrobin/taskpad/pkg/notify"
	"github.com/harrisonrobin/taskpad/pkg/tui"
)

// NewRoot returns the root command.
func NewRoot(opts ...Option) *cobra.Command {
	app := newApp(opts...)

	cmd := &cobra.Command{
		Use:   "taskpad",
		Short: "A small personal task list",
		Long: heredoc.Doc(`
			taskpad keeps a list of short tasks on your machine.

			Run it without a subcommand to open the interactive list. The
			subcommands edit the same list from scripts; task indices are the
			positions printed by "taskpad ls".
		`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "config" {
				return nil
			}
			return app.setup()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return app.close()
		},
		RunE: func(*cobra.Command, []string) error {
			return tui.Run(tui.New(app.store, app.session, app.notifier, app.cfg.Filter()))
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "config file (default ~/.config/taskpad/config.yaml)")
	flags.StringVar(&app.overrides.Backend, "backend", "", "storage backend: file, sqlite or memory")
	flags.StringVar(&app.overrides.Path, "path", "", "data file for the storage backend")
	flags.StringVar(&app.overrides.Key, "key", "", "key the task list is stored under")
	flags.BoolVar(&app.ephemeral, "ephemeral", false, "keep tasks in memory only")

	cmd.AddCommand(
		addCmd(app),
		editCmd(app),
		removeCmd(app),
		toggleCmd(app),
		listCmd(app),
		exportCmd(app),
		configCmd(app),
	)
	return cmd
}

func parseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid task index '%s'", arg)
	}
	return i, nil
}

// report prints the current notification. A failed action returns err
// marked as already shown.
func report(cmd *cobra.Command, app *App, err error) error {
	if note, ok := app.notifier.Current(); ok {
		if note.Kind == notify.ERROR {
			cmd.PrintErrln(aurora.Red(note.Message))
		} else {
			cmd.Println(aurora.Green(note.Message))
		}
		app.notifier.Clear()
		if err != nil {
			return fmt.Errorf("%w: %w", errShown, err)
		}
	}
	return err
}

func addCmd(app *App) *cobra.Command {
	var complete bool

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a task",
		Example: heredoc.Doc(`
			$ taskpad add Buy milk
			$ taskpad add --complete "Water plants"
		`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.session.OpenForCreate()
			if err := app.session.SetName(strings.Join(args, " ")); err != nil {
				return err
			}
			if complete {
				if err := app.session.SetStatus(model.COMPLETE); err != nil {
					return err
				}
			}
			return report(cmd, app, app.session.Submit())
		},
	}
	cmd.Flags().BoolVar(&complete, "complete", false, "mark the task complete")
	return cmd
}

func editCmd(app *App) *cobra.Command {
	var name, status string

	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Change the name or status of a task",
		Example: heredoc.Doc(`
			$ taskpad edit 0 --name "Buy oat milk"
			$ taskpad edit 2 --status complete
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			if err := app.session.OpenForEdit(index); err != nil {
				return fmt.Errorf("no task at index %d", index)
			}
			if cmd.Flags().Changed("name") {
				if err := app.session.SetName(name); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("status") {
				st, err := model.ParseStatus(status)
				if err != nil {
					return err
				}
				if err := app.session.SetStatus(st); err != nil {
					return err
				}
			}
			return report(cmd, app, app.session.Submit())
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new task name")
	cmd.Flags().StringVar(&status, "status", "", "new status: incomplete or complete")
	return cmd
}

func removeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return report(cmd, app, app.session.Remove(index))
		},
	}
}

func toggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <index>",
		Short: "Flip a task between complete and incomplete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			if err := app.session.Toggle(index); err != nil {
				return report(cmd, app, err)
			}
			t, err := app.store.Get(index)
			if err != nil {
				return err
			}
			cmd.Printf("%d %s: %s\n", index, t.Name, t.Status)
			return nil
		},
	}
}

func listCmd(app *App) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks",
		Long: heredoc.Doc(`
			List tasks in the order they were added.

			The first column is the task index to pass to edit, rm and
			toggle. It does not change when a filter is applied.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := app.cfg.Filter()
			if cmd.Flags().Changed("filter") {
				var err error
				if f, err = model.ParseFilter(filter); err != nil {
					return err
				}
			}

			entries := app.store.List(f)
			if len(entries) == 0 {
				cmd.Println("No todos")
				return nil
			}
			for _, e := range entries {
				box := "[ ]"
				name := aurora.Bold(e.Task.Name)
				if e.Task.Done() {
					box = "[x]"
					name = aurora.Faint(e.Task.Name)
				}
				cmd.Printf("%3d %s %s  %s\n", e.Index, box, name, aurora.Faint(clock.Format(e.Task.CreatedAt)))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "all, incomplete or complete")
	return cmd
}

func exportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the stored task list as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := app.store.Export()
			if err != nil {
				return err
			}
			cmd.Println(raw)
			return nil
		},
	}
}

func configCmd(app *App) *cobra.Command {
	var set config.Config

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the saved configuration",
		Example: heredoc.Doc(`
			$ taskpad config
			$ taskpad config --set-backend sqlite --set-path ~/tasks.db
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := app.configPath
			if path == "" {
				var err error
				if path, err = config.GetConfigPath(); err != nil {
					return err
				}
			}
			cfg, err := config.LoadFrom(path)
			if err != nil {
				return err
			}

			changed := false
			for flag, apply := range map[string]func(){
				"set-backend":        func() { cfg.Backend = set.Backend },
				"set-path":           func() { cfg.Path = set.Path },
				"set-key":            func() { cfg.Key = set.Key },
				"set-notify-delay":   func() { cfg.NotifyDelay = set.NotifyDelay },
				"set-default-filter": func() { cfg.DefaultFilter = set.DefaultFilter },
			} {
				if cmd.Flags().Changed(flag) {
					apply()
					changed = true
				}
			}

			if changed {
				if err := cfg.Validate(); err != nil {
					return err
				}
				if err := config.SaveTo(path, cfg); err != nil {
					return err
				}
				cmd.Println(aurora.Green(fmt.Sprintf("Saved %s", path)))
			}

			dataPath, err := cfg.DataPath()
			if err != nil {
				return fmt.Errorf("resolve data path: %w", err)
			}
			cmd.Print(heredoc.Docf(`
				Config:         %s
				Backend:        %s
				Data:           %s
				Key:            %s
				Notify delay:   %s
				Default filter: %s
			`, path, cfg.Backend, dataPath, cfg.Key, cfg.NotifyDelay, cfg.DefaultFilter))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&set.Backend, "set-backend", "", "storage backend: file, sqlite or memory")
	flags.StringVar(&set.Path, "set-path", "", "data file for the storage backend")
	flags.StringVar(&set.Key, "set-key", "", "key the task list is stored under")
	flags.StringVar(&set.NotifyDelay, "set-notify-delay", "", "how long notifications stay visible, e.g. 2s")
	flags.StringVar(&set.DefaultFilter, "set-default-filter", "", "filter used when none is given")
	return cmd
}
