package cli

import (
        "context"
        "fmt"
        "os"
        "strings"

        "wallet-cli/internal/format"
        "wallet-cli/internal/logging"
        "wallet-cli/internal/store"
        "wallet-cli/internal/tui"

        "github.com/spf13/cobra"
        "go.uber.org/zap"
)

type App struct {
        Dir        string
        Workspace  string
        PrettyJSON bool
        Format     string
        Verbose    bool

        cfg *store.Config
        log *zap.Logger
}

func NewRootCmd() *cobra.Command {
        app := &App{}

        cmd := &cobra.Command{
                Use:          "wallet",
                Short:        "Loyalty card wallet (local-first) CLI + TUI",
                SilenceUsage: true,
                Example: strings.TrimSpace(`
  # Start the interactive TUI
  wallet

  # Scriptable commands
  wallet list --search star
  wallet add --store IKEA --number 6275980012
  wallet code card-x7k2m9qa

  # Direct card lookup (shortcut for: wallet show <card-id>)
  wallet card-x7k2m9qa
`),
                RunE: func(cmd *cobra.Command, args []string) error {
                        // No subcommand => interactive TUI.
                        if cmd.HasSubCommands() && len(args) == 0 {
                                return runTUI(cmd, app)
                        }
                        return cmd.Help()
                },
        }

        cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
                return app.init()
        }
        cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
                if app.log != nil {
                        _ = app.log.Sync()
                }
        }

        cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("WALLET_DIR", ""), "Path to store dir (overrides workspace resolution)")
        cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("WALLET_WORKSPACE", ""), "Workspace name (default: config workspace, else 'default')")
        cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
        cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("WALLET_FORMAT", "json"), "Output format (json|text)")
        cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Debug logging")

        cmd.AddCommand(newListCmd(app))
        cmd.AddCommand(newShowCmd(app))
        cmd.AddCommand(newAddCmd(app))
        cmd.AddCommand(newEditCmd(app))
        cmd.AddCommand(newRmCmd(app))
        cmd.AddCommand(newMoveCmd(app))
        cmd.AddCommand(newCodeCmd(app))
        cmd.AddCommand(newCopyCmd(app))
        cmd.AddCommand(newScanCmd(app))
        cmd.AddCommand(newPaletteCmd(app))
        cmd.AddCommand(newExportCmd(app))
        cmd.AddCommand(newImportCmd(app))
        cmd.AddCommand(newDocsCmd(app))

        return cmd
}

// init loads config and builds the file logger. Runs once per command.
func (app *App) init() error {
        cfg, err := store.LoadConfig()
        if err != nil {
                return fmt.Errorf("load config: %w", err)
        }
        app.cfg = cfg
        path, err := cfg.LogPath()
        if err != nil {
                return err
        }
        log, err := logging.New(logging.Options{Path: path, Level: cfg.Logging.Level, Verbose: app.Verbose})
        if err != nil {
                // Logging is best effort; commands still work without it.
                fmt.Fprintln(os.Stderr, "warning:", err)
                log = zap.NewNop()
        }
        app.log = log
        return nil
}

func (app *App) config() *store.Config {
        if app.cfg == nil {
                app.cfg = &store.Config{}
                if cfg, err := store.LoadConfig(); err == nil {
                        app.cfg = cfg
                }
        }
        return app.cfg
}

func (app *App) logger() *zap.Logger {
        if app.log == nil {
                return zap.NewNop()
        }
        return app.log
}

func runTUI(cmd *cobra.Command, app *App) error {
        cs, s, err := loadCards(cmd.Context(), app)
        if err != nil {
                return writeErr(cmd, err)
        }
        return tui.Run(tui.Options{
                Cards:     cs,
                Store:     s,
                Workspace: app.Workspace,
                Config:    app.config(),
                Logger:    app.logger(),
        })
}

func resolveDir(app *App) (string, error) {
        if app.Dir != "" {
                return app.Dir, nil
        }
        // Workspace-first:
        // 1) --workspace
        // 2) config.yaml workspace
        // 3) default workspace ("default")
        name := app.Workspace
        if name == "" {
                name = app.config().Workspace
        }
        if name == "" {
                name = "default"
        }
        d, err := store.WorkspaceDir(name)
        if err != nil {
                return "", err
        }
        app.Workspace = name
        app.Dir = d
        return d, nil
}

// loadCards opens the workspace and loads the collection. A read failure is returned
// instead of falling back to the demo cards, so a later write cannot clobber the slot.
func loadCards(ctx context.Context, app *App) (*store.CardStore, store.Store, error) {
        if ctx == nil {
                ctx = context.Background()
        }
        dir, err := resolveDir(app)
        if err != nil {
                return nil, store.Store{}, err
        }
        s := store.Store{Dir: dir}
        cs := store.NewCardStore(s, app.logger())
        if _, err := cs.Load(ctx); err != nil {
                return nil, s, err
        }
        return cs, s, nil
}

func envOr(k, d string) string {
        if v := os.Getenv(k); v != "" {
                return v
        }
        return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
        return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
        fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
        return err
}

func textOutput(app *App) bool {
        return app.Format == "text" || app.Format == "table"
}
