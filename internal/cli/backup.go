package cli

import (
        "time"

        "wallet-cli/internal/store"

        "github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
        return &cobra.Command{
                Use:   "export <file>",
                Short: "Write all cards to a JSON file",
                Args:  cobra.ExactArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        cs, _, err := loadCards(cmd.Context(), app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        cards := cs.Cards()
                        if err := store.WriteExport(args[0], cards, time.Now()); err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": args[0], "count": len(cards)}})
                },
        }
}

func newImportCmd(app *App) *cobra.Command {
        var merge bool
        cmd := &cobra.Command{
                Use:   "import <file>",
                Short: "Replace the cards with the ones in a JSON export",
                Args:  cobra.ExactArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        cs, _, err := loadCards(cmd.Context(), app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        n, err := cs.Import(cmd.Context(), args[0], merge)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, app, map[string]any{"data": map[string]any{"imported": n, "total": cs.Len(), "merge": merge}})
                },
        }
        cmd.Flags().BoolVar(&merge, "merge", false, "Append cards whose ids are new instead of replacing")
        return cmd
}
