package cli

import (
        "context"
        "errors"
        "fmt"

        "wallet-cli/internal/extract"
        "wallet-cli/internal/wallet"

        "github.com/spf13/cobra"
)

// newExtractor is swapped out in tests.
var newExtractor = func(ctx context.Context, app *App) (extract.Extractor, error) {
        cfg := app.config()
        return extract.NewGemini(ctx, extract.GeminiOptions{
                APIKey: cfg.APIKey(),
                Model:  cfg.AI.Model,
                Logger: app.logger(),
        })
}

func scanImage(ctx context.Context, app *App, path string) (extract.Result, error) {
        img, mt, err := extract.ReadImage(path)
        if err != nil {
                return extract.Result{}, err
        }
        ex, err := newExtractor(ctx, app)
        if err != nil {
                return extract.Result{}, err
        }
        ctx, cancel := context.WithTimeout(ctx, app.config().AITimeout())
        defer cancel()
        return ex.Extract(ctx, img, mt)
}

// fillFromPhoto runs an extraction through the controller so the add command and the
// TUI share the same bookkeeping.
func fillFromPhoto(cmd *cobra.Command, app *App, ctl *wallet.Controller, path string) error {
        tok, err := ctl.BeginExtraction()
        if err != nil {
                return err
        }
        res, scanErr := scanImage(cmd.Context(), app, path)
        if _, err := ctl.CompleteExtraction(tok, res, scanErr); err != nil {
                return describeExtractErr(app, err)
        }
        return nil
}

func describeExtractErr(app *App, err error) error {
        var e *extract.Error
        if app.Verbose && errors.As(err, &e) {
                return fmt.Errorf("%s: %s", e.Error(), e.Detail())
        }
        return err
}

func newScanCmd(app *App) *cobra.Command {
        return &cobra.Command{
                Use:   "scan <image>",
                Short: "Read store name and card number from a card photo",
                Args:  cobra.ExactArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        ctx := cmd.Context()
                        if ctx == nil {
                                ctx = context.Background()
                        }
                        res, err := scanImage(ctx, app, args[0])
                        if err != nil {
                                return writeErr(cmd, describeExtractErr(app, err))
                        }
                        return writeOut(cmd, app, map[string]any{"data": res})
                },
        }
}
