package cli

import (
        "fmt"
        "os"
        "path/filepath"
        "strings"

        "wallet-cli/internal/render"

        "github.com/atotto/clipboard"
        "github.com/spf13/cobra"
)

func newCodeCmd(app *App) *cobra.Command {
        var pngPath string
        var size int
        var ascii bool
        cmd := &cobra.Command{
                Use:   "code <card-id|store-name>",
                Short: "Render a card's barcode or QR code",
                Long:  "Prints the code as terminal text with --format text, or writes a PNG with --png.",
                Args:  cobra.ExactArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        cs, _, err := loadCards(cmd.Context(), app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        c, _, err := resolveCard(cs, args[0])
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        r := render.Renderer{Glyphs: render.ParseGlyphs(app.config().TUI.Glyphs)}
                        if ascii {
                                r.Glyphs = render.GlyphsASCII
                        }
                        sym, err := r.Render(c.CardNumber, c.Type)
                        if err != nil {
                                return writeErr(cmd, err)
                        }

                        if pngPath != "" {
                                if min := sym.MinPNGWidth(); size < min {
                                        return writeErr(cmd, fmt.Errorf("--size %d is too small for this code (min %d)", size, min))
                                }
                                b, err := sym.PNG(size)
                                if err != nil {
                                        return writeErr(cmd, err)
                                }
                                if err := os.MkdirAll(filepath.Dir(pngPath), 0o755); err != nil {
                                        return writeErr(cmd, err)
                                }
                                if err := os.WriteFile(pngPath, b, 0o644); err != nil {
                                        return writeErr(cmd, err)
                                }
                                return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": c.ID, "type": c.Type, "path": pngPath, "bytes": len(b)}})
                        }

                        if textOutput(app) {
                                _, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(sym.Lines(), "\n"))
                                return err
                        }
                        return writeOut(cmd, app, map[string]any{"data": map[string]any{
                                "id":    c.ID,
                                "type":  c.Type,
                                "value": c.CardNumber,
                                "lines": sym.Lines(),
                        }})
                },
        }
        cmd.Flags().StringVar(&pngPath, "png", "", "Write a PNG image to this path")
        cmd.Flags().IntVar(&size, "size", 512, "PNG width in pixels")
        cmd.Flags().BoolVar(&ascii, "ascii", false, "Use ASCII glyphs instead of block characters")
        return cmd
}

func newCopyCmd(app *App) *cobra.Command {
        return &cobra.Command{
                Use:   "copy <card-id|store-name>",
                Short: "Copy a card number to the clipboard",
                Args:  cobra.ExactArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        cs, _, err := loadCards(cmd.Context(), app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        c, _, err := resolveCard(cs, args[0])
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        if err := clipboard.WriteAll(c.CardNumber); err != nil {
                                return writeErr(cmd, fmt.Errorf("clipboard: %w", err))
                        }
                        return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": c.ID, "copied": c.CardNumber}})
                },
        }
}
