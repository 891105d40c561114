package cli

import (
        "fmt"
        "sort"

        "wallet-cli/internal/docs"
        "wallet-cli/internal/tui"

        "github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
        var raw bool
        var width int

        cmd := &cobra.Command{
                Use:   "docs [topic]",
                Short: "Show on-demand documentation",
                Args:  cobra.MaximumNArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        if len(args) == 0 {
                                topics := docs.Topics()
                                sort.Strings(topics)
                                return writeOut(cmd, app, map[string]any{"data": map[string]any{"topics": topics}})
                        }

                        topic := args[0]
                        body, ok := docs.Get(topic)
                        if !ok {
                                return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `wallet docs` to list topics)", topic))
                        }

                        if raw {
                                _, err := fmt.Fprint(cmd.OutOrStdout(), body)
                                return err
                        }
                        if textOutput(app) {
                                out, err := tui.RenderMarkdown(body, width)
                                if err != nil {
                                        return writeErr(cmd, err)
                                }
                                _, err = fmt.Fprint(cmd.OutOrStdout(), out)
                                return err
                        }

                        return writeOut(cmd, app, map[string]any{"data": map[string]any{"topic": topic, "markdown": body}})
                },
        }

        cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope)")
        cmd.Flags().IntVar(&width, "width", 80, "Wrap width for --format text")

        return cmd
}
