package cli

import (
        "strconv"

        "wallet-cli/internal/format"
        "wallet-cli/internal/palette"

        "github.com/charmbracelet/lipgloss"
        "github.com/spf13/cobra"
)

type paletteRow struct {
        Index int    `json:"index"`
        Name  string `json:"name"`
        From  string `json:"from"`
        To    string `json:"to"`
}

type paletteList []paletteRow

func (l paletteList) Table() format.Table {
        t := format.Table{Headers: []string{"#", "NAME", "FROM", "TO", ""}}
        for _, r := range l {
                swatch := lipgloss.NewStyle().Background(lipgloss.Color(r.From)).Render("  ") +
                        lipgloss.NewStyle().Background(lipgloss.Color(r.To)).Render("  ")
                t.Rows = append(t.Rows, []string{strconv.Itoa(r.Index), r.Name, r.From, r.To, swatch})
        }
        return t
}

func newPaletteCmd(app *App) *cobra.Command {
        return &cobra.Command{
                Use:   "palette",
                Short: "List the card colors",
                Args:  cobra.NoArgs,
                RunE: func(cmd *cobra.Command, args []string) error {
                        var rows paletteList
                        for i, e := range palette.Entries() {
                                rows = append(rows, paletteRow{Index: i, Name: e.Name, From: e.From, To: e.To})
                        }
                        return writeOut(cmd, app, map[string]any{"data": rows})
                },
        }
}
