package tui

import (
        "strings"

        "wallet-cli/internal/model"

        "github.com/charmbracelet/lipgloss"
        xansi "github.com/charmbracelet/x/ansi"
        "github.com/lucasb-eyer/go-colorful"
)

const (
        tileWidth  = 28
        tileHeight = 6 // 4 inner lines + border top/bottom
        tileGap    = 1
)

type tileState int

const (
        tileNormal tileState = iota
        tileSelected
        tileMoving
)

// renderTile draws one card as a bordered tile filled with its colors.
func renderTile(c model.Card, width int, state tileState) string {
        border := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorCardBorder)
        switch state {
        case tileSelected:
                border = border.BorderForeground(colorSelectedBorder)
        case tileMoving:
                border = border.Border(lipgloss.ThickBorder()).BorderForeground(colorAccent)
        }
        innerW := width - border.GetHorizontalFrameSize()
        if innerW < 4 {
                innerW = 4
        }

        bg := lipgloss.Color(fallbackColor(c.ColorFrom, "#475569"))
        fill := lipgloss.NewStyle().Width(innerW).Background(bg).Foreground(cardTextColor).Padding(0, 1)
        textW := innerW - 2

        name := strings.TrimSpace(c.StoreName)
        if name == "" {
                name = "(unnamed)"
        }
        if state == tileMoving {
                name = "◀ " + name + " ▶"
        }
        lines := []string{
                fill.Bold(true).Render(xansi.Truncate(name, textW, "…")),
                fill.Render(xansi.Truncate(c.CardNumber, textW, "…")),
                fill.Faint(true).Align(lipgloss.Right).Render(c.Type.Label()),
                gradient(c.ColorFrom, c.ColorTo, innerW),
        }
        return border.Render(strings.Join(lines, "\n"))
}

// gradient renders a one-line strip blending from into to. Unparsable colors fall back
// to the slate default.
func gradient(from, to string, width int) string {
        a, errA := colorful.Hex(fallbackColor(from, "#475569"))
        b, errB := colorful.Hex(fallbackColor(to, from))
        if errA != nil {
                a, _ = colorful.Hex("#475569")
        }
        if errB != nil {
                b = a
        }
        var sb strings.Builder
        for i := 0; i < width; i++ {
                t := 0.0
                if width > 1 {
                        t = float64(i) / float64(width-1)
                }
                hex := a.BlendLab(b, t).Clamped().Hex()
                sb.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(" "))
        }
        return sb.String()
}

func fallbackColor(c, d string) string {
        c = strings.TrimSpace(c)
        if c == "" {
                return d
        }
        return c
}
