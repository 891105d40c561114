package tui

import (
        "sync"

        "github.com/charmbracelet/glamour"
        "github.com/charmbracelet/lipgloss"
)

var (
        mdMu        sync.Mutex
        mdRenderers = map[int]*glamour.TermRenderer{}
)

// RenderMarkdown renders md for the terminal, word-wrapped at width. Renderers are
// cached per width.
func RenderMarkdown(md string, width int) (string, error) {
        if width <= 0 {
                width = defaultTermWidth
        }
        mdMu.Lock()
        defer mdMu.Unlock()
        r, ok := mdRenderers[width]
        if !ok {
                style := "light"
                if lipgloss.HasDarkBackground() {
                        style = "dark"
                }
                var err error
                r, err = glamour.NewTermRenderer(
                        glamour.WithStandardStyle(style),
                        glamour.WithWordWrap(width),
                )
                if err != nil {
                        return "", err
                }
                mdRenderers[width] = r
        }
        return r.Render(md)
}
