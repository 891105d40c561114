package tui

import (
        "strings"

        "github.com/atotto/clipboard"
        "github.com/charmbracelet/bubbles/key"
        tea "github.com/charmbracelet/bubbletea"
        "github.com/charmbracelet/lipgloss"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

func (m appModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
        switch {
        case key.Matches(msg, m.keys.Quit):
                return m, tea.Quit
        case key.Matches(msg, m.keys.Help):
                m.openHelp()
        case key.Matches(msg, m.keys.Back):
                id := m.ctl.ActiveID()
                m.ctl.Back()
                m.selectByID(id)
        case key.Matches(msg, m.keys.Edit):
                if err := m.ctl.BeginEdit(); err != nil {
                        m.reportErr(err)
                        m.clampSelection()
                        return m, nil
                }
                cmd := m.enterForm()
                return m, cmd
        case key.Matches(msg, m.keys.Delete):
                if _, ok := m.ctl.ActiveCard(); !ok {
                        m.reportErr(m.ctl.Sync())
                        return m, nil
                }
                m.modal = modalConfirmDelete
                m.confirmFocus = confirmFocusCancel
        case key.Matches(msg, m.keys.Copy):
                card, ok := m.ctl.ActiveCard()
                if !ok {
                        return m, nil
                }
                value := card.CardNumber
                return m, func() tea.Msg {
                        return clipboardDoneMsg{value: value, err: copyToClipboard(value)}
                }
        }
        return m, nil
}

func (m appModel) viewDetail() string {
        card, ok := m.ctl.ActiveCard()
        if !ok {
                return styleMuted().Render("This card no longer exists. Press esc to go back.")
        }

        bandW := min(max(m.width-2, 20), 64)
        band := lipgloss.NewStyle().
                Width(bandW).
                Padding(1, 2).
                Bold(true).
                Foreground(cardTextColor).
                Background(lipgloss.Color(fallbackColor(card.ColorFrom, "#475569"))).
                Render(card.StoreName)

        var b strings.Builder
        b.WriteString(band + "\n")
        b.WriteString(gradient(card.ColorFrom, card.ColorTo, bandW) + "\n\n")
        b.WriteString(styleMuted().Render("Card number  ") + card.CardNumber + "\n")
        b.WriteString(styleMuted().Render("Type         ") + card.Type.Label() + "\n\n")

        sym, err := m.renderer.Render(card.CardNumber, card.Type)
        if err != nil {
                b.WriteString(lipgloss.NewStyle().Foreground(colorError).Render("Cannot render code: " + err.Error()))
                return b.String()
        }
        b.WriteString(codeStyle.Render(sym.String()))
        if sym.Width() > m.width {
                b.WriteString("\n" + lipgloss.NewStyle().Foreground(colorWarn).Render("Widen the terminal to scan this code, or use `wallet code --png`."))
        }
        return b.String()
}
