package tui

import (
        "context"
        "errors"
        "fmt"
        "strings"

        "wallet-cli/internal/model"
        "wallet-cli/internal/wallet"

        "github.com/charmbracelet/bubbles/key"
        tea "github.com/charmbracelet/bubbletea"
        "github.com/charmbracelet/lipgloss"
)

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
        if m.searching {
                return m.updateSearch(msg)
        }

        switch {
        case key.Matches(msg, m.keys.Quit):
                return m, tea.Quit
        case key.Matches(msg, m.keys.Help):
                m.openHelp()
                return m, nil
        case key.Matches(msg, m.keys.Reorder):
                id := m.selectedID()
                if m.ctl.ToggleReorder() {
                        m.setStatus("Reorder mode: ←/→ moves the selected card")
                } else {
                        m.clearStatus()
                }
                m.selectByID(id)
                return m, nil
        case key.Matches(msg, m.keys.Back):
                id := m.selectedID()
                if m.ctl.Reordering() {
                        m.ctl.Back()
                        m.clearStatus()
                } else if m.ctl.Search() != "" {
                        m.search.SetValue("")
                        m.ctl.SetSearch("")
                }
                m.selectByID(id)
                return m, nil
        case key.Matches(msg, m.keys.Left):
                if m.ctl.Reordering() {
                        m.moveSelected(wallet.Left)
                } else {
                        m.moveSelection(-1)
                }
                return m, nil
        case key.Matches(msg, m.keys.Right):
                if m.ctl.Reordering() {
                        m.moveSelected(wallet.Right)
                } else {
                        m.moveSelection(1)
                }
                return m, nil
        case key.Matches(msg, m.keys.Up):
                m.moveSelection(-m.gridColumns())
                return m, nil
        case key.Matches(msg, m.keys.Down):
                m.moveSelection(m.gridColumns())
                return m, nil
        case key.Matches(msg, m.keys.Search):
                if m.ctl.Reordering() {
                        return m, nil
                }
                m.searching = true
                cmd := m.search.Focus()
                return m, cmd
        case key.Matches(msg, m.keys.Open):
                id := m.selectedID()
                if id == "" {
                        return m, nil
                }
                if err := m.ctl.Open(id); err != nil && !errors.Is(err, wallet.ErrReorderMode) {
                        m.reportErr(err)
                }
                return m, nil
        case key.Matches(msg, m.keys.Add):
                if err := m.ctl.BeginAdd(); err != nil {
                        if !errors.Is(err, wallet.ErrReorderMode) {
                                m.reportErr(err)
                        }
                        return m, nil
                }
                cmd := m.enterForm()
                return m, cmd
        }
        return m, nil
}

func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
        switch msg.String() {
        case "enter":
                m.searching = false
                m.search.Blur()
                return m, nil
        case "esc":
                m.searching = false
                m.search.Blur()
                m.search.SetValue("")
                m.ctl.SetSearch("")
                m.clampSelection()
                return m, nil
        }
        var cmd tea.Cmd
        m.search, cmd = m.search.Update(msg)
        if m.search.Value() != m.ctl.Search() {
                m.ctl.SetSearch(m.search.Value())
                m.selected = 0
                m.scrollRow = 0
        }
        return m, cmd
}

func (m *appModel) moveSelected(dir wallet.Direction) {
        moved, err := m.ctl.MoveCard(context.Background(), m.selected, dir)
        if err != nil {
                m.reportErr(err)
        }
        if !moved {
                return
        }
        if dir == wallet.Left {
                m.selected--
        } else {
                m.selected++
        }
        m.ensureSelectionVisible()
}

func (m *appModel) moveSelection(delta int) {
        n := len(m.ctl.VisibleCards())
        if n == 0 {
                return
        }
        next := m.selected + delta
        if next < 0 || next >= n {
                return
        }
        m.selected = next
        m.ensureSelectionVisible()
}

func (m *appModel) clampSelection() {
        n := len(m.ctl.VisibleCards())
        if m.selected >= n {
                m.selected = n - 1
        }
        if m.selected < 0 {
                m.selected = 0
        }
        m.ensureSelectionVisible()
}

func (m appModel) selectedID() string {
        cards := m.ctl.VisibleCards()
        if m.selected < 0 || m.selected >= len(cards) {
                return ""
        }
        return cards[m.selected].ID
}

func (m *appModel) selectByID(id string) {
        if id != "" {
                for i, c := range m.ctl.VisibleCards() {
                        if c.ID == id {
                                m.selected = i
                                m.ensureSelectionVisible()
                                return
                        }
                }
        }
        m.clampSelection()
}

func (m appModel) gridColumns() int {
        cols := (m.width + tileGap) / (tileWidth + tileGap)
        if cols < 1 {
                cols = 1
        }
        return cols
}

// gridRowsVisible is how many tile rows fit between the header and the footer.
func (m appModel) gridRowsVisible() int {
        rows := (m.height - 5) / tileHeight
        if rows < 1 {
                rows = 1
        }
        return rows
}

func (m *appModel) ensureSelectionVisible() {
        row := m.selected / m.gridColumns()
        visible := m.gridRowsVisible()
        if row < m.scrollRow {
                m.scrollRow = row
        }
        if row >= m.scrollRow+visible {
                m.scrollRow = row - visible + 1
        }
        if m.scrollRow < 0 {
                m.scrollRow = 0
        }
}

func (m appModel) viewList() string {
        cards := m.ctl.VisibleCards()
        total := 0
        if m.cards != nil {
                total = m.cards.Len()
        }

        header := styleTitle().Render("Wallet")
        meta := fmt.Sprintf("  %d cards", total)
        if m.workspace != "" && m.workspace != "default" {
                meta = "  " + m.workspace + " ·" + meta
        }
        header += styleMuted().Render(meta)
        if m.cards != nil && m.cards.Seeded() {
                header += styleMuted().Render("  (demo cards)")
        }
        if m.ctl.Reordering() {
                badge := lipgloss.NewStyle().Bold(true).Foreground(colorSelectedFg).Background(colorAccent).Padding(0, 1)
                header += "  " + badge.Render("REORDER")
        }

        var searchLine string
        switch {
        case m.ctl.Reordering():
                searchLine = styleMuted().Render("search is off while reordering")
        case m.searching:
                searchLine = m.search.View()
        case m.ctl.Search() != "":
                searchLine = lipgloss.NewStyle().Foreground(colorSurfaceFg).Render("/ "+m.ctl.Search()) + styleMuted().Render("  (esc clears)")
        default:
                searchLine = styleMuted().Render("/ to search")
        }

        return strings.Join([]string{header, searchLine, "", m.viewGrid(cards)}, "\n")
}

func (m appModel) viewGrid(cards []model.Card) string {
        if len(cards) == 0 {
                if m.ctl.Search() != "" {
                        return styleMuted().Render(fmt.Sprintf("No cards match %q.", m.ctl.Search()))
                }
                return styleMuted().Render("No cards yet. Press a to add one.")
        }
        cols := m.gridColumns()
        start := m.scrollRow * cols
        end := start + m.gridRowsVisible()*cols
        if end > len(cards) {
                end = len(cards)
        }
        if start > end {
                start = end
        }

        gap := strings.Repeat(" ", tileGap)
        var rows []string
        for i := start; i < end; i += cols {
                var tiles []string
                for j := i; j < i+cols && j < end; j++ {
                        state := tileNormal
                        if j == m.selected {
                                state = tileSelected
                                if m.ctl.Reordering() {
                                        state = tileMoving
                                }
                        }
                        if len(tiles) > 0 {
                                tiles = append(tiles, gap)
                        }
                        tiles = append(tiles, renderTile(cards[j], tileWidth, state))
                }
                rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
        }
        out := lipgloss.JoinVertical(lipgloss.Left, rows...)
        if hidden := len(cards) - end; hidden > 0 {
                out += "\n" + styleMuted().Render(fmt.Sprintf("↓ %d more", hidden))
        }
        return out
}
