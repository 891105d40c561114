package tui

import (
        "context"
        "errors"
        "os"
        "path/filepath"
        "strings"

        "wallet-cli/internal/docs"
        "wallet-cli/internal/wallet"

        "github.com/charmbracelet/bubbles/filepicker"
        tea "github.com/charmbracelet/bubbletea"
        "github.com/charmbracelet/lipgloss"
)

var photoExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".bmp"}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
        switch m.modal {
        case modalConfirmDelete:
                return m.updateConfirmDelete(msg)
        case modalPickPhoto:
                return m.updatePhotoPicker(msg)
        case modalHelp:
                switch msg.String() {
                case "esc", "q", "?", "enter":
                        m.modal = modalNone
                        m.helpBody = ""
                }
                return m, nil
        }
        return m, nil
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
        switch msg.String() {
        case "tab", "shift+tab", "left", "right", "h", "l":
                if m.confirmFocus == confirmFocusConfirm {
                        m.confirmFocus = confirmFocusCancel
                } else {
                        m.confirmFocus = confirmFocusConfirm
                }
        case "y", "Y":
                m.deleteActive()
        case "enter":
                if m.confirmFocus == confirmFocusConfirm {
                        m.deleteActive()
                } else {
                        m.modal = modalNone
                }
        case "n", "N", "esc", "q":
                m.modal = modalNone
        }
        return m, nil
}

func (m *appModel) deleteActive() {
        m.modal = modalNone
        name := ""
        if c, ok := m.ctl.ActiveCard(); ok {
                name = c.StoreName
        }
        err := m.ctl.Delete(context.Background(), true)
        m.clampSelection()
        if err != nil {
                m.reportErr(err)
                return
        }
        m.setStatus("Deleted " + name)
}

func (m appModel) openPhotoPicker() (tea.Model, tea.Cmd) {
        if m.ctl.Screen() != wallet.ScreenAdd {
                m.setStatus("Photo fill is only available when adding a card")
                return m, nil
        }
        if m.ctl.Processing() {
                m.setStatus("Already analyzing a photo…")
                return m, nil
        }
        fp := filepicker.New()
        fp.AllowedTypes = photoExtensions
        fp.AutoHeight = false
        fp.Height = max(5, m.height-10)
        fp.CurrentDirectory = m.photoStartDir()
        m.photoPicker = fp
        m.modal = modalPickPhoto
        return m, fp.Init()
}

func (m appModel) photoStartDir() string {
        if m.photoLastDir != "" {
                return m.photoLastDir
        }
        if wd, err := os.Getwd(); err == nil {
                return wd
        }
        if home, err := os.UserHomeDir(); err == nil {
                return home
        }
        return "."
}

func (m appModel) updatePhotoPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
        if msg.String() == "esc" || msg.String() == "q" {
                m.modal = modalNone
                return m, nil
        }
        var cmd tea.Cmd
        m.photoPicker, cmd = m.photoPicker.Update(msg)

        if ok, path := m.photoPicker.DidSelectDisabledFile(msg); ok {
                m.setError(filepath.Base(path) + " is not an image")
                return m, cmd
        }
        ok, path := m.photoPicker.DidSelectFile(msg)
        if !ok {
                return m, cmd
        }
        m.modal = modalNone
        m.photoLastDir = filepath.Dir(path)
        token, err := m.ctl.BeginExtraction()
        if err != nil {
                if errors.Is(err, wallet.ErrExtractionBusy) {
                        m.setStatus("Already analyzing a photo…")
                } else {
                        m.reportErr(err)
                }
                return m, nil
        }
        m.clearStatus()
        return m, tea.Batch(m.spinner.Tick, m.extractCmd(token, path))
}

func (m *appModel) openHelp() {
        body, ok := docs.Get("keys")
        if !ok {
                return
        }
        width := min(max(m.width-8, 40), 90)
        out, err := RenderMarkdown(body, width)
        if err != nil {
                out = body
        }
        m.helpBody = strings.TrimRight(out, "\n")
        m.modal = modalHelp
}

func modalBox() lipgloss.Style {
        return lipgloss.NewStyle().
                Border(lipgloss.RoundedBorder()).
                BorderForeground(colorAccent).
                Padding(1, 2)
}

func (m appModel) viewConfirmDelete() string {
        name := "this card"
        if c, ok := m.ctl.ActiveCard(); ok {
                name = c.StoreName
        }
        btn := lipgloss.NewStyle().Padding(0, 2).Background(colorControlBg).Foreground(colorSurfaceFg)
        active := btn.Bold(true).Background(colorSelectedBg).Foreground(colorSelectedFg)
        del, cancel := btn, btn
        if m.confirmFocus == confirmFocusConfirm {
                del = active.Background(colorError)
        } else {
                cancel = active
        }
        buttons := lipgloss.JoinHorizontal(lipgloss.Top, del.Render("Delete"), "  ", cancel.Render("Cancel"))
        body := styleTitle().Render("Delete "+name+"?") + "\n\n" +
                "This cannot be undone.\n\n" + buttons + "\n\n" +
                styleMuted().Render("y delete · n/esc cancel · tab switch")
        return modalBox().Render(body)
}

func (m appModel) viewPhotoPicker() string {
        header := styleTitle().Render("Choose a photo of the card")
        dir := styleMuted().Render(m.photoPicker.CurrentDirectory)
        hint := styleMuted().Render("enter select · ←/backspace up a folder · esc cancel")
        return modalBox().Render(header + "\n" + dir + "\n\n" + m.photoPicker.View() + "\n\n" + hint)
}

func (m appModel) viewHelp() string {
        return modalBox().Render(m.helpBody + "\n\n" + styleMuted().Render("esc to close"))
}
