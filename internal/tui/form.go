package tui

import (
        "context"
        "errors"
        "fmt"
        "strings"

        "wallet-cli/internal/extract"
        "wallet-cli/internal/model"
        "wallet-cli/internal/wallet"

        "github.com/charmbracelet/bubbles/key"
        tea "github.com/charmbracelet/bubbletea"
        "github.com/charmbracelet/lipgloss"
        "go.uber.org/zap"
)

const extractFailedMsg = "Could not analyze card. Please try again or enter details manually."

// enterForm copies the controller's fresh draft into the text inputs and focuses the
// first field.
func (m *appModel) enterForm() tea.Cmd {
        d := m.ctl.Draft()
        m.storeInput.SetValue(d.StoreName)
        m.storeInput.CursorEnd()
        m.numberInput.SetValue(d.CardNumber)
        m.numberInput.CursorEnd()
        m.clearStatus()
        return m.focusField(fieldStore)
}

func (m *appModel) focusField(f formField) tea.Cmd {
        m.formFocus = f
        m.storeInput.Blur()
        m.numberInput.Blur()
        switch f {
        case fieldStore:
                return m.storeInput.Focus()
        case fieldNumber:
                return m.numberInput.Focus()
        }
        return nil
}

func (m *appModel) leaveForm() {
        m.storeInput.Blur()
        m.numberInput.Blur()
        m.formFocus = fieldStore
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
        switch {
        case key.Matches(msg, m.keys.Cancel):
                m.ctl.Cancel()
                m.leaveForm()
                m.clearStatus()
                return m, nil
        case key.Matches(msg, m.keys.Save):
                return m.submitForm()
        case key.Matches(msg, m.keys.Photo):
                return m.openPhotoPicker()
        case msg.String() == "tab", msg.String() == "shift+tab":
                delta := 1
                if msg.String() == "shift+tab" {
                        delta = -1
                }
                next := (int(m.formFocus) + delta + int(formFieldCount)) % int(formFieldCount)
                cmd := m.focusField(formField(next))
                return m, cmd
        }

        switch m.formFocus {
        case fieldStore, fieldNumber:
                switch msg.String() {
                case "enter", "down":
                        cmd := m.focusField(m.formFocus + 1)
                        return m, cmd
                case "up":
                        if m.formFocus == fieldNumber {
                                cmd := m.focusField(fieldStore)
                                return m, cmd
                        }
                        return m, nil
                }
                var cmd tea.Cmd
                if m.formFocus == fieldStore {
                        m.storeInput, cmd = m.storeInput.Update(msg)
                        m.ctl.SetStoreName(m.storeInput.Value())
                } else {
                        m.numberInput, cmd = m.numberInput.Update(msg)
                        m.ctl.SetCardNumber(m.numberInput.Value())
                }
                return m, cmd

        case fieldColor:
                switch msg.String() {
                case "left", "h":
                        m.ctl.CycleColor(-1)
                case "right", "l", " ":
                        m.ctl.CycleColor(1)
                case "up", "k":
                        cmd := m.focusField(fieldNumber)
                        return m, cmd
                case "down", "j", "enter":
                        cmd := m.focusField(fieldType)
                        return m, cmd
                }
                return m, nil

        case fieldType:
                switch msg.String() {
                case "left", "h", "right", "l", " ":
                        m.ctl.ToggleType()
                case "up", "k":
                        cmd := m.focusField(fieldColor)
                        return m, cmd
                case "down", "j", "enter":
                        cmd := m.focusField(fieldSave)
                        return m, cmd
                }
                return m, nil

        case fieldSave:
                switch msg.String() {
                case "enter", " ":
                        return m.submitForm()
                case "up", "k":
                        cmd := m.focusField(fieldType)
                        return m, cmd
                }
        }
        return m, nil
}

func (m appModel) submitForm() (tea.Model, tea.Cmd) {
        if m.ctl.Processing() {
                m.setStatus("Still analyzing the photo…")
                return m, nil
        }
        adding := m.ctl.Screen() == wallet.ScreenAdd
        err := m.ctl.Submit(context.Background())
        var ve *wallet.ValidationError
        if errors.As(err, &ve) {
                m.setError("Please fill in " + strings.Join(ve.Fields, " and "))
                if len(ve.Fields) > 0 && ve.Fields[0] == "card number" {
                        cmd := m.focusField(fieldNumber)
                        return m, cmd
                }
                cmd := m.focusField(fieldStore)
                return m, cmd
        }
        if m.ctl.Screen() == wallet.ScreenAdd || m.ctl.Screen() == wallet.ScreenEdit {
                // Submit failed without a transition (e.g. the card vanished).
                m.reportErr(err)
                return m, nil
        }
        m.leaveForm()
        if err != nil {
                m.reportErr(err)
        } else if adding {
                m.setStatus("Card added")
        } else {
                m.setStatus("Card saved")
        }
        if adding {
                m.selected = 0
                m.scrollRow = 0
        }
        m.clampSelection()
        return m, nil
}

// extractCmd reads the photo and asks the extractor for the store name and number.
// The result comes back as an extractDoneMsg tagged with token.
func (m appModel) extractCmd(token uint64, path string) tea.Cmd {
        newEx := m.newExtractor
        timeout := m.aiTimeout
        log := m.log
        return func() tea.Msg {
                ctx, cancel := context.WithTimeout(context.Background(), timeout)
                defer cancel()

                img, mime, err := extract.ReadImage(path)
                if err != nil {
                        return extractDoneMsg{token: token, err: err}
                }
                ex, err := newEx(ctx)
                if err != nil {
                        return extractDoneMsg{token: token, err: err}
                }
                log.Debug("extracting card from photo", zap.String("mime", mime), zap.Int("bytes", len(img)))
                res, err := ex.Extract(ctx, img, mime)
                return extractDoneMsg{token: token, res: res, err: err}
        }
}

func (m appModel) handleExtractDone(msg extractDoneMsg) (tea.Model, tea.Cmd) {
        applied, err := m.ctl.CompleteExtraction(msg.token, msg.res, msg.err)
        if err != nil {
                var ee *extract.Error
                if errors.As(err, &ee) {
                        m.log.Warn("photo extraction failed", zap.String("reason", ee.Detail()))
                }
                m.setError(extractFailedMsg)
                return m, nil
        }
        if !applied {
                return m, nil
        }
        d := m.ctl.Draft()
        m.storeInput.SetValue(d.StoreName)
        m.storeInput.CursorEnd()
        m.numberInput.SetValue(d.CardNumber)
        m.numberInput.CursorEnd()
        m.setStatus("Filled from photo. Check the details and save.")
        return m, nil
}

func (m appModel) viewForm() string {
        d := m.ctl.Draft()
        adding := m.ctl.Screen() == wallet.ScreenAdd

        title := "Edit card"
        if adding {
                title = "Add card"
        }
        var b strings.Builder
        b.WriteString(styleTitle().Render(title))
        b.WriteString("\n\n")

        if adding {
                if m.ctl.Processing() {
                        b.WriteString(m.spinner.View() + " Analyzing photo…")
                } else {
                        b.WriteString(styleMuted().Render("ctrl+p  fill from a photo of the card"))
                }
                b.WriteString("\n\n")
        }

        b.WriteString(m.formRow(fieldStore, "Store name", m.storeInput.View()))
        b.WriteString(m.formRow(fieldNumber, "Card number", m.numberInput.View()))

        swatch := lipgloss.NewStyle().Width(6).Render(gradient(d.Color.From, d.Color.To, 6))
        color := fmt.Sprintf("‹ %s %s ›", swatch, d.Color.Name())
        b.WriteString(m.formRow(fieldColor, "Color", color))

        b.WriteString(m.formRow(fieldType, "Type", typePicker(d.Type)))

        save := "[ Save ]"
        if adding {
                save = "[ Add card ]"
        }
        saveStyle := lipgloss.NewStyle().Padding(0, 1)
        if m.formFocus == fieldSave {
                saveStyle = saveStyle.Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg)
        }
        b.WriteString("\n" + saveStyle.Render(save) + "\n\n")

        preview := renderTile(d.Preview(), tileWidth, tileNormal)
        b.WriteString(styleMuted().Render("Preview") + "\n" + preview)
        return b.String()
}

func (m appModel) formRow(f formField, label, value string) string {
        labelStyle := lipgloss.NewStyle().Width(13).Foreground(colorMuted)
        marker := "  "
        if m.formFocus == f {
                labelStyle = labelStyle.Foreground(colorAccent).Bold(true)
                marker = lipgloss.NewStyle().Foreground(colorAccent).Render("▸ ")
        }
        return marker + labelStyle.Render(label) + value + "\n"
}

func typePicker(t model.Symbology) string {
        on := lipgloss.NewStyle().Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg).Padding(0, 1)
        off := lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
        bar, qr := off, off
        if t == model.SymbologyQRCode {
                qr = on
        } else {
                bar = on
        }
        return bar.Render(model.SymbologyBarcode.Label()) + " " + qr.Render(model.SymbologyQRCode.Label())
}
