package tui

import (
        "context"
        "errors"
        "strings"
        "time"

        "wallet-cli/internal/extract"
        "wallet-cli/internal/render"
        "wallet-cli/internal/store"
        "wallet-cli/internal/wallet"

        "github.com/charmbracelet/bubbles/filepicker"
        "github.com/charmbracelet/bubbles/help"
        "github.com/charmbracelet/bubbles/key"
        "github.com/charmbracelet/bubbles/spinner"
        "github.com/charmbracelet/bubbles/textinput"
        tea "github.com/charmbracelet/bubbletea"
        "github.com/charmbracelet/lipgloss"
        "go.uber.org/zap"
)

const (
        reloadEvery          = 750 * time.Millisecond
        statusAutoClearAfter = 4 * time.Second
        defaultTermWidth     = 80
        defaultTermHeight    = 24
)

type appModel struct {
        ctl       *wallet.Controller
        cards     *store.CardStore
        store     store.Store
        workspace string
        log       *zap.Logger

        renderer     render.Renderer
        newExtractor func(ctx context.Context) (extract.Extractor, error)
        aiTimeout    time.Duration

        width  int
        height int

        keys keyMap
        help help.Model

        // Card list.
        selected  int
        scrollRow int
        search    textinput.Model
        searching bool

        // Add/edit form.
        storeInput  textinput.Model
        numberInput textinput.Model
        formFocus   formField
        spinner     spinner.Model

        photoPicker  filepicker.Model
        photoLastDir string

        modal        modalKind
        confirmFocus confirmModalFocus
        helpBody     string

        status    string
        statusErr bool
        statusAt  time.Time
}

func newAppModel(opts Options) appModel {
        log := opts.Logger
        if log == nil {
                log = zap.NewNop()
        }
        cfg := opts.Config
        if cfg == nil {
                cfg = &store.Config{}
        }
        newEx := opts.NewExtractor
        if newEx == nil {
                newEx = defaultExtractorFactory(cfg, log)
        }

        search := textinput.New()
        search.Prompt = "/ "
        search.Placeholder = "Search stores"
        search.CharLimit = 64

        storeInput := textinput.New()
        storeInput.Prompt = ""
        storeInput.Placeholder = "e.g. IKEA"
        storeInput.CharLimit = 80

        numberInput := textinput.New()
        numberInput.Prompt = ""
        numberInput.Placeholder = "e.g. 6275 9800 1234"
        numberInput.CharLimit = 128

        sp := spinner.New(spinner.WithSpinner(spinner.Dot))
        sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

        m := appModel{
                ctl:          wallet.NewController(opts.Cards, log),
                cards:        opts.Cards,
                store:        opts.Store,
                workspace:    opts.Workspace,
                log:          log.Named("tui"),
                renderer:     render.Renderer{Glyphs: render.ParseGlyphs(cfg.TUI.Glyphs)},
                newExtractor: newEx,
                aiTimeout:    aiTimeout(cfg),
                width:        defaultTermWidth,
                height:       defaultTermHeight,
                keys:         newKeyMap(),
                help:         help.New(),
                search:       search,
                storeInput:   storeInput,
                numberInput:  numberInput,
                spinner:      sp,
        }
        m.restoreState()
        return m
}

func (m appModel) Init() tea.Cmd { return tickReload() }

func tickReload() tea.Cmd {
        return tea.Tick(reloadEvery, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
        switch msg := msg.(type) {
        case tea.WindowSizeMsg:
                m.width = msg.Width
                m.height = msg.Height
                m.help.Width = msg.Width
                m.search.Width = max(10, msg.Width-6)
                m.ensureSelectionVisible()
                return m, nil

        case reloadTickMsg:
                m.reloadIfChanged()
                if m.status != "" && time.Since(m.statusAt) > statusAutoClearAfter {
                        m.clearStatus()
                }
                return m, tickReload()

        case spinner.TickMsg:
                if !m.ctl.Processing() {
                        return m, nil
                }
                var cmd tea.Cmd
                m.spinner, cmd = m.spinner.Update(msg)
                return m, cmd

        case extractDoneMsg:
                return m.handleExtractDone(msg)

        case clipboardDoneMsg:
                if msg.err != nil {
                        m.setError("Could not copy: " + msg.err.Error())
                } else {
                        m.setStatus("Copied " + msg.value)
                }
                return m, nil

        case tea.KeyMsg:
                if msg.String() == "ctrl+c" {
                        return m, tea.Quit
                }
                if m.modal != modalNone {
                        return m.updateModal(msg)
                }
                switch m.ctl.Screen() {
                case wallet.ScreenDetail:
                        return m.updateDetail(msg)
                case wallet.ScreenAdd, wallet.ScreenEdit:
                        return m.updateForm(msg)
                default:
                        return m.updateList(msg)
                }
        }

        // Everything else (filepicker directory reads, cursor blinks) goes to whatever is focused.
        if m.modal == modalPickPhoto {
                var cmd tea.Cmd
                m.photoPicker, cmd = m.photoPicker.Update(msg)
                return m, cmd
        }
        return m.updateFocusedInput(msg)
}

func (m appModel) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
        var cmd tea.Cmd
        switch {
        case m.searching:
                m.search, cmd = m.search.Update(msg)
        case m.ctl.Screen() == wallet.ScreenAdd || m.ctl.Screen() == wallet.ScreenEdit:
                switch m.formFocus {
                case fieldStore:
                        m.storeInput, cmd = m.storeInput.Update(msg)
                case fieldNumber:
                        m.numberInput, cmd = m.numberInput.Update(msg)
                }
        }
        return m, cmd
}

// reloadIfChanged picks up writes from other processes (e.g. `wallet add` in another terminal).
func (m *appModel) reloadIfChanged() {
        if m.cards == nil {
                return
        }
        ctx := context.Background()
        changed, err := m.cards.Changed(ctx)
        if err != nil {
                m.log.Debug("change check failed", zap.Error(err))
                return
        }
        if !changed {
                return
        }
        selectedID := m.selectedID()
        if _, err := m.cards.Load(ctx); err != nil {
                m.setError(err.Error())
        }
        var nf *wallet.NotFoundError
        if err := m.ctl.Sync(); errors.As(err, &nf) {
                m.setError("This card was removed elsewhere")
                m.modal = modalNone
                m.leaveForm()
        }
        m.selectByID(selectedID)
}

func (m *appModel) setStatus(s string) {
        m.status = s
        m.statusErr = false
        m.statusAt = time.Now()
}

func (m *appModel) setError(s string) {
        m.status = s
        m.statusErr = true
        m.statusAt = time.Now()
}

func (m *appModel) clearStatus() {
        m.status = ""
        m.statusErr = false
}

// reportErr shows err in the status line. Persistence errors read as warnings.
func (m *appModel) reportErr(err error) {
        if err == nil {
                return
        }
        var pe *store.PersistenceError
        if errors.As(err, &pe) {
                m.setError("Warning: " + pe.Error())
                return
        }
        m.setError(err.Error())
}

func (m appModel) View() string {
        var body string
        switch m.ctl.Screen() {
        case wallet.ScreenDetail:
                body = m.viewDetail()
        case wallet.ScreenAdd, wallet.ScreenEdit:
                body = m.viewForm()
        default:
                body = m.viewList()
        }

        switch m.modal {
        case modalConfirmDelete:
                body = m.placeCentered(m.viewConfirmDelete())
        case modalPickPhoto:
                body = m.placeCentered(m.viewPhotoPicker())
        case modalHelp:
                body = m.placeCentered(m.viewHelp())
        }

        footer := m.viewFooter()
        bodyH := m.height - lipgloss.Height(footer)
        if bodyH < 1 {
                bodyH = 1
        }
        body = lipgloss.NewStyle().MaxHeight(bodyH).Render(body)
        gap := bodyH - lipgloss.Height(body)
        if gap > 0 {
                body += strings.Repeat("\n", gap)
        }
        return body + "\n" + footer
}

func (m appModel) viewFooter() string {
        var bindings []key.Binding
        switch m.ctl.Screen() {
        case wallet.ScreenDetail:
                bindings = m.keys.detailHelp()
        case wallet.ScreenAdd:
                bindings = m.keys.formHelp(true)
        case wallet.ScreenEdit:
                bindings = m.keys.formHelp(false)
        default:
                bindings = m.keys.listHelp(m.ctl.Reordering())
        }
        line := m.help.ShortHelpView(bindings)
        if m.status == "" {
                return line
        }
        st := lipgloss.NewStyle().Foreground(colorSurfaceFg)
        if m.statusErr {
                st = lipgloss.NewStyle().Foreground(colorError)
        }
        return st.Render(m.status) + "\n" + line
}

func (m appModel) placeCentered(s string) string {
        return lipgloss.Place(m.width, max(1, m.height-2), lipgloss.Center, lipgloss.Center, s)
}
