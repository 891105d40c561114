package tui

import (
        "context"
        "errors"
        "image"
        "image/color"
        "image/png"
        "os"
        "path/filepath"
        "strings"
        "testing"

        "wallet-cli/internal/extract"
        "wallet-cli/internal/model"
        "wallet-cli/internal/store"
        "wallet-cli/internal/wallet"

        tea "github.com/charmbracelet/bubbletea"
        "github.com/charmbracelet/lipgloss"
)

func testCards() []model.Card {
        return []model.Card{
                {ID: "a", StoreName: "Alpha", CardNumber: "111", ColorFrom: "#1e3a8a", ColorTo: "#3b82f6", Type: model.SymbologyBarcode},
                {ID: "b", StoreName: "Beta", CardNumber: "222", ColorFrom: "#166534", ColorTo: "#22c55e", Type: model.SymbologyQRCode},
                {ID: "c", StoreName: "Gamma", CardNumber: "333", ColorFrom: "#991b1b", ColorTo: "#ef4444", Type: model.SymbologyBarcode},
        }
}

type fakeExtractor struct {
        res extract.Result
        err error
}

func (f fakeExtractor) Extract(context.Context, []byte, string) (extract.Result, error) {
        return f.res, f.err
}

func newTestApp(t *testing.T, cards []model.Card) (appModel, *store.CardStore, store.Store) {
        t.Helper()
        ctx := context.Background()
        s := store.Store{Dir: t.TempDir()}
        cs := store.NewCardStore(s, nil)
        if _, err := cs.Load(ctx); err != nil {
                t.Fatalf("Load: %v", err)
        }
        if cards != nil {
                if err := cs.ReplaceAll(ctx, cards); err != nil {
                        t.Fatalf("ReplaceAll: %v", err)
                }
        }
        m := newAppModel(Options{
                Cards:     cs,
                Store:     s,
                Workspace: "test",
                Config:    &store.Config{},
                NewExtractor: func(context.Context) (extract.Extractor, error) {
                        return fakeExtractor{res: extract.Result{StoreName: "IKEA", CardNumber: "6275980012"}}, nil
                },
        })
        m.width = 120
        m.height = 40
        return m, cs, s
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func send(t *testing.T, m appModel, msgs ...tea.Msg) appModel {
        t.Helper()
        for _, msg := range msgs {
                next, _ := m.Update(msg)
                am, ok := next.(appModel)
                if !ok {
                        t.Fatalf("Update returned %T", next)
                }
                m = am
        }
        return m
}

func storeNames(cards []model.Card) string {
        var names []string
        for _, c := range cards {
                names = append(names, c.StoreName)
        }
        return strings.Join(names, ",")
}

func TestApp_OpenAndBack(t *testing.T) {
        m, _, _ := newTestApp(t, testCards())

        m = send(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})
        if m.ctl.Screen() != wallet.ScreenDetail || m.ctl.ActiveID() != "b" {
                t.Fatalf("expected detail of b, got %s %q", m.ctl.Screen(), m.ctl.ActiveID())
        }
        if v := m.View(); !strings.Contains(v, "Beta") || !strings.Contains(v, "222") {
                t.Fatalf("detail view missing card fields:\n%s", v)
        }

        m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
        if m.ctl.Screen() != wallet.ScreenList {
                t.Fatalf("expected list, got %s", m.ctl.Screen())
        }
        if m.selectedID() != "b" {
                t.Fatalf("expected selection to stay on b, got %q", m.selectedID())
        }
}

func TestApp_AddCardThroughForm(t *testing.T) {
        m, cs, _ := newTestApp(t, testCards())

        m = send(t, m, runes("a"))
        if m.ctl.Screen() != wallet.ScreenAdd {
                t.Fatalf("expected add screen, got %s", m.ctl.Screen())
        }
        m = send(t, m,
                runes("IKEA"),
                tea.KeyMsg{Type: tea.KeyTab},
                runes("999"),
                tea.KeyMsg{Type: tea.KeyTab},
                tea.KeyMsg{Type: tea.KeyRight}, // color -> palette[1]
                tea.KeyMsg{Type: tea.KeyTab},
                runes(" "), // type -> QR
                tea.KeyMsg{Type: tea.KeyCtrlS},
        )
        if m.ctl.Screen() != wallet.ScreenList {
                t.Fatalf("expected list after save, got %s (status %q)", m.ctl.Screen(), m.status)
        }
        got := cs.Cards()
        if len(got) != 4 {
                t.Fatalf("expected 4 cards, got %d", len(got))
        }
        first := got[0]
        if first.StoreName != "IKEA" || first.CardNumber != "999" || first.Type != model.SymbologyQRCode {
                t.Fatalf("unexpected new card: %+v", first)
        }
        if want := wallet.PaletteColor(1); first.ColorFrom != want.From {
                t.Fatalf("expected palette[1] color %s, got %s", want.From, first.ColorFrom)
        }
        if m.selected != 0 || m.status != "Card added" {
                t.Fatalf("expected new card selected with status, got selected=%d status=%q", m.selected, m.status)
        }
}

func TestApp_SubmitEmptyFormShowsValidation(t *testing.T) {
        m, cs, _ := newTestApp(t, testCards())

        m = send(t, m, runes("a"), tea.KeyMsg{Type: tea.KeyCtrlS})
        if m.ctl.Screen() != wallet.ScreenAdd {
                t.Fatalf("expected to stay on add, got %s", m.ctl.Screen())
        }
        if !m.statusErr || !strings.Contains(m.status, "store name") {
                t.Fatalf("expected validation status, got %q", m.status)
        }
        if cs.Len() != 3 {
                t.Fatalf("expected no mutation, got %d cards", cs.Len())
        }

        m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
        if m.ctl.Screen() != wallet.ScreenList {
                t.Fatalf("expected esc to cancel to list, got %s", m.ctl.Screen())
        }
}

func TestApp_EditKeepsPosition(t *testing.T) {
        m, cs, _ := newTestApp(t, testCards())

        m = send(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter}, runes("e"))
        if m.ctl.Screen() != wallet.ScreenEdit {
                t.Fatalf("expected edit, got %s", m.ctl.Screen())
        }
        if m.storeInput.Value() != "Beta" {
                t.Fatalf("expected store input prefilled, got %q", m.storeInput.Value())
        }
        m = send(t, m, runes("!"), tea.KeyMsg{Type: tea.KeyCtrlS})
        if m.ctl.Screen() != wallet.ScreenDetail {
                t.Fatalf("expected detail after save, got %s", m.ctl.Screen())
        }
        if got := storeNames(cs.Cards()); got != "Alpha,Beta!,Gamma" {
                t.Fatalf("unexpected order after edit: %s", got)
        }
}

func TestApp_ReorderMovesSelectedCard(t *testing.T) {
        m, cs, _ := newTestApp(t, testCards())

        m = send(t, m, runes("r"))
        if !m.ctl.Reordering() {
                t.Fatalf("expected reorder mode")
        }
        m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
        if got := storeNames(cs.Cards()); got != "Beta,Alpha,Gamma" {
                t.Fatalf("unexpected order: %s", got)
        }
        if m.selected != 1 || m.selectedID() != "a" {
                t.Fatalf("expected selection to follow the moved card, got %d %q", m.selected, m.selectedID())
        }

        // Moving off the front is a no-op.
        m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
        if got := storeNames(cs.Cards()); got != "Alpha,Beta,Gamma" {
                t.Fatalf("unexpected order: %s", got)
        }

        // Open and add are suppressed while reordering.
        m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("a"))
        if m.ctl.Screen() != wallet.ScreenList {
                t.Fatalf("expected list while reordering, got %s", m.ctl.Screen())
        }

        m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
        if m.ctl.Reordering() {
                t.Fatalf("expected esc to leave reorder mode")
        }
}

func TestApp_SearchFiltersGrid(t *testing.T) {
        m, _, _ := newTestApp(t, testCards())

        m = send(t, m, runes("/"), runes("AMM"), tea.KeyMsg{Type: tea.KeyEnter})
        if m.searching {
                t.Fatalf("expected enter to leave the search box")
        }
        vis := m.ctl.VisibleCards()
        if len(vis) != 1 || vis[0].ID != "c" {
                t.Fatalf("expected only Gamma, got %s", storeNames(vis))
        }
        if m.selectedID() != "c" {
                t.Fatalf("expected Gamma selected, got %q", m.selectedID())
        }

        m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
        if m.ctl.Search() != "" || len(m.ctl.VisibleCards()) != 3 {
                t.Fatalf("expected esc to clear search, got %q", m.ctl.Search())
        }
}

func TestApp_DeleteAsksForConfirmation(t *testing.T) {
        m, cs, _ := newTestApp(t, testCards())

        m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("d"))
        if m.modal != modalConfirmDelete {
                t.Fatalf("expected confirm modal, got %v", m.modal)
        }
        if !strings.Contains(m.View(), "Delete Alpha?") {
                t.Fatalf("expected confirm prompt in view")
        }

        // Enter on the default (cancel) button closes without deleting.
        m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
        if m.modal != modalNone || m.ctl.Screen() != wallet.ScreenDetail || cs.Len() != 3 {
                t.Fatalf("expected cancel, got modal=%v screen=%s len=%d", m.modal, m.ctl.Screen(), cs.Len())
        }

        m = send(t, m, runes("d"), runes("y"))
        if m.ctl.Screen() != wallet.ScreenList {
                t.Fatalf("expected list after delete, got %s", m.ctl.Screen())
        }
        if got := storeNames(cs.Cards()); got != "Beta,Gamma" {
                t.Fatalf("unexpected cards after delete: %s", got)
        }
}

func TestApp_ExtractionFillsForm(t *testing.T) {
        m, _, _ := newTestApp(t, testCards())
        m = send(t, m, runes("a"))

        token, err := m.ctl.BeginExtraction()
        if err != nil {
                t.Fatalf("BeginExtraction: %v", err)
        }
        m = send(t, m, extractDoneMsg{token: token, res: extract.Result{StoreName: "IKEA", CardNumber: "123"}})
        if m.storeInput.Value() != "IKEA" || m.numberInput.Value() != "123" {
                t.Fatalf("expected inputs filled, got %q %q", m.storeInput.Value(), m.numberInput.Value())
        }
        if m.ctl.Processing() {
                t.Fatalf("expected processing cleared")
        }
}

func TestApp_ExtractionFailureKeepsDraft(t *testing.T) {
        m, _, _ := newTestApp(t, testCards())
        m = send(t, m, runes("a"), runes("Mine"))

        token, err := m.ctl.BeginExtraction()
        if err != nil {
                t.Fatalf("BeginExtraction: %v", err)
        }
        m = send(t, m, extractDoneMsg{token: token, err: errors.New("boom")})
        if m.status != extractFailedMsg || !m.statusErr {
                t.Fatalf("expected failure status, got %q", m.status)
        }
        if m.ctl.Draft().StoreName != "Mine" || m.storeInput.Value() != "Mine" {
                t.Fatalf("expected draft untouched, got %q", m.ctl.Draft().StoreName)
        }
}

func TestApp_StaleExtractionIgnoredAfterCancel(t *testing.T) {
        m, cs, _ := newTestApp(t, testCards())
        m = send(t, m, runes("a"))

        token, err := m.ctl.BeginExtraction()
        if err != nil {
                t.Fatalf("BeginExtraction: %v", err)
        }
        m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
        m = send(t, m, extractDoneMsg{token: token, res: extract.Result{StoreName: "Late", CardNumber: "1"}})
        if m.ctl.Screen() != wallet.ScreenList || m.status != "" {
                t.Fatalf("expected late response to be ignored, got screen=%s status=%q", m.ctl.Screen(), m.status)
        }
        if cs.Len() != 3 {
                t.Fatalf("expected no mutation, got %d", cs.Len())
        }
}

func writeTestPNG(t *testing.T, dir string) string {
        t.Helper()
        img := image.NewGray(image.Rect(0, 0, 4, 4))
        img.Set(1, 1, color.White)
        p := filepath.Join(dir, "card.png")
        f, err := os.Create(p)
        if err != nil {
                t.Fatalf("create: %v", err)
        }
        defer f.Close()
        if err := png.Encode(f, img); err != nil {
                t.Fatalf("encode: %v", err)
        }
        return p
}

func TestApp_ExtractCmdUsesExtractor(t *testing.T) {
        m, _, _ := newTestApp(t, testCards())
        path := writeTestPNG(t, t.TempDir())

        msg, ok := m.extractCmd(7, path)().(extractDoneMsg)
        if !ok {
                t.Fatalf("expected extractDoneMsg")
        }
        if msg.err != nil {
                t.Fatalf("extract: %v", msg.err)
        }
        if msg.token != 7 || msg.res.StoreName != "IKEA" || msg.res.CardNumber != "6275980012" {
                t.Fatalf("unexpected message: %+v", msg)
        }

        msg = m.extractCmd(8, filepath.Join(t.TempDir(), "missing.png"))().(extractDoneMsg)
        if msg.err == nil || msg.token != 8 {
                t.Fatalf("expected read error for token 8, got %+v", msg)
        }
}

func TestApp_PhotoPickerOnlyOnAdd(t *testing.T) {
        m, _, _ := newTestApp(t, testCards())

        m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("e"), tea.KeyMsg{Type: tea.KeyCtrlP})
        if m.modal != modalNone {
                t.Fatalf("expected no picker on edit, got %v", m.modal)
        }
        m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc}, tea.KeyMsg{Type: tea.KeyEsc}, runes("a"), tea.KeyMsg{Type: tea.KeyCtrlP})
        if m.modal != modalPickPhoto {
                t.Fatalf("expected picker on add, got %v", m.modal)
        }
        m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
        if m.modal != modalNone || m.ctl.Screen() != wallet.ScreenAdd {
                t.Fatalf("expected esc to close only the picker, got modal=%v screen=%s", m.modal, m.ctl.Screen())
        }
}

func TestApp_CopyCardNumber(t *testing.T) {
        var copied string
        prev := copyToClipboard
        copyToClipboard = func(s string) error { copied = s; return nil }
        t.Cleanup(func() { copyToClipboard = prev })

        m, _, _ := newTestApp(t, testCards())
        m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
        next, cmd := m.Update(runes("c"))
        if cmd == nil {
                t.Fatalf("expected clipboard command")
        }
        m = send(t, next.(appModel), cmd())
        if copied != "111" || m.status != "Copied 111" {
                t.Fatalf("expected 111 copied, got %q status %q", copied, m.status)
        }
}

func TestApp_ReloadPicksUpExternalWrites(t *testing.T) {
        m, _, s := newTestApp(t, testCards())
        m = send(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})

        other := store.NewCardStore(s, nil)
        if _, err := other.Load(context.Background()); err != nil {
                t.Fatalf("Load: %v", err)
        }
        cards := other.Cards()
        if err := other.ReplaceAll(context.Background(), []model.Card{cards[0], cards[2]}); err != nil {
                t.Fatalf("ReplaceAll: %v", err)
        }

        m = send(t, m, reloadTickMsg{})
        if m.ctl.Screen() != wallet.ScreenList {
                t.Fatalf("expected list after active card vanished, got %s", m.ctl.Screen())
        }
        if got := storeNames(m.ctl.VisibleCards()); got != "Alpha,Gamma" {
                t.Fatalf("expected reloaded cards, got %s", got)
        }
        if !m.statusErr {
                t.Fatalf("expected a status about the removed card")
        }
}

func TestApp_StateRoundTrip(t *testing.T) {
        m, cs, s := newTestApp(t, testCards())
        m = send(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
        m.saveState()

        m2 := newAppModel(Options{Cards: cs, Store: s, Config: &store.Config{}})
        if m2.selectedID() != "c" {
                t.Fatalf("expected restored selection c, got %q", m2.selectedID())
        }
        if m2.ctl.Screen() != wallet.ScreenList {
                t.Fatalf("expected to start on list, got %s", m2.ctl.Screen())
        }
}

func TestRenderTile_FixedWidth(t *testing.T) {
        c := testCards()[0]
        c.StoreName = strings.Repeat("Very long store name ", 4)
        for _, st := range []tileState{tileNormal, tileSelected, tileMoving} {
                out := renderTile(c, tileWidth, st)
                if w := lipgloss.Width(out); w != tileWidth {
                        t.Fatalf("state %d: expected width %d, got %d", st, tileWidth, w)
                }
                if h := lipgloss.Height(out); h != tileHeight {
                        t.Fatalf("state %d: expected height %d, got %d", st, tileHeight, h)
                }
        }
}

func TestApp_ListViewShowsCards(t *testing.T) {
        m, _, _ := newTestApp(t, testCards())
        v := m.View()
        for _, name := range []string{"Alpha", "Beta", "Gamma", "3 cards"} {
                if !strings.Contains(v, name) {
                        t.Fatalf("expected %q in list view:\n%s", name, v)
                }
        }
}
