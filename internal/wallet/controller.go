// Package wallet holds the UI-agnostic wallet logic: which screen is showing, the form
// draft, search, reorder mode, and photo extraction bookkeeping. Front ends (TUI, CLI)
// translate user input into Controller calls and render from its accessors.
package wallet

import (
        "context"
        "errors"
        "strings"

        "wallet-cli/internal/extract"
        "wallet-cli/internal/model"
        "wallet-cli/internal/palette"
        "wallet-cli/internal/store"

        "go.uber.org/zap"
)

type Screen int

const (
        ScreenList Screen = iota
        ScreenDetail
        ScreenAdd
        ScreenEdit
)

func (s Screen) String() string {
        switch s {
        case ScreenDetail:
                return "detail"
        case ScreenAdd:
                return "add"
        case ScreenEdit:
                return "edit"
        default:
                return "list"
        }
}

// Controller is not safe for concurrent use. The TUI only touches it from Update.
type Controller struct {
        cards *store.CardStore
        log   *zap.Logger

        screen   Screen
        activeID string
        draft    Draft

        search     string
        reordering bool

        // extractToken identifies the live extraction request; 0 means none.
        extractToken uint64
        lastToken    uint64
}

func NewController(cards *store.CardStore, log *zap.Logger) *Controller {
        if log == nil {
                log = zap.NewNop()
        }
        return &Controller{
                cards:  cards,
                log:    log.Named("wallet"),
                screen: ScreenList,
                draft:  newDraft(),
        }
}

func (c *Controller) Screen() Screen { return c.screen }
func (c *Controller) ActiveID() string { return c.activeID }
func (c *Controller) Draft() Draft { return c.draft }
func (c *Controller) Search() string { return c.search }
func (c *Controller) Reordering() bool { return c.reordering }
func (c *Controller) Processing() bool { return c.extractToken != 0 }
func (c *Controller) Store() *store.CardStore { return c.cards }

// ActiveCard resolves the card shown on Detail/Edit from the store by id, so edits are
// visible immediately.
func (c *Controller) ActiveCard() (model.Card, bool) {
        if c.activeID == "" {
                return model.Card{}, false
        }
        card, _, ok := c.cards.Find(c.activeID)
        return card, ok
}

// Sync reconciles the screen with the store after an external reload. A Detail or Edit
// screen whose card disappeared falls back to List with a *NotFoundError.
func (c *Controller) Sync() error {
        if c.screen != ScreenDetail && c.screen != ScreenEdit {
                return nil
        }
        if _, ok := c.ActiveCard(); ok {
                return nil
        }
        return c.lost()
}

func (c *Controller) lost() error {
        id := c.activeID
        c.log.Info("active card vanished", zap.String("id", id), zap.Stringer("screen", c.screen))
        c.toList()
        return &NotFoundError{ID: id}
}

func (c *Controller) toList() {
        c.screen = ScreenList
        c.activeID = ""
        c.draft = newDraft()
        c.extractToken = 0
}

// VisibleCards is what the grid shows. Reorder mode ignores the search term so that
// grid positions are store positions.
func (c *Controller) VisibleCards() []model.Card {
        all := c.cards.Cards()
        if c.reordering {
                return all
        }
        return Filter(all, c.search)
}

func (c *Controller) SetSearch(term string) { c.search = term }

// Open shows the card with id.
func (c *Controller) Open(id string) error {
        if c.screen != ScreenList {
                return ErrWrongScreen
        }
        if c.reordering {
                return ErrReorderMode
        }
        if _, _, ok := c.cards.Find(id); !ok {
                return &NotFoundError{ID: id}
        }
        c.screen = ScreenDetail
        c.activeID = id
        return nil
}

// Back returns from Detail to List and turns reorder mode off.
func (c *Controller) Back() {
        if c.screen == ScreenDetail {
                c.toList()
        }
        c.reordering = false
}

func (c *Controller) BeginAdd() error {
        if c.screen != ScreenList {
                return ErrWrongScreen
        }
        if c.reordering {
                return ErrReorderMode
        }
        c.screen = ScreenAdd
        c.draft = newDraft()
        return nil
}

// BeginEdit opens the form prefilled from the live active card.
func (c *Controller) BeginEdit() error {
        if c.screen != ScreenDetail {
                return ErrWrongScreen
        }
        card, ok := c.ActiveCard()
        if !ok {
                return c.lost()
        }
        c.screen = ScreenEdit
        c.draft = draftFromCard(card)
        return nil
}

// Cancel leaves the form without saving: Add goes to List, Edit back to Detail.
func (c *Controller) Cancel() {
        switch c.screen {
        case ScreenAdd:
                c.toList()
        case ScreenEdit:
                c.screen = ScreenDetail
                c.draft = newDraft()
                if _, ok := c.ActiveCard(); !ok {
                        c.toList()
                }
        }
}

// Submit saves the draft. An invalid draft returns a *ValidationError and nothing changes.
// A *store.PersistenceError still completes the transition; the caller shows it as a warning.
func (c *Controller) Submit(ctx context.Context) error {
        switch c.screen {
        case ScreenAdd:
                return c.submitAdd(ctx)
        case ScreenEdit:
                return c.submitEdit(ctx)
        default:
                return ErrWrongScreen
        }
}

func (c *Controller) submitAdd(ctx context.Context) error {
        if err := c.draft.Validate(); err != nil {
                return err
        }
        cards := c.cards.Cards()
        id, err := store.NewCardID(cards)
        if err != nil {
                return err
        }
        card := c.draft.apply(model.Card{ID: id, LogoIcon: model.DefaultLogoIcon})
        next := append([]model.Card{card}, cards...)
        err = c.commit(ctx, next)
        if err != nil && !isPersistence(err) {
                return err
        }
        c.log.Info("card added", zap.String("id", card.ID))
        c.toList()
        return err
}

func (c *Controller) submitEdit(ctx context.Context) error {
        if err := c.draft.Validate(); err != nil {
                return err
        }
        cards := c.cards.Cards()
        _, idx, ok := c.cards.Find(c.activeID)
        if !ok {
                return c.lost()
        }
        cards[idx] = c.draft.apply(cards[idx])
        err := c.commit(ctx, cards)
        if err != nil && !isPersistence(err) {
                return err
        }
        c.log.Info("card updated", zap.String("id", c.activeID))
        c.screen = ScreenDetail
        c.draft = newDraft()
        return err
}

// Delete removes the active card. Without confirmation it does nothing.
func (c *Controller) Delete(ctx context.Context, confirmed bool) error {
        if c.screen != ScreenDetail {
                return ErrWrongScreen
        }
        if !confirmed {
                return nil
        }
        cards := c.cards.Cards()
        _, idx, ok := c.cards.Find(c.activeID)
        if !ok {
                return c.lost()
        }
        id := c.activeID
        next := append(cards[:idx:idx], cards[idx+1:]...)
        err := c.commit(ctx, next)
        if err != nil && !isPersistence(err) {
                return err
        }
        c.log.Info("card deleted", zap.String("id", id))
        c.toList()
        return err
}

// ToggleReorder flips reorder mode on the list screen and reports the new state.
func (c *Controller) ToggleReorder() bool {
        if c.screen == ScreenList {
                c.reordering = !c.reordering
        }
        return c.reordering
}

// MoveCard moves the card at grid index one step. It reports whether anything moved;
// out-of-range moves are silent no-ops.
func (c *Controller) MoveCard(ctx context.Context, index int, dir Direction) (bool, error) {
        if c.screen != ScreenList || !c.reordering {
                return false, ErrWrongScreen
        }
        next, ok := Move(c.cards.Cards(), index, dir)
        if !ok {
                return false, nil
        }
        return true, c.commit(ctx, next)
}

func (c *Controller) commit(ctx context.Context, cards []model.Card) error {
        if ctx == nil {
                ctx = context.Background()
        }
        return c.cards.ReplaceAll(ctx, cards)
}

func isPersistence(err error) bool {
        var pe *store.PersistenceError
        return errors.As(err, &pe)
}

func (c *Controller) editing() bool {
        return c.screen == ScreenAdd || c.screen == ScreenEdit
}

func (c *Controller) SetStoreName(v string) {
        if c.editing() {
                c.draft.StoreName = v
        }
}

func (c *Controller) SetCardNumber(v string) {
        if c.editing() {
                c.draft.CardNumber = v
        }
}

// SetColor picks palette entry i (wrapping).
func (c *Controller) SetColor(i int) {
        if c.editing() {
                c.draft.Color = PaletteColor(i)
        }
}

// CycleColor steps through the palette. From a custom color, +1 lands on the first
// entry and -1 on the last.
func (c *Controller) CycleColor(delta int) {
        if !c.editing() || delta == 0 {
                return
        }
        cur := c.draft.Color
        if cur.Custom() {
                if delta > 0 {
                        c.draft.Color = PaletteColor(delta - 1)
                } else {
                        c.draft.Color = PaletteColor(palette.Len() + delta)
                }
                return
        }
        c.draft.Color = PaletteColor(cur.Index + delta)
}

func (c *Controller) SetType(t model.Symbology) {
        if c.editing() && t.Valid() {
                c.draft.Type = t
        }
}

func (c *Controller) ToggleType() {
        if !c.editing() {
                return
        }
        if c.draft.Type == model.SymbologyQRCode {
                c.draft.Type = model.SymbologyBarcode
        } else {
                c.draft.Type = model.SymbologyQRCode
        }
}

// BeginExtraction starts a photo analysis on the Add screen and returns the token the
// response must carry.
func (c *Controller) BeginExtraction() (uint64, error) {
        if c.screen != ScreenAdd {
                return 0, ErrWrongScreen
        }
        if c.extractToken != 0 {
                return 0, ErrExtractionBusy
        }
        c.lastToken++
        c.extractToken = c.lastToken
        return c.extractToken, nil
}

// CompleteExtraction applies an extraction outcome. Responses for a token that is no
// longer live, or that arrive after leaving Add, are discarded and reported as not applied.
// A failure clears processing, leaves the draft alone, and returns an *extract.Error.
func (c *Controller) CompleteExtraction(token uint64, res extract.Result, err error) (bool, error) {
        if token == 0 || token != c.extractToken || c.screen != ScreenAdd {
                c.log.Debug("stale extraction discarded", zap.Uint64("token", token))
                return false, nil
        }
        c.extractToken = 0
        if err != nil {
                return false, extract.Wrap("request failed", err)
        }
        number := strings.TrimSpace(res.CardNumber)
        if number == "" {
                return false, &extract.Error{Reason: "incomplete response"}
        }
        name := strings.TrimSpace(res.StoreName)
        if name == "" {
                name = extract.UnknownStore
        }
        c.draft.StoreName = name
        c.draft.CardNumber = number
        return true, nil
}
