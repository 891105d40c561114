package store

import (
        "context"

        "wallet-cli/internal/model"

        "go.uber.org/zap"
)

// CardStore owns the ordered card collection and mirrors it to a slot on every mutation.
//
// Every mutation is a full replacement of the sequence; there is no patch operation.
// CardStore is not safe for concurrent use: callers serialize access (the TUI event loop
// or a single CLI command).
type CardStore struct {
        slot Slot
        name string
        log  *zap.Logger

        cards    []model.Card
        revision int64
        // seeded is true while the collection is the unsaved demo list.
        seeded bool

        subs    map[int]func([]model.Card)
        nextSub int
}

func NewCardStore(slot Slot, log *zap.Logger) *CardStore {
        if log == nil {
                log = zap.NewNop()
        }
        return &CardStore{
                slot: slot,
                name: CardsSlot,
                log:  log.Named("store"),
                subs: map[int]func([]model.Card){},
        }
}

// Load reads the persisted collection. A missing or structurally invalid slot yields the
// seed list, which is not written back until the next mutation. A read failure also
// yields the seed list and is reported as a *PersistenceError.
func (s *CardStore) Load(ctx context.Context) ([]model.Card, error) {
        v, ok, err := s.slot.ReadSlot(ctx, s.name)
        if err != nil {
                s.log.Warn("slot read failed; using seed cards", zap.Error(err))
                s.setSeed()
                return s.Cards(), &PersistenceError{Op: "read", Err: err}
        }
        if !ok {
                s.log.Info("no saved cards; using seed cards")
                s.setSeed()
                return s.Cards(), nil
        }
        cards, err := decodeCards(v.Data)
        if err != nil {
                s.log.Warn("saved cards are invalid; using seed cards", zap.Error(err), zap.Int64("revision", v.Revision))
                s.setSeed()
                s.revision = v.Revision
                return s.Cards(), nil
        }
        s.cards = cards
        s.revision = v.Revision
        s.seeded = false
        s.log.Debug("cards loaded", zap.Int("count", len(cards)), zap.Int64("revision", v.Revision))
        s.notify()
        return s.Cards(), nil
}

func (s *CardStore) setSeed() {
        s.cards = DefaultCards()
        s.seeded = true
        s.revision = 0
        s.notify()
}

// ReplaceAll sets the collection to cards and persists it synchronously.
//
// Invalid input (see ErrInvalidCards) changes nothing. A write failure returns a
// *PersistenceError after the in-memory collection has already been replaced.
func (s *CardStore) ReplaceAll(ctx context.Context, cards []model.Card) error {
        if err := validateCards(cards); err != nil {
                return err
        }
        next := make([]model.Card, len(cards))
        copy(next, cards)
        s.cards = next
        s.seeded = false
        s.notify()

        b, err := encodeCards(next)
        if err != nil {
                return &PersistenceError{Op: "encode", Err: err}
        }
        rev, err := s.slot.WriteSlot(ctx, s.name, b)
        if err != nil {
                s.log.Error("slot write failed", zap.Error(err), zap.Int("count", len(next)))
                return &PersistenceError{Op: "write", Err: err}
        }
        s.revision = rev
        s.log.Debug("cards saved", zap.Int("count", len(next)), zap.Int64("revision", rev))
        return nil
}

// Cards returns a copy of the current collection in display order.
func (s *CardStore) Cards() []model.Card {
        out := make([]model.Card, len(s.cards))
        copy(out, s.cards)
        return out
}

func (s *CardStore) Len() int { return len(s.cards) }

// Find returns the card with id and its position.
func (s *CardStore) Find(id string) (model.Card, int, bool) {
        for i, c := range s.cards {
                if c.ID == id {
                        return c, i, true
                }
        }
        return model.Card{}, -1, false
}

// Seeded reports whether the collection is the demo list that has not been saved yet.
func (s *CardStore) Seeded() bool { return s.seeded }

// Revision is the slot revision the in-memory collection corresponds to (0 = never saved).
func (s *CardStore) Revision() int64 { return s.revision }

// Changed reports whether another process wrote the slot since the last load or save.
func (s *CardStore) Changed(ctx context.Context) (bool, error) {
        rev, err := s.slot.SlotRevision(ctx, s.name)
        if err != nil {
                return false, err
        }
        return rev != s.revision, nil
}

// Subscribe registers fn to be called with the new collection after every change.
// The returned func removes the subscription.
func (s *CardStore) Subscribe(fn func([]model.Card)) func() {
        id := s.nextSub
        s.nextSub++
        s.subs[id] = fn
        return func() { delete(s.subs, id) }
}

func (s *CardStore) notify() {
        if len(s.subs) == 0 {
                return
        }
        snapshot := s.Cards()
        for _, fn := range s.subs {
                fn(snapshot)
        }
}
