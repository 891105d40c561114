package store

import (
        "encoding/base32"
        "errors"
        "strings"

        "wallet-cli/internal/model"

        "github.com/google/uuid"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding)
// taken from the random bytes of a v4 UUID.
func newRandomID(prefix string) (string, error) {
        u, err := uuid.NewRandom()
        if err != nil {
                return "", err
        }
        enc := base32.StdEncoding.WithPadding(base32.NoPadding)
        suffix := strings.ToLower(enc.EncodeToString(u[:5]))
        return prefix + "-" + suffix, nil
}

// NewCardID returns an id not used by any card in cards.
func NewCardID(cards []model.Card) (string, error) {
        for attempt := 0; attempt < 8; attempt++ {
                id, err := newRandomID("card")
                if err != nil {
                        return "", err
                }
                if !idExists(cards, id) {
                        return id, nil
                }
        }
        return "", errors.New("could not allocate a unique card id")
}

func idExists(cards []model.Card, id string) bool {
        for _, c := range cards {
                if c.ID == id {
                        return true
                }
        }
        return false
}
