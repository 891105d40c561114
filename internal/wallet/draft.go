package wallet

import (
        "strings"

        "wallet-cli/internal/model"
        "wallet-cli/internal/palette"
)

// ColorChoice is the draft's color: a palette entry, or a pair kept from an existing card
// that matches no palette entry (Index == -1).
type ColorChoice struct {
        Index int
        From  string
        To    string
}

func PaletteColor(i int) ColorChoice {
        e := palette.At(i)
        n := palette.Len()
        i %= n
        if i < 0 {
                i += n
        }
        return ColorChoice{Index: i, From: e.From, To: e.To}
}

// colorForCard resolves a card's color pair against the palette by its From color.
// Unmatched pairs are kept as a custom choice so resubmitting does not recolor the card.
func colorForCard(c model.Card) ColorChoice {
        if i, ok := palette.IndexOf(c.ColorFrom); ok {
                return PaletteColor(i)
        }
        if strings.TrimSpace(c.ColorFrom) == "" {
                return PaletteColor(0)
        }
        to := c.ColorTo
        if strings.TrimSpace(to) == "" {
                to = c.ColorFrom
        }
        return ColorChoice{Index: -1, From: c.ColorFrom, To: to}
}

func (c ColorChoice) Custom() bool { return c.Index < 0 }

func (c ColorChoice) Name() string {
        if c.Custom() {
                return "Custom (" + c.From + ")"
        }
        return palette.At(c.Index).Name
}

// Draft holds in-progress form values for the add and edit screens.
type Draft struct {
        StoreName  string
        CardNumber string
        Color      ColorChoice
        Type       model.Symbology
}

func newDraft() Draft {
        return Draft{Color: PaletteColor(0), Type: model.SymbologyBarcode}
}

func draftFromCard(c model.Card) Draft {
        typ := c.Type
        if !typ.Valid() {
                typ = model.SymbologyBarcode
        }
        return Draft{
                StoreName:  c.StoreName,
                CardNumber: c.CardNumber,
                Color:      colorForCard(c),
                Type:       typ,
        }
}

// Validate reports the required fields that are blank.
func (d Draft) Validate() error {
        var missing []string
        if strings.TrimSpace(d.StoreName) == "" {
                missing = append(missing, "store name")
        }
        if strings.TrimSpace(d.CardNumber) == "" {
                missing = append(missing, "card number")
        }
        if len(missing) > 0 {
                return &ValidationError{Fields: missing}
        }
        return nil
}

// apply copies the draft's fields onto c, keeping id and logo.
func (d Draft) apply(c model.Card) model.Card {
        c.StoreName = strings.TrimSpace(d.StoreName)
        c.CardNumber = strings.TrimSpace(d.CardNumber)
        c.ColorFrom = d.Color.From
        c.ColorTo = d.Color.To
        c.Type = d.Type
        return c
}

// Preview is the card the draft would produce, without an id.
func (d Draft) Preview() model.Card { return d.apply(model.Card{}) }
