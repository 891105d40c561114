package wallet

import (
        "strings"

        "wallet-cli/internal/model"
)

type Direction int

const (
        Left Direction = iota
        Right
)

func (d Direction) String() string {
        if d == Left {
                return "left"
        }
        return "right"
}

// ParseDirection accepts left/right plus the usual aliases (up/down, prev/next).
func ParseDirection(s string) (Direction, bool) {
        switch strings.ToLower(strings.TrimSpace(s)) {
        case "left", "l", "up", "prev", "back":
                return Left, true
        case "right", "r", "down", "next", "forward":
                return Right, true
        default:
                return Left, false
        }
}

// Move returns a copy of cards with the card at index moved one step in dir.
// It reports false and returns cards unchanged when index or the target fall outside the slice.
func Move(cards []model.Card, index int, dir Direction) ([]model.Card, bool) {
        target := index + 1
        if dir == Left {
                target = index - 1
        }
        if index < 0 || index >= len(cards) || target < 0 || target >= len(cards) {
                return cards, false
        }
        out := make([]model.Card, 0, len(cards))
        out = append(out, cards[:index]...)
        out = append(out, cards[index+1:]...)
        moved := cards[index]
        out = append(out[:target], append([]model.Card{moved}, out[target:]...)...)
        return out, true
}
