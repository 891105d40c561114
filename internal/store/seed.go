package store

import "wallet-cli/internal/model"

// DefaultCards is the demo wallet shown on first run, before anything has been saved.
func DefaultCards() []model.Card {
        return []model.Card{
                {
                        ID:         "happy-go-demo",
                        StoreName:  "HappyGo",
                        CardNumber: "1234-5678",
                        // HappyGo keeps its brand amber; it is not a palette color.
                        ColorFrom: "#D97706",
                        ColorTo:   "#B45309",
                        LogoIcon:  "fa-smile",
                        Type:      model.SymbologyBarcode,
                },
                {
                        ID:         "carrefour-demo",
                        StoreName:  "Carrefour",
                        CardNumber: "987654321",
                        ColorFrom:  "#475569",
                        ColorTo:    "#334155",
                        LogoIcon:   "fa-shopping-cart",
                        Type:       model.SymbologyBarcode,
                },
                {
                        ID:         "starbucks-demo",
                        StoreName:  "Starbucks",
                        CardNumber: "6000-1234",
                        ColorFrom:  "#115E59",
                        ColorTo:    "#134E4A",
                        LogoIcon:   "fa-coffee",
                        Type:       model.SymbologyQRCode,
                },
        }
}
