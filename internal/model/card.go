package model

import "strings"

// Symbology selects which code the renderer produces for a card.
type Symbology string

const (
        SymbologyBarcode Symbology = "barcode"
        SymbologyQRCode  Symbology = "qrcode"
)

func (s Symbology) Valid() bool {
        return s == SymbologyBarcode || s == SymbologyQRCode
}

func (s Symbology) Label() string {
        switch s {
        case SymbologyQRCode:
                return "QR Code"
        default:
                return "Barcode"
        }
}

// ParseSymbology accepts the persisted names plus a few human spellings ("qr", "bar").
func ParseSymbology(s string) (Symbology, bool) {
        switch strings.ToLower(strings.TrimSpace(s)) {
        case "barcode", "bar", "code128":
                return SymbologyBarcode, true
        case "qrcode", "qr", "qr-code":
                return SymbologyQRCode, true
        default:
                return "", false
        }
}

// DefaultLogoIcon is assigned to cards created through the add flow.
const DefaultLogoIcon = "fa-credit-card"

type Card struct {
        ID         string    `json:"id"`
        StoreName  string    `json:"storeName"`
        CardNumber string    `json:"cardNumber"`
        ColorFrom  string    `json:"colorFrom"`
        ColorTo    string    `json:"colorTo"`
        LogoIcon   string    `json:"logoIcon,omitempty"`
        Type       Symbology `json:"type"`
}
