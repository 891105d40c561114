// Package render turns a card number into a scannable QR code or Code 128 barcode,
// either as terminal text or as a PNG.
package render

import (
        "bytes"
        "errors"
        "fmt"
        "image/color"
        "image/png"
        "strings"
        "unicode/utf8"

        "wallet-cli/internal/model"

        "github.com/boombuler/barcode"
        "github.com/boombuler/barcode/code128"
        "github.com/skip2/go-qrcode"
)

var ErrEmptyValue = errors.New("nothing to encode")

type Glyphs int

const (
        GlyphsUnicode Glyphs = iota
        GlyphsASCII
)

// ParseGlyphs maps the config value to Glyphs; anything but "ascii" is unicode.
func ParseGlyphs(s string) Glyphs {
        if strings.EqualFold(strings.TrimSpace(s), "ascii") {
                return GlyphsASCII
        }
        return GlyphsUnicode
}

const (
        defaultBarHeight = 6
        barQuietZone     = 10
)

// Renderer holds text rendering options. The zero value renders unicode glyphs.
type Renderer struct {
        Glyphs    Glyphs
        BarHeight int
}

// Symbol is an encoded card value.
type Symbol struct {
        Value     string
        Symbology model.Symbology

        glyphs    Glyphs
        barHeight int
        // modules is the QR bitmap (quiet zone included) or a single barcode row.
        modules [][]bool
        qr      *qrcode.QRCode
        bar     barcode.Barcode
}

// Render encodes value with the package defaults.
func Render(value string, sym model.Symbology) (*Symbol, error) {
        return Renderer{}.Render(value, sym)
}

func (r Renderer) Render(value string, sym model.Symbology) (*Symbol, error) {
        if strings.TrimSpace(value) == "" {
                return nil, ErrEmptyValue
        }
        h := r.BarHeight
        if h <= 0 {
                h = defaultBarHeight
        }
        s := &Symbol{Value: value, Symbology: sym, glyphs: r.Glyphs, barHeight: h}
        switch sym {
        case model.SymbologyQRCode:
                q, err := qrcode.New(value, qrcode.Medium)
                if err != nil {
                        return nil, fmt.Errorf("encode qr code: %w", err)
                }
                s.qr = q
                s.modules = q.Bitmap()
        case model.SymbologyBarcode, "":
                s.Symbology = model.SymbologyBarcode
                bc, err := code128.Encode(value)
                if err != nil {
                        return nil, fmt.Errorf("encode barcode: %w", err)
                }
                s.bar = bc
                s.modules = [][]bool{barRow(bc)}
        default:
                return nil, fmt.Errorf("unknown symbology %q", sym)
        }
        return s, nil
}

func barRow(bc barcode.Barcode) []bool {
        b := bc.Bounds()
        row := make([]bool, 0, b.Dx())
        for x := b.Min.X; x < b.Max.X; x++ {
                row = append(row, isDark(bc.At(x, b.Min.Y)))
        }
        return row
}

func isDark(c color.Color) bool {
        g := color.GrayModel.Convert(c).(color.Gray)
        return g.Y < 128
}

// Lines renders the symbol as text. Dark modules are drawn with glyphs, light modules
// with spaces, so callers should print dark-on-light.
func (s *Symbol) Lines() []string {
        if s.Symbology == model.SymbologyQRCode {
                return s.qrLines()
        }
        return s.barLines()
}

func (s *Symbol) String() string { return strings.Join(s.Lines(), "\n") }

// Width is the width of Lines in terminal cells.
func (s *Symbol) Width() int {
        w := 0
        for _, l := range s.Lines() {
                if n := utf8.RuneCountInString(l); n > w {
                        w = n
                }
        }
        return w
}

func (s *Symbol) qrLines() []string {
        rows := s.modules
        var out []string
        if s.glyphs == GlyphsASCII {
                for _, row := range rows {
                        var b strings.Builder
                        for _, dark := range row {
                                if dark {
                                        b.WriteString("##")
                                } else {
                                        b.WriteString("  ")
                                }
                        }
                        out = append(out, b.String())
                }
                return out
        }
        // Two module rows per text row.
        for y := 0; y < len(rows); y += 2 {
                var b strings.Builder
                for x := range rows[y] {
                        top := rows[y][x]
                        bottom := y+1 < len(rows) && rows[y+1][x]
                        switch {
                        case top && bottom:
                                b.WriteRune('█')
                        case top:
                                b.WriteRune('▀')
                        case bottom:
                                b.WriteRune('▄')
                        default:
                                b.WriteByte(' ')
                        }
                }
                out = append(out, b.String())
        }
        return out
}

func (s *Symbol) barLines() []string {
        bar, space := "█", " "
        if s.glyphs == GlyphsASCII {
                bar = "|"
        }
        quiet := strings.Repeat(space, barQuietZone)
        var b strings.Builder
        b.WriteString(quiet)
        for _, dark := range s.modules[0] {
                if dark {
                        b.WriteString(bar)
                } else {
                        b.WriteString(space)
                }
        }
        b.WriteString(quiet)
        row := b.String()
        out := make([]string, 0, s.barHeight+1)
        for i := 0; i < s.barHeight; i++ {
                out = append(out, row)
        }
        return append(out, center(s.Value, utf8.RuneCountInString(row)))
}

func center(s string, width int) string {
        n := utf8.RuneCountInString(s)
        if n >= width {
                return s
        }
        left := (width - n) / 2
        return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

// PNG encodes the symbol as an image. QR codes are size x size; barcodes are size wide
// and size/3 tall, and size must be at least the barcode's module count.
func (s *Symbol) PNG(size int) ([]byte, error) {
        if size <= 0 {
                return nil, fmt.Errorf("invalid size %d", size)
        }
        if s.qr != nil {
                return s.qr.PNG(size)
        }
        h := size / 3
        if h < 1 {
                h = 1
        }
        scaled, err := barcode.Scale(s.bar, size, h)
        if err != nil {
                return nil, fmt.Errorf("scale barcode: %w", err)
        }
        var buf bytes.Buffer
        if err := png.Encode(&buf, scaled); err != nil {
                return nil, err
        }
        return buf.Bytes(), nil
}

// MinPNGWidth is the smallest PNG size the symbol can be drawn at.
func (s *Symbol) MinPNGWidth() int {
        if s.qr != nil {
                return len(s.modules)
        }
        return len(s.modules[0])
}
