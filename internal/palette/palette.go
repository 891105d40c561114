// Package palette holds the fixed color pairs offered when creating or editing a card.
package palette

import (
        "strconv"
        "strings"
)

type Entry struct {
        From string `json:"from"`
        To   string `json:"to"`
        Name string `json:"name"`
}

var entries = []Entry{
        // Nordic / slate.
        {From: "#475569", To: "#334155", Name: "Slate Blue"},
        {From: "#3F3F46", To: "#27272A", Name: "Zinc"},
        {From: "#334155", To: "#1E293B", Name: "Navy Slate"},
        {From: "#115E59", To: "#134E4A", Name: "Deep Teal"},
        {From: "#881337", To: "#4C0519", Name: "Dark Berry"},
        {From: "#713F12", To: "#451A03", Name: "Bronze"},
        {From: "#171717", To: "#000000", Name: "Midnight"},

        // Pantone colors of the year, 2015-2024.
        {From: "#FFBE98", To: "#FEA375", Name: "Peach Fuzz (2024)"},
        {From: "#BB2649", To: "#8F1E38", Name: "Viva Magenta (2023)"},
        {From: "#6667AB", To: "#4F5086", Name: "Very Peri (2022)"},
        {From: "#F5DF4D", To: "#D4C030", Name: "Illuminating (2021)"},
        {From: "#939597", To: "#707274", Name: "Ultimate Gray (2021)"},
        {From: "#0F4C81", To: "#0A365C", Name: "Classic Blue (2020)"},
        {From: "#FF6F61", To: "#E05043", Name: "Living Coral (2019)"},
        {From: "#5F4B8B", To: "#453666", Name: "Ultra Violet (2018)"},
        {From: "#88B04B", To: "#688936", Name: "Greenery (2017)"},
        {From: "#F7CAC9", To: "#E3A6A4", Name: "Rose Quartz (2016)"},
        {From: "#92A8D1", To: "#6C85B5", Name: "Serenity (2016)"},
        {From: "#955251", To: "#733D3C", Name: "Marsala (2015)"},
}

// Entries returns a copy of the palette in display order.
func Entries() []Entry {
        out := make([]Entry, len(entries))
        copy(out, entries)
        return out
}

func Len() int { return len(entries) }

// At returns the entry at i, wrapping around in both directions.
func At(i int) Entry {
        n := len(entries)
        i %= n
        if i < 0 {
                i += n
        }
        return entries[i]
}

// Default is the entry preselected for a new card.
func Default() Entry { return entries[0] }

// IndexOf returns the index of the entry whose From color matches colorFrom (case-insensitive).
func IndexOf(colorFrom string) (int, bool) {
        colorFrom = strings.TrimSpace(colorFrom)
        if colorFrom == "" {
                return 0, false
        }
        for i, e := range entries {
                if strings.EqualFold(e.From, colorFrom) {
                        return i, true
                }
        }
        return 0, false
}

// Lookup resolves a palette entry by exact or case-insensitive name, or by index ("3").
func Lookup(key string) (Entry, bool) {
        key = strings.TrimSpace(key)
        if key == "" {
                return Entry{}, false
        }
        for _, e := range entries {
                if strings.EqualFold(e.Name, key) {
                        return e, true
                }
        }
        // Allow the short name without the year suffix ("Greenery").
        for _, e := range entries {
                short := e.Name
                if i := strings.Index(short, " ("); i > 0 {
                        short = short[:i]
                }
                if strings.EqualFold(short, key) {
                        return e, true
                }
        }
        n, err := strconv.Atoi(key)
        if err != nil || n < 0 || n >= len(entries) {
                return Entry{}, false
        }
        return entries[n], true
}
