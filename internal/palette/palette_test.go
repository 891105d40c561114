package palette

import "testing"

func TestDefaultIsFirstEntry(t *testing.T) {
        if Default() != Entries()[0] {
                t.Fatalf("expected default to be the first entry")
        }
        if Default().Name != "Slate Blue" {
                t.Fatalf("unexpected default: %+v", Default())
        }
}

func TestIndexOf_MatchesFromColorCaseInsensitive(t *testing.T) {
        i, ok := IndexOf("#115e59")
        if !ok {
                t.Fatalf("expected match")
        }
        if At(i).Name != "Deep Teal" {
                t.Fatalf("expected Deep Teal, got %q", At(i).Name)
        }
        if _, ok := IndexOf("#D97706"); ok {
                t.Fatalf("expected HappyGo amber to be outside the palette")
        }
}

func TestAt_Wraps(t *testing.T) {
        if At(-1) != Entries()[Len()-1] {
                t.Fatalf("expected -1 to wrap to last entry")
        }
        if At(Len()) != Entries()[0] {
                t.Fatalf("expected Len() to wrap to first entry")
        }
}

func TestLookup(t *testing.T) {
        for _, key := range []string{"Greenery (2017)", "greenery", "15"} {
                e, ok := Lookup(key)
                if !ok || e.Name != "Greenery (2017)" {
                        t.Fatalf("Lookup(%q) = %+v, %v", key, e, ok)
                }
        }
        for _, key := range []string{"99", "-1", "9999999999999999999", "18446744073709551616"} {
                if _, ok := Lookup(key); ok {
                        t.Fatalf("expected out-of-range index %q to miss", key)
                }
        }
        if _, ok := Lookup("chartreuse"); ok {
                t.Fatalf("expected unknown name to miss")
        }
}

func TestEntriesReturnsCopy(t *testing.T) {
        xs := Entries()
        xs[0].Name = "changed"
        if Default().Name == "changed" {
                t.Fatalf("Entries must not expose the backing slice")
        }
}
