package wallet

import (
        "testing"

        "wallet-cli/internal/model"

        "github.com/google/go-cmp/cmp"
)

func abc() []model.Card {
        return []model.Card{
                {ID: "a", StoreName: "A", CardNumber: "1", Type: model.SymbologyBarcode},
                {ID: "b", StoreName: "B", CardNumber: "2", Type: model.SymbologyBarcode},
                {ID: "c", StoreName: "C", CardNumber: "3", Type: model.SymbologyQRCode},
        }
}

func ids(cards []model.Card) []string {
        out := make([]string, 0, len(cards))
        for _, c := range cards {
                out = append(out, c.ID)
        }
        return out
}

func TestMove(t *testing.T) {
        t.Parallel()
        cases := []struct {
                name  string
                index int
                dir   Direction
                want  []string
                moved bool
        }{
                {"middle left", 1, Left, []string{"b", "a", "c"}, true},
                {"middle right", 1, Right, []string{"a", "c", "b"}, true},
                {"first right", 0, Right, []string{"b", "a", "c"}, true},
                {"last left", 2, Left, []string{"a", "c", "b"}, true},
                {"first left", 0, Left, []string{"a", "b", "c"}, false},
                {"last right", 2, Right, []string{"a", "b", "c"}, false},
                {"negative index", -1, Right, []string{"a", "b", "c"}, false},
                {"index past end", 3, Left, []string{"a", "b", "c"}, false},
        }
        for _, tc := range cases {
                tc := tc
                t.Run(tc.name, func(t *testing.T) {
                        t.Parallel()
                        in := abc()
                        got, ok := Move(in, tc.index, tc.dir)
                        if ok != tc.moved {
                                t.Fatalf("moved=%v, want %v", ok, tc.moved)
                        }
                        if diff := cmp.Diff(tc.want, ids(got)); diff != "" {
                                t.Fatalf("order mismatch (-want +got):\n%s", diff)
                        }
                        if diff := cmp.Diff([]string{"a", "b", "c"}, ids(in)); diff != "" {
                                t.Fatalf("input was mutated (-want +got):\n%s", diff)
                        }
                })
        }
}

func TestMove_KeepsCardFields(t *testing.T) {
        t.Parallel()
        got, ok := Move(abc(), 2, Left)
        if !ok {
                t.Fatalf("expected move")
        }
        if got[1].ID != "c" || got[1].Type != model.SymbologyQRCode || got[1].CardNumber != "3" {
                t.Fatalf("moved card changed: %+v", got[1])
        }
}

func TestMove_SingleCard(t *testing.T) {
        t.Parallel()
        one := abc()[:1]
        for _, dir := range []Direction{Left, Right} {
                if _, ok := Move(one, 0, dir); ok {
                        t.Fatalf("expected no move for single card (%s)", dir)
                }
        }
}

func TestParseDirection(t *testing.T) {
        t.Parallel()
        for in, want := range map[string]Direction{"left": Left, "L": Left, "up": Left, "right": Right, " Next ": Right} {
                got, ok := ParseDirection(in)
                if !ok || got != want {
                        t.Fatalf("ParseDirection(%q) = %v, %v", in, got, ok)
                }
        }
        if _, ok := ParseDirection("sideways"); ok {
                t.Fatalf("expected sideways to be rejected")
        }
}
