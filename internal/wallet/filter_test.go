package wallet

import (
        "testing"

        "wallet-cli/internal/store"

        "github.com/google/go-cmp/cmp"
)

func TestFilter(t *testing.T) {
        t.Parallel()
        seed := store.DefaultCards()
        cases := []struct {
                term string
                want []string
        }{
                {"Starbucks", []string{"Starbucks"}},
                {"star", []string{"Starbucks"}},
                {"STAR", []string{"Starbucks"}},
                {"xyz", []string{}},
                {"", []string{"HappyGo", "Carrefour", "Starbucks"}},
                {"r", []string{"Carrefour", "Starbucks"}},
        }
        for _, tc := range cases {
                got := Filter(seed, tc.term)
                names := []string{}
                for _, c := range got {
                        names = append(names, c.StoreName)
                }
                if diff := cmp.Diff(tc.want, names); diff != "" {
                        t.Fatalf("Filter(%q) mismatch (-want +got):\n%s", tc.term, diff)
                }
        }
}
