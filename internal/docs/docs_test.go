package docs

import (
        "strings"
        "testing"
)

func TestTopics(t *testing.T) {
        topics := Topics()
        for _, want := range []string{"config", "keys", "scan", "storage"} {
                found := false
                for _, got := range topics {
                        if got == want {
                                found = true
                        }
                }
                if !found {
                        t.Fatalf("missing topic %q in %v", want, topics)
                }
        }
}

func TestGet(t *testing.T) {
        body, ok := Get(" KEYS ")
        if !ok || !strings.Contains(body, "#") {
                t.Fatalf("expected markdown for keys, got ok=%v", ok)
        }
        if _, ok := Get("nope"); ok {
                t.Fatalf("expected unknown topic to miss")
        }
        if _, ok := Get("../docs"); ok {
                t.Fatalf("expected path-like topic to miss")
        }
}
