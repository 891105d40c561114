package format

import (
        "bytes"
        "encoding/json"
        "strings"
        "testing"
)

type rows []string

func (r rows) Table() Table {
        t := Table{Headers: []string{"NAME"}}
        for _, s := range r {
                t.Rows = append(t.Rows, []string{s})
        }
        return t
}

func TestWrite_JSON(t *testing.T) {
        var buf bytes.Buffer
        if err := Write(&buf, map[string]any{"data": []string{"a"}}, "", false); err != nil {
                t.Fatalf("Write: %v", err)
        }
        var env map[string]any
        if err := json.Unmarshal(buf.Bytes(), &env); err != nil {
                t.Fatalf("unmarshal: %v", err)
        }
        if _, ok := env["data"]; !ok {
                t.Fatalf("expected data key, got %v", env)
        }
}

func TestWrite_TextTable(t *testing.T) {
        var buf bytes.Buffer
        if err := Write(&buf, map[string]any{"data": rows{"IKEA", "Costco"}}, "text", false); err != nil {
                t.Fatalf("Write: %v", err)
        }
        out := buf.String()
        for _, want := range []string{"NAME", "IKEA", "Costco"} {
                if !strings.Contains(out, want) {
                        t.Fatalf("expected %q in output:\n%s", want, out)
                }
        }
}

func TestWrite_TextFallsBackToJSON(t *testing.T) {
        var buf bytes.Buffer
        if err := Write(&buf, map[string]any{"data": map[string]any{"ok": true}}, "text", false); err != nil {
                t.Fatalf("Write: %v", err)
        }
        if !strings.Contains(buf.String(), "\"ok\": true") {
                t.Fatalf("expected indented JSON, got %q", buf.String())
        }
}

func TestWrite_UnknownFormat(t *testing.T) {
        if err := Write(&bytes.Buffer{}, 1, "edn", false); err == nil {
                t.Fatalf("expected error")
        }
}
