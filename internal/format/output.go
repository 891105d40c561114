package format

import (
        "encoding/json"
        "fmt"
        "io"
)

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - text: a table for values that implement Tabular, indented JSON otherwise
func Write(w io.Writer, v any, format string, pretty bool) error {
        switch format {
        case "", "json":
                return WriteJSON(w, v, pretty)
        case "text", "table":
                if t, ok := tabular(v); ok {
                        return WriteTable(w, t.Table())
                }
                return WriteJSON(w, v, true)
        default:
                return fmt.Errorf("unknown format: %s", format)
        }
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
        var b []byte
        var err error
        if pretty {
                b, err = json.MarshalIndent(v, "", "  ")
        } else {
                b, err = json.Marshal(v)
        }
        if err != nil {
                return err
        }

        _, err = fmt.Fprintln(w, string(b))
        return err
}

// tabular unwraps the {"data": ...} envelope before checking for Tabular.
func tabular(v any) (Tabular, bool) {
        if t, ok := v.(Tabular); ok {
                return t, true
        }
        if m, ok := v.(map[string]any); ok {
                if t, ok := m["data"].(Tabular); ok {
                        return t, true
                }
        }
        return nil, false
}
