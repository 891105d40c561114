// Package extract reads a store name and card number off a photo of a loyalty card.
package extract

import (
        "bytes"
        "context"
        "encoding/json"
        "errors"
        "fmt"
        "io"
        "net/http"
        "os"
        "strings"
)

// MaxImageBytes caps how much of an image file is read and sent.
const MaxImageBytes = 20 << 20

// UnknownStore is what the model is told to answer when it cannot infer a store.
const UnknownStore = "Unknown Store"

// Result is the extracted pair. CardNumber never contains spaces.
type Result struct {
        StoreName  string `json:"storeName"`
        CardNumber string `json:"cardNumber"`
}

// Extractor turns image bytes into a Result.
type Extractor interface {
        Extract(ctx context.Context, image []byte, mimeType string) (Result, error)
}

// ErrMissingCredential means no API key is configured.
var ErrMissingCredential = errors.New("missing credential")

// Error is every failure the extraction path reports. Its message is the same
// regardless of cause; Reason and Err carry the detail for logs.
type Error struct {
        Reason string
        Err    error
}

func (e *Error) Error() string { return "could not analyze card" }

func (e *Error) Unwrap() error { return e.Err }

// Detail includes the reason and cause, for logs and verbose CLI output.
func (e *Error) Detail() string {
        if e.Err == nil {
                return e.Reason
        }
        return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

// Wrap converts err into an *Error, keeping an existing one as is.
func Wrap(reason string, err error) error {
        if err == nil {
                return nil
        }
        var e *Error
        if errors.As(err, &e) {
                return e
        }
        return &Error{Reason: reason, Err: err}
}

// ParseResult decodes the model's JSON answer. Both fields must be present strings;
// unknown fields are rejected. Spaces are removed from the card number.
func ParseResult(text string) (Result, error) {
        text = strings.TrimSpace(text)
        if text == "" {
                return Result{}, &Error{Reason: "empty response"}
        }
        var raw struct {
                StoreName  *string `json:"storeName"`
                CardNumber *string `json:"cardNumber"`
        }
        dec := json.NewDecoder(strings.NewReader(text))
        dec.DisallowUnknownFields()
        if err := dec.Decode(&raw); err != nil {
                return Result{}, &Error{Reason: "malformed response", Err: err}
        }
        if dec.More() {
                return Result{}, &Error{Reason: "malformed response", Err: errors.New("trailing data")}
        }
        if raw.StoreName == nil || raw.CardNumber == nil {
                return Result{}, &Error{Reason: "incomplete response", Err: errors.New("storeName and cardNumber are required")}
        }
        number := strings.Map(func(r rune) rune {
                if r == ' ' || r == '\t' || r == ' ' {
                        return -1
                }
                return r
        }, *raw.CardNumber)
        if number == "" {
                return Result{}, &Error{Reason: "incomplete response", Err: errors.New("empty cardNumber")}
        }
        store := strings.TrimSpace(*raw.StoreName)
        if store == "" {
                store = UnknownStore
        }
        return Result{StoreName: store, CardNumber: number}, nil
}

// DetectMIME sniffs the image type of b. Non-image content is rejected.
func DetectMIME(b []byte) (string, error) {
        if len(b) == 0 {
                return "", &Error{Reason: "empty image"}
        }
        mt := http.DetectContentType(b)
        if i := strings.IndexByte(mt, ';'); i >= 0 {
                mt = mt[:i]
        }
        if !strings.HasPrefix(mt, "image/") {
                return "", &Error{Reason: "not an image", Err: fmt.Errorf("detected %s", mt)}
        }
        return mt, nil
}

// ReadImage loads an image file, refusing files over MaxImageBytes.
func ReadImage(path string) ([]byte, string, error) {
        f, err := os.Open(path)
        if err != nil {
                return nil, "", &Error{Reason: "read image", Err: err}
        }
        defer f.Close()
        var buf bytes.Buffer
        n, err := io.Copy(&buf, io.LimitReader(f, MaxImageBytes+1))
        if err != nil {
                return nil, "", &Error{Reason: "read image", Err: err}
        }
        if n > MaxImageBytes {
                return nil, "", &Error{Reason: "image too large", Err: fmt.Errorf("over %d bytes", MaxImageBytes)}
        }
        mt, err := DetectMIME(buf.Bytes())
        if err != nil {
                return nil, "", err
        }
        return buf.Bytes(), mt, nil
}
