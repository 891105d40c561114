package extract

import (
        "bytes"
        "context"
        "errors"
        "image"
        "image/png"
        "os"
        "path/filepath"
        "testing"

        "go.uber.org/goleak"
        "google.golang.org/genai"
)

func TestMain(m *testing.M) {
        goleak.VerifyTestMain(m)
}

func pngBytes(t *testing.T) []byte {
        t.Helper()
        var buf bytes.Buffer
        if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4))); err != nil {
                t.Fatalf("encode png: %v", err)
        }
        return buf.Bytes()
}

func TestParseResult(t *testing.T) {
        got, err := ParseResult(`{"storeName":"IKEA","cardNumber":"6275 9800 1234"}`)
        if err != nil {
                t.Fatalf("ParseResult: %v", err)
        }
        if got.StoreName != "IKEA" || got.CardNumber != "627598001234" {
                t.Fatalf("unexpected result: %+v", got)
        }

        got, err = ParseResult(`{"storeName":"  ","cardNumber":"42"}`)
        if err != nil {
                t.Fatalf("ParseResult blank store: %v", err)
        }
        if got.StoreName != UnknownStore {
                t.Fatalf("expected %q, got %q", UnknownStore, got.StoreName)
        }
}

func TestParseResultRejects(t *testing.T) {
        cases := map[string]string{
                "empty":         "",
                "not json":      "IKEA 123",
                "extra field":   `{"storeName":"IKEA","cardNumber":"1","logo":"x"}`,
                "missing store": `{"cardNumber":"1"}`,
                "missing card":  `{"storeName":"IKEA"}`,
                "number type":   `{"storeName":"IKEA","cardNumber":123}`,
                "blank card":    `{"storeName":"IKEA","cardNumber":"   "}`,
                "trailing":      `{"storeName":"IKEA","cardNumber":"1"} {}`,
        }
        for name, in := range cases {
                t.Run(name, func(t *testing.T) {
                        _, err := ParseResult(in)
                        var e *Error
                        if !errors.As(err, &e) {
                                t.Fatalf("expected *Error, got %v", err)
                        }
                        if e.Error() != "could not analyze card" {
                                t.Fatalf("unexpected message %q", e.Error())
                        }
                })
        }
}

func TestDetectMIME(t *testing.T) {
        mt, err := DetectMIME(pngBytes(t))
        if err != nil {
                t.Fatalf("DetectMIME: %v", err)
        }
        if mt != "image/png" {
                t.Fatalf("expected image/png, got %q", mt)
        }
        if _, err := DetectMIME([]byte("hello, not an image")); err == nil {
                t.Fatalf("expected error for text input")
        }
        if _, err := DetectMIME(nil); err == nil {
                t.Fatalf("expected error for empty input")
        }
}

func TestReadImage(t *testing.T) {
        dir := t.TempDir()
        p := filepath.Join(dir, "card.png")
        if err := os.WriteFile(p, pngBytes(t), 0o644); err != nil {
                t.Fatalf("write: %v", err)
        }
        b, mt, err := ReadImage(p)
        if err != nil {
                t.Fatalf("ReadImage: %v", err)
        }
        if mt != "image/png" || len(b) == 0 {
                t.Fatalf("unexpected result: %q %d bytes", mt, len(b))
        }

        txt := filepath.Join(dir, "notes.txt")
        if err := os.WriteFile(txt, []byte("just text"), 0o644); err != nil {
                t.Fatalf("write: %v", err)
        }
        if _, _, err := ReadImage(txt); err == nil {
                t.Fatalf("expected error for non-image file")
        }
        if _, _, err := ReadImage(filepath.Join(dir, "missing.png")); err == nil {
                t.Fatalf("expected error for missing file")
        }
}

func textResponse(s string) *genai.GenerateContentResponse {
        return &genai.GenerateContentResponse{
                Candidates: []*genai.Candidate{{
                        Content: &genai.Content{Parts: []*genai.Part{{Text: s}}},
                }},
        }
}

func TestGeminiExtract(t *testing.T) {
        img := pngBytes(t)
        var gotModel string
        var gotCfg *genai.GenerateContentConfig
        var gotParts []*genai.Part
        g := newGemini("", nil, func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
                gotModel = model
                gotCfg = cfg
                if len(contents) == 1 {
                        gotParts = contents[0].Parts
                }
                return textResponse(`{"storeName":"Costco","cardNumber":"111 222 333"}`), nil
        })

        res, err := g.Extract(context.Background(), img, "")
        if err != nil {
                t.Fatalf("Extract: %v", err)
        }
        if res.StoreName != "Costco" || res.CardNumber != "111222333" {
                t.Fatalf("unexpected result: %+v", res)
        }
        if gotModel != DefaultModel {
                t.Fatalf("expected model %q, got %q", DefaultModel, gotModel)
        }
        if gotCfg == nil || gotCfg.ResponseMIMEType != "application/json" || gotCfg.ResponseSchema == nil {
                t.Fatalf("expected JSON response config, got %+v", gotCfg)
        }
        if len(gotCfg.ResponseSchema.Required) != 2 {
                t.Fatalf("expected two required fields, got %v", gotCfg.ResponseSchema.Required)
        }
        if len(gotParts) != 2 || gotParts[0].InlineData == nil || gotParts[0].InlineData.MIMEType != "image/png" {
                t.Fatalf("expected inline png part followed by prompt")
        }
        if gotParts[1].Text == "" {
                t.Fatalf("expected prompt text part")
        }
}

func TestGeminiExtractFailures(t *testing.T) {
        img := pngBytes(t)

        g := newGemini("m", nil, func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
                return nil, context.DeadlineExceeded
        })
        _, err := g.Extract(context.Background(), img, "image/png")
        var e *Error
        if !errors.As(err, &e) || e.Reason != "timed out" {
                t.Fatalf("expected timed out *Error, got %v", err)
        }
        if !errors.Is(err, context.DeadlineExceeded) {
                t.Fatalf("expected cause to be preserved")
        }

        g = newGemini("m", nil, func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
                return textResponse(`not json`), nil
        })
        if _, err := g.Extract(context.Background(), img, "image/png"); !errors.As(err, &e) {
                t.Fatalf("expected *Error for malformed response, got %v", err)
        }

        if _, err := g.Extract(context.Background(), nil, "image/png"); !errors.As(err, &e) {
                t.Fatalf("expected *Error for empty image, got %v", err)
        }
}

func TestNewGeminiMissingKey(t *testing.T) {
        _, err := NewGemini(context.Background(), GeminiOptions{APIKey: "  "})
        if !errors.Is(err, ErrMissingCredential) {
                t.Fatalf("expected ErrMissingCredential, got %v", err)
        }
}

func TestWrapKeepsExistingError(t *testing.T) {
        orig := &Error{Reason: "timed out"}
        if got := Wrap("other", orig); got != error(orig) {
                t.Fatalf("expected original error, got %v", got)
        }
        if Wrap("x", nil) != nil {
                t.Fatalf("expected nil")
        }
        var e *Error
        if !errors.As(Wrap("request failed", errors.New("boom")), &e) || e.Reason != "request failed" {
                t.Fatalf("expected wrapped *Error")
        }
}
