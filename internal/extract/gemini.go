package extract

import (
        "context"
        "errors"
        "strings"
        "time"

        "go.uber.org/zap"
        "google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

const prompt = `Analyze this image of a loyalty card. Extract the Store Name (e.g. Tesco, Costco, IKEA, HappyGo) and the Card Number or ID. If the store name is not printed, infer it from logos; if it cannot be determined, answer "` + UnknownStore + `". Return the card number without spaces.`

type generateFunc func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Gemini is the Extractor backed by the Gemini API.
type Gemini struct {
        model    string
        log      *zap.Logger
        generate generateFunc
}

type GeminiOptions struct {
        APIKey string
        Model  string
        Logger *zap.Logger
}

// NewGemini builds a client. An empty key yields ErrMissingCredential wrapped in an *Error.
func NewGemini(ctx context.Context, opts GeminiOptions) (*Gemini, error) {
        key := strings.TrimSpace(opts.APIKey)
        if key == "" {
                return nil, &Error{Reason: "missing credential", Err: ErrMissingCredential}
        }
        client, err := genai.NewClient(ctx, &genai.ClientConfig{
                APIKey:  key,
                Backend: genai.BackendGeminiAPI,
        })
        if err != nil {
                return nil, &Error{Reason: "create client", Err: err}
        }
        return newGemini(opts.Model, opts.Logger, client.Models.GenerateContent), nil
}

func newGemini(model string, log *zap.Logger, gen generateFunc) *Gemini {
        if strings.TrimSpace(model) == "" {
                model = DefaultModel
        }
        if log == nil {
                log = zap.NewNop()
        }
        return &Gemini{model: model, log: log.Named("extract"), generate: gen}
}

func (g *Gemini) Model() string { return g.model }

func responseSchema() *genai.Schema {
        return &genai.Schema{
                Type: genai.TypeObject,
                Properties: map[string]*genai.Schema{
                        "storeName":  {Type: genai.TypeString, Description: "Name of the store or brand."},
                        "cardNumber": {Type: genai.TypeString, Description: "Card number or member ID without spaces."},
                },
                Required: []string{"storeName", "cardNumber"},
        }
}

func (g *Gemini) Extract(ctx context.Context, image []byte, mimeType string) (Result, error) {
        if len(image) == 0 {
                return Result{}, &Error{Reason: "empty image"}
        }
        if mimeType == "" {
                mt, err := DetectMIME(image)
                if err != nil {
                        return Result{}, err
                }
                mimeType = mt
        }
        contents := []*genai.Content{
                genai.NewContentFromParts([]*genai.Part{
                        genai.NewPartFromBytes(image, mimeType),
                        genai.NewPartFromText(prompt),
                }, genai.RoleUser),
        }
        cfg := &genai.GenerateContentConfig{
                ResponseMIMEType: "application/json",
                ResponseSchema:   responseSchema(),
        }

        start := time.Now()
        resp, err := g.generate(ctx, g.model, contents, cfg)
        elapsed := time.Since(start)
        if err != nil {
                reason := "request failed"
                if errors.Is(err, context.DeadlineExceeded) {
                        reason = "timed out"
                } else if errors.Is(err, context.Canceled) {
                        reason = "canceled"
                }
                g.log.Warn("extraction failed", zap.String("model", g.model), zap.String("reason", reason), zap.Duration("elapsed", elapsed), zap.Error(err))
                return Result{}, &Error{Reason: reason, Err: err}
        }
        if resp == nil {
                g.log.Warn("extraction returned no response", zap.String("model", g.model))
                return Result{}, &Error{Reason: "empty response"}
        }
        res, err := ParseResult(resp.Text())
        if err != nil {
                g.log.Warn("extraction response rejected", zap.String("model", g.model), zap.Error(err))
                return Result{}, err
        }
        g.log.Info("extraction complete",
                zap.String("model", g.model),
                zap.String("mime", mimeType),
                zap.Int("bytes", len(image)),
                zap.Duration("elapsed", elapsed),
        )
        return res, nil
}
