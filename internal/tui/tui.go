package tui

import (
        "context"
        "time"

        "wallet-cli/internal/extract"
        "wallet-cli/internal/store"

        tea "github.com/charmbracelet/bubbletea"
        "go.uber.org/zap"
)

type Options struct {
        Cards     *store.CardStore
        Store     store.Store
        Workspace string
        Config    *store.Config
        Logger    *zap.Logger
        // NewExtractor overrides how the photo extractor is built (tests).
        NewExtractor func(ctx context.Context) (extract.Extractor, error)
}

func Run(opts Options) error {
        applyThemePreference()
        applyColorProfilePreference()

        m := newAppModel(opts)
        final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
        if fm, ok := final.(appModel); ok {
                fm.saveState()
        }
        return err
}

func defaultExtractorFactory(cfg *store.Config, log *zap.Logger) func(ctx context.Context) (extract.Extractor, error) {
        return func(ctx context.Context) (extract.Extractor, error) {
                return extract.NewGemini(ctx, extract.GeminiOptions{
                        APIKey: cfg.APIKey(),
                        Model:  cfg.AI.Model,
                        Logger: log,
                })
        }
}

func aiTimeout(cfg *store.Config) time.Duration {
        if cfg == nil {
                return store.DefaultAITimeout
        }
        return cfg.AITimeout()
}
