package store

import (
        "encoding/json"
        "errors"
        "os"
        "path/filepath"
        "strings"
)

const tuiStateFileName = "tui_state.json"

// TUIState stores small, user-facing UI state for restoring the grid selection on relaunch.
//
// It lives inside the workspace directory and is best effort: callers tolerate missing or
// invalid data. The screen itself is never restored; the wallet always opens on the list.
type TUIState struct {
        Version int `json:"version"`

        SelectedCardID string `json:"selectedCardId,omitempty"`
        Search         string `json:"search,omitempty"`
}

func (s Store) tuiStatePath() string {
        return filepath.Join(s.Dir, tuiStateFileName)
}

func (s Store) LoadTUIState() (*TUIState, error) {
        if strings.TrimSpace(s.Dir) == "" {
                return &TUIState{Version: 1}, nil
        }
        b, err := os.ReadFile(s.tuiStatePath())
        if err != nil {
                if errors.Is(err, os.ErrNotExist) {
                        return &TUIState{Version: 1}, nil
                }
                return nil, err
        }
        var st TUIState
        if err := json.Unmarshal(b, &st); err != nil {
                // Best-effort; if corrupted, treat as missing.
                return &TUIState{Version: 1}, nil
        }
        if st.Version == 0 {
                st.Version = 1
        }
        return &st, nil
}

func (s Store) SaveTUIState(st *TUIState) error {
        if st == nil {
                return nil
        }
        if strings.TrimSpace(s.Dir) == "" {
                return nil
        }
        if err := s.Ensure(); err != nil {
                return err
        }
        if st.Version == 0 {
                st.Version = 1
        }
        b, err := json.MarshalIndent(st, "", "  ")
        if err != nil {
                return err
        }
        return atomicWriteFile(s.Dir, tuiStateFileName+".*.tmp", s.tuiStatePath(), b, 0o644)
}
