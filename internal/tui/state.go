package tui

import (
        "wallet-cli/internal/store"

        "go.uber.org/zap"
)

// restoreState reselects the card and search from the previous session. The app always
// starts on the list.
func (m *appModel) restoreState() {
        if m.store.Dir == "" {
                return
        }
        st, err := m.store.LoadTUIState()
        if err != nil {
                m.log.Debug("tui state unreadable", zap.Error(err))
                return
        }
        if st.Search != "" {
                m.search.SetValue(st.Search)
                m.ctl.SetSearch(st.Search)
        }
        m.selectByID(st.SelectedCardID)
}

func (m appModel) saveState() {
        if m.store.Dir == "" {
                return
        }
        st := &store.TUIState{
                SelectedCardID: m.selectedID(),
                Search:         m.ctl.Search(),
        }
        if err := m.store.SaveTUIState(st); err != nil {
                m.log.Warn("saving tui state failed", zap.Error(err))
        }
}
