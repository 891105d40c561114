package tui

import (
        "wallet-cli/internal/extract"
)

type modalKind int

const (
        modalNone modalKind = iota
        modalConfirmDelete
        modalPickPhoto
        modalHelp
)

type confirmModalFocus int

const (
        confirmFocusConfirm confirmModalFocus = iota
        confirmFocusCancel
)

// formField is the focused row on the add/edit form.
type formField int

const (
        fieldStore formField = iota
        fieldNumber
        fieldColor
        fieldType
        fieldSave
        formFieldCount
)

type reloadTickMsg struct{}

// extractDoneMsg carries the token issued when the extraction started, so responses
// for abandoned requests can be recognized.
type extractDoneMsg struct {
        token uint64
        res   extract.Result
        err   error
}

type clipboardDoneMsg struct {
        value string
        err   error
}
