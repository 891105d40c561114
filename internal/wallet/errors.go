package wallet

import (
        "errors"
        "fmt"
        "strings"
)

var (
        // ErrReorderMode is returned for intents suppressed while reorder mode is on.
        ErrReorderMode = errors.New("finish reordering first")
        // ErrWrongScreen is returned for intents that do not apply to the current screen.
        ErrWrongScreen = errors.New("not available on this screen")
        // ErrExtractionBusy is returned when a photo is already being analyzed.
        ErrExtractionBusy = errors.New("already analyzing a photo")
)

// ValidationError means a required draft field is empty. The form stays open.
type ValidationError struct {
        Fields []string
}

func (e *ValidationError) Error() string {
        return fmt.Sprintf("required: %s", strings.Join(e.Fields, ", "))
}

// NotFoundError means an intent targeted a card id that is no longer in the store.
type NotFoundError struct {
        ID string
}

func (e *NotFoundError) Error() string {
        return fmt.Sprintf("card not found: %s", e.ID)
}
