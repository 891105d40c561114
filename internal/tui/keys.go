package tui

import (
        "github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
        Up, Down, Left, Right key.Binding
        Open                  key.Binding
        Search                key.Binding
        Add                   key.Binding
        Reorder               key.Binding
        Back                  key.Binding
        Edit                  key.Binding
        Delete                key.Binding
        Copy                  key.Binding
        Help                  key.Binding
        Quit                  key.Binding

        NextField, PrevField key.Binding
        Toggle               key.Binding
        Photo                key.Binding
        Save                 key.Binding
        Cancel               key.Binding
}

func newKeyMap() keyMap {
        return keyMap{
                Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
                Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
                Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
                Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
                Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
                Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
                Add:     key.NewBinding(key.WithKeys("a", "+"), key.WithHelp("a", "add")),
                Reorder: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reorder")),
                Back:    key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
                Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
                Delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
                Copy:    key.NewBinding(key.WithKeys("c", "y"), key.WithHelp("c", "copy number")),
                Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
                Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

                NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
                PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
                Toggle:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle")),
                Photo:     key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "fill from photo")),
                Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
                Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
        }
}

func (k keyMap) listHelp(reordering bool) []key.Binding {
        if reordering {
                moveLeft := key.NewBinding(key.WithKeys("left"), key.WithHelp("←/h", "move left"))
                moveRight := key.NewBinding(key.WithKeys("right"), key.WithHelp("→/l", "move right"))
                done := key.NewBinding(key.WithKeys("r"), key.WithHelp("r/esc", "done"))
                return []key.Binding{moveLeft, moveRight, k.Up, k.Down, done}
        }
        return []key.Binding{k.Open, k.Search, k.Add, k.Reorder, k.Help, k.Quit}
}

func (k keyMap) detailHelp() []key.Binding {
        return []key.Binding{k.Back, k.Edit, k.Delete, k.Copy, k.Help}
}

func (k keyMap) formHelp(adding bool) []key.Binding {
        out := []key.Binding{k.NextField, k.Save, k.Cancel}
        if adding {
                out = append(out, k.Photo)
        }
        return out
}
