package cli

import (
        "errors"
        "fmt"
        "strconv"

        "wallet-cli/internal/format"
        "wallet-cli/internal/model"
        "wallet-cli/internal/palette"
        "wallet-cli/internal/wallet"

        "github.com/spf13/cobra"
)

type cardList []model.Card

func (l cardList) Table() format.Table {
        t := format.Table{Headers: []string{"#", "ID", "STORE", "NUMBER", "TYPE", "COLOR"}}
        for i, c := range l {
                t.Rows = append(t.Rows, []string{strconv.Itoa(i + 1), c.ID, c.StoreName, c.CardNumber, c.Type.Label(), colorName(c)})
        }
        return t
}

type cardDetail model.Card

func (c cardDetail) Table() format.Table {
        return format.Table{
                Headers: []string{"FIELD", "VALUE"},
                Rows: [][]string{
                        {"id", c.ID},
                        {"store", c.StoreName},
                        {"number", c.CardNumber},
                        {"type", c.Type.Label()},
                        {"color", colorName(model.Card(c))},
                        {"logo", c.LogoIcon},
                },
        }
}

func colorName(c model.Card) string {
        if i, ok := palette.IndexOf(c.ColorFrom); ok {
                return palette.At(i).Name
        }
        return c.ColorFrom + " → " + c.ColorTo
}

func newListCmd(app *App) *cobra.Command {
        var search string
        cmd := &cobra.Command{
                Use:     "list",
                Aliases: []string{"ls"},
                Short:   "List cards in display order",
                Args:    cobra.NoArgs,
                RunE: func(cmd *cobra.Command, args []string) error {
                        cs, _, err := loadCards(cmd.Context(), app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        cards := wallet.Filter(cs.Cards(), search)
                        return writeOut(cmd, app, map[string]any{
                                "data": cardList(cards),
                                "meta": map[string]any{"total": cs.Len(), "seeded": cs.Seeded()},
                        })
                },
        }
        cmd.Flags().StringVar(&search, "search", "", "Only cards whose store name contains this text (case-insensitive)")
        return cmd
}

func newShowCmd(app *App) *cobra.Command {
        return &cobra.Command{
                Use:   "show <card-id|store-name>",
                Short: "Show one card",
                Args:  cobra.ExactArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        cs, _, err := loadCards(cmd.Context(), app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        c, _, err := resolveCard(cs, args[0])
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, app, map[string]any{"data": cardDetail(c)})
                },
        }
}

type cardFlags struct {
        store  string
        number string
        color  string
        typ    string
}

func (f *cardFlags) register(cmd *cobra.Command) {
        cmd.Flags().StringVar(&f.store, "store", "", "Store name")
        cmd.Flags().StringVar(&f.number, "number", "", "Card number")
        cmd.Flags().StringVar(&f.color, "color", "", "Palette color name or index (see `wallet palette`)")
        cmd.Flags().StringVar(&f.typ, "type", "", "Code type: barcode|qrcode")
}

// apply pushes the flags the user set into the controller's draft.
func (f *cardFlags) apply(cmd *cobra.Command, ctl *wallet.Controller) error {
        if cmd.Flags().Changed("store") {
                ctl.SetStoreName(f.store)
        }
        if cmd.Flags().Changed("number") {
                ctl.SetCardNumber(f.number)
        }
        if cmd.Flags().Changed("color") {
                i, err := paletteIndex(f.color)
                if err != nil {
                        return err
                }
                ctl.SetColor(i)
        }
        if cmd.Flags().Changed("type") {
                t, ok := model.ParseSymbology(f.typ)
                if !ok {
                        return fmt.Errorf("invalid --type %q (want barcode|qrcode)", f.typ)
                }
                ctl.SetType(t)
        }
        return nil
}

func paletteIndex(key string) (int, error) {
        e, ok := palette.Lookup(key)
        if !ok {
                return 0, fmt.Errorf("unknown color %q (run `wallet palette` to list colors)", key)
        }
        i, _ := palette.IndexOf(e.From)
        return i, nil
}

func newAddCmd(app *App) *cobra.Command {
        var f cardFlags
        var photo string
        cmd := &cobra.Command{
                Use:   "add",
                Short: "Add a card (first in the list)",
                Args:  cobra.NoArgs,
                RunE: func(cmd *cobra.Command, args []string) error {
                        cs, _, err := loadCards(cmd.Context(), app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        ctl := wallet.NewController(cs, app.logger())
                        if err := ctl.BeginAdd(); err != nil {
                                return writeErr(cmd, err)
                        }
                        if photo != "" {
                                if err := fillFromPhoto(cmd, app, ctl, photo); err != nil {
                                        return writeErr(cmd, err)
                                }
                        }
                        if err := f.apply(cmd, ctl); err != nil {
                                return writeErr(cmd, err)
                        }
                        if err := ctl.Submit(cmd.Context()); err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, app, map[string]any{"data": cardDetail(cs.Cards()[0])})
                },
        }
        f.register(cmd)
        cmd.Flags().StringVar(&photo, "photo", "", "Fill store and number from a card photo (flags still win)")
        return cmd
}

func newEditCmd(app *App) *cobra.Command {
        var f cardFlags
        cmd := &cobra.Command{
                Use:   "edit <card-id|store-name>",
                Short: "Change a card's store, number, color or type",
                Args:  cobra.ExactArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        cs, _, err := loadCards(cmd.Context(), app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        c, _, err := resolveCard(cs, args[0])
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        ctl := wallet.NewController(cs, app.logger())
                        if err := ctl.Open(c.ID); err != nil {
                                return writeErr(cmd, err)
                        }
                        if err := ctl.BeginEdit(); err != nil {
                                return writeErr(cmd, err)
                        }
                        if err := f.apply(cmd, ctl); err != nil {
                                return writeErr(cmd, err)
                        }
                        if err := ctl.Submit(cmd.Context()); err != nil {
                                return writeErr(cmd, err)
                        }
                        updated, _ := ctl.ActiveCard()
                        return writeOut(cmd, app, map[string]any{"data": cardDetail(updated)})
                },
        }
        f.register(cmd)
        return cmd
}

func newRmCmd(app *App) *cobra.Command {
        var yes bool
        cmd := &cobra.Command{
                Use:     "rm <card-id|store-name>",
                Aliases: []string{"delete"},
                Short:   "Delete a card",
                Args:    cobra.ExactArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        if !yes {
                                return writeErr(cmd, errors.New("refusing to delete without --yes"))
                        }
                        cs, _, err := loadCards(cmd.Context(), app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        c, _, err := resolveCard(cs, args[0])
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        ctl := wallet.NewController(cs, app.logger())
                        if err := ctl.Open(c.ID); err != nil {
                                return writeErr(cmd, err)
                        }
                        if err := ctl.Delete(cmd.Context(), true); err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": c.ID}})
                },
        }
        cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm deletion")
        return cmd
}

func newMoveCmd(app *App) *cobra.Command {
        var steps int
        cmd := &cobra.Command{
                Use:   "move <card-id|store-name> <left|right>",
                Short: "Move a card one position left or right",
                Args:  cobra.ExactArgs(2),
                RunE: func(cmd *cobra.Command, args []string) error {
                        dir, ok := wallet.ParseDirection(args[1])
                        if !ok {
                                return writeErr(cmd, fmt.Errorf("invalid direction %q (want left|right)", args[1]))
                        }
                        if steps < 1 {
                                return writeErr(cmd, errors.New("--steps must be at least 1"))
                        }
                        cs, _, err := loadCards(cmd.Context(), app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        c, idx, err := resolveCard(cs, args[0])
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        ctl := wallet.NewController(cs, app.logger())
                        ctl.ToggleReorder()
                        moved := 0
                        for ; moved < steps; moved++ {
                                ok, err := ctl.MoveCard(cmd.Context(), idx, dir)
                                if err != nil {
                                        return writeErr(cmd, err)
                                }
                                if !ok {
                                        break
                                }
                                if dir == wallet.Left {
                                        idx--
                                } else {
                                        idx++
                                }
                        }
                        return writeOut(cmd, app, map[string]any{
                                "data": cardList(cs.Cards()),
                                "meta": map[string]any{"id": c.ID, "moved": moved, "position": idx + 1},
                        })
                },
        }
        cmd.Flags().IntVar(&steps, "steps", 1, "How many positions to move (stops at the ends)")
        return cmd
}
