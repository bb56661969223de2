package cli

import (
	"fmt"

	"github.com/julianstephens/flourish/internal/models"
)

type HistoryCmd struct {
	Limit    int    `help:"Show at most N entries, newest last." default:"20"`
	Strength string `help:"Only show entries for one strength (name or id)."`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	history, err := ctx.Store.GetHistory()
	if err != nil {
		return err
	}

	if c.Strength != "" {
		strength, err := resolveStrength(c.Strength)
		if err != nil {
			return err
		}
		filtered := history[:0]
		for _, a := range history {
			if a.StrengthID == strength.ID {
				filtered = append(filtered, a)
			}
		}
		history = filtered
	}

	if len(history) == 0 {
		fmt.Println("No completed activities yet.")
		return nil
	}

	if c.Limit > 0 && len(history) > c.Limit {
		history = history[len(history)-c.Limit:]
	}

	for _, a := range history {
		day := ""
		if a.CompletedAt != nil {
			day = a.CompletedAt.Local().Format("2006-01-02")
		}
		origin := ""
		if a.Origin == models.OriginManual {
			origin = " (logged)"
		}
		fmt.Printf("%s  %-22s %s%s\n", day, strengthName(a.StrengthID), a.Title, origin)
		if a.Journal != "" {
			fmt.Printf("            %s\n", a.Journal)
		}
	}
	return nil
}
