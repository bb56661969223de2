package cli

import "fmt"

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	state, _, err := ensureToday(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Activities for %s:\n\n", state.Date)
	for i, a := range state.Activities {
		fmt.Printf("%d. %-10s %s (%s)\n", i+1, activityStatus(a), a.Title, strengthName(a.StrengthID))
		if a.Description != "" {
			fmt.Printf("   %s\n", a.Description)
		}
		if a.Journal != "" {
			fmt.Printf("   Journal: %s\n", a.Journal)
		}
	}

	if !state.Shuffled {
		fmt.Println("\nNot feeling these? 'flourish shuffle' draws a fresh set (once per day).")
	}
	return nil
}
