package cli

import (
	"context"
	"fmt"
)

type ShuffleCmd struct{}

func (c *ShuffleCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	state, profile, err := ensureToday(ctx)
	if err != nil {
		return err
	}

	if state.Shuffled {
		fmt.Println("Today's activities were already reshuffled once; tomorrow brings a fresh draw.")
		return nil
	}

	state = ctx.Engine.Reshuffle(context.Background(), profile, state)
	if err := ctx.Store.SaveDailyState(state); err != nil {
		return err
	}

	fmt.Println("Drew a fresh set of activities:")
	for i, a := range state.Activities {
		fmt.Printf("%d. %-10s %s (%s)\n", i+1, activityStatus(a), a.Title, strengthName(a.StrengthID))
	}
	return nil
}
