package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/flourish/internal/suggest"
)

type GuideCmd struct {
	Mood string `arg:"" help:"How you're feeling, in your own words."`
	Add  int    `help:"Add suggestion N to today's activities." default:"0"`
}

func (c *GuideCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return err
	}

	// An unreachable provider is the same as having nothing to offer; the
	// guide never hard-fails on it.
	proposals, err := ctx.Suggester.SuggestForMood(context.Background(), c.Mood, profile)
	if err != nil && !errors.Is(err, suggest.ErrUnavailable) {
		return err
	}
	if len(proposals) == 0 {
		fmt.Println("No suggestions this time. Try describing your mood differently.")
		return nil
	}

	fmt.Printf("For %q, try:\n\n", strings.TrimSpace(c.Mood))
	for i, p := range proposals {
		fmt.Printf("%d. %s (%s)\n   %s\n", i+1, p.Title, strengthName(p.StrengthID), p.Description)
	}

	if c.Add == 0 {
		fmt.Println("\nUse --add N to put one of these on today's list.")
		return nil
	}
	if c.Add < 1 || c.Add > len(proposals) {
		return fmt.Errorf("suggestion number %d out of range", c.Add)
	}

	state, _, err := ensureToday(ctx)
	if err != nil {
		return err
	}
	state, err = ctx.Engine.AddCustom(state, proposals[c.Add-1])
	if err != nil {
		return err
	}
	if err := ctx.Store.SaveDailyState(state); err != nil {
		return err
	}

	fmt.Printf("\n✓ Added to today: %s\n", proposals[c.Add-1].Title)
	return nil
}
