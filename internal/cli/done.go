package cli

import (
	"fmt"

	"github.com/julianstephens/flourish/internal/constants"
	"github.com/julianstephens/flourish/internal/engine"
)

type DoneCmd struct {
	Number  int    `arg:"" help:"Number of the activity to complete (as shown by 'flourish today')."`
	Journal string `help:"Optional journal note to attach." short:"j"`
}

func (c *DoneCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	state, _, err := ensureToday(ctx)
	if err != nil {
		return err
	}

	if c.Number < 1 || c.Number > len(state.Activities) {
		return fmt.Errorf("activity number %d out of range (today has %d)", c.Number, len(state.Activities))
	}
	target := state.Activities[c.Number-1]

	state, entry, err := ctx.Engine.Complete(state, target.ID, c.Journal)
	if err != nil {
		return err
	}

	if err := ctx.Store.SaveDailyState(state); err != nil {
		return err
	}
	if err := recordCompletion(ctx, entry); err != nil {
		return err
	}

	fmt.Printf("✓ Completed: %s\n", entry.Title)

	ledger, err := ctx.Store.GetProgress()
	if err != nil {
		return err
	}
	p := engine.ProgressFor(ledger, entry.StrengthID)
	info, err := engine.ComputeProgress(p.Count, constants.LevelThresholds)
	if err != nil {
		return err
	}
	fmt.Printf("%s is now level %d (%d completions, %d to the next level)\n",
		strengthName(entry.StrengthID), info.Level, p.Count, info.NeededForNext)

	return nil
}
