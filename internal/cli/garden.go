package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/flourish/internal/constants"
	"github.com/julianstephens/flourish/internal/engine"
	"github.com/julianstephens/flourish/internal/models"
)

type GardenCmd struct {
	Strength string `arg:"" optional:"" help:"Show one strength in detail (name or id)."`
	All      bool   `help:"Include strengths you haven't practiced yet."`
}

func (c *GardenCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	ledger, err := ctx.Store.GetProgress()
	if err != nil {
		return err
	}

	if c.Strength != "" {
		strength, err := resolveStrength(c.Strength)
		if err != nil {
			return err
		}
		return c.showDetail(ctx, strength, ledger)
	}

	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return err
	}
	tops := make(map[int]bool, len(profile.TopStrengths))
	for _, id := range profile.TopStrengths {
		tops[id] = true
	}

	fmt.Println("Your strength garden:")
	fmt.Println()
	shown := 0
	for _, s := range models.AllStrengths() {
		p := engine.ProgressFor(ledger, s.ID)
		if p.Count == 0 && !c.All && !tops[s.ID] {
			continue
		}
		info, err := engine.ComputeProgress(p.Count, constants.LevelThresholds)
		if err != nil {
			return err
		}

		marker := " "
		if tops[s.ID] {
			marker = "*"
		}
		fmt.Printf("%s %-22s L%-2d %s %3d%%  (%d done)\n",
			marker, s.Name, info.Level, progressBar(info.PercentWithinLevel, 10), info.PercentWithinLevel, p.Count)
		shown++
	}

	if shown == 0 {
		fmt.Println("Nothing planted yet. Complete an activity with 'flourish done'.")
	} else {
		fmt.Println("\n* signature strength  (use --all to list every strength)")
	}
	return nil
}

func (c *GardenCmd) showDetail(ctx *Context, strength models.Strength, ledger []models.StrengthProgress) error {
	p := engine.ProgressFor(ledger, strength.ID)
	info, err := engine.ComputeProgress(p.Count, constants.LevelThresholds)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", strength.Name, strength.Virtue)
	fmt.Printf("%s\n\n", strength.Description)
	fmt.Printf("Level %d  %s %d%%\n", info.Level, progressBar(info.PercentWithinLevel, 20), info.PercentWithinLevel)
	fmt.Printf("%d completions, %d more to the next level\n", p.Count, info.NeededForNext)

	// A growth tip is a nicety; skip quietly when the provider is down.
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return err
	}
	if proposal, err := ctx.Suggester.GenerateForStrength(context.Background(), strength.ID, profile); err == nil {
		fmt.Printf("\nTry this: %s\n%s\n", proposal.Title, proposal.Description)
	}
	return nil
}

func progressBar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
