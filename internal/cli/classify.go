package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/flourish/internal/suggest"
)

type ClassifyCmd struct {
	Text string `arg:"" help:"Something you did, described in a sentence."`
	Log  bool   `help:"Also log the action as a completion for the classified strength."`
}

func (c *ClassifyCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	result, err := ctx.Suggester.ClassifyAction(context.Background(), c.Text)
	if errors.Is(err, suggest.ErrUnavailable) {
		fmt.Println("Couldn't work that one out right now. Try again, or describe the action differently.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("That sounds like %s.\n", strengthName(result.StrengthID))
	if result.Reasoning != "" {
		fmt.Printf("Why: %s\n", result.Reasoning)
	}

	if !c.Log {
		fmt.Println("\nUse --log to record it as a completion.")
		return nil
	}

	entry, err := ctx.Engine.LogManual(result.StrengthID, c.Text)
	if err != nil {
		return err
	}
	if err := recordCompletion(ctx, entry); err != nil {
		return err
	}

	fmt.Printf("✓ Logged practice of %s\n", strengthName(result.StrengthID))
	return nil
}
