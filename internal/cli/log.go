package cli

import (
	"fmt"
)

type LogCmd struct {
	Strength string `arg:"" help:"Strength name or id the activity practiced."`
	Journal  string `help:"What you did." short:"j"`
}

func (c *LogCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	strength, err := resolveStrength(c.Strength)
	if err != nil {
		return err
	}

	entry, err := ctx.Engine.LogManual(strength.ID, c.Journal)
	if err != nil {
		return err
	}

	if err := recordCompletion(ctx, entry); err != nil {
		return err
	}

	fmt.Printf("✓ Logged practice of %s\n", strength.Name)
	return nil
}
