package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/julianstephens/flourish/internal/backup"
	"github.com/julianstephens/flourish/internal/engine"
	"github.com/julianstephens/flourish/internal/models"
	"github.com/julianstephens/flourish/internal/storage"
	"github.com/julianstephens/flourish/internal/suggest"
)

type Context struct {
	Store     storage.Provider
	Engine    *engine.Engine
	Suggester suggest.Provider
}

// PerformAutomaticBackup creates a best-effort backup of the storage file.
// Failures are reported but never block the command that triggered it.
func (ctx *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: automatic backup failed: %v\n", err)
	}
}

// ensureToday loads the persisted daily state and rolls it over when the
// calendar day has changed. The returned state is always for today.
func ensureToday(ctx *Context) (models.DailyState, models.Profile, error) {
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return models.DailyState{}, models.Profile{}, err
	}

	state, err := ctx.Store.GetDailyState()
	if err != nil {
		return models.DailyState{}, models.Profile{}, err
	}

	if state.Date == ctx.Engine.Today() {
		return state, profile, nil
	}

	history, err := ctx.Store.GetHistory()
	if err != nil {
		return models.DailyState{}, models.Profile{}, err
	}

	state = ctx.Engine.StartDay(context.Background(), profile, history)
	if err := ctx.Store.SaveDailyState(state); err != nil {
		return models.DailyState{}, models.Profile{}, err
	}

	return state, profile, nil
}

// recordCompletion appends a completed activity to history and bumps the
// ledger, in that order. History is the source of truth for counts.
func recordCompletion(ctx *Context, entry models.Activity) error {
	if err := ctx.Store.AppendHistory(entry); err != nil {
		return err
	}

	ledger, err := ctx.Store.GetProgress()
	if err != nil {
		return err
	}
	ledger, err = engine.RecordCompletion(ledger, entry.StrengthID)
	if err != nil {
		return err
	}

	return ctx.Store.SaveProgress(ledger)
}

// resolveStrength accepts a numeric id or a case-insensitive strength name.
func resolveStrength(arg string) (models.Strength, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		if s, ok := models.StrengthByID(id); ok {
			return s, nil
		}
		return models.Strength{}, fmt.Errorf("unknown strength id: %d", id)
	}

	for _, s := range models.AllStrengths() {
		if strings.EqualFold(s.Name, arg) {
			return s, nil
		}
	}
	return models.Strength{}, fmt.Errorf("unknown strength: %q (use 'flourish garden' to list strengths)", arg)
}

func strengthName(id int) string {
	if s, ok := models.StrengthByID(id); ok {
		return s.Name
	}
	return fmt.Sprintf("strength %d", id)
}

func activityStatus(a models.Activity) string {
	if a.Completed() {
		return "[done]"
	}
	return "[pending]"
}
