package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/flourish/internal/backup"
	"github.com/julianstephens/flourish/internal/storage"
	"github.com/julianstephens/flourish/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storageReachable := false

	if err := checkStorageReachable(ctx); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
		storageReachable = true
	}

	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	if storageReachable {
		if err := checkDataConsistency(ctx); err != nil {
			fmt.Printf("❌ Data consistency: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Data consistency: OK\n")
		}
	} else {
		fmt.Printf("⊘ Data consistency: SKIPPED (storage not reachable)\n")
	}

	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	// For SQLite, also try a simple query
	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'flourish backup create'")
	}

	return nil
}

func checkDataConsistency(ctx *Context) error {
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return fmt.Errorf("failed to get profile: %w", err)
	}
	state, err := ctx.Store.GetDailyState()
	if err != nil {
		return fmt.Errorf("failed to get daily state: %w", err)
	}
	ledger, err := ctx.Store.GetProgress()
	if err != nil {
		return fmt.Errorf("failed to get progress: %w", err)
	}
	history, err := ctx.Store.GetHistory()
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	validator := validation.New()
	var conflicts []validation.Conflict
	conflicts = append(conflicts, validator.ValidateProfile(profile).Conflicts...)
	conflicts = append(conflicts, validator.ValidateDailyState(state).Conflicts...)
	conflicts = append(conflicts, validator.ValidateHistory(history).Conflicts...)
	conflicts = append(conflicts, validator.ValidateLedger(ledger, history).Conflicts...)

	if len(conflicts) > 0 {
		for _, c := range conflicts {
			fmt.Printf("   - %s\n", c.Message)
		}
		return fmt.Errorf("%d consistency conflict(s) found", len(conflicts))
	}

	return nil
}

func checkClockTimezone() error {
	now := time.Now()

	// Sanity range: completions and day keys assume a plausible wall clock.
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	_, offset := now.Zone()
	if offset == 0 && now.Location() == time.UTC {
		fmt.Printf("   Note: timezone is UTC\n")
	}

	return nil
}
