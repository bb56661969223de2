package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/flourish/internal/cli"
	"github.com/julianstephens/flourish/internal/engine"
	"github.com/julianstephens/flourish/internal/storage"
	"github.com/julianstephens/flourish/internal/suggest"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path." type:"path" default:"~/.config/flourish/flourish.db"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize flourish storage."`
	Onboard  cli.OnboardCmd  `cmd:"" help:"Set up your profile and take the strengths assessment."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Today    cli.TodayCmd    `cmd:"" help:"Show today's activities."`
	Shuffle  cli.ShuffleCmd  `cmd:"" help:"Draw a fresh set of activities (once per day)."`
	Done     cli.DoneCmd     `cmd:"" help:"Complete one of today's activities."`
	Log      cli.LogCmd      `cmd:"" help:"Log a strength practice done outside the daily list."`
	Guide    cli.GuideCmd    `cmd:"" help:"Get strength-based suggestions for how you're feeling."`
	Classify cli.ClassifyCmd `cmd:"" help:"Find which strength an action demonstrates."`
	Garden   cli.GardenCmd   `cmd:"" help:"Show your strength levels and progress."`
	History  cli.HistoryCmd  `cmd:"" help:"Show completed activities."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Check storage health and data consistency."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup of the storage file."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore storage from a backup."`
	} `cmd:"" help:"Manage backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("flourish"),
		kong.Description("Character strengths companion: daily micro-activities, progress, and guidance"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	cfg, err := suggest.ConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	suggester := suggest.NewGeminiClient(cfg)

	appCtx := &cli.Context{
		Store:     store,
		Engine:    engine.New(suggester),
		Suggester: suggester,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
