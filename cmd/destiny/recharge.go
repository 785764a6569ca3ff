package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/destiny-recharge/internal/cli"
	"github.com/Veraticus/destiny-recharge/internal/common"
	"github.com/Veraticus/destiny-recharge/internal/config"
	"github.com/Veraticus/destiny-recharge/internal/engine"
	"github.com/Veraticus/destiny-recharge/internal/model"
	"github.com/Veraticus/destiny-recharge/internal/notion"
	"github.com/Veraticus/destiny-recharge/internal/service"
	"github.com/Veraticus/destiny-recharge/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func runRecharge(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	day, err := resolveDay(args, time.Now())
	if err != nil {
		return err
	}

	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return common.NewUserError("configuration is incomplete", err)
	}
	dryRun := viper.GetBool("run.dry_run")

	store, err := buildStore(settings, dryRun)
	if err != nil {
		return err
	}

	journal, err := openJournal(ctx, settings)
	if err != nil {
		return err
	}
	if journal != nil {
		defer func() { _ = journal.Close() }()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Recharging for %s", day)))

	recharger := engine.NewRecharger(store, engine.Config{
		Pages:       settings.Pages,
		Concurrency: settings.Concurrency,
		DryRun:      dryRun,
	}, cli.NewProgressReporter(out), journal)

	report, err := recharger.Run(ctx, day)
	if err != nil {
		return fmt.Errorf("recharge failed: %w", err)
	}

	fmt.Fprintln(out, cli.RenderSummary(report))
	return nil
}

// resolveDay parses the optional day argument, defaulting to now's weekday.
func resolveDay(args []string, now time.Time) (time.Weekday, error) {
	if len(args) == 0 {
		return now.Weekday(), nil
	}
	day, err := model.ParseWeekday(args[0])
	if err != nil {
		return 0, common.NewUserError(
			fmt.Sprintf("%q is not a day of the week", args[0]),
			fmt.Errorf("%w: %w", common.ErrInvalidDay, err),
		)
	}
	return day, nil
}

// buildStore layers rate limiting, retries and, for dry runs, write
// suppression over the Notion client.
func buildStore(settings *config.Settings, dryRun bool) (notion.BlockStore, error) {
	client, err := notion.NewClient(settings.Notion)
	if err != nil {
		return nil, fmt.Errorf("failed to create notion client: %w", err)
	}

	var store notion.BlockStore = notion.NewRetryingClient(client, settings.RetryOptions())
	if dryRun {
		slog.Info("Dry run: pages will be read but not changed")
		store = notion.NewDryRunClient(store)
	}
	return store, nil
}

// openJournal opens the run journal, or returns nil when it is disabled.
func openJournal(ctx context.Context, settings *config.Settings) (service.Journal, error) {
	if !settings.JournalEnabled {
		return nil, nil
	}
	journal, err := initJournal(ctx, settings.JournalPath)
	if err != nil {
		return nil, err
	}
	return journal, nil
}

func initJournal(ctx context.Context, path string) (*storage.SQLiteStorage, error) {
	journal, err := storage.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run journal at %s: %w", path, err)
	}
	return journal, nil
}
