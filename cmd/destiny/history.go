package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/destiny-recharge/internal/cli"
	"github.com/Veraticus/destiny-recharge/internal/common"
	"github.com/Veraticus/destiny-recharge/internal/config"
	"github.com/Veraticus/destiny-recharge/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errJournalDisabled = errors.New("the run journal is disabled")

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs and the leftovers they dropped",
		Long: `List the most recent recharge runs recorded in the run journal, newest first.

Leftovers that could not be merged or filed in the ledger are listed under
the run that dropped them, with the reason.`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().IntP("limit", "n", storage.DefaultHistoryLimit, "number of runs to show")
	cmd.Flags().Duration("prune", 0, "delete runs older than this age before listing (e.g. 2160h)")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")
	prune, _ := cmd.Flags().GetDuration("prune")

	if !viper.GetBool(config.KeyJournalEnabled) {
		return common.NewUserError("nothing to show", errJournalDisabled)
	}
	if limit <= 0 {
		return common.NewUserError("--limit must be positive", common.ErrInvalidConfig)
	}

	journal, err := initJournal(ctx, config.ExpandPath(viper.GetString(config.KeyJournalPath)))
	if err != nil {
		return err
	}
	defer func() { _ = journal.Close() }()

	if prune > 0 {
		removed, err := journal.PruneRuns(ctx, time.Now().Add(-prune))
		if err != nil {
			return err
		}
		common.LogInfo("Pruned run journal", common.Fields{"removed": removed, "older_than": prune.String()})
	}

	runs, err := journal.RecentRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to read run journal: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderHistory(runs))
	return nil
}
