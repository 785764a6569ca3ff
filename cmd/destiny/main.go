package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/destiny-recharge/internal/cli"
	"github.com/Veraticus/destiny-recharge/internal/common"
	"github.com/Veraticus/destiny-recharge/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	envFile string
	version = "dev"
	rootCmd = newRootCmd()
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "destiny [day]",
		Short: "⚡ Recharge the daily checklist and settle the destiny debt",
		Long: `destiny rotates the checklist on the today page to the template for the
given day (today if omitted) and folds every unfinished quantity item into the
destiny debt ledger, adding to existing entries or filing new ones under the
section that lists them.

Journey before destination.`,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: initConfig,
		RunE:              runRecharge,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/destiny/config.yaml)")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	cmd.PersistentFlags().Bool("no-journal", false, "do not open or write the run journal")

	cmd.Flags().Bool("dry-run", false, "read the pages and report changes without writing them")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", cmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("run.dry_run", cmd.Flags().Lookup("dry-run"))

	cmd.AddCommand(historyCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

func main() {
	interrupts := cli.NewInterruptHandler(os.Stderr)
	ctx := interrupts.HandleInterrupts(context.Background(), !isDryRun(os.Args[1:]))

	err := rootCmd.ExecuteContext(ctx)
	interrupts.Stop() // Always cleanup

	if err != nil {
		if !interrupts.WasInterrupted() {
			common.LogError(err, "Run failed", common.Fields{"command": strings.Join(os.Args[1:], " ")})
		}
		fmt.Fprintln(os.Stderr, cli.FormatError(errorMessage(err)))
		os.Exit(1)
	}
}

// errorMessage prefers the friendly text of a user error.
func errorMessage(err error) string {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return userErr.Error()
	}
	return err.Error()
}

func isDryRun(args []string) bool {
	for _, arg := range args {
		if arg == "--dry-run" || arg == "--dry-run=true" {
			return true
		}
	}
	return false
}

func initConfig(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(envFile, cmd.Flags().Changed("env-file")); err != nil {
		return err
	}

	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(filepath.Join(home, ".config", "destiny"))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("DESTINY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())

	if noJournal, _ := cmd.Flags().GetBool("no-journal"); noJournal {
		viper.Set(config.KeyJournalEnabled, false)
	}

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setupLogging() error {
	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return err
	}
	return common.SetupLogger(os.Stderr, level, viper.GetString("logging.format"))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "destiny %s\n", version)
		},
	}
}
