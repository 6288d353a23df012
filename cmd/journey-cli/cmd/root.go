package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"journey/internal/application"
	"journey/internal/bootstrap"
	"journey/internal/domain"
)

var (
	cfgFile    string
	logLevel   string
	dateFlag   string
	sourceFlag string

	env *bootstrap.Env
	now = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "journey-cli",
	Short: "Write and revisit a daily journal",
	Long: `journey-cli is a command-line interface for a daily journal.

Entries live in a local store or in markdown and text documents of a
directory you choose. It can write and show entries, find similar days,
look back a period in time, and import or export whole documents.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		env, err = bootstrap.Open(cmd.Context(), bootstrap.Options{
			ConfigFile: cfgFile,
			LogLevel:   logLevel,
		})
		if err != nil {
			return err
		}
		if sourceFlag != "" {
			if err := env.Journal.SwitchSourceByKey(sourceFlag); err != nil {
				return fmt.Errorf("unknown source %q (see journey-cli sources): %w", sourceFlag, err)
			}
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		err := env.Close()
		env = nil
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.journey.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "loglevel", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVarP(&dateFlag, "date", "d", "", "day to work on, YYYY-MM-DD or YYYYMMDD (default today)")
	rootCmd.PersistentFlags().StringVarP(&sourceFlag, "source", "s", "", "source key to use, e.g. local or notes/2024.md")
}

// GetJournal returns the journal opened for the running command
func GetJournal() *application.Journal {
	return env.Journal
}

// targetDate resolves --date, defaulting to today
func targetDate() (string, error) {
	date := strings.TrimSpace(dateFlag)
	if date == "" {
		return domain.Today(now()), nil
	}
	date = domain.NormalizeDateToken(date)
	if err := application.ValidateDate("date", date); err != nil {
		return "", err
	}
	return date, nil
}
