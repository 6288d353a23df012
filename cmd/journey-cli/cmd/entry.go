package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"journey/internal/application/commands"
	"journey/internal/domain"
)

var showAll bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the entry for a day",
	Long: `Show the entry for --date (default today) in the active source.

Examples:
  journey-cli show
  journey-cli show --date 2024-06-01
  journey-cli show --all --source notes/2024.md`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		j := GetJournal()

		if showAll {
			entries := j.Entries()
			rows := make([][]interface{}, 0, len(entries))
			for _, date := range entries.Dates() {
				body := entries[date]
				rows = append(rows, []interface{}{date, domain.WordCount(body), domain.Truncate(strings.Join(strings.Fields(body), " "), 60)})
			}
			if len(rows) == 0 {
				_, _ = faint.Fprintf(out, "No entries in %s\n", j.Active().Name)
				return nil
			}
			printTable(out, []interface{}{"DATE", "WORDS", "ENTRY"}, rows)
			return nil
		}

		date, err := targetDate()
		if err != nil {
			return err
		}
		body, ok := j.Entry(date)
		if !ok {
			_, _ = faint.Fprintf(out, "No entry for %s\n", date)
			return nil
		}
		_, _ = bold.Fprintf(out, "# %s\n\n", date)
		_, _ = fmt.Fprintln(out, body)
		return nil
	},
}

var writeCmd = &cobra.Command{
	Use:   "write [text]",
	Short: "Write the entry for a day",
	Long: `Write the entry for --date (default today), replacing what was there.
Without a text argument the entry is read from stdin. Empty text deletes
the entry.

Examples:
  journey-cli write "Long walk by the river."
  echo "Quiet day." | journey-cli write --date 2024-06-01`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := targetDate()
		if err != nil {
			return err
		}

		var text string
		if len(args) == 1 {
			text = args[0]
		} else {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			text = string(data)
		}

		result, err := commands.NewSaveEntryCommand(GetJournal(), date, text).Execute(cmd.Context())
		if result != nil {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		}
		return err
	},
}

var similarCmd = &cobra.Command{
	Use:   "similar [text]",
	Short: "List past entries similar to a text",
	Long: `List entries similar to the given text, or to the entry for --date when
no text is given. The entry for --date itself is never listed.

Examples:
  journey-cli similar "walk in the park"
  journey-cli similar --date 2024-06-01`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		j := GetJournal()

		date, err := targetDate()
		if err != nil {
			return err
		}
		query := strings.Join(args, " ")
		if query == "" {
			query, _ = j.Entry(date)
		}

		candidates, err := commands.NewSimilarCommand(j, query, date).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			_, _ = faint.Fprintln(out, "No similar entries")
			return nil
		}

		rows := make([][]interface{}, 0, len(candidates))
		for _, c := range candidates {
			rows = append(rows, []interface{}{c.Date, fmt.Sprintf("%.0f%%", c.Score*100), domain.Truncate(strings.Join(strings.Fields(c.Body), " "), 60)})
		}
		printTable(out, []interface{}{"DATE", "SCORE", "ENTRY"}, rows)
		return nil
	},
}

var pastPeriod string

var pastCmd = &cobra.Command{
	Use:   "past",
	Short: "Show the entry from one period before a day",
	Long: `Show the entry one period before --date (default today). --period
selects and remembers the period; see journey-cli periods list.

Examples:
  journey-cli past
  journey-cli past --period lastYear`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		date, err := targetDate()
		if err != nil {
			return err
		}
		ref, err := domain.FromKey(date)
		if err != nil {
			return err
		}

		result, err := commands.NewPastCommand(GetJournal(), ref, pastPeriod).Execute(cmd.Context())
		if err != nil {
			return err
		}

		_, _ = bold.Fprintf(out, "%s (%s)\n\n", result.Period.Label, result.Target)
		if len(result.Entries) == 0 {
			_, _ = faint.Fprintln(out, "No entry")
			return nil
		}
		for _, e := range result.Entries {
			_, _ = fmt.Fprintln(out, e.Body)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVarP(&showAll, "all", "a", false, "list every entry of the source")
	pastCmd.Flags().StringVarP(&pastPeriod, "period", "p", "", "period id to look back")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(pastCmd)
}
