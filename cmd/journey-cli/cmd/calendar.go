package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"journey/internal/adapters/tui/views"
	"journey/internal/domain"
)

var calendarYear int

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a year of writing activity",
	Long: `Show a heat map of the active source for a year, one column per week.
Darker cells mean fewer words.

Examples:
  journey-cli calendar
  journey-cli calendar --year 2023`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		j := GetJournal()

		year := calendarYear
		if year == 0 {
			year = now().Year()
		}
		activity := j.Activity(year)

		words := 0
		for date := range activity {
			body, _ := j.Entry(date)
			words += domain.WordCount(body)
		}

		_, _ = bold.Fprintf(out, "%s  %d\n\n", j.Active().Name, year)
		_, _ = fmt.Fprintln(out, views.RenderHeatMap(year, activity, "", domain.Today(now())))
		_, _ = fmt.Fprintln(out)
		_, _ = faint.Fprintf(out, "%d entries, %d words\n", len(activity), words)
		return nil
	},
}

func init() {
	calendarCmd.Flags().IntVarP(&calendarYear, "year", "y", 0, "year to show (default this year)")

	rootCmd.AddCommand(calendarCmd)
}
