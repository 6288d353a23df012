package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"journey/internal/application/commands"
)

var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "Manage the periods used to look back in time",
	Long: `Manage the periods that past and the compose view use to show an older
entry next to the current day.

Examples:
  journey-cli periods list
  journey-cli periods add "3 Weeks Ago" 3 weeks
  journey-cli periods edit lastWeek "Week Before" 1 weeks
  journey-cli periods remove 10weeks
  journey-cli periods reorder lastYear yesterday lastWeek ...
  journey-cli periods use lastYear`,
}

var periodsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List periods; the active one is marked with *",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		j := GetJournal()
		active := j.ActivePeriod().ID

		periods := j.Periods()
		rows := make([][]interface{}, 0, len(periods))
		for _, p := range periods {
			rows = append(rows, []interface{}{activeMark(p.ID == active), p.ID, p.Label, p.String()})
		}
		printTable(cmd.OutOrStdout(), []interface{}{"", "ID", "LABEL", "RULE"}, rows)
		return nil
	},
}

var periodsAddCmd = &cobra.Command{
	Use:   "add <label> <value> <unit>",
	Short: "Add a period, e.g. \"3 Weeks Ago\" 3 weeks",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := parseValue(args[1])
		if err != nil {
			return err
		}
		result, err := commands.NewAddPeriodCommand(GetJournal(), args[0], args[2], value).Execute(cmd.Context())
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s [%s]\n", result.Message, result.Period.ID)
		return nil
	},
}

var periodsEditCmd = &cobra.Command{
	Use:   "edit <id> <label> <value> <unit>",
	Short: "Change the label and rule of a period",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := parseValue(args[2])
		if err != nil {
			return err
		}
		result, err := commands.NewEditPeriodCommand(GetJournal(), args[0], args[1], args[3], value).Execute(cmd.Context())
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var periodsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a period",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewRemovePeriodCommand(GetJournal(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var periodsReorderCmd = &cobra.Command{
	Use:   "reorder <id>...",
	Short: "Set the order of all periods",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := commands.NewReorderPeriodsCommand(GetJournal(), args).Execute(cmd.Context()); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reordered %d periods\n", len(args))
		return nil
	},
}

var periodsUseCmd = &cobra.Command{
	Use:   "use <id>",
	Short: "Select the period past looks back by",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		j := GetJournal()
		if err := j.SetActivePeriod(cmd.Context(), args[0]); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Using %s\n", j.ActivePeriod().Label)
		return nil
	},
}

func parseValue(s string) (int, error) {
	value, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("value must be a whole number, got %q", s)
	}
	return value, nil
}

func init() {
	periodsCmd.AddCommand(periodsListCmd)
	periodsCmd.AddCommand(periodsAddCmd)
	periodsCmd.AddCommand(periodsEditCmd)
	periodsCmd.AddCommand(periodsRemoveCmd)
	periodsCmd.AddCommand(periodsReorderCmd)
	periodsCmd.AddCommand(periodsUseCmd)
	rootCmd.AddCommand(periodsCmd)
}
