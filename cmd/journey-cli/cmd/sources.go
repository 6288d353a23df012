package cmd

import (
	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the open sources",
	Long: `List the local journal and the documents opened from the selected
directory. The active source is marked with *. Pass a key to --source to
work on another one.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sources := GetJournal().Sources()

		rows := make([][]interface{}, 0, len(sources))
		for _, s := range sources {
			mode := "local"
			if s.File {
				mode = "read-write"
				if !s.Writable {
					mode = warning.Sprint("read-only")
				}
			}
			rows = append(rows, []interface{}{activeMark(s.Active), s.Index, s.Key, s.Name, s.Entries, mode})
		}
		printTable(cmd.OutOrStdout(), []interface{}{"", "#", "KEY", "NAME", "ENTRIES", "MODE"}, rows)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
