package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"journey/internal/application/commands"
)

var dirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Manage the directory of journal documents",
	Long: `Show the remembered directory, or manage it with a subcommand.

Examples:
  journey-cli dir set ~/Documents/journal --ext md,txt
  journey-cli dir scan
  journey-cli dir sync 2024.md notes/travel.md
  journey-cli dir sync --all
  journey-cli dir clear`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		settings := GetJournal().Directory()
		if settings.Directory == "" {
			_, _ = faint.Fprintln(out, "No directory selected")
			return nil
		}
		_, _ = fmt.Fprintf(out, "%s (%s)\n", settings.Directory, strings.Join(settings.Extensions, ", "))
		return nil
	},
}

var dirExtensions []string

var dirSetCmd = &cobra.Command{
	Use:   "set <path>",
	Short: "Select the directory to scan for documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := homedir.Expand(args[0])
		if err != nil {
			return err
		}
		exts := dirExtensions
		if len(exts) == 0 {
			exts = env.Config.Extensions
		}

		files, err := commands.NewSelectDirectoryCommand(GetJournal(), root, exts).Execute(cmd.Context())
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Directory set to %s, %d documents found\n", GetJournal().Directory().Directory, len(files))
		return nil
	},
}

var dirScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the documents of the selected directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		j := GetJournal()

		files, err := j.Scan(cmd.Context())
		if err != nil {
			return err
		}
		if len(files) == 0 {
			_, _ = faint.Fprintln(out, "No documents found")
			return nil
		}
		selection, err := j.Selection(cmd.Context())
		if err != nil {
			return err
		}

		rows := make([][]interface{}, 0, len(files))
		for _, f := range files {
			mode := "read-write"
			if !f.Writable {
				mode = warning.Sprint("read-only")
			}
			rows = append(rows, []interface{}{activeMark(slices.Contains(selection, f.RelPath)), f.RelPath, fmt.Sprintf("%.1f KB", float64(f.Size)/1024), mode})
		}
		printTable(out, []interface{}{"", "PATH", "SIZE", "MODE"}, rows)
		return nil
	},
}

var dirSyncAll bool

var dirSyncCmd = &cobra.Command{
	Use:   "sync [path...]",
	Short: "Open the listed documents and close all others",
	Long: `Open the listed documents, given relative to the selected directory, as
sources and close every other document. With --all every document found
is opened.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !dirSyncAll && len(args) == 0 {
			return fmt.Errorf("list documents to open or pass --all")
		}
		result, err := commands.NewSyncCommand(GetJournal(), args, dirSyncAll).Execute(cmd.Context())
		if result != nil {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		}
		return err
	},
}

var dirClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the selected directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := GetJournal().ClearDirectory(cmd.Context()); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Directory forgotten and its documents closed")
		return nil
	},
}

func init() {
	dirSetCmd.Flags().StringSliceVarP(&dirExtensions, "ext", "e", nil, "document extensions to scan (default from config)")
	dirSyncCmd.Flags().BoolVarP(&dirSyncAll, "all", "a", false, "open every document found")

	dirCmd.AddCommand(dirSetCmd)
	dirCmd.AddCommand(dirScanCmd)
	dirCmd.AddCommand(dirSyncCmd)
	dirCmd.AddCommand(dirClearCmd)
	rootCmd.AddCommand(dirCmd)
}
