package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"journey/internal/application/commands"
)

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Import a markdown or text document into the active source",
	Long: `Import the entries of a document into the active source. Entries for
dates already present are overwritten. Use - to read from stdin.

Examples:
  journey-cli import ~/Downloads/journal-my_journal-2024-06-15.md
  cat notes.txt | journey-cli import - --source local`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var text string
		if args[0] == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			text = string(data)
		} else {
			path, err := homedir.Expand(args[0])
			if err != nil {
				return err
			}
			text, err = env.Documents.ReadText(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
		}

		result, err := commands.NewImportCommand(GetJournal(), text).Execute(cmd.Context())
		if result != nil {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		}
		return err
	},
}

var (
	exportOut       string
	exportClipboard bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the active source as markdown",
	Long: `Export every entry of the active source as a markdown document, oldest
first. By default the document is printed. --out writes it to a file, or
into a directory under its suggested name; --clipboard copies it.

Examples:
  journey-cli export > journal.md
  journey-cli export --out ~/Backups
  journey-cli export --clipboard --source notes/2024.md`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		result, err := commands.NewExportCommand(GetJournal(), now()).Execute(cmd.Context())
		if err != nil {
			return err
		}

		switch {
		case exportClipboard:
			if err := clipboard.WriteAll(result.Text); err != nil {
				return fmt.Errorf("failed to copy to clipboard: %w", err)
			}
			_, _ = fmt.Fprintf(out, "Copied %d entries to the clipboard\n", result.Entries)

		case exportOut != "":
			path, err := homedir.Expand(exportOut)
			if err != nil {
				return err
			}
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				path = filepath.Join(path, result.Filename)
			}
			if err := env.Documents.WriteText(cmd.Context(), path, result.Text); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			_, _ = fmt.Fprintf(out, "Exported %d entries to %s\n", result.Entries, path)

		default:
			_, _ = fmt.Fprintln(out, result.Text)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "file or directory to write to")
	exportCmd.Flags().BoolVarP(&exportClipboard, "clipboard", "c", false, "copy to the clipboard")
	exportCmd.MarkFlagsMutuallyExclusive("out", "clipboard")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}
