package ports

import "os/exec"

// Editor builds the command that opens a document in the user's editor
type Editor interface {
	// Command returns an exec.Cmd editing path. It is meant to be handed to
	// bubbletea's ExecProcess, which attaches the terminal.
	Command(path string) (*exec.Cmd, error)
}
