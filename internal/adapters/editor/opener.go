package editor

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"journey/internal/ports"
)

// ErrNoEditor is returned when no editor is configured or installed
var ErrNoEditor = errors.New("no editor found: set $EDITOR or editor.command")

var _ ports.Editor = (*Opener)(nil)

// Opener launches an external editor on journal documents
type Opener struct {
	command  string
	lookPath func(string) (string, error)
}

// NewOpener creates an opener. command, when set, wins over $VISUAL and
// $EDITOR and may carry arguments, e.g. "code --wait".
func NewOpener(command string) *Opener {
	return &Opener{command: command, lookPath: exec.LookPath}
}

// Command returns an exec.Cmd for editing path
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	args := strings.Fields(o.findEditor())
	if len(args) == 0 {
		return nil, ErrNoEditor
	}

	cmd := exec.Command(args[0], append(args[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

func (o *Opener) findEditor() string {
	for _, candidate := range []string{o.command, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}

	for _, name := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := o.lookPath(name); err == nil {
			return path
		}
	}
	return ""
}
