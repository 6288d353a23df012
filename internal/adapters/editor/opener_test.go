package editor

import (
	"errors"
	"strings"
	"testing"
)

func TestOpener_Command(t *testing.T) {
	tests := []struct {
		name    string
		command string
		visual  string
		editor  string
		want    string
	}{
		{name: "configured command wins", command: "code --wait", visual: "emacs", editor: "vim", want: "code --wait /tmp/daily.md"},
		{name: "visual before editor", visual: "emacs", editor: "vim", want: "emacs /tmp/daily.md"},
		{name: "editor", editor: "nano", want: "nano /tmp/daily.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("VISUAL", tt.visual)
			t.Setenv("EDITOR", tt.editor)

			cmd, err := NewOpener(tt.command).Command("/tmp/daily.md")
			if err != nil {
				t.Fatalf("Command failed: %v", err)
			}
			if got := strings.Join(cmd.Args, " "); got != tt.want {
				t.Errorf("Args = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpener_NoEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	o := NewOpener("")
	o.lookPath = func(string) (string, error) { return "", errors.New("not found") }

	if _, err := o.Command("/tmp/daily.md"); !errors.Is(err, ErrNoEditor) {
		t.Errorf("expected ErrNoEditor, got %v", err)
	}
}

func TestOpener_FallsBackToInstalled(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	o := NewOpener("")
	o.lookPath = func(name string) (string, error) {
		if name == "vi" {
			return "/usr/bin/vi", nil
		}
		return "", errors.New("not found")
	}

	cmd, err := o.Command("/tmp/daily.md")
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if cmd.Args[0] != "/usr/bin/vi" {
		t.Errorf("Args[0] = %s", cmd.Args[0])
	}
}
