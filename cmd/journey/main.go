package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"journey/internal/adapters/editor"
	"journey/internal/adapters/tui"
	"journey/internal/bootstrap"
	"journey/internal/logging"
)

func main() {
	cfgFile := flag.String("config", "", "config file (default is $HOME/.journey.yaml)")
	logLevel := flag.String("loglevel", "", "log level: debug, info, warn, error")
	logFile := flag.String("logfile", "", "write logs to this file instead of discarding them")
	flag.Parse()

	if err := run(*cfgFile, *logLevel, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgFile, logLevel, logFile string) error {
	// The alternate screen owns the terminal, so logs go to a file or nowhere
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logging.Log.SetOutput(f)
	} else {
		logging.Log.SetOutput(io.Discard)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	env, err := bootstrap.Open(ctx, bootstrap.Options{ConfigFile: cfgFile, LogLevel: logLevel})
	if err != nil {
		return err
	}
	defer env.Close()

	reloads := make(chan int, 1)
	if env.Journal.Directory().Directory != "" {
		err := env.Watch(ctx, func(n int) {
			select {
			case reloads <- n:
			default:
			}
		})
		if err != nil {
			env.Log.WithError(err).Warn("not watching the document directory")
		}
	}

	app := tui.NewApp(env.Journal, tui.Options{
		Editor:     editor.NewOpener(env.Config.Editor),
		Extensions: env.Config.Extensions,
		Debounce:   env.Config.Debounce,
		Reloads:    reloads,
	})
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
