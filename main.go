// Command offsetclock is a terminal dashboard of fixed-offset world clocks.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/philtim/offsetclock/clock"
	"github.com/philtim/offsetclock/config"
	"github.com/philtim/offsetclock/logger"
	"github.com/philtim/offsetclock/script"
	"github.com/philtim/offsetclock/store"
	"github.com/philtim/offsetclock/zones"
)

const appVersion = "offsetclock v1.0.0"

var (
	configPath = flag.String("config", "", "Config file (default ~/.config/offsetclock.yaml)")
	list       = flag.Bool("list", false, "Print the home and all time zones once and exit")
	convertAt  = flag.String("convert", "", "Convert HH:MM from the home time zone to all time zones and exit")
	exportName = flag.String("export", "", "Write the time zone script for the named entry (or 'home') and exit")
	version    = flag.Bool("version", false, "Show version")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println(appVersion)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Load configuration
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	printMode := *list || *convertAt != "" || *exportName != ""

	// The dashboard owns the terminal, so it logs to a file
	var logOut io.Writer = os.Stderr
	if !printMode {
		logOut = io.Discard
		if cfg.LogFile != "" {
			f, err := logger.OpenFile(cfg.LogFile)
			if err != nil {
				return err
			}
			defer f.Close()
			logOut = f
		}
	}
	logger.Init(logOut, cfg.LogLevel)

	kind, err := script.ParseKind(cfg.Script)
	if err != nil {
		return err
	}

	st, err := store.Open(ctx, cfg.Storage)
	if err != nil {
		logger.ErrorWithStack(err)
		return fmt.Errorf("opening %s store: %w", cfg.Storage.Backend, err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close store")
		}
	}()
	log.Debug().Str("backend", cfg.Storage.Backend).Msg("Store opened")

	repo := zones.NewRepository(st)
	src := clock.System{}

	switch {
	case *exportName != "":
		return exportScript(ctx, os.Stdout, repo, cfg.ExportDir, kind, *exportName)
	case *convertAt != "":
		return printConversion(ctx, os.Stdout, repo, src, *convertAt)
	case *list:
		printClocks(ctx, os.Stdout, repo, src)
		return nil
	}

	m := newModel(ctx, repo, src, cfg.ExportDir, kind)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
