package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/csheth/buildvision/internal/atlas"
	"github.com/csheth/buildvision/internal/config"
	"github.com/csheth/buildvision/internal/conversation"
	"github.com/csheth/buildvision/internal/logging"
	"github.com/csheth/buildvision/internal/tui"
)

func main() {
	endpoint := flag.String("endpoint", "", "Atlas chat endpoint (default $ATLAS_ENDPOINT)")
	token := flag.String("token", "", "Atlas embed token (default $ATLAS_EMBED_TOKEN)")
	transcriptPath := flag.String("transcript", "", "JSON file that ctrl+s appends the conversation to")
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	logFile := flag.String("log-file", "", "write logs to this file (default $LOG_FILE, otherwise discarded)")
	flag.Parse()

	cfg, _, err := config.Load(".env")
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(1)
	}
	cfg.Override(config.Overrides{Endpoint: *endpoint, Token: *token, LogFile: *logFile})
	if err := cfg.Validate(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	logger, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Path:    cfg.Log.File,
		Discard: true,
	})
	if err != nil {
		fmt.Println("logging error:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	client, err := atlas.New(atlas.Config{
		Endpoint:   cfg.Atlas.Endpoint,
		Token:      cfg.Atlas.Token,
		HTTPClient: &http.Client{Timeout: cfg.Atlas.Timeout},
	})
	if err != nil {
		fmt.Println("atlas client error:", err)
		os.Exit(1)
	}

	var exportPath string
	if *transcriptPath != "" {
		if exportPath, err = filepath.Abs(*transcriptPath); err != nil {
			fmt.Println("failed to resolve transcript path:", err)
			os.Exit(1)
		}
	}

	ctrl := conversation.New(client, conversation.WithLogger(logging.Scope(logger, "conversation")))
	logger.Info("atlas demo starting", zap.String("endpoint", cfg.Atlas.Endpoint), zap.String("transcript", exportPath))

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if !*noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Controller:     ctrl,
			Name:           client.Name(),
			Endpoint:       cfg.Atlas.Endpoint,
			TranscriptPath: exportPath,
			Logger:         logging.Scope(logger, "tui"),
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		fmt.Println("program error:", err)
		os.Exit(1)
	}
}
