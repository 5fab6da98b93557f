package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/nvidela/duet/internal/config"
	"github.com/nvidela/duet/internal/listserver"
	"github.com/nvidela/duet/internal/log"
	"github.com/nvidela/duet/internal/service"
	"github.com/nvidela/duet/internal/store"
	"github.com/nvidela/duet/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	// Handle version flag
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("duet %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger; if the log file cannot be opened, run silent
	logger, err := log.Setup(&cfg.Logging)
	if err != nil {
		logger = log.Discard()
	}
	slog.SetDefault(logger)

	logger.Info("starting duet", "version", Version)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("duet needs an interactive terminal")
	}

	// Check if configured
	if !cfg.IsConfigured() {
		return runSetupFlow(cfg)
	}

	// Create list server client
	client := listserver.NewClient(cfg.Server.URL, logger)

	// Open the local session store. Running without it just loses the
	// instant first paint and tab persistence.
	st, err := store.New(config.DefaultStorePath())
	if err != nil {
		logger.Warn("failed to open session store", "error", err)
		st = nil
	} else {
		defer st.Close()
	}

	// Create services
	movieSvc := service.NewMovieService(client, st, logger)
	couponSvc := service.NewCouponService(client, st, logger)
	productSvc := service.NewProductService(client, st, logger)
	petSvc := service.NewPetService(client, st, logger)
	searchSvc := service.NewSearchService(client, logger)

	// Create TUI model
	model := tui.New(cfg, movieSvc, couponSvc, productSvc, petSvc, searchSvc, st, logger)

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Welcome to duet!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	var serverURL string
	for {
		fmt.Print("Enter your list server URL (e.g., http://192.168.1.50:3000): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		serverURL = strings.TrimSpace(input)

		if serverURL == "" {
			fmt.Println("Server URL cannot be empty. Please try again.")
			continue
		}
		if !strings.HasPrefix(serverURL, "http://") && !strings.HasPrefix(serverURL, "https://") {
			fmt.Println("Server URL must start with http:// or https://. Please try again.")
			continue
		}
		break
	}

	cfg.Server.URL = strings.TrimRight(serverURL, "/")

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run duet again to start the application.")

	return nil
}
