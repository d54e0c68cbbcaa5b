package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/matchday/internal/config"
	"github.com/mmcdole/matchday/internal/directory"
	"github.com/mmcdole/matchday/internal/domain"
	"github.com/mmcdole/matchday/internal/fixtures"
	"github.com/mmcdole/matchday/internal/logging"
	"github.com/mmcdole/matchday/internal/marketplace"
	"github.com/mmcdole/matchday/internal/store"
	"github.com/mmcdole/matchday/internal/tui"
	"github.com/mmcdole/matchday/internal/tui/styles"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

type options struct {
	showVersion bool
	clearCache  bool
	league      string
	team        string
	month       string
	venue       string
}

func main() {
	var opts options
	flag.BoolVar(&opts.showVersion, "v", false, "print version")
	flag.BoolVar(&opts.showVersion, "version", false, "print version")
	flag.BoolVar(&opts.clearCache, "clear-cache", false, "remove the cached directory and exit")
	flag.StringVar(&opts.league, "league", "", "print fixtures for a league slug and exit")
	flag.StringVar(&opts.team, "team", "", "print fixtures for a team slug and exit")
	flag.StringVar(&opts.month, "month", "", "with -league/-team: only fixtures in month YYYY-MM")
	flag.StringVar(&opts.venue, "venue", "", "with -league/-team: only fixtures at this venue id")
	flag.Parse()

	if opts.showVersion {
		fmt.Printf("matchday %s\n", Version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, logFile, err := logging.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = logging.NullLogger()
	} else {
		defer logFile.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting matchday", "version", Version)

	if opts.clearCache {
		if err := cfg.ClearCache(); err != nil {
			return err
		}
		fmt.Println("✓ Cache cleared")
		return nil
	}

	if !cfg.IsConfigured() {
		return runSetupFlow(cfg, logger)
	}

	client := marketplace.NewClient(cfg.Server.URL, cfg.Server.APIKey, cfg.Server.Timeout, logger)
	opener := fixtures.NewOpener(client, cfg.Fetch.PageSize, logger)

	if opts.league != "" || opts.team != "" {
		return runPrint(opener, opts)
	}

	st, err := store.NewDirectoryStore(cfg.Cache.Dir, cfg.Server.URL)
	if err != nil {
		logger.Warn("directory cache unavailable, using memory", "error", err)
		st, _ = store.NewDirectoryStore("", "")
	}
	defer st.Close()

	commands := directory.NewCommands(client, st, cfg.Cache.DirectoryMaxAge, cfg.UI.RecentLimit, logger)
	queries := directory.NewQueries(st)

	model := tui.NewModel(commands, queries, opener, cfg.DefaultKind(), logger)

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runPrint resolves one filter state for a parent and prints it as a table
func runPrint(opener *fixtures.Opener, opts options) error {
	kind, slug := domain.ParentLeague, opts.league
	if opts.team != "" {
		kind, slug = domain.ParentTeam, opts.team
	}

	var state fixtures.FilterState
	if opts.month != "" {
		month, err := domain.ParseMonth(opts.month)
		if err != nil {
			return err
		}
		state = state.WithMonth(month)
	}
	state = state.WithVenue(opts.venue)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	view, err := opener.Open(ctx, kind, slug)
	if err != nil {
		return err
	}
	defer view.Close()

	res := view.Resolve(ctx, state)
	if res.Err != nil {
		return res.Err
	}
	return printFixtures(os.Stdout, view.Parent(), state, res.Data)
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to matchday!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("Enter the marketplace API URL (e.g., https://api.example.com): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		serverURL := strings.TrimSpace(input)
		if serverURL == "" {
			fmt.Println("URL cannot be empty. Please try again.")
			continue
		}

		apiKey, err := readAPIKey(reader)
		if err != nil {
			return err
		}
		if apiKey == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		fmt.Println()
		client := marketplace.NewClient(serverURL, apiKey, cfg.Server.Timeout, logger)
		if err := checkServerWithSpinner(client); err != nil {
			fmt.Printf("\n✗ Could not connect: %v\n", err)
			if errors.Is(err, domain.ErrAuthFailed) {
				fmt.Println("The API key was rejected.")
			} else {
				fmt.Println("Please check the URL and try again.")
			}
			fmt.Println()
			continue
		}

		cfg.Server.URL = serverURL
		cfg.Server.APIKey = apiKey
		break
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run matchday again to start the application.")
	return nil
}

// readAPIKey reads the key without echo when stdin is a terminal
func readAPIKey(reader *bufio.Reader) (string, error) {
	fmt.Print("Enter your API key: ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		key, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}
		return strings.TrimSpace(string(key)), nil
	}

	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	return strings.TrimSpace(input), nil
}

// checkServerWithSpinner pings the backend with a visual spinner
func checkServerWithSpinner(client *marketplace.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		resultCh <- client.Ping(ctx)
	}()

	frame := 0
	fmt.Printf("\r%s Connecting...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return err
			}
			fmt.Println("✓ Connected")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Connecting...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("connection timed out")
		}
	}
}
