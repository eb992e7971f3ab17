package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pageblocks"
	pbhttp "github.com/fwojciec/pageblocks/http"
	pbslog "github.com/fwojciec/pageblocks/slog"
	"github.com/fwojciec/pageblocks/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Config file path used when --config is not given.
	ConfigPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher overrides the HTTP fetcher, for end-to-end testing.
	Fetcher pageblocks.Fetcher

	// Services for end-to-end testing.
	PageService pageblocks.PageService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     defaultDBPath(),
		ConfigPath: defaultConfigPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pageblocks"),
		kong.Description("Extract ordered content blocks from web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pageblocks --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	configPath := cli.Config
	if configPath == "" {
		configPath = m.ConfigPath
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set PAGEBLOCKS_CONFIG or pass --config to use a different config file")
		return err
	}
	applyFlags(cfg, cli)
	deps.Config = cfg

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fetcher := m.Fetcher
	if fetcher == nil {
		f := pbhttp.NewFetcher(fetcherOptions(cfg)...)
		defer f.Close()
		fetcher = f
	}
	deps.Fetcher = pbslog.NewLoggingFetcher(fetcher, deps.Logger)

	if needsStore(kongCtx.Command(), cli) {
		if m.PageService == nil {
			m.DB = sqlite.NewDB(m.DBPath)
			if err := m.DB.Open(); err != nil {
				fmt.Fprintf(stderr, "Hint: Set PAGEBLOCKS_DB to use a different database path\n")
				return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
			}
			defer m.Close()
			m.PageService = sqlite.NewPageService(m.DB)
		}
		deps.Pages = m.PageService
	}

	return kongCtx.Run(deps)
}

// applyFlags overrides config values with the global flags that were set.
func applyFlags(cfg *Config, cli *CLI) {
	if cli.UserAgent != "" {
		cfg.UserAgent = cli.UserAgent
	}
	if cli.Timeout > 0 {
		cfg.Timeout = cli.Timeout
	}
	if cli.Insecure {
		cfg.Insecure = true
	}
}

func fetcherOptions(cfg *Config) []pbhttp.Option {
	opts := []pbhttp.Option{pbhttp.WithInsecureSkipVerify(cfg.Insecure)}
	if cfg.Timeout > 0 {
		opts = append(opts, pbhttp.WithTimeout(cfg.Timeout))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, pbhttp.WithUserAgent(cfg.UserAgent))
	}
	return opts
}

// needsStore reports whether the selected command uses the document store.
func needsStore(command string, cli *CLI) bool {
	switch command {
	case "pages", "show <id>", "delete <id>":
		return true
	case "parse <url>":
		return cli.Parse.Save
	case "crawl <url>":
		return cli.Crawl.Save
	}
	return false
}

func defaultDBPath() string {
	if path := os.Getenv("PAGEBLOCKS_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pageblocks.db"
	}
	dir := filepath.Join(home, ".pageblocks")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pageblocks.db")
}
