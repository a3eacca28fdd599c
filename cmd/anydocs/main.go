package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/anydocs"
	"github.com/fwojciec/anydocs/fs"
	"github.com/fwojciec/anydocs/gemini"
	"github.com/fwojciec/anydocs/htmltomarkdown"
	"github.com/fwojciec/anydocs/index"
	"github.com/fwojciec/anydocs/ingest"
	"github.com/fwojciec/anydocs/lru"
	"github.com/fwojciec/anydocs/markdown"
	anyslog "github.com/fwojciec/anydocs/slog"
	"github.com/fwojciec/anydocs/sqlite"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

// version is reported to MCP clients.
var version = "dev"

// tokenizerModel is used for token counting on import. The local tokenizer
// does not know every generation model.
const tokenizerModel = "gemini-2.5-flash"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Environment lookup. Set before calling Run().
	Getenv func(string) string

	// Input for the MCP stdio server.
	Stdin io.Reader

	// Loaded configuration.
	Config *Config

	// SQLite database used by the doc-set registry.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Getenv: os.Getenv,
		Stdin:  os.Stdin,
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
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("anydocs"),
		kong.Description("Search local Markdown documentation by section."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'anydocs --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	if m.Config, err = LoadConfig(m.Getenv); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", anydocs.ErrorMessage(err))
		return err
	}
	cfg := m.Config
	deps.Config = cfg

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	m.DB = sqlite.NewDB(cfg.Database)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set ANYDOCS_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cfg.Database, err)
	}
	defer m.Close()

	deps.DocSets = sqlite.NewDocSetService(m.DB)
	deps.Storage = fs.NewStorage(cfg.StorageRoot)

	builder := anyslog.NewLoggingIndexBuilder(index.NewBuilder(markdown.NewParser(logger)), logger)
	handle := index.NewHandle(builder, logger)
	deps.Switcher = handle
	deps.Index = anyslog.NewLoggingIndexService(lru.NewCachingIndexService(handle, cfg.CacheSize), logger)

	if needsIndex(cmd) {
		target, err := m.target(ctx, cli, deps)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", anydocs.ErrorMessage(err))
			return err
		}
		if target != nil {
			handle.Open(target.Dir, target.Name)
			deps.Target = target
		}
	}

	if cmd == "import" {
		deps.Importer = &ingest.Importer{
			Converter:   htmltomarkdown.NewConverter(),
			Storage:     deps.Storage,
			Builder:     builder,
			DocSets:     deps.DocSets,
			Concurrency: cli.Import.Concurrency,
		}
		if cli.Import.Tokens {
			tokenCounter, err := gemini.NewTokenCounter(tokenizerModel)
			if err != nil {
				return fmt.Errorf("failed to create token counter: %w", err)
			}
			deps.Importer.TokenCounter = tokenCounter
		}
	}

	if cmd == "ask" {
		if cfg.Gemini.APIKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		asker := gemini.NewAsker(client, deps.Index)
		asker.Model = cfg.Gemini.Model
		if tokenCounter, err := gemini.NewTokenCounter(tokenizerModel); err == nil {
			asker.TokenCounter = tokenCounter
		} else {
			logger.Warn("token counting disabled", "err", err)
		}
		deps.Asker = asker
	}

	return kongCtx.Run(deps)
}

// needsIndex reports whether cmd reads the active index.
func needsIndex(cmd string) bool {
	switch cmd {
	case "import", "list", "delete":
		return false
	}
	return true
}

// target resolves the documentation set to open: --path, then --docs,
// then the configured active set. It returns nil when none is selected.
func (m *Main) target(ctx context.Context, cli *CLI, deps *Dependencies) (*Target, error) {
	if cli.Path != "" {
		dir, err := filepath.Abs(cli.Path)
		if err != nil {
			return nil, err
		}
		return &Target{Name: filepath.Base(dir), Dir: dir}, nil
	}

	name := cli.Docs
	if name == "" {
		name = m.Config.Active
	}
	if name == "" {
		return nil, nil
	}

	sets, err := deps.DocSets.FindDocSets(ctx, anydocs.DocSetFilter{Name: &name})
	if err != nil {
		return nil, err
	}
	if len(sets) > 0 {
		return &Target{Name: sets[0].Name, Dir: sets[0].LocalPath}, nil
	}

	dir := deps.Storage.Dir(name)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return &Target{Name: name, Dir: dir}, nil
	}
	return nil, anydocs.Errorf(anydocs.ENOTFOUND, "documentation set %q not found. Use 'anydocs list' to see available sets.", name)
}
