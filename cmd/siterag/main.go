// Command siterag crawls a site into a local vector store and answers
// questions grounded in the stored content.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/tanakrit-d/siterag"
	"github.com/tanakrit-d/siterag/crawl"
	"github.com/tanakrit-d/siterag/gemini"
	"github.com/tanakrit-d/siterag/goquery"
	raghttp "github.com/tanakrit-d/siterag/http"
	"github.com/tanakrit-d/siterag/rag"
	ragslog "github.com/tanakrit-d/siterag/slog"
	"github.com/tanakrit-d/siterag/sqlite"
	"github.com/tanakrit-d/siterag/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database backing the chunk store.
	DB *sqlite.DB

	// Store for end-to-end testing.
	Store siterag.ChunkStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
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
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("siterag"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'siterag --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SITERAG_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.Store = sqlite.NewChunkService(m.DB, gemini.DefaultEmbeddingDimension)
	deps.DB = m.DB
	deps.Store = m.Store

	// crawl, ask and chat all talk to the Gemini API; stats is local-only.
	if cmd == "crawl" || cmd == "ask" || cmd == "chat" {
		client, err := newGeminiClient(ctx, stderr)
		if err != nil {
			return err
		}
		generator := gemini.NewGenerator(client, gemini.DefaultModel)
		embedder := gemini.NewEmbedder(client, gemini.DefaultEmbeddingModel, gemini.DefaultEmbeddingDimension)

		switch cmd {
		case "crawl":
			var extractor siterag.TextExtractor = goquery.NewExtractor()
			if cli.Crawl.Article {
				extractor = trafilatura.NewExtractor()
			}
			deps.Crawler = &crawl.Crawler{
				Fetcher:   ragslog.NewLoggingFetcher(raghttp.NewFetcher(), deps.Logger),
				Extractor: extractor,
				Links:     goquery.NewLinkExtractor(),
				Enricher: &crawl.Enricher{
					Generator: generator,
					Embedder:  embedder,
					Logger:    deps.Logger,
				},
				Store:   m.Store,
				Limiter: crawl.NewDomainLimiter(cli.Crawl.RPS),
				Logger:  deps.Logger,
			}
		case "ask", "chat":
			k := cli.Ask.TopK
			if cmd == "chat" {
				k = cli.Chat.TopK
			}
			deps.Assembler = &rag.Assembler{
				Store:     m.Store,
				Embedder:  embedder,
				Generator: generator,
				Logger:    deps.Logger,
				K:         k,
			}
		}
	}

	return kongCtx.Run(deps)
}

func newGeminiClient(ctx context.Context, stderr io.Writer) (*genai.Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return client, nil
}

func defaultDBPath() string {
	if path := os.Getenv("SITERAG_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "siterag.db"
	}
	dir := filepath.Join(home, ".siterag")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "siterag.db")
}
