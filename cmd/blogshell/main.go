package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eringen/blogshell"
	"github.com/eringen/blogshell/content"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "import":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: blogshell import <dir>")
			os.Exit(1)
		}
		if err := runImport(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("blogshell %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runServe() error {
	cfg, err := blogshell.LoadConfig()
	if err != nil {
		return err
	}
	app := blogshell.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		app.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.Shutdown(shutdownCtx)
}

// runImport copies the markdown posts under dir into the configured
// SQLite database.
func runImport(dir string) error {
	cfg, err := blogshell.LoadConfig()
	if err != nil {
		return err
	}
	store, err := content.NewStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	src := content.NewDir(dir, content.WithDefaultAuthor(cfg.Author))
	res, err := content.Import(context.Background(), src, store)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d posts into %s (%d unpublished)\n", res.Saved, cfg.DatabasePath, len(res.Unpublished))
	return nil
}

func printUsage() {
	fmt.Println(`blogshell - A personal blog with a navigation drawer, built with Go, Echo, and templ

Usage:
  blogshell <command> [arguments]

Commands:
  serve         Start the web server
  import <dir>  Import markdown posts from dir into the SQLite store
  version       Print the blogshell version
  help          Show this help message

Configuration is read from blogshell.toml (or $BLOGSHELL_CONFIG) and
BLOGSHELL_* environment variables.

Examples:
  BLOGSHELL_SESSION_SECRET=change-me blogshell serve
  blogshell import ./posts`)
}
