// shipyard compiles a schema document into DDL scripts.
//
// Usage:
//
//	shipyard -in schema.yaml -dialect postgres -out ddl
//	shipyard -in schema.yaml -out ddl -go-package names -watch
//
// The dialect defaults to SHIPYARD_DIALECT, then to the generator block of
// the document. The output directory defaults to SHIPYARD_OUT. A .env file
// in the working directory is loaded first.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	_ "github.com/joho/godotenv/autoload"

	"github.com/syssam/shipyard"
	"github.com/syssam/shipyard/compiler"
	"github.com/syssam/shipyard/dialect"
	"github.com/syssam/shipyard/dialect/postgres"
	"github.com/syssam/shipyard/dialect/sqlserver"
	"github.com/syssam/shipyard/schemadoc"
)

// debounce is how long the watcher waits for a burst of events to settle.
const debounce = 200 * time.Millisecond

type config struct {
	dialect   string
	in        string
	out       string
	goPackage string
	watch     bool
	verbose   bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.dialect, "dialect", os.Getenv("SHIPYARD_DIALECT"), "target dialect: sqlserver or postgres")
	flag.StringVar(&cfg.in, "in", "schema.yaml", "schema document (.yaml, .json or .msgpack)")
	flag.StringVar(&cfg.out, "out", envOr("SHIPYARD_OUT", "ddl"), "output directory")
	flag.StringVar(&cfg.goPackage, "go-package", "", "also write a Go package of name constants")
	flag.BoolVar(&cfg.watch, "watch", false, "rebuild when the schema document changes")
	flag.BoolVar(&cfg.verbose, "v", false, "log every rendered object")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg, logger)
	stop()
	if err != nil {
		log.Fatalf("shipyard: %v", err)
	}
}

func run(ctx context.Context, cfg config, logger *slog.Logger) error {
	w := compiler.NewWriter(cfg.out).WithLogger(logger)
	if err := build(ctx, cfg, w, logger); err != nil {
		return err
	}
	if !cfg.watch {
		return nil
	}
	return watch(ctx, cfg, w, logger)
}

// build compiles the document once and writes the result.
func build(ctx context.Context, cfg config, w *compiler.Writer, logger *slog.Logger) error {
	doc, err := schemadoc.Load(cfg.in)
	if err != nil {
		return err
	}
	name := cfg.dialect
	if name == "" {
		name = doc.Dialect()
	}
	gen, err := newGenerator(name, doc.Generator.Options()...)
	if err != nil {
		return err
	}
	tables, views, err := doc.Build()
	if err != nil {
		return err
	}
	out, err := compiler.Compile(ctx, gen, tables, views, compiler.WithLogger(logger))
	if err != nil {
		return err
	}
	files := out.Files
	if cfg.goPackage != "" {
		f, err := compiler.GoConstants(cfg.goPackage, tables, views)
		if err != nil {
			return err
		}
		files = append(files, f)
	}
	if err := w.WriteAll(ctx, files); err != nil {
		return err
	}
	logger.Info("compiled", "dialect", gen.Name(), "tables", len(tables), "views", len(views), "dir", w.Dir())
	return nil
}

func newGenerator(name string, opts ...dialect.Option) (dialect.Generator, error) {
	switch strings.ToLower(name) {
	case dialect.SQLServer, "mssql":
		g, err := sqlserver.New(opts...)
		if err != nil {
			return nil, err
		}
		return g, nil
	case dialect.Postgres, "postgresql", "pg":
		g, err := postgres.New(opts...)
		if err != nil {
			return nil, err
		}
		return g, nil
	case "":
		return nil, shipyard.NewConfigError("dialect", nil, "no dialect given by -dialect, SHIPYARD_DIALECT or the document")
	}
	return nil, shipyard.NewConfigError("dialect", name, "unknown dialect")
}

// watch rebuilds whenever the document is written or replaced. Build
// failures are logged and the watch goes on.
func watch(ctx context.Context, cfg config, w *compiler.Writer, logger *slog.Logger) error {
	path, err := filepath.Abs(cfg.in)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	logger.Info("watching", "file", cfg.in)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) == path && ev.Has(fsnotify.Write|fsnotify.Create) {
				pending = time.After(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch", "error", err)
		case <-pending:
			pending = nil
			if err := build(ctx, cfg, w, logger); err != nil {
				logger.Error("build failed", "error", err)
			}
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
