// students is the terminal client of the students backend.
//
//	go run ./cmd/students                       interactive shell
//	go run ./cmd/students list                  print the list once
//	go run ./cmd/students --config=config/local.yaml delete 5
//
// The backend is chosen by API_BASE (default http://localhost:8080) and
// API_VARIANT ("flat" or "resource").
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aanand-mishra/student-manager/internal/config"
	"github.com/aanand-mishra/student-manager/internal/console"
	"github.com/aanand-mishra/student-manager/internal/fetcher"
	"github.com/aanand-mishra/student-manager/internal/forms"
	"github.com/aanand-mishra/student-manager/internal/liststate"
	"github.com/aanand-mishra/student-manager/internal/transport"
	"github.com/aanand-mishra/student-manager/internal/types"
)

const version = "1.0.0"

func main() {
	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hc := transport.New(nil, cfg.Client.Timeout)
	hc.Use(
		transport.UserAgent("students", version),
		transport.RequestID(),
		transport.Logging(log),
	)

	baseURL := fetcher.ResolveBaseURL(cfg.Client.APIBase)
	log.Debug("starting students client",
		slog.String("env", cfg.Env),
		slog.String("api_base", baseURL),
		slog.String("variant", cfg.Client.Variant))

	var err error
	switch cfg.Client.Variant {
	case config.VariantResource:
		page := console.NewPage[types.Student](fetcher.NewResource(baseURL, hc.HTTP), forms.StudentSchema(),
			liststate.ServerPaged, cfg.Client.PageSize, baseURL, log)
		err = run(ctx, page, flag.Args())
	default:
		page := console.NewPage[types.Eleve](fetcher.NewFlat(baseURL, hc.HTTP), forms.EleveSchema(),
			liststate.ClientFilter, cfg.Client.PageSize, baseURL, log)
		err = run(ctx, page, flag.Args())
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("students client failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run starts the interactive shell, or executes args as a single command
// and prints the resulting page.
func run[T types.Record](ctx context.Context, page *console.Page[T], args []string) error {
	prompt := console.NewPrompter(os.Stdin, os.Stdout)
	shell := console.NewShell(page, prompt, os.Stdout)

	if len(args) == 0 {
		return shell.Run(ctx)
	}

	// A failed load is rendered as part of the page.
	_, _ = page.List.Mount(ctx)

	switch strings.ToLower(args[0]) {
	case "list", "refresh":
	default:
		if err := shell.Exec(ctx, strings.Join(args, " ")); err != nil && !errors.Is(err, console.ErrQuit) {
			return fmt.Errorf("%s: %w", args[0], err)
		}
	}
	return page.Render(os.Stdout)
}

// setupLogger writes to stderr so that the rendered page on stdout stays
// readable: text at info level for dev, JSON at debug level for staging
// and at warn level for prod.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	case "staging":
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}
