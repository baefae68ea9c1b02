package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/bloops-games/quiz/internal/buildinfo"
	"github.com/bloops-games/quiz/internal/cache"
	"github.com/bloops-games/quiz/internal/database"
	questionDb "github.com/bloops-games/quiz/internal/database/question/database"
	"github.com/bloops-games/quiz/internal/database/question/model"
	"github.com/bloops-games/quiz/internal/database/question/seed"
	"github.com/bloops-games/quiz/internal/logging"
	"github.com/bloops-games/quiz/internal/quiz"
	"github.com/bloops-games/quiz/internal/shutdown"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const usage = `usage: quiz-cli <command> [flags]

commands:
  list                 print every stored question
  seed [-force] [-file path]
                       seed the store, -force replaces its contents
  delete <id>          delete one question
`

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(os.Stdout, buildinfo.GreetingCLI, buildinfo.ProjectName, buildinfo.ProjectVersion, buildinfo.GithubURL)

	ctx, done := shutdown.New()
	defer done()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.DefaultLogger().Fatalf("loading .env: %v", err)
	}

	config := quiz.Config{}
	if err := envconfig.Process("", &config); err != nil {
		logging.DefaultLogger().Fatalf("processing the config: %v", err)
	}

	logger := logging.NewLogger(config.Debug)
	ctx = logging.WithLogger(ctx, logger)

	if len(os.Args) < 2 {
		_, _ = fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err := realMain(ctx, &config, os.Args[1], os.Args[2:]); err != nil {
		logger.Fatalf("main.realMain: %v", err)
	}
}

func realMain(ctx context.Context, config *quiz.Config, cmd string, args []string) error {
	db, err := database.NewFromEnv(ctx, &config.Db)
	if err != nil {
		return fmt.Errorf("new database from env: %w", err)
	}
	defer db.Close(ctx)

	questionCache, err := cache.NewLRU[string, model.Question](config.CacheSize)
	if err != nil {
		return fmt.Errorf("can not create lru cache: %w", err)
	}

	questions := questionDb.New(db, questionCache)

	switch cmd {
	case "list":
		items, err := questions.FetchAll()
		if err != nil {
			return fmt.Errorf("fetch questions: %w", err)
		}
		for _, q := range items {
			_, _ = fmt.Fprintln(os.Stdout, renderQuestion(q))
		}
		_, _ = fmt.Fprintf(os.Stdout, "%d questions\n", len(items))
	case "seed":
		fs := flag.NewFlagSet("seed", flag.ContinueOnError)
		force := fs.Bool("force", false, "replace the store contents")
		file := fs.String("file", config.SeedFile, "YAML seed file, embedded examples when empty")
		if err := fs.Parse(args); err != nil {
			return fmt.Errorf("parse flags: %w", err)
		}

		items, err := seed.Load(*file)
		if err != nil {
			return err
		}

		seeded, err := questions.SeedIfEmpty(items, *force)
		if err != nil {
			return fmt.Errorf("seed questions: %w", err)
		}
		if !seeded {
			_, _ = fmt.Fprintln(os.Stdout, "store is not empty, use -force to replace it")
			return nil
		}
		_, _ = fmt.Fprintf(os.Stdout, "seeded %d questions\n", len(items))
	case "delete":
		if len(args) != 1 {
			return fmt.Errorf("delete expects exactly one question id")
		}

		deleted, err := questions.Delete(args[0])
		if err != nil {
			return fmt.Errorf("delete question: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "deleted: %t\n", deleted)
	default:
		_, _ = fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}

	return nil
}
