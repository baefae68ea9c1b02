package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/bloops-games/quiz/internal/buildinfo"
	"github.com/bloops-games/quiz/internal/cache"
	"github.com/bloops-games/quiz/internal/database"
	questionDb "github.com/bloops-games/quiz/internal/database/question/database"
	"github.com/bloops-games/quiz/internal/database/question/model"
	"github.com/bloops-games/quiz/internal/database/question/seed"
	"github.com/bloops-games/quiz/internal/logging"
	"github.com/bloops-games/quiz/internal/quiz"
	"github.com/bloops-games/quiz/internal/quiz/api"
	"github.com/bloops-games/quiz/internal/server"
	"github.com/bloops-games/quiz/internal/shutdown"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/sync/errgroup"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(os.Stdout, buildinfo.GreetingCLI, buildinfo.ProjectName, buildinfo.ProjectVersion, buildinfo.GithubURL)

	ctx, done := shutdown.New()
	defer done()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.FromContext(ctx).Fatalf("loading .env: %v", err)
	}

	config := quiz.Config{}
	if err := envconfig.Process("", &config); err != nil {
		logging.FromContext(ctx).Fatalf("processing the config: %v", err)
	}

	logger := logging.NewLogger(config.Debug)
	ctx = logging.WithLogger(ctx, logger)

	if err := realMain(ctx, &config); err != nil {
		logger.Fatalf("main.realMain: %v", err)
	}
}

func realMain(ctx context.Context, config *quiz.Config) error {
	logger := logging.FromContext(ctx)

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
	seedFn := func() ([]model.Question, error) { return seed.Load(config.SeedFile) }

	items, err := seedFn()
	if err != nil {
		return fmt.Errorf("load seed questions: %w", err)
	}

	seeded, err := questions.SeedIfEmpty(items, false)
	if err != nil {
		return fmt.Errorf("seed questions: %w", err)
	}
	if seeded {
		logger.Infof("question store was empty, seeded %d questions", len(items))
	}

	manager := quiz.NewManager(config, questions, nil)

	srv, err := server.New(config.Port)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	handler := api.New(ctx, config, manager, questions, seedFn)

	g, gCtx := errgroup.WithContext(ctx)

	// Open push streams end only once their session is destroyed.
	g.Go(func() error {
		<-gCtx.Done()
		manager.Shutdown(gCtx)
		return nil
	})

	g.Go(func() error {
		return srv.ServeHTTP(gCtx, &http.Server{Handler: handler.Routes(gCtx)})
	})

	if config.ProfPort != "" {
		profSrv, err := server.New(config.ProfPort)
		if err != nil {
			return fmt.Errorf("pprof server.New: %w", err)
		}

		g.Go(func() error {
			return profSrv.ServeHTTP(gCtx, &http.Server{Handler: http.DefaultServeMux})
		})
	}

	return g.Wait()
}
