package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/database"
	"github.com/pageza/cookbook/backend/internal/logging"
	"github.com/pageza/cookbook/backend/internal/media"
	"github.com/pageza/cookbook/backend/internal/service"
	"github.com/pageza/cookbook/backend/internal/store"
)

func main() {
	file := flag.String("file", "", "YAML seed file (defaults to the embedded recipes)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *file); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, file string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	data := embeddedRecipes
	if file != "" {
		if data, err = os.ReadFile(file); err != nil {
			return fmt.Errorf("read seed file: %w", err)
		}
	}
	recipes, err := parseSeed(data)
	if err != nil {
		return err
	}

	db, err := database.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)
	if err := database.RunMigrations(ctx, db, logger); err != nil {
		return err
	}

	svc := service.NewRecipeService(store.NewGormRecipeStore(db), media.NewEncoder(nil), nil, logger)
	result, err := seed(ctx, svc, recipes)
	if err != nil {
		return err
	}
	logger.Info("seeding complete", "created", result.Created, "skipped", result.Skipped)
	return nil
}
