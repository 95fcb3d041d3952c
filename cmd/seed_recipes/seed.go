package main

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pageza/cookbook/backend/internal/catalog"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/service"
)

//go:embed recipes.yaml
var embeddedRecipes []byte

type seedFile struct {
	Recipes []model.Recipe `yaml:"recipes"`
}

type seedResult struct {
	Created int
	Skipped int
}

func parseSeed(data []byte) ([]model.Recipe, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return f.Recipes, nil
}

// seed creates every recipe whose title is not in the catalog yet. Recipes go
// through the same commit filter and validation as API writes.
func seed(ctx context.Context, svc *service.RecipeService, recipes []model.Recipe) (seedResult, error) {
	existing, err := svc.Browse(ctx, catalog.DefaultQuery())
	if err != nil {
		return seedResult{}, err
	}
	titles := make(map[string]bool, len(existing))
	for _, r := range existing {
		titles[strings.ToLower(r.Title)] = true
	}

	var result seedResult
	for _, r := range recipes {
		key := strings.ToLower(r.Title)
		if titles[key] {
			result.Skipped++
			continue
		}
		if _, err := svc.Create(ctx, r, nil); err != nil {
			return result, fmt.Errorf("seed %q: %w", r.Title, err)
		}
		titles[key] = true
		result.Created++
	}
	return result, nil
}
