package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pageza/cookbook/backend/internal/catalog"
	"github.com/pageza/cookbook/backend/internal/media"
	"github.com/pageza/cookbook/backend/internal/model"
	"github.com/pageza/cookbook/backend/internal/types"
)

const gridColumns = 3

func newRecipesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "Browse the recipe catalog",
	}
	cmd.AddCommand(newRecipesListCommand(ctx))
	cmd.AddCommand(newRecipesShowCommand(ctx))
	cmd.AddCommand(newRecipesImageCommand(ctx))
	return cmd
}

func newRecipesListCommand(ctx *commandContext) *cobra.Command {
	q := catalog.DefaultQuery()
	var sortFlag string
	var viewFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes matching a search, category and difficulty",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, api, err := ctx.ensureSession()
			if err != nil {
				return err
			}
			view := catalog.ViewMode(viewFlag)
			if view != catalog.ViewGrid && view != catalog.ViewList {
				return fmt.Errorf("unknown view %q (want grid or list)", viewFlag)
			}
			q.Sort = catalog.SortKey(sortFlag)

			recipes, err := api.ListRecipes(cmd.Context(), q)
			if err != nil {
				return err
			}
			if len(recipes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recipes found")
				return nil
			}

			favorite := map[string]bool{}
			if session.Snapshot().SignedIn() {
				if ids, err := api.Favorites(cmd.Context()); err == nil {
					for _, id := range ids {
						favorite[id] = true
					}
				}
			}

			if view == catalog.ViewGrid {
				fmt.Fprintln(cmd.OutOrStdout(), renderRecipeGrid(recipes, favorite))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), renderRecipeList(recipes, favorite))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&q.SearchTerm, "search", "s", "", "Search title, description and category")
	cmd.Flags().StringVar(&q.Category, "category", catalog.All, "Category name, or all")
	cmd.Flags().StringVar(&q.Difficulty, "difficulty", catalog.All, "easy, medium, hard, or all")
	cmd.Flags().StringVar(&sortFlag, "sort", string(catalog.SortByName), "Sort by name, time or difficulty")
	cmd.Flags().StringVar(&viewFlag, "view", string(catalog.ViewList), "Display as list or grid")
	return cmd
}

func newRecipesShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a recipe with its ingredients and steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, api, err := ctx.ensureSession()
			if err != nil {
				return err
			}
			recipe, err := api.GetRecipe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatRecipe(*recipe))
			return nil
		},
	}
}

func newRecipesImageCommand(ctx *commandContext) *cobra.Command {
	var file string
	var maxBytes int64

	cmd := &cobra.Command{
		Use:   "image <id>",
		Short: "Embed a local image file in a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, api, err := ctx.ensureSession()
			if err != nil {
				return err
			}
			if !session.Snapshot().SignedIn() {
				return errNotSignedIn
			}

			enc := media.NewEncoder(nil).WithMaxBytes(maxBytes)
			var dataURL string
			if file == "-" {
				dataURL, err = enc.EncodeReader(cmd.InOrStdin())
			} else {
				dataURL, err = enc.EncodeFile(file)
			}
			if err != nil {
				return err
			}

			recipe, err := api.GetRecipe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			req := recipeRequest(*recipe)
			req.ImageURL = dataURL
			updated, err := api.UpdateRecipe(cmd.Context(), recipe.ID, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Image set on %s (%s)\n", updated.Title, describeImage(updated.ImageURL))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Image file to embed, or - for stdin")
	cmd.Flags().Int64Var(&maxBytes, "max-bytes", media.DefaultMaxBytes, "Largest image accepted")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func recipeRequest(r model.Recipe) types.RecipeRequest {
	return types.RecipeRequest{
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		PrepTime:    r.PrepTime,
		CookTime:    r.CookTime,
		Servings:    r.Servings,
		Difficulty:  r.Difficulty,
		Category:    r.Category,
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
	}
}

func describeImage(imageURL string) string {
	if media.IsDataURL(imageURL) {
		return fmt.Sprintf("embedded, %d bytes", len(imageURL))
	}
	return imageURL
}

func renderRecipeList(recipes []model.Recipe, favorite map[string]bool) string {
	rows := make([][]string, 0, len(recipes))
	for _, r := range recipes {
		rows = append(rows, []string{
			star(favorite[r.ID]) + r.Title,
			r.Category,
			string(r.Difficulty),
			strconv.Itoa(r.TotalTime()) + " min",
			strconv.Itoa(r.Servings),
			r.ID,
		})
	}
	return renderTable(
		[]string{"Title", "Category", "Difficulty", "Time", "Servings", "ID"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	)
}

func renderRecipeGrid(recipes []model.Recipe, favorite map[string]bool) string {
	rows := make([][]string, 0, (len(recipes)+gridColumns-1)/gridColumns)
	for i := 0; i < len(recipes); i += gridColumns {
		row := make([]string, 0, gridColumns)
		for _, r := range recipes[i:min(i+gridColumns, len(recipes))] {
			row = append(row, fmt.Sprintf("%s%s\n%s · %s\n%d min\n%s",
				star(favorite[r.ID]), r.Title, r.Category, r.Difficulty, r.TotalTime(), r.ID))
		}
		rows = append(rows, row)
	}
	return renderTable(make([]string, gridColumns), rows, nil)
}

func formatRecipe(r model.Recipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", r.Title, strings.Repeat("=", len([]rune(r.Title))))
	if r.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", r.Description)
	}
	fmt.Fprintf(&b, "Category:   %s\n", r.Category)
	fmt.Fprintf(&b, "Difficulty: %s\n", r.Difficulty)
	fmt.Fprintf(&b, "Time:       %d min (prep %d, cook %d)\n", r.TotalTime(), r.PrepTime, r.CookTime)
	fmt.Fprintf(&b, "Servings:   %d\n", r.Servings)
	if r.ImageURL != "" {
		fmt.Fprintf(&b, "Image:      %s\n", describeImage(r.ImageURL))
	}
	b.WriteString("\n")

	rows := make([][]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		rows = append(rows, []string{ing.Quantity, ing.Name})
	}
	b.WriteString(renderTable([]string{"Quantity", "Ingredient"}, rows, []columnAlignment{alignRight, alignLeft}))
	b.WriteString("\n\n")

	for _, st := range r.Steps {
		fmt.Fprintf(&b, "%d. %s\n", st.Order, st.Description)
	}
	return b.String()
}

func star(on bool) string {
	if on {
		return "★ "
	}
	return ""
}

func newCategoriesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List recipe categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, api, err := ctx.ensureSession()
			if err != nil {
				return err
			}
			cats, err := api.Categories(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(cats))
			for _, c := range cats {
				rows = append(rows, []string{strconv.Itoa(c.Order), c.Name})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"#", "Category"}, rows, []columnAlignment{alignRight, alignLeft}))
			return nil
		},
	}
}
