package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/cookbook/backend/internal/client"
)

var errNotSignedIn = errors.New("not signed in: run `cookbook login` first")

func newFavoritesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage favorite recipes",
	}
	cmd.AddCommand(newFavoritesListCommand(ctx))
	cmd.AddCommand(newFavoriteMutationCommand(ctx, "add", "Add a recipe to the favorites", func(c *cobra.Command, api *client.Client, id string) (bool, error) {
		return true, api.AddFavorite(c.Context(), id)
	}))
	cmd.AddCommand(newFavoriteMutationCommand(ctx, "remove", "Remove a recipe from the favorites", func(c *cobra.Command, api *client.Client, id string) (bool, error) {
		return false, api.RemoveFavorite(c.Context(), id)
	}))
	cmd.AddCommand(newFavoriteMutationCommand(ctx, "toggle", "Add or remove a recipe", func(c *cobra.Command, api *client.Client, id string) (bool, error) {
		return api.ToggleFavorite(c.Context(), id)
	}))
	return cmd
}

func newFavoritesListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List favorite recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, api, err := ctx.ensureSession()
			if err != nil {
				return err
			}
			if !session.Snapshot().SignedIn() {
				return errNotSignedIn
			}
			recipes, err := api.FavoriteRecipes(cmd.Context())
			if err != nil {
				return err
			}
			if len(recipes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No favorites yet")
				return nil
			}
			favorite := make(map[string]bool, len(recipes))
			for _, r := range recipes {
				favorite[r.ID] = true
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRecipeList(recipes, favorite))
			return nil
		},
	}
}

func newFavoriteMutationCommand(ctx *commandContext, use, short string, run func(*cobra.Command, *client.Client, string) (bool, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <recipe-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, api, err := ctx.ensureSession()
			if err != nil {
				return err
			}
			if !session.Snapshot().SignedIn() {
				return errNotSignedIn
			}
			now, err := run(cmd, api, args[0])
			if client.IsUnauthorized(err) {
				return fmt.Errorf("session expired: run `cookbook login` again: %w", err)
			}
			if err != nil {
				return err
			}
			if now {
				fmt.Fprintf(cmd.OutOrStdout(), "★ %s is a favorite\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is no longer a favorite\n", args[0])
			}
			return nil
		},
	}
}
