package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var serverFlag string
	var sessionFlag string

	ctx := newCommandContext(&serverFlag, &sessionFlag)

	rootCmd := &cobra.Command{
		Use:           "cookbook",
		Short:         "Browse recipes and manage favorites",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "API base URL (default $COOKBOOK_API_URL or "+defaultServer()+")")
	rootCmd.PersistentFlags().StringVar(&sessionFlag, "session", "", "Session file path")

	rootCmd.AddCommand(newRecipesCommand(ctx))
	rootCmd.AddCommand(newCategoriesCommand(ctx))
	rootCmd.AddCommand(newRegisterCommand(ctx))
	rootCmd.AddCommand(newLoginCommand(ctx))
	rootCmd.AddCommand(newLogoutCommand(ctx))
	rootCmd.AddCommand(newWhoamiCommand(ctx))
	rootCmd.AddCommand(newFavoritesCommand(ctx))

	return rootCmd
}
