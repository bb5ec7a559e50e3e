package cli

import (
	"context"
	"fmt"

	"github.com/mrfop/worktime/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage work categories",
	}

	cmd.AddCommand(
		newCategoryAddCmd(app),
		newCategoryListCmd(app),
		newCategoryRemoveCmd(app),
	)

	return cmd
}

func newCategoryAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := app.Categories.Create(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created category %s (%s)\n", category.Name, formatter.TruncID(category.ID))
			return nil
		},
	}
}

func newCategoryListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := app.Categories.FindAll(context.Background())
			if err != nil {
				return err
			}
			if len(categories) == 0 {
				fmt.Println("No categories found.")
				return nil
			}

			headers := []string{"ID", "NAME"}
			rows := make([][]string, 0, len(categories))
			for _, c := range categories {
				rows = append(rows, []string{formatter.TruncID(c.ID), c.Name})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newCategoryRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a category",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				ok, err := confirmDestructive(
					fmt.Sprintf("Delete category %s?", formatter.TruncID(args[0])))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Cancelled.")
					return nil
				}
			}
			if err := app.Categories.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted category %s\n", formatter.TruncID(args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}
