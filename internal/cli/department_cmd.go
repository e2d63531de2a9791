package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/crewplan/internal/cli/formatter"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/spf13/cobra"
)

func newDepartmentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "department",
		Aliases: []string{"dept"},
		Short:   "Manage departments",
	}

	cmd.AddCommand(
		newDepartmentAddCmd(app),
		newDepartmentListCmd(app),
		newDepartmentUpdateCmd(app),
		newDepartmentDeactivateCmd(app),
	)

	return cmd
}

func newDepartmentAddCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new department",
		RunE: func(cmd *cobra.Command, args []string) error {
			d := &domain.Department{Name: name, Description: description}
			if err := app.Departments.Create(context.Background(), d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created department %s (%s)\n", d.Name, d.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Department name")
	cmd.Flags().StringVar(&description, "description", "", "Department description")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newDepartmentListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List departments",
		RunE: func(cmd *cobra.Command, args []string) error {
			departments, err := app.Departments.List(context.Background(), all)
			if err != nil {
				return err
			}
			if len(departments) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No departments found.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatDepartmentList(departments))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive departments")

	return cmd
}

func newDepartmentUpdateCmd(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a department",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveDepartmentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			d, err := app.Departments.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				d.Name = name
			}
			if cmd.Flags().Changed("description") {
				d.Description = description
			}

			if err := app.Departments.Update(ctx, d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated department %s\n", d.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Department name")
	cmd.Flags().StringVar(&description, "description", "", "Department description")

	return cmd
}

func newDepartmentDeactivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate ID",
		Short: "Deactivate a department",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveDepartmentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Departments.Deactivate(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deactivated department %s\n", id)
			return nil
		},
	}
}
