package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/crewplan/internal/cli/formatter"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/spf13/cobra"
)

func newEmployeeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employee",
		Aliases: []string{"emp"},
		Short:   "Manage the employee roster",
	}

	cmd.AddCommand(
		newEmployeeAddCmd(app),
		newEmployeeListCmd(app),
		newEmployeeUpdateCmd(app),
		newEmployeeDeactivateCmd(app),
		newEmployeeWorkloadCmd(app),
	)

	return cmd
}

func newEmployeeAddCmd(app *App) *cobra.Command {
	var first, last, email, department, title, hireDate string
	var hours float64
	var skills []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee to the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			deptID, err := resolveDepartmentID(ctx, app, department)
			if err != nil {
				return err
			}

			e := &domain.Employee{
				FirstName:    first,
				LastName:     last,
				Email:        email,
				DepartmentID: deptID,
				JobTitle:     title,
				HoursPerWeek: hours,
				Skills:       skills,
			}

			if hireDate != "" {
				hired, err := time.Parse(domain.DateLayout, hireDate)
				if err != nil {
					return fmt.Errorf("invalid hire date %q: %w", hireDate, err)
				}
				e.HireDate = &hired
			}

			if err := app.Employees.Create(ctx, e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s, %sh/week)\n",
				e.FullName(), department, formatHoursPlain(e.HoursPerWeek))
			return nil
		},
	}

	cmd.Flags().StringVar(&first, "first", "", "First name")
	cmd.Flags().StringVar(&last, "last", "", "Last name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&department, "department", "", "Department (name or ID)")
	cmd.Flags().StringVar(&title, "title", "", "Job title")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Weekly capacity in hours (default 40)")
	cmd.Flags().StringSliceVar(&skills, "skill", nil, "Skill token (repeatable)")
	cmd.Flags().StringVar(&hireDate, "hired", "", "Hire date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("first")
	_ = cmd.MarkFlagRequired("last")
	_ = cmd.MarkFlagRequired("department")

	return cmd
}

func newEmployeeListCmd(app *App) *cobra.Command {
	var all bool
	var department string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var employees []*domain.Employee
			var err error
			if department != "" {
				deptID, rerr := resolveDepartmentID(ctx, app, department)
				if rerr != nil {
					return rerr
				}
				employees, err = app.Employees.ListByDepartment(ctx, deptID)
			} else {
				employees, err = app.Employees.List(ctx, all)
			}
			if err != nil {
				return err
			}

			if len(employees) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No employees found.")
				return nil
			}

			names, err := departmentNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatEmployeeList(employees, names))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include deactivated employees")
	cmd.Flags().StringVar(&department, "department", "", "Only one department (name or ID)")

	return cmd
}

func newEmployeeUpdateCmd(app *App) *cobra.Command {
	var first, last, email, department, title string
	var hours float64
	var skills []string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveEmployeeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Employees.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("first") {
				e.FirstName = first
			}
			if cmd.Flags().Changed("last") {
				e.LastName = last
			}
			if cmd.Flags().Changed("email") {
				e.Email = email
			}
			if cmd.Flags().Changed("title") {
				e.JobTitle = title
			}
			if cmd.Flags().Changed("hours") {
				e.HoursPerWeek = hours
			}
			if cmd.Flags().Changed("skill") {
				e.Skills = skills
			}
			if cmd.Flags().Changed("department") {
				deptID, rerr := resolveDepartmentID(ctx, app, department)
				if rerr != nil {
					return rerr
				}
				e.DepartmentID = deptID
			}

			if err := app.Employees.Update(ctx, e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", e.FullName())
			return nil
		},
	}

	cmd.Flags().StringVar(&first, "first", "", "First name")
	cmd.Flags().StringVar(&last, "last", "", "Last name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&department, "department", "", "Department (name or ID)")
	cmd.Flags().StringVar(&title, "title", "", "Job title")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Weekly capacity in hours")
	cmd.Flags().StringSliceVar(&skills, "skill", nil, "Replace skills (repeatable)")

	return cmd
}

func newEmployeeDeactivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate ID",
		Short: "Deactivate an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveEmployeeID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Employees.Deactivate(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deactivated employee %s\n", id)
			return nil
		},
	}
}

func newEmployeeWorkloadCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "workload ID",
		Short: "Show an employee's weekly workload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveEmployeeID(ctx, app, args[0])
			if err != nil {
				return err
			}

			fromWeek := domain.WeekStart(time.Now())
			if from != "" {
				if fromWeek, err = parseWeek(from); err != nil {
					return err
				}
			}
			toWeek := fromWeek.AddDate(0, 0, 7*11)
			if to != "" {
				if toWeek, err = parseWeek(to); err != nil {
					return err
				}
			}

			workload, err := app.Employees.GetWorkload(ctx, id, fromWeek, toWeek)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatWorkload(workload))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First week (YYYY-MM-DD, defaults to this week)")
	cmd.Flags().StringVar(&to, "to", "", "Last week (YYYY-MM-DD, defaults to 12 weeks out)")

	return cmd
}
