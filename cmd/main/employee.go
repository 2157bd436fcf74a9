package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/UnknownOlympus/staffstore/internal/models"
	"github.com/spf13/cobra"
)

func newEmployeeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Create, query and delete employees",
	}

	cmd.AddCommand(
		newSaveCmd(),
		newGetCmd(),
		newListCmd(),
		newDeleteCmd(),
		newFindEmailCmd(),
		newFindNameCmd(),
	)

	return cmd
}

func printJSON(out io.Writer, value any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(value)
}

func parseID(arg string) (int64, error) {
	identifier, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || identifier <= 0 {
		return 0, fmt.Errorf("invalid employee id %q", arg)
	}

	return identifier, nil
}

// withApp runs fn with a loaded application and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	application, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer application.Close()

	return fn(application)
}

func newSaveCmd() *cobra.Command {
	var (
		identifier                 int64
		firstName, lastName, email string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Insert a new employee, or update one when --id is given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				var (
					saved models.Employee
					err   error
				)

				if identifier == 0 {
					saved, err = a.directory.Register(cmd.Context(), firstName, lastName, email)
				} else {
					saved, err = a.directory.Update(cmd.Context(), identifier, func(e *models.Employee) {
						if cmd.Flags().Changed("first-name") {
							e.FirstName = firstName
						}
						if cmd.Flags().Changed("last-name") {
							e.LastName = lastName
						}
						if cmd.Flags().Changed("email") {
							e.Email = email
						}
					})
				}
				if err != nil {
					return err
				}

				return printJSON(cmd.OutOrStdout(), saved)
			})
		},
	}

	cmd.Flags().Int64Var(&identifier, "id", 0, "ID of an existing employee to update")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&email, "email", "", "email address")

	return cmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Print the employee with the given ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identifier, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withApp(cmd, func(a *app) error {
				employee, getErr := a.directory.Get(cmd.Context(), identifier)
				if getErr != nil {
					return getErr
				}

				return printJSON(cmd.OutOrStdout(), employee)
			})
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				all, err := a.directory.List(cmd.Context())
				if err != nil {
					return err
				}

				return printJSON(cmd.OutOrStdout(), all)
			})
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete the employee with the given ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identifier, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withApp(cmd, func(a *app) error {
				return a.directory.Remove(cmd.Context(), identifier)
			})
		},
	}
}

func newFindEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find-email EMAIL",
		Short: "Print the employee with exactly this email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				employee, err := a.directory.ByEmail(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				return printJSON(cmd.OutOrStdout(), employee)
			})
		},
	}
}

func newFindNameCmd() *cobra.Command {
	var native bool

	cmd := &cobra.Command{
		Use:   "find-name FIRST LAST",
		Short: "Print the single employee with this first and last name",
		Args:  cobra.ExactArgs(2), //nolint:mnd // first and last name
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				var (
					employee models.Employee
					err      error
				)

				if native {
					employee, err = a.store.Employees.FindByNativeSQLNamedParam(cmd.Context(), args[0], args[1])
				} else {
					employee, err = a.directory.Lookup(cmd.Context(), args[0], args[1])
				}
				if err != nil {
					return err
				}

				return printJSON(cmd.OutOrStdout(), employee)
			})
		},
	}

	cmd.Flags().BoolVar(&native, "native", false, "use the dialect's native SQL query")

	return cmd
}
