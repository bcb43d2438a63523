package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func adminCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage operator accounts",
	}
	cmd.AddCommand(adminInitCmd(open))
	return cmd
}

func adminInitCmd(open opener) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the operator account or reset its password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), open, func(rt *runtime) error {
				admin, err := rt.Admins.Bootstrap(cmd.Context(), email, password)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "admin %s ready (id %d)\n", admin.Email, admin.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Operator email")
	cmd.Flags().StringVar(&password, "password", "", "Operator password (at least 8 characters)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
