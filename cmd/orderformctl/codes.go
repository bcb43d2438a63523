package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

const timeLayout = "2006-01-02 15:04"

func codesCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codes",
		Short: "Manage access codes",
	}
	cmd.AddCommand(
		codesCreateCmd(open),
		codesListCmd(open),
		codesDeactivateCmd(open),
		codesDeleteCmd(open),
		codesExportCmd(open),
	)
	return cmd
}

func codesCreateCmd(open opener) *cobra.Command {
	var (
		code      string
		expiresIn time.Duration
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an access code, random unless --code is given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), open, func(rt *runtime) error {
				created, err := rt.Codes.Create(cmd.Context(), code, expiresIn)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), created.Code)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Custom 8 character code")
	cmd.Flags().DurationVar(&expiresIn, "expires-in", 0, "Validity period, e.g. 72h (0 never expires)")
	return cmd
}

func codesListCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List access codes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), open, func(rt *runtime) error {
				codes, err := rt.Codes.List(cmd.Context())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "CODE\tSTATUS\tCREATED\tEXPIRES\tUSED")
				for _, c := range codes {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Code, c.Status, c.CreatedAt.Format(timeLayout), optional(c.ExpiresAt), optional(c.UsedAt))
				}
				return w.Flush()
			})
		},
	}
}

func codesDeactivateCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate CODE",
		Short: "Deactivate an access code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), open, func(rt *runtime) error {
				return rt.Codes.Deactivate(cmd.Context(), args[0])
			})
		},
	}
}

func codesDeleteCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "delete CODE",
		Short: "Delete an access code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), open, func(rt *runtime) error {
				return rt.Codes.Delete(cmd.Context(), args[0])
			})
		},
	}
}

func codesExportCmd(open opener) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every access code to an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd.Context(), open, func(rt *runtime) error {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				if err := rt.Codes.Export(cmd.Context(), f); err != nil {
					_ = f.Close()
					return err
				}
				return f.Close()
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "access-codes.xlsx", "Output file")
	return cmd
}

func optional(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(timeLayout)
}
