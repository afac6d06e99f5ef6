package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/astro-web3/hrdesk-console/internal/app/pages"
	"github.com/astro-web3/hrdesk-console/internal/domain/access"
)

func newPhonebookCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "phonebook [query]",
		Short: "Search the phonebook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.require(access.PhonebookItem); err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			view, err := pages.NewPhonebook(e.gateway).Load(cmd.Context(), query)
			if err != nil {
				return err
			}

			return table(cmd.OutOrStdout(), func(w io.Writer) {
				fmt.Fprintln(w, "NAME\tDEPARTMENT\tPOSITION\tINTERNAL\tEXTERNAL\tEMAIL")
				for _, row := range view.Rows {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
						row.FullName, row.Department, row.Position, row.InternalPhone, row.ExternalPhone, row.Email)
				}
			})
		},
	}
}

func newBirthdaysCmd(e *env) *cobra.Command {
	var month int

	cmd := &cobra.Command{
		Use:   "birthdays",
		Short: "List birthdays in a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := e.require(access.BirthdaysItem); err != nil {
				return err
			}

			view, err := pages.NewBirthdays(e.gateway, nil).Load(cmd.Context(), month)
			if err != nil {
				return err
			}

			return table(cmd.OutOrStdout(), func(w io.Writer) {
				fmt.Fprintln(w, "NAME\tBIRTHDAY")
				for _, row := range view.Rows {
					fmt.Fprintf(w, "%s\t%s\n", row.FullName, row.Birthday)
				}
			})
		},
	}

	cmd.Flags().IntVarP(&month, "month", "m", 0, "Month number, 1-12 (default current month)")
	return cmd
}

func newAuditCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: "Show the audit log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := e.require(access.AuditItem); err != nil {
				return err
			}

			rows, err := pages.NewAudit(e.gateway).Load(cmd.Context())
			if err != nil {
				return err
			}

			return table(cmd.OutOrStdout(), func(w io.Writer) {
				fmt.Fprintln(w, "WHEN\tUSER\tACTION\tENTITY\tDETAILS")
				for _, row := range rows {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", row.When, row.User, row.Action, row.Entity, row.Details)
				}
			})
		},
	}
}

func table(out io.Writer, write func(w io.Writer)) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	write(w)
	return w.Flush()
}
