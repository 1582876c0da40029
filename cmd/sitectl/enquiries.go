package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/northwind-labs/sitecms/internal/client"
	"github.com/northwind-labs/sitecms/internal/models"
)

func newEnquiriesCmd(a *app) *cobra.Command {
	annotations := map[string]string{routeAnnotation: "/admin/enquiries"}
	cmd := &cobra.Command{
		Use:         "enquiries",
		Aliases:     []string{"enquiry"},
		Short:       "Triage contact-form enquiries",
		Annotations: annotations,
	}

	var status string
	list := &cobra.Command{
		Use:         "list",
		Short:       "List enquiries, newest first",
		Args:        cobra.NoArgs,
		Annotations: annotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			if status != "" && !models.EnquiryStatus(status).Valid() {
				return fmt.Errorf("unknown status %q", status)
			}
			store := client.NewEnquiryStore(a.api, a.opts()...)
			if err := store.FetchAll(commandContext(cmd)); err != nil {
				return err
			}
			var rows [][]string
			for _, e := range store.Items() {
				if status != "" && string(e.Status) != status {
					continue
				}
				rows = append(rows, []string{e.ID, e.CreatedAt.Format("2006-01-02"), e.Name, e.Email, e.Service, string(e.Status)})
			}
			return printTable(a.out, []string{"ID", "DATE", "NAME", "EMAIL", "SERVICE", "STATUS"}, rows)
		},
	}
	list.Flags().StringVar(&status, "status", "", "only show enquiries with this status")

	get := &cobra.Command{
		Use:         "get ID",
		Short:       "Show one enquiry",
		Args:        cobra.ExactArgs(1),
		Annotations: annotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := client.NewEnquiryStore(a.api, a.opts()...).FetchOne(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			return printJSON(a.out, e)
		},
	}

	setStatus := &cobra.Command{
		Use:         "status ID STATUS",
		Short:       "Move an enquiry to new, in-progress, completed or spam",
		Args:        cobra.ExactArgs(2),
		Annotations: annotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := client.NewEnquiryStore(a.api, a.opts()...).UpdateStatus(commandContext(cmd), args[0], models.EnquiryStatus(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Enquiry %s is now %s\n", e.ID, e.Status)
			return nil
		},
	}

	notes := &cobra.Command{
		Use:         "notes ID NOTES",
		Short:       "Replace the internal notes of an enquiry",
		Args:        cobra.ExactArgs(2),
		Annotations: annotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := client.NewEnquiryStore(a.api, a.opts()...).UpdateNotes(commandContext(cmd), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Updated notes on %s\n", e.ID)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:         "delete ID",
		Aliases:     []string{"rm"},
		Short:       "Delete an enquiry",
		Args:        cobra.ExactArgs(1),
		Annotations: annotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.NewEnquiryStore(a.api, a.opts()...).Remove(commandContext(cmd), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, get, setStatus, notes, remove)
	return cmd
}
