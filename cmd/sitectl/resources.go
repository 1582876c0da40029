package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/northwind-labs/sitecms/internal/client"
	"github.com/northwind-labs/sitecms/internal/models"
)

// resource describes how one collection is exposed on the command line
type resource[T client.Record] struct {
	use     string
	aliases []string
	route   string
	open    func(a *app) *client.Collection[T]
	headers []string
	row     func(T) []string
}

func (res resource[T]) command(a *app) *cobra.Command {
	annotations := map[string]string{routeAnnotation: res.route}
	cmd := &cobra.Command{
		Use:         res.use,
		Aliases:     res.aliases,
		Short:       "Manage " + res.use,
		Annotations: annotations,
	}

	list := &cobra.Command{
		Use:         "list",
		Short:       "List " + res.use,
		Args:        cobra.NoArgs,
		Annotations: annotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			coll := res.open(a)
			if err := coll.FetchAll(commandContext(cmd)); err != nil {
				return err
			}
			items := coll.Items()
			rows := make([][]string, len(items))
			for i, item := range items {
				rows[i] = res.row(item)
			}
			return printTable(a.out, res.headers, rows)
		},
	}

	get := &cobra.Command{
		Use:         "get ID",
		Short:       "Show one record as JSON",
		Args:        cobra.ExactArgs(1),
		Annotations: annotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := res.open(a).FetchOne(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			return printJSON(a.out, item)
		},
	}

	var file string
	create := &cobra.Command{
		Use:         "create",
		Short:       "Create a record from a JSON file",
		Args:        cobra.NoArgs,
		Annotations: annotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload T
			if err := readPayload(file, &payload); err != nil {
				return err
			}
			item, err := res.open(a).Create(commandContext(cmd), payload)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created %s\n", item.GetID())
			return nil
		},
	}
	create.Flags().StringVarP(&file, "file", "f", "-", "JSON file, - for stdin")

	update := &cobra.Command{
		Use:         "update ID",
		Short:       "Replace a record from a JSON file",
		Args:        cobra.ExactArgs(1),
		Annotations: annotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload T
			if err := readPayload(file, &payload); err != nil {
				return err
			}
			item, err := res.open(a).Update(commandContext(cmd), args[0], payload, nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Updated %s\n", item.GetID())
			return nil
		},
	}
	update.Flags().StringVarP(&file, "file", "f", "-", "JSON file, - for stdin")

	remove := &cobra.Command{
		Use:         "delete ID",
		Aliases:     []string{"rm"},
		Short:       "Delete a record",
		Args:        cobra.ExactArgs(1),
		Annotations: annotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := res.open(a).Remove(commandContext(cmd), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, get, create, update, remove)
	return cmd
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func newProjectsCmd(a *app) *cobra.Command {
	return resource[models.Project]{
		use:   "projects",
		route: "/admin/projects",
		open: func(a *app) *client.Collection[models.Project] {
			return client.NewProjectStore(a.api, a.opts()...).Collection
		},
		headers: []string{"ID", "TITLE", "CATEGORY", "STATUS", "FEATURED"},
		row: func(p models.Project) []string {
			return []string{p.ID, p.Title, p.Category, string(p.Status), yesNo(p.Featured)}
		},
	}.command(a)
}

func newCaseStudiesCmd(a *app) *cobra.Command {
	return resource[models.CaseStudy]{
		use:     "case-studies",
		aliases: []string{"case-study", "cs"},
		route:   "/admin/case-studies",
		open: func(a *app) *client.Collection[models.CaseStudy] {
			return client.NewCaseStudyStore(a.api, a.opts()...).Collection
		},
		headers: []string{"ID", "TITLE", "CLIENT", "STATUS", "TEAM"},
		row: func(c models.CaseStudy) []string {
			return []string{c.ID, c.Title, c.Client, string(c.Status), strconv.Itoa(c.TeamSize)}
		},
	}.command(a)
}
