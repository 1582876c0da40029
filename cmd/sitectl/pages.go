package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/northwind-labs/sitecms/internal/chart"
	"github.com/northwind-labs/sitecms/internal/client"
	"github.com/northwind-labs/sitecms/internal/models"
)

// documentCommands builds the get and set subcommands of a singleton page.
func documentCommands[T any](a *app, use, route string, open func(a *app) *client.Document[T]) *cobra.Command {
	annotations := map[string]string{routeAnnotation: route}
	cmd := &cobra.Command{
		Use:         use,
		Short:       "Show or replace the " + use + " page content",
		Annotations: annotations,
	}

	get := &cobra.Command{
		Use:         "get",
		Short:       "Print the content as JSON",
		Args:        cobra.NoArgs,
		Annotations: annotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := open(a).Fetch(commandContext(cmd))
			if err != nil {
				return err
			}
			return printJSON(a.out, doc)
		},
	}

	var file string
	set := &cobra.Command{
		Use:         "set",
		Short:       "Replace the content from a JSON file",
		Args:        cobra.NoArgs,
		Annotations: annotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload T
			if err := readPayload(file, &payload); err != nil {
				return err
			}
			if _, err := open(a).Update(commandContext(cmd), payload); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Updated %s\n", use)
			return nil
		},
	}
	set.Flags().StringVarP(&file, "file", "f", "-", "JSON file, - for stdin")

	cmd.AddCommand(get, set)
	return cmd
}

func newAboutCmd(a *app) *cobra.Command {
	return documentCommands(a, "about", "/admin/about", func(a *app) *client.Document[models.AboutContent] {
		return client.NewAboutStore(a.api, a.opts()...)
	})
}

func newContactCmd(a *app) *cobra.Command {
	return documentCommands(a, "contact", "/admin/contact", func(a *app) *client.Document[models.ContactInfo] {
		return client.NewContactStore(a.api, a.opts()...)
	})
}

func newDashboardCmd(a *app) *cobra.Command {
	annotations := map[string]string{routeAnnotation: client.DashboardRoute}
	cmd := &cobra.Command{
		Use:         "dashboard",
		Short:       "Show the dashboard summary",
		Args:        cobra.NoArgs,
		Annotations: annotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := client.NewDashboardStore(a.api, a.opts()...).Fetch(commandContext(cmd))
			if err != nil {
				return err
			}
			rows := [][]string{
				{"Visitors", strconv.Itoa(stats.Visitors.Total), stats.Visitors.Change},
				{"Enquiries", strconv.Itoa(stats.Enquiries.Total), stats.Enquiries.Change},
				{"Projects", strconv.Itoa(stats.Projects.Total), stats.Projects.Change},
				{"Conversion rate", strconv.FormatFloat(stats.ConversionRate.Rate, 'f', 1, 64) + "%", stats.ConversionRate.Change},
			}
			if err := printTable(a.out, []string{"METRIC", "TOTAL", "CHANGE"}, rows); err != nil {
				return err
			}
			if len(stats.EnquiryTypes) == 0 {
				fmt.Fprintln(a.out, chart.NoEnquiryData)
				return nil
			}
			fmt.Fprintln(a.out)
			types := make([][]string, len(stats.EnquiryTypes))
			for i, t := range stats.EnquiryTypes {
				types[i] = []string{t.Label, strconv.FormatFloat(t.Value, 'f', 1, 64) + "%"}
			}
			return printTable(a.out, []string{"SERVICE", "SHARE"}, types)
		},
	}

	var (
		output string
		width  int
	)
	chartCmd := &cobra.Command{
		Use:         "chart visitors|enquiries",
		Short:       "Export a dashboard chart as PNG",
		Args:        cobra.ExactArgs(1),
		ValidArgs:   []string{"visitors", "enquiries"},
		Annotations: annotations,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if name != "visitors" && name != "enquiries" {
				return fmt.Errorf("unknown chart %q", name)
			}
			if output == "" {
				output = name + ".png"
			}
			path := fmt.Sprintf("/api/admin/dashboard/charts/%s.png?width=%d", name, width)
			data, contentType, err := a.api.Raw(commandContext(cmd), path)
			if err != nil {
				var se *client.StatusError
				if errors.As(err, &se) && se.Message != "" {
					return fmt.Errorf("%s", se.Message)
				}
				return fmt.Errorf("failed to fetch %s chart: %w", name, err)
			}
			if contentType != "image/png" {
				return fmt.Errorf("unexpected content type %q", contentType)
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Wrote %s (%d bytes)\n", output, len(data))
			return nil
		},
	}
	chartCmd.Flags().StringVarP(&output, "output", "o", "", "output file, defaults to NAME.png")
	chartCmd.Flags().IntVar(&width, "width", 800, "chart width in pixels")

	cmd.AddCommand(chartCmd)
	return cmd
}
