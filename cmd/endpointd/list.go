package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/sagarc03/endpoint"
	endpointhttp "github.com/sagarc03/endpoint/http"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the served routes and their per-method policy",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		routes, err := newRoutes(nil)
		if err != nil {
			return fmt.Errorf("build routes: %w", err)
		}

		if err := renderRoutes(routes, cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("render routes: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}

// routeRows lists every bound method of every route.
func routeRows(routes []endpointhttp.Route) [][]string {
	var rows [][]string
	for _, route := range routes {
		for _, method := range endpointhttp.Methods {
			if !route.Dispatcher.Bound(method) {
				continue
			}
			cfg := route.Dispatcher.Config(method)
			rows = append(rows, []string{route.Pattern, method, roleName(cfg.Role), bodyName(method, cfg.Body)})
		}
	}
	return rows
}

func roleName(role endpoint.Role) string {
	if role < 0 {
		return "anonymous"
	}
	return strconv.Itoa(int(role))
}

func bodyName(method string, enc endpointhttp.BodyEncoding) string {
	switch method {
	case "POST", "PUT", "PATCH":
	default:
		return "-"
	}

	switch enc := enc.(type) {
	case endpointhttp.FormBody:
		return "form"
	case endpointhttp.JSONBody:
		if enc.Schema != nil {
			return "json+schema"
		}
	}
	return "json"
}

func renderRoutes(routes []endpointhttp.Route, w io.Writer) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewBlueprint(
			tw.Rendition{
				Borders: tw.BorderNone,
				Symbols: tw.NewSymbols(tw.StyleASCII),
				Settings: tw.Settings{
					Lines: tw.Lines{
						ShowHeaderLine: tw.Off,
						ShowFooterLine: tw.Off,
						ShowTop:        tw.Off,
						ShowBottom:     tw.Off,
					},
					Separators: tw.Separators{
						ShowHeader:     tw.Off,
						ShowFooter:     tw.Off,
						BetweenRows:    tw.Off,
						BetweenColumns: tw.Off,
					},
				},
			},
		)),
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
	)

	table.Header([]string{"Pattern", "Method", "Role", "Body"})
	if err := table.Bulk(routeRows(routes)); err != nil {
		return err
	}

	return table.Render()
}
