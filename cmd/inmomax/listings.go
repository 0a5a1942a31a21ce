package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"inmomax/internal/filters"
	"inmomax/internal/model"
)

// printNavigator stands in for the browser history: every pushed query is
// printed.
type printNavigator struct {
	out io.Writer
}

func (n printNavigator) Push(_ context.Context, q url.Values) error {
	_, err := fmt.Fprintf(n.out, "Filtros: ?%s\n", q.Encode())
	return err
}

var listFlags = []struct {
	name  string
	field filters.Field
	usage string
}{
	{"tipo", filters.FieldType, "property type"},
	{"operacion", filters.FieldOperation, "venta, alquiler or alquiler-temporal"},
	{"ubicacion", filters.FieldLocation, "neighbourhood or city"},
	{"precio-min", filters.FieldPriceMin, "minimum price"},
	{"precio-max", filters.FieldPriceMax, "maximum price"},
	{"habitaciones", filters.FieldRooms, "minimum rooms: 1, 2, 3, 4 or 5+"},
	{"superficie-min", filters.FieldSurfaceMin, "minimum surface in m²"},
	{"superficie-max", filters.FieldSurfaceMax, "maximum surface in m²"},
	{"antiguedad", filters.FieldAge, "age bucket: nueva, 0-5, 5-10, 10-20, 20+"},
	{"orden", filters.FieldSort, "sort order"},
}

func newListCmd(a *app) *cobra.Command {
	var (
		amenities []string
		page      int
		limit     int
	)

	cmd := &cobra.Command{
		Use:     "propiedades",
		Aliases: []string{"listar"},
		Short:   "List properties matching the given filters",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			sync := filters.NewSynchronizer(url.Values{}, printNavigator{out: out}, a.catalog())
			if limit > 0 {
				sync.WithPageSize(limit)
			}

			for _, f := range listFlags {
				if !cmd.Flags().Changed(f.name) {
					continue
				}
				v, _ := cmd.Flags().GetString(f.name)
				if err := sync.Edit(f.field, v); err != nil {
					return err
				}
			}
			for _, name := range amenities {
				if !isAmenity(name) {
					return fmt.Errorf("unknown amenity %q", name)
				}
				sync.ToggleAmenity(filters.Amenity(name))
			}
			if err := filters.Validate(sync.Draft()); err != nil {
				return err
			}

			ctx := cmd.Context()
			if _, err := sync.Apply(ctx); err != nil {
				return err
			}
			if page > 1 {
				if err := sync.SetPage(ctx, page); err != nil {
					return err
				}
			}

			res := sync.Results()
			fmt.Fprintf(out, "Mostrando %d de %d propiedades (página %d de %d)\n",
				len(res.Properties), res.Total, res.Page, res.TotalPages)
			return printProperties(out, res.Properties)
		},
	}

	for _, f := range listFlags {
		cmd.Flags().String(f.name, "", f.usage)
	}
	cmd.Flags().StringSliceVar(&amenities, "amenidad", nil, "required amenity, repeatable")
	cmd.Flags().IntVar(&page, "pagina", 1, "results page")
	cmd.Flags().IntVar(&limit, "limite", filters.DefaultPageSize, "results per page")
	return cmd
}

func newFeaturedCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "destacadas",
		Short: "List featured properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			props, err := a.catalog().Featured(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return printProperties(cmd.OutOrStdout(), props)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 3, "number of properties")
	return cmd
}

func newDetailCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "propiedad <id>",
		Short: "Show one property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid property id %q", args[0])
			}
			p, err := a.catalog().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "#%d %s\n", p.ID, p.Title)
			fmt.Fprintf(out, "%s | %s | %s\n", p.Type, p.Operation, formatPrice(p.Price))
			fmt.Fprintf(out, "%s\n", p.Location)
			fmt.Fprintf(out, "%d hab. | %d baños | %.0f m²\n", p.Rooms, p.Bathrooms, p.Surface)
			fmt.Fprintf(out, "\n%s\n", p.Description)
			if len(p.Features) > 0 {
				fmt.Fprintf(out, "\nCaracterísticas: %v\n", []string(p.Features))
			}
			fmt.Fprintf(out, "\nAgente: %s (%s, %s)\n", p.Agent.Name, p.Agent.Phone, p.Agent.Email)
			return nil
		},
	}
}

func printProperties(out io.Writer, props []model.Property) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, p := range props {
		fmt.Fprintf(w, "#%d\t%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Operation, formatPrice(p.Price), p.Location)
	}
	return w.Flush()
}

func formatPrice(v float64) string {
	return "USD " + strconv.FormatFloat(v, 'f', 0, 64)
}

func isAmenity(name string) bool {
	for _, a := range filters.AllAmenities {
		if string(a) == name {
			return true
		}
	}
	return false
}
