package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"eventers-marketplace-client/client"
	"eventers-marketplace-client/dashboard"
	"eventers-marketplace-client/event"
	"eventers-marketplace-client/model"
	"eventers-marketplace-client/notify"
	"eventers-marketplace-client/pagination"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02 15:04"

func (a *App) eventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Browse and manage events",
	}
	cmd.AddCommand(
		a.eventsListCommand(),
		a.eventsShowCommand(),
		a.eventsMineCommand(),
		a.eventsCreateCommand(),
		a.eventsUpdateCommand(),
		a.eventsDeleteCommand(),
	)
	return cmd
}

func (a *App) eventsListCommand() *cobra.Command {
	var f event.Filter
	var page, perPage int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := f.Validate(); err != nil {
				return err
			}
			ctx := a.pageContext(cmd)
			events, err := a.factory.Client(ctx).Events(ctx, client.EventQuery{
				Search:   f.Search,
				Category: f.Category,
				Location: f.Location,
			})
			if err != nil {
				return err
			}
			p := pagination.Paginate(event.Apply(events, f), page, perPage)
			if a.asJSON {
				return a.printJSON(p)
			}
			if p.TotalItems == 0 {
				notify.Info(a.notifier, "No events match")
				return nil
			}
			t := a.table("NAME", "SLUG", "DATE", "LOCATION", "CATEGORY", "PRICE", "LEFT")
			for _, e := range p.Items {
				t.row(e.Name, e.Slug, e.Date.Local().Format(dateLayout), e.Location, e.Category, priceLabel(e), leftLabel(e))
			}
			if err := t.flush(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "page %d of %d (%d events)\n", p.Number, p.TotalPages, p.TotalItems)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.Search, "search", "", "match name or location")
	flags.StringVar(&f.Location, "location", "", "location contains")
	flags.StringVar(&f.Category, "category", "", "category")
	flags.StringVar(&f.PriceRange, "price", "", "price bucket, e.g. 0-5000 or 50000+")
	flags.IntVar(&page, "page", 1, "page number")
	flags.IntVar(&perPage, "per-page", pagination.DefaultPerPage, "events per page")
	return cmd
}

func priceLabel(e model.Event) string {
	lo, hi, ok := event.PriceSpan(e)
	if !ok {
		return "-"
	}
	if lo.Equal(hi) {
		return lo.StringFixed(2)
	}
	return lo.StringFixed(2) + " - " + hi.StringFixed(2)
}

func leftLabel(e model.Event) string {
	if event.SoldOut(e) {
		return "sold out"
	}
	return strconv.Itoa(event.Available(e))
}

func (a *App) eventsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <slug>",
		Short: "Show one event and its ticket categories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.pageContext(cmd)
			e, err := a.factory.Client(ctx).EventBySlug(ctx, args[0])
			if err != nil {
				return err
			}
			if a.asJSON {
				return a.printJSON(e)
			}
			fmt.Fprintf(a.out, "%s\n%s · %s · %s\n", e.Name, e.Location, e.Date.Local().Format(dateLayout), e.Category)
			if e.Description != "" {
				fmt.Fprintf(a.out, "\n%s\n", e.Description)
			}
			fmt.Fprintln(a.out)
			t := a.table("CATEGORY", "ID", "PRICE", "LEFT")
			for _, tc := range e.TicketCategories {
				left := strconv.Itoa(tc.Available())
				if tc.SoldOut() {
					left = "sold out"
				}
				t.row(tc.Name, tc.ID, tc.Price.StringFixed(2), left)
			}
			return t.flush()
		},
	}
}

func (a *App) eventsMineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "Organizer dashboard: your events and their sales",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.pageContext(cmd)
			if _, err := a.require(ctx, managers...); err != nil {
				return err
			}
			events, err := a.factory.Client(ctx).MyEvents(ctx)
			if err != nil {
				return err
			}
			s := dashboard.Organizer(events)
			if a.asJSON {
				return a.printJSON(s)
			}
			t := a.table("NAME", "ID", "SOLD", "CAPACITY", "GROSS", "ACTIVE")
			for _, es := range s.Events {
				t.row(es.Event.Name, es.Event.ID, strconv.Itoa(es.Sold), strconv.Itoa(es.Capacity), es.Gross.StringFixed(2), strconv.FormatBool(es.Event.IsActive))
			}
			if err := t.flush(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%d events (%d active), %d tickets sold, gross %s, net %s\n",
				s.TotalEvents, s.ActiveEvents, s.TicketsSold, s.Gross.StringFixed(2), s.Net.StringFixed(2))
			return nil
		},
	}
}

type eventFlags struct {
	name, description, location, category, date, banner string
	tiers                                               []string
}

func (f *eventFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.name, "name", "", "event name")
	flags.StringVar(&f.description, "description", "", "description")
	flags.StringVar(&f.location, "location", "", "location")
	flags.StringVar(&f.category, "category", "", "category")
	flags.StringVar(&f.date, "date", "", "start, as RFC3339 or \"2006-01-02 15:04\"")
	flags.StringVar(&f.banner, "banner", "", "banner image file")
	flags.StringArrayVar(&f.tiers, "tier", nil, "ticket category as name:price:maxTickets (repeatable)")
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("date: expected RFC3339 or %q, got %q", dateLayout, s)
	}
	return t, nil
}

// parseTiers reads name:price:maxTickets triples.
func parseTiers(raw []string) ([]model.TicketCategoryInput, error) {
	out := make([]model.TicketCategoryInput, 0, len(raw))
	for _, tier := range raw {
		parts := strings.Split(tier, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("tier %q: expected name:price:maxTickets", tier)
		}
		price, err := decimal.NewFromString(parts[1])
		if err != nil {
			return nil, fmt.Errorf("tier %q: invalid price: %w", tier, err)
		}
		limit, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("tier %q: invalid maxTickets: %w", tier, err)
		}
		out = append(out, model.TicketCategoryInput{Name: strings.TrimSpace(parts[0]), Price: price, MaxTickets: limit})
	}
	return out, nil
}

func (a *App) eventsCreateCommand() *cobra.Command {
	var f eventFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.pageContext(cmd)
			if _, err := a.require(ctx, managers...); err != nil {
				return err
			}
			in := model.EventInput{
				Name:        f.name,
				Description: f.description,
				Location:    f.location,
				Category:    f.category,
				BannerPath:  f.banner,
			}
			var err error
			if f.date != "" {
				if in.Date, err = parseDate(f.date); err != nil {
					return err
				}
			}
			if in.TicketCategories, err = parseTiers(f.tiers); err != nil {
				return err
			}
			e, err := a.factory.Client(ctx).CreateEvent(ctx, in)
			if err != nil {
				return err
			}
			notify.Success(a.notifier, "Created %s (%s)", e.Name, e.Slug)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (a *App) eventsUpdateCommand() *cobra.Command {
	var f eventFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an event; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.pageContext(cmd)
			if _, err := a.require(ctx, managers...); err != nil {
				return err
			}
			in := model.EventUpdate{
				Name:        f.name,
				Description: f.description,
				Location:    f.location,
				Category:    f.category,
				BannerPath:  f.banner,
			}
			if f.date != "" {
				d, err := parseDate(f.date)
				if err != nil {
					return err
				}
				in.Date = &d
			}
			var err error
			if in.TicketCategories, err = parseTiers(f.tiers); err != nil {
				return err
			}
			e, err := a.factory.Client(ctx).UpdateEvent(ctx, args[0], in)
			if err != nil {
				return err
			}
			notify.Success(a.notifier, "Updated %s", e.Name)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (a *App) eventsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event without sales",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.pageContext(cmd)
			if _, err := a.require(ctx, managers...); err != nil {
				return err
			}
			if err := a.factory.Client(ctx).DeleteEvent(ctx, args[0]); err != nil {
				return err
			}
			notify.Success(a.notifier, "Event deleted")
			return nil
		},
	}
}
