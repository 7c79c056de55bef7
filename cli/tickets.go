package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"eventers-marketplace-client/model"
	"eventers-marketplace-client/notify"
	"eventers-marketplace-client/pricing"
	"eventers-marketplace-client/ticket"
	"eventers-marketplace-client/verification"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (a *App) ticketsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "Buy, hold, resell and verify tickets",
	}
	cmd.AddCommand(
		a.ticketsBuyCommand(),
		a.ticketsMineCommand(),
		a.ticketsMarketCommand(),
		a.ticketsListResaleCommand(),
		a.ticketsBuyResaleCommand(),
		a.ticketsQRCommand(),
		a.ticketsVerifyCommand(),
	)
	return cmd
}

// categoryFor finds a ticket category by id or, case-insensitively, by name.
func categoryFor(e model.Event, key string) (model.TicketCategory, bool) {
	for _, tc := range e.TicketCategories {
		if tc.ID == key || strings.EqualFold(tc.Name, key) {
			return tc, true
		}
	}
	return model.TicketCategory{}, false
}

func (a *App) ticketsBuyCommand() *cobra.Command {
	var qty map[string]int
	cmd := &cobra.Command{
		Use:   "buy <slug>",
		Short: "Buy primary tickets, e.g. --qty VIP=2 --qty Regular=1",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.pageContext(cmd)
			if err := a.requireLogin(ctx); err != nil {
				return err
			}
			cl := a.factory.Client(ctx)
			e, err := cl.EventBySlug(ctx, args[0])
			if err != nil {
				return err
			}

			cart := pricing.NewCart(e.TicketCategories)
			for key, q := range qty {
				tc, ok := categoryFor(e, key)
				if !ok {
					return fmt.Errorf("%s has no ticket category %q", e.Name, key)
				}
				if got := cart.Set(tc.ID, q); got < q {
					notify.Warn(a.notifier, "Only %d %s tickets left", got, tc.Name)
				}
			}
			if cart.Count() == 0 {
				return errors.New("Select at least one ticket")
			}
			notify.Info(a.notifier, "%d tickets for %s, total %s", cart.Count(), e.Name, cart.Total().StringFixed(2))

			res, err := cl.BuyTickets(ctx, model.BuyTicketRequest{EventID: e.ID, Tickets: cart.Selections()})
			if err != nil {
				return err
			}
			if res.PaymentURL != "" {
				notify.Info(a.notifier, "Complete payment at %s", res.PaymentURL)
			}
			notify.Success(a.notifier, "Purchase %s confirmed: %d tickets", res.Reference, len(res.Tickets))
			return nil
		},
	}
	cmd.Flags().StringToIntVar(&qty, "qty", nil, "category=quantity (repeatable)")
	return cmd
}

func (a *App) ticketsMineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "Your tickets grouped by event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.pageContext(cmd)
			if err := a.requireLogin(ctx); err != nil {
				return err
			}
			tickets, err := a.factory.Client(ctx).MyTickets(ctx)
			if err != nil {
				return err
			}
			groups := ticket.Ordered(ticket.GroupByEvent(tickets))
			if a.asJSON {
				return a.printJSON(groups)
			}
			if len(groups) == 0 {
				notify.Info(a.notifier, "You have no tickets yet")
				return nil
			}
			for _, g := range groups {
				name := g.Tickets[0].EventID
				if g.Event != nil {
					name = g.Event.Name
				}
				fmt.Fprintf(a.out, "%s: %d tickets (%d active, %d listed, %d used)\n",
					name, g.TicketCount, g.Summary.Active, g.Summary.Listed, g.Summary.Used)
				t := a.table("  ID", "CODE", "CATEGORY", "STATUS")
				for _, tk := range g.Tickets {
					t.row("  "+tk.ID, tk.Code, tk.TicketCategory.Name, string(ticket.Status(tk)))
				}
				if err := t.flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *App) ticketsMarketCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "market",
		Short: "Tickets listed for resale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.pageContext(cmd)
			listings, err := a.factory.Client(ctx).ResaleTickets(ctx)
			if err != nil {
				return err
			}
			if a.asJSON {
				return a.printJSON(listings)
			}
			me, _ := a.factory.Session(ctx).User()
			t := a.table("ID", "EVENT", "CATEGORY", "PRICE", "SELLER", "AVAILABLE")
			for _, l := range listings {
				event, seller := l.EventID, "-"
				if l.Event != nil {
					event = l.Event.Name
				}
				if l.User != nil {
					seller = l.User.Name
				}
				t.row(l.ID, event, l.TicketCategory.Name, resalePrice(l.Ticket).StringFixed(2), seller,
					strconv.FormatBool(ticket.CanBuyResale(l.Ticket, me.ID)))
			}
			return t.flush()
		},
	}
}

func resalePrice(t model.Ticket) decimal.Decimal {
	if t.ResalePrice == nil {
		return decimal.Zero
	}
	return *t.ResalePrice
}

func (a *App) myTicket(ctx context.Context, id string) (model.Ticket, error) {
	tickets, err := a.factory.Client(ctx).MyTickets(ctx)
	if err != nil {
		return model.Ticket{}, err
	}
	for _, t := range tickets {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Ticket{}, fmt.Errorf("Ticket %s is not among your tickets", id)
}

func (a *App) ticketsListResaleCommand() *cobra.Command {
	var price string
	cmd := &cobra.Command{
		Use:   "list-resale <ticketID>",
		Short: "List one of your tickets on the resale market",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.pageContext(cmd)
			if err := a.requireLogin(ctx); err != nil {
				return err
			}
			amount, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("price: %w", err)
			}
			t, err := a.myTicket(ctx, args[0])
			if err != nil {
				return err
			}
			if err := ticket.ListingBlocker(t); err != nil {
				return err
			}
			b := pricing.Breakdown(amount)
			notify.Info(a.notifier, "Price %s, platform fee %s, you receive %s",
				b.Price.StringFixed(2), b.PlatformFee.StringFixed(2), b.OrganizerReceives.StringFixed(2))

			if _, err := a.factory.Client(ctx).ListForResale(ctx, model.ListResaleRequest{TicketID: t.ID, ResalePrice: amount}); err != nil {
				return err
			}
			notify.Success(a.notifier, "Ticket %s listed for %s", t.Code, amount.StringFixed(2))
			return nil
		},
	}
	cmd.Flags().StringVar(&price, "price", "", "resale price")
	return cmd
}

func (a *App) ticketsBuyResaleCommand() *cobra.Command {
	var quantity int
	cmd := &cobra.Command{
		Use:   "buy-resale <ticketID>",
		Short: "Buy a ticket from the resale market",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.pageContext(cmd)
			me, err := a.require(ctx)
			if err != nil {
				return err
			}
			cl := a.factory.Client(ctx)
			listings, err := cl.ResaleTickets(ctx)
			if err != nil {
				return err
			}
			var listing *model.TicketResale
			for i := range listings {
				if listings[i].ID == args[0] {
					listing = &listings[i]
					break
				}
			}
			if listing == nil {
				return ticket.ErrNotListed
			}
			if err := ticket.ResaleBlocker(listing.Ticket, me.ID); err != nil {
				return err
			}
			q := pricing.ClampResaleQuantity(quantity)
			unit := resalePrice(listing.Ticket)
			notify.Info(a.notifier, "Quote %s (%d x %s)", pricing.ResaleQuote(unit, q).StringFixed(2), q, unit.StringFixed(2))

			res, err := cl.BuyResale(ctx, model.BuyResaleRequest{TicketID: listing.ID, Quantity: q})
			if err != nil {
				return err
			}
			if res.PaymentURL != "" {
				notify.Info(a.notifier, "Complete payment at %s", res.PaymentURL)
			}
			notify.Success(a.notifier, "Purchase %s confirmed: %d ticket(s), charged %s",
				res.Reference, len(res.Tickets), res.Transaction.Amount.StringFixed(2))
			return nil
		},
	}
	cmd.Flags().IntVar(&quantity, "quantity", 1, "quantity to quote (1-8); a listing transfers one ticket")
	return cmd
}

func (a *App) ticketsQRCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "qr <ticketID>",
		Short: "Print the verification link encoded in a ticket's QR code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.pageContext(cmd)
			if err := a.requireLogin(ctx); err != nil {
				return err
			}
			t, err := a.myTicket(ctx, args[0])
			if err != nil {
				return err
			}
			if ticket.Status(t) == model.StatusUsed {
				return ticket.ErrTicketUsed
			}
			p, err := verification.NewPayload(t, time.Now())
			if err != nil {
				return err
			}
			link, err := a.factory.Verification(ctx).URL(p)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, link)
			return nil
		},
	}
}

func (a *App) ticketsVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <url|payload>",
		Short: "Check a ticket in from its QR link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := a.pageContext(cmd)
			if _, err := a.require(ctx, managers...); err != nil {
				return err
			}
			p, err := a.factory.Verification(ctx).Parse(args[0])
			if err != nil {
				return err
			}
			t, err := a.factory.Client(ctx).VerifyTicket(ctx, p.Request())
			if err != nil {
				return err
			}
			notify.Success(a.notifier, "Ticket %s (%s) checked in", t.Code, t.TicketCategory.Name)
			return nil
		},
	}
}
