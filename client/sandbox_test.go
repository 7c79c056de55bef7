package client_test

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"eventers-marketplace-client/client"
	"eventers-marketplace-client/model"
	"eventers-marketplace-client/router"
	"eventers-marketplace-client/sandbox"
	"eventers-marketplace-client/session"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type marketplace struct {
	baseURL string
	svc     *sandbox.Service
	outbox  *sandbox.Outbox
}

func newMarketplace(t *testing.T) marketplace {
	t.Helper()
	ctx := context.Background()
	outbox := sandbox.NewOutbox()
	svc := sandbox.New("integration-secret", sandbox.WithSender(outbox))
	srv := httptest.NewServer(router.Handler(ctx, svc))
	t.Cleanup(srv.Close)
	return marketplace{baseURL: srv.URL + "/api", svc: svc, outbox: outbox}
}

func (m marketplace) client(t *testing.T, name string) (*client.Client, *session.Manager) {
	t.Helper()
	mgr, err := session.NewManager(filepath.Join(t.TempDir(), name), "")
	require.NoError(t, err)
	cl, err := client.New(m.baseURL,
		client.WithTokenSource(mgr),
		client.WithBackoff(func(int) time.Duration { return 0 }),
	)
	require.NoError(t, err)
	return cl, mgr
}

func (m marketplace) login(t *testing.T, cl *client.Client, mgr *session.Manager, email string) model.User {
	t.Helper()
	ctx := context.Background()
	auth, err := cl.Login(ctx, model.LoginRequest{Email: email, Password: "password123"})
	require.NoError(t, err)
	require.NoError(t, mgr.Begin(ctx, auth))
	return auth.User
}

func TestMarketplaceFlow(t *testing.T) {
	ctx := context.Background()
	m := newMarketplace(t)

	org, orgSession := m.client(t, "organizer")
	_, err := org.Register(ctx, model.RegisterRequest{Name: "Ada Events", Email: "ada@eventers.test", Password: "password123", Role: model.RoleOrganizer})
	require.NoError(t, err)

	_, err = org.VerifyOTP(ctx, model.VerifyOTPRequest{Email: "ada@eventers.test", OTP: "12345"})
	assert.True(t, client.IsValidation(err))

	auth, err := org.VerifyOTP(ctx, model.VerifyOTPRequest{Email: "ada@eventers.test", OTP: m.outbox.LastOTP("ada@eventers.test")})
	require.NoError(t, err)
	require.NoError(t, orgSession.Begin(ctx, auth))
	u, err := orgSession.RequireRole(model.RoleOrganizer)
	require.NoError(t, err)
	assert.Equal(t, "ada@eventers.test", u.Email)

	banner := filepath.Join(t.TempDir(), "banner.png")
	require.NoError(t, os.WriteFile(banner, []byte("png"), 0o600))
	created, err := org.CreateEvent(ctx, model.EventInput{
		Name:     "Jazz Night",
		Location: "Lagos",
		Date:     time.Date(2030, 5, 1, 20, 0, 0, 0, time.UTC),
		Category: "Music",
		TicketCategories: []model.TicketCategoryInput{
			{Name: "Regular", Price: decimal.NewFromInt(5000), MaxTickets: 100},
			{Name: "VIP", Price: decimal.NewFromInt(20000), MaxTickets: 10},
		},
		BannerPath: banner,
	})
	require.NoError(t, err)
	assert.Equal(t, "jazz-night", created.Slug)
	assert.Equal(t, "/uploads/banner.png", created.BannerURL)
	require.Len(t, created.TicketCategories, 2)

	mine, err := org.MyEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = m.svc.SeedUser(ctx, "Buyer", "buyer@eventers.test", "password123", model.RoleUser)
	require.NoError(t, err)
	_, err = m.svc.SeedUser(ctx, "Second", "second@eventers.test", "password123", model.RoleUser)
	require.NoError(t, err)

	buyer, buyerSession := m.client(t, "buyer")
	m.login(t, buyer, buyerSession, "buyer@eventers.test")

	events, err := buyer.Events(ctx, client.EventQuery{Search: "jazz"})
	require.NoError(t, err)
	require.Len(t, events, 1)

	bySlug, err := buyer.EventBySlug(ctx, "jazz-night")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	res, err := buyer.BuyTickets(ctx, model.BuyTicketRequest{
		EventID: created.ID,
		Tickets: []model.TicketSelection{{TicketCategoryID: created.TicketCategories[1].ID, Quantity: 2}},
	})
	require.NoError(t, err)
	require.Len(t, res.Tickets, 2)

	tickets, err := buyer.MyTickets(ctx)
	require.NoError(t, err)
	assert.Len(t, tickets, 2)

	_, err = buyer.ListForResale(ctx, model.ListResaleRequest{TicketID: tickets[0].ID, ResalePrice: decimal.NewFromInt(25000)})
	require.NoError(t, err)

	anon, _ := m.client(t, "anon")
	market, err := anon.ResaleTickets(ctx)
	require.NoError(t, err)
	require.Len(t, market, 1)
	assert.Equal(t, "buyer@eventers.test", market[0].User.Email)

	second, secondSession := m.client(t, "second")
	m.login(t, second, secondSession, "second@eventers.test")
	bought, err := second.BuyResale(ctx, model.BuyResaleRequest{TicketID: tickets[0].ID})
	require.NoError(t, err)
	assert.Equal(t, 1, bought.Tickets[0].ResaleCount)

	_, err = second.ListForResale(ctx, model.ListResaleRequest{TicketID: tickets[0].ID, ResalePrice: decimal.NewFromInt(30000)})
	require.Error(t, err)
	assert.Equal(t, "This ticket has already been resold once and cannot be listed again", err.Error())

	balance, err := org.WalletBalance(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(38000).Equal(balance.Balance), balance.Balance.String())

	_, err = buyer.AdminStats(ctx)
	assert.True(t, client.IsAuth(err))

	err = org.DeleteEvent(ctx, created.ID)
	require.Error(t, err)
}

func TestUnauthenticatedCallsAreRejected(t *testing.T) {
	m := newMarketplace(t)
	anon, _ := m.client(t, "anon")

	_, err := anon.MyTickets(context.Background())
	assert.True(t, client.IsAuth(err))

	banks, err := anon.Banks(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, banks)
}

func TestProfileUpdateRefreshesSession(t *testing.T) {
	ctx := context.Background()
	m := newMarketplace(t)
	_, err := m.svc.SeedUser(ctx, "Buyer", "buyer@eventers.test", "password123", model.RoleUser)
	require.NoError(t, err)
	cl, mgr := m.client(t, "buyer")
	m.login(t, cl, mgr, "buyer@eventers.test")

	u, err := cl.UpdateProfile(ctx, model.ProfileUpdate{Name: "Buyer Two"})
	require.NoError(t, err)
	require.NoError(t, mgr.UpdateUser(u))

	profile, err := cl.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Buyer Two", profile.Name)
	current, ok := mgr.User()
	require.True(t, ok)
	assert.Equal(t, "Buyer Two", current.Name)
}
