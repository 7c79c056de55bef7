package router

import (
	"context"
	"fmt"
	"net/http"

	"eventers-marketplace-client/handler"
	"eventers-marketplace-client/logger"
	"eventers-marketplace-client/middleware"
	"eventers-marketplace-client/response"
	"eventers-marketplace-client/sandbox"

	"github.com/codegangsta/negroni"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router returns the router for the sandbox API. deps are checked by
// /healthcheck.
func Router(ctx context.Context, service *sandbox.Service, deps ...handler.Pinger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.SetCorrelationIDHeader)
	r.Use(middleware.PanicHandler)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.ResourceNotFound(fmt.Sprintf("The requested resource was not found: path: %s, method: %s", req.URL.Path, req.Method), "The requested resource was not found!").Send(req.Context(), w)
	})

	r.Use(middleware.ResponseTimeLogging)
	r.Use(middleware.RequestLogging)
	r.Use(middleware.SetContentTypeHeader)
	r.Use(middleware.Metrics)

	r.HandleFunc("/healthcheck", handler.Healthcheck(deps...)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	protected := middleware.RequireAuth(service)
	api := r.PathPrefix("/api").Subrouter()

	authRouter := api.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/login", handler.Login(service)).Methods(http.MethodPost)
	authRouter.HandleFunc("/register", handler.Register(service)).Methods(http.MethodPost)
	authRouter.HandleFunc("/verify-otp", handler.VerifyOTP(service)).Methods(http.MethodPost)

	eventRouter := api.PathPrefix("/events").Subrouter()
	eventRouter.HandleFunc("", handler.GetEvents(service)).Methods(http.MethodGet)
	eventRouter.Handle("/my-events", protected(handler.GetMyEvents(service))).Methods(http.MethodGet)
	eventRouter.HandleFunc("/slug/{slug}", handler.GetEventBySlug(service)).Methods(http.MethodGet)
	eventRouter.Handle("/create", protected(handler.CreateEvent(service))).Methods(http.MethodPost)
	eventRouter.Handle("/{id}", protected(handler.UpdateEvent(service))).Methods(http.MethodPatch)
	eventRouter.Handle("/{id}", protected(handler.DeleteEvent(service))).Methods(http.MethodDelete)

	ticketRouter := api.PathPrefix("/tickets").Subrouter()
	ticketRouter.Handle("/buy", protected(handler.BuyTickets(service))).Methods(http.MethodPost)
	ticketRouter.Handle("/resale/list", protected(handler.ListResale(service))).Methods(http.MethodPost)
	ticketRouter.Handle("/resale/buy", protected(handler.BuyResale(service))).Methods(http.MethodPost)
	ticketRouter.Handle("/verify", protected(handler.VerifyTicket(service))).Methods(http.MethodPost)
	ticketRouter.Handle("/my", protected(handler.MyTickets(service))).Methods(http.MethodGet)
	ticketRouter.HandleFunc("/resell", handler.ResaleMarket(service)).Methods(http.MethodGet)

	walletRouter := api.PathPrefix("/wallet").Subrouter()
	walletRouter.Handle("/balance", protected(handler.WalletBalance(service))).Methods(http.MethodGet)
	walletRouter.Handle("/transactions", protected(handler.WalletTransactions(service))).Methods(http.MethodGet)
	walletRouter.Handle("/withdraw", protected(handler.Withdraw(service))).Methods(http.MethodPost)
	walletRouter.Handle("/pin", protected(handler.SetPin(service))).Methods(http.MethodPatch)
	walletRouter.Handle("/pin-status", protected(handler.PinStatus(service))).Methods(http.MethodGet)

	api.HandleFunc("/payment/banks", handler.Banks(service)).Methods(http.MethodGet)

	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Handle("/stats", protected(handler.AdminStats(service))).Methods(http.MethodGet)
	adminRouter.Handle("/users", protected(handler.AdminUsers(service))).Methods(http.MethodGet)
	adminRouter.Handle("/events/{id}/toggle", protected(handler.ToggleEvent(service))).Methods(http.MethodPatch)

	userRouter := api.PathPrefix("/user").Subrouter()
	userRouter.Handle("/profile", protected(handler.GetProfile(service))).Methods(http.MethodGet)
	userRouter.Handle("/profile", protected(handler.UpdateProfile(service))).Methods(http.MethodPatch)

	logger.Debugf(ctx, "router: sandbox routes registered")
	return r
}

// Handler wraps Router in negroni the way the server runs it.
func Handler(ctx context.Context, service *sandbox.Service, deps ...handler.Pinger) http.Handler {
	n := negroni.New()
	n.UseHandler(Router(ctx, service, deps...))
	return n
}
