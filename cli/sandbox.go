package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventers-marketplace-client/config"
	"eventers-marketplace-client/handler"
	"eventers-marketplace-client/logger"
	"eventers-marketplace-client/model"
	"eventers-marketplace-client/relay"
	"eventers-marketplace-client/router"
	"eventers-marketplace-client/sandbox"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 5 * time.Second

func (a *App) sandboxCommand() *cobra.Command {
	var adminEmail, adminPassword string
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Serve an in-memory marketplace API for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(a.pageContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store := a.factory.Store(ctx)
			opts := []sandbox.Option{sandbox.WithOTPStore(store)}
			if u := viper.GetString(config.RelayURL); u != "" {
				opts = append(opts, sandbox.WithSender(relay.NewSender(
					viper.GetString(config.RelayAccountSID),
					viper.GetString(config.RelayAuthToken),
					u,
					viper.GetString(config.RelayFrom),
				)))
			}
			svc := sandbox.New(viper.GetString(config.SandboxSecret), opts...)
			if adminEmail != "" {
				if _, err := svc.SeedUser(ctx, "Admin", adminEmail, adminPassword, model.RoleAdmin); err != nil {
					return fmt.Errorf("sandbox: error seeding admin: %w", err)
				}
			}
			var deps []handler.Pinger
			if p, ok := store.(handler.Pinger); ok {
				deps = append(deps, p)
			}

			srv := &http.Server{
				Addr:              viper.GetString(config.SandboxPort),
				Handler:           router.Handler(ctx, svc, deps...),
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					logger.Errorf(ctx, "sandbox: error shutting down: %v", err)
				}
			}()

			logger.Infof(ctx, "sandbox: listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("sandbox: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&adminEmail, "admin-email", "admin@eventers.local", "seed an admin with this email (empty to skip)")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "admin12345", "password of the seeded admin")
	return cmd
}
