package cli

import (
	"fmt"

	"eventers-marketplace-client/model"
	"eventers-marketplace-client/notify"

	"github.com/spf13/cobra"
)

func (a *App) loginCommand() *cobra.Command {
	var req model.LoginRequest
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and start a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.pageContext(cmd)
			auth, err := a.factory.Client(ctx).Login(ctx, req)
			if err != nil {
				return err
			}
			if err := a.factory.Session(ctx).Begin(ctx, auth); err != nil {
				return err
			}
			notify.Success(a.notifier, "Welcome back, %s", auth.User.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "account password")
	return cmd
}

func (a *App) registerCommand() *cobra.Command {
	var req model.RegisterRequest
	var role string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account; an OTP is sent to the email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.pageContext(cmd)
			req.Role = model.Role(role)
			u, err := a.factory.Client(ctx).Register(ctx, req)
			if err != nil {
				return err
			}
			notify.Success(a.notifier, "Account created for %s. Run `marketplace verify-otp` with the code we sent.", u.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "email")
	cmd.Flags().StringVar(&req.Password, "password", "", "password")
	cmd.Flags().StringVar(&role, "role", string(model.RoleUser), "USER or ORGANIZER")
	return cmd
}

func (a *App) verifyOTPCommand() *cobra.Command {
	var req model.VerifyOTPRequest
	cmd := &cobra.Command{
		Use:   "verify-otp",
		Short: "Verify the email OTP and start a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.pageContext(cmd)
			auth, err := a.factory.Client(ctx).VerifyOTP(ctx, req)
			if err != nil {
				return err
			}
			if err := a.factory.Session(ctx).Begin(ctx, auth); err != nil {
				return err
			}
			notify.Success(a.notifier, "Email verified. Welcome, %s", auth.User.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "email")
	cmd.Flags().StringVar(&req.OTP, "otp", "", "6 digit code")
	return cmd
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.pageContext(cmd)
			if err := a.factory.Session(ctx).End(ctx); err != nil {
				return err
			}
			notify.Info(a.notifier, "Logged out")
			return nil
		},
	}
}

func (a *App) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := a.pageContext(cmd)
			s, ok := a.factory.Session(ctx).Current()
			if !ok {
				return a.requireLogin(ctx)
			}
			if a.asJSON {
				return a.printJSON(s.User)
			}
			fmt.Fprintf(a.out, "%s <%s> %s\n", s.User.Name, s.User.Email, s.User.Role)
			if s.ExpiresAt != nil {
				fmt.Fprintf(a.out, "session expires %s\n", s.ExpiresAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
