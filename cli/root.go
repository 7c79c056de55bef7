// Package cli wires the marketplace commands. Each command is one page of
// the marketplace: it runs with its command path as the client page.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"eventers-marketplace-client/config"
	c "eventers-marketplace-client/context"
	"eventers-marketplace-client/factory"
	"eventers-marketplace-client/logger"
	"eventers-marketplace-client/model"
	"eventers-marketplace-client/notify"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type App struct {
	factory  factory.Factory
	notifier notify.Notifier
	out      io.Writer
	asJSON   bool
}

// New returns the root command. Normal output goes to out; notifications
// go to n.
func New(f factory.Factory, n notify.Notifier, out io.Writer) *cobra.Command {
	app := &App{factory: f, notifier: n, out: out}
	var cfgFile string

	root := &cobra.Command{
		Use:           "marketplace",
		Short:         "Browse events, buy and resell tickets on the Eventers marketplace",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return configure(cfgFile)
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.String("api", "", "marketplace API base url")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&app.asJSON, "json", false, "print results as JSON")
	viper.BindPFlag(config.APIBaseURL, flags.Lookup("api"))
	viper.BindPFlag(config.LogLevel, flags.Lookup("log-level"))

	root.AddCommand(
		app.loginCommand(),
		app.registerCommand(),
		app.verifyOTPCommand(),
		app.logoutCommand(),
		app.whoamiCommand(),
		app.eventsCommand(),
		app.ticketsCommand(),
		app.walletCommand(),
		app.banksCommand(),
		app.adminCommand(),
		app.sandboxCommand(),
	)
	return root
}

func configure(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("configure: error reading config %s: %w", cfgFile, err)
		}
	}
	if err := logger.SetLevel(viper.GetString(config.LogLevel)); err != nil {
		return err
	}
	if viper.GetString(config.LogFormat) == "json" {
		logger.SetJSON()
	}
	return nil
}

// pageContext returns the command's context tagged with a fresh correlation id
// and the command path as client page.
func (a *App) pageContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		return c.WithClientPage(c.NewContext(), cmd.CommandPath())
	}
	ctx = c.SetContextWithValue(ctx, c.ContextKeyCorrelationID, c.NewCorrelationID())
	return c.WithClientPage(ctx, cmd.CommandPath())
}

func (a *App) require(ctx context.Context, roles ...model.Role) (model.User, error) {
	return a.factory.Session(ctx).RequireRole(roles...)
}

var (
	managers = []model.Role{model.RoleOrganizer, model.RoleAdmin, model.RoleSuperAdmin}
	admins   = []model.Role{model.RoleAdmin, model.RoleSuperAdmin}
)

func (a *App) printJSON(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type table struct {
	w *tabwriter.Writer
}

func (a *App) table(headers ...string) *table {
	t := &table{w: tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)}
	t.row(headers...)
	return t
}

func (t *table) row(cols ...string) {
	fmt.Fprintln(t.w, strings.Join(cols, "\t"))
}

func (t *table) flush() error {
	return t.w.Flush()
}

func (a *App) requireLogin(ctx context.Context) error {
	_, err := a.require(ctx)
	return err
}
