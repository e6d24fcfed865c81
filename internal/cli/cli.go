// Package cli implements the operator commands of the portfolio binary. Each
// command maps to one form of the dashboard and runs one service call.
package cli

import (
	"context"
	"fmt"
	"io"

	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/services"
	"portfolio-tracker/internal/validation"

	"github.com/google/subcommands"
)

// Backend is the set of services the commands drive.
type Backend struct {
	Users    services.UserServiceInterface
	Accounts services.AccountServiceInterface
	Assets   services.AssetServiceInterface
	Ledger   services.LedgerServiceInterface
	Insights services.InsightsServiceInterface
}

// DashboardRenderer renders the insights report for a terminal
type DashboardRenderer interface {
	Terminal(d *models.Dashboard, style string, width int) (string, error)
}

// Env carries what every command needs. Open is called once per command run
// and the returned close function is always invoked.
type Env struct {
	Out      io.Writer
	Err      io.Writer
	Open     func(ctx context.Context) (*Backend, func() error, error)
	Migrate  func(ctx context.Context, seed bool) error
	Renderer DashboardRenderer
}

// Register adds every command to c.
func Register(c *subcommands.Commander, env *Env) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&createUserCmd{env: env}, "users")
	c.Register(&userCmd{env: env}, "users")
	c.Register(&updateEmailCmd{env: env}, "users")

	c.Register(&createAccountCmd{env: env}, "accounts")

	c.Register(&createAssetCmd{env: env}, "assets")
	c.Register(&assetsCmd{env: env}, "assets")
	c.Register(&deleteAssetCmd{env: env}, "assets")

	c.Register(&recordTxCmd{env: env}, "ledger")
	c.Register(&recordPriceCmd{env: env}, "ledger")
	c.Register(&priceCmd{env: env}, "ledger")

	c.Register(&insightsCmd{env: env}, "reports")

	c.Register(&migrateCmd{env: env}, "database")
}

// run opens the backend, calls fn and reports its error on stderr.
func (e *Env) run(ctx context.Context, action string, fn func(b *Backend) error) subcommands.ExitStatus {
	b, closeFn, err := e.Open(ctx)
	if err != nil {
		fmt.Fprintf(e.Err, "Error connecting to the database: %v\n", err)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := closeFn(); err != nil {
			fmt.Fprintf(e.Err, "Error closing the database: %v\n", err)
		}
	}()

	if err := fn(b); err != nil {
		fmt.Fprintf(e.Err, "Failed to %s: %s\n", action, describe(err))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// usageError reports a bad flag value and returns the usage exit status
func (e *Env) usageError(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(e.Err, format+"\n", args...)
	return subcommands.ExitUsageError
}

// validate checks a request the same way the HTTP API does
func (e *Env) validate(req any) bool {
	err := validation.GetValidator().Struct(req)
	if err == nil {
		return true
	}
	for _, line := range validation.FormatErrors(err) {
		fmt.Fprintln(e.Err, line)
	}
	return false
}

func (e *Env) positiveID(name string, id int64) bool {
	if id > 0 {
		return true
	}
	fmt.Fprintf(e.Err, "-%s must be a positive integer\n", name)
	return false
}
