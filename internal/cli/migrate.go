package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type migrateCmd struct {
	env  *Env
	seed bool
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply pending schema migrations" }
func (*migrateCmd) Usage() string {
	return `portfolio migrate [-seed]

  Waits for the database, applies db/migrations and optionally loads db/seeds.
`
}

func (c *migrateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.seed, "seed", false, "load seed data after migrating")
}

func (c *migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.env.Migrate(ctx, c.seed); err != nil {
		fmt.Fprintf(c.env.Err, "Failed to migrate: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(c.env.Out, "Migrations applied.")
	return subcommands.ExitSuccess
}
