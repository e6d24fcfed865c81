package cli

import (
	"context"
	"flag"
	"fmt"

	"portfolio-tracker/internal/dto"

	"github.com/google/subcommands"
)

type createUserCmd struct {
	env       *Env
	firstName string
	lastName  string
	email     string
}

func (*createUserCmd) Name() string     { return "create-user" }
func (*createUserCmd) Synopsis() string { return "add a new user" }
func (*createUserCmd) Usage() string {
	return `portfolio create-user -first <name> -last <name> [-email <address>]

  Creates a user and prints its ID.
`
}

func (c *createUserCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.firstName, "first", "", "first name")
	f.StringVar(&c.lastName, "last", "", "last name")
	f.StringVar(&c.email, "email", "", "email address")
}

func (c *createUserCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	req := dto.CreateUserRequest{FirstName: c.firstName, LastName: c.lastName, Email: c.email}
	if !c.env.validate(req) {
		return subcommands.ExitUsageError
	}

	return c.env.run(ctx, "create user", func(b *Backend) error {
		user, err := b.Users.CreateUser(ctx, req.FirstName, req.LastName, req.Email)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.env.Out, "User created with ID: %d\n", user.ID)
		return nil
	})
}

// userCmd is the sidebar lookup: it shows the user and their accounts.
type userCmd struct {
	env    *Env
	userID int64
}

func (*userCmd) Name() string     { return "user" }
func (*userCmd) Synopsis() string { return "fetch a user and list their accounts" }
func (*userCmd) Usage() string {
	return `portfolio user -id <user id>
`
}

func (c *userCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.userID, "id", 1, "user ID")
}

func (c *userCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.env.positiveID("id", c.userID) {
		return subcommands.ExitUsageError
	}

	return c.env.run(ctx, "fetch user", func(b *Backend) error {
		user, err := b.Users.GetUser(ctx, c.userID)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.env.Out, "Fetched user: %s\n", user.FullName())

		accounts, err := b.Accounts.GetAccountsForUser(ctx, c.userID)
		if err != nil {
			return err
		}
		for _, a := range accounts {
			fmt.Fprintf(c.env.Out, "  account %d: %s (%s)\n", a.ID, a.AccountName, a.AccountType)
		}
		return nil
	})
}

type updateEmailCmd struct {
	env    *Env
	userID int64
	email  string
}

func (*updateEmailCmd) Name() string     { return "update-email" }
func (*updateEmailCmd) Synopsis() string { return "change a user's email address" }
func (*updateEmailCmd) Usage() string {
	return `portfolio update-email -id <user id> -email <address>

  The address is stored as given.
`
}

func (c *updateEmailCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.userID, "id", 0, "user ID")
	f.StringVar(&c.email, "email", "", "new email address")
}

func (c *updateEmailCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.env.positiveID("id", c.userID) || !c.env.validate(dto.UpdateEmailRequest{Email: c.email}) {
		return subcommands.ExitUsageError
	}

	return c.env.run(ctx, "update email", func(b *Backend) error {
		if err := b.Users.UpdateUserEmail(ctx, c.userID, c.email); err != nil {
			return err
		}
		fmt.Fprintf(c.env.Out, "Email for User %d updated.\n", c.userID)
		return nil
	})
}
