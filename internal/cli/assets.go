package cli

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"portfolio-tracker/internal/dto"

	"github.com/google/subcommands"
)

type createAccountCmd struct {
	env         *Env
	userID      int64
	accountName string
	accountType string
}

func (*createAccountCmd) Name() string     { return "create-account" }
func (*createAccountCmd) Synopsis() string { return "open an account for a user" }
func (*createAccountCmd) Usage() string {
	return `portfolio create-account -user <user id> -name <account name> -type <account type>
`
}

func (c *createAccountCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.userID, "user", 0, "owning user ID")
	f.StringVar(&c.accountName, "name", "", "account name")
	f.StringVar(&c.accountType, "type", "", "account type, e.g. brokerage or retirement")
}

func (c *createAccountCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	req := dto.CreateAccountRequest{UserID: c.userID, AccountName: c.accountName, AccountType: c.accountType}
	if !c.env.validate(req) {
		return subcommands.ExitUsageError
	}

	return c.env.run(ctx, "create account", func(b *Backend) error {
		account, err := b.Accounts.CreateAccount(ctx, req.UserID, req.AccountName, req.AccountType)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.env.Out, "Account created with ID: %d\n", account.ID)
		return nil
	})
}

type createAssetCmd struct {
	env        *Env
	accountID  int64
	ticker     string
	assetName  string
	assetClass string
}

func (*createAssetCmd) Name() string     { return "create-asset" }
func (*createAssetCmd) Synopsis() string { return "add an asset to an account" }
func (*createAssetCmd) Usage() string {
	return `portfolio create-asset -account <account id> -ticker <symbol> -name <asset name> -class <asset class>
`
}

func (c *createAssetCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.accountID, "account", 0, "owning account ID")
	f.StringVar(&c.ticker, "ticker", "", "ticker symbol")
	f.StringVar(&c.assetName, "name", "", "asset name")
	f.StringVar(&c.assetClass, "class", "", "asset class, e.g. equity, bond or cash")
}

func (c *createAssetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	req := dto.CreateAssetRequest{
		AccountID:    c.accountID,
		TickerSymbol: c.ticker,
		AssetName:    c.assetName,
		AssetClass:   c.assetClass,
	}
	if !c.env.validate(req) {
		return subcommands.ExitUsageError
	}

	return c.env.run(ctx, "create asset", func(b *Backend) error {
		asset, err := b.Assets.CreateAsset(ctx, req.AccountID, req.TickerSymbol, req.AssetName, req.AssetClass)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.env.Out, "Asset created with ID: %d\n", asset.ID)
		return nil
	})
}

type assetsCmd struct {
	env    *Env
	userID int64
}

func (*assetsCmd) Name() string     { return "assets" }
func (*assetsCmd) Synopsis() string { return "list every asset held by a user" }
func (*assetsCmd) Usage() string {
	return `portfolio assets -user <user id>
`
}

func (c *assetsCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.userID, "user", 1, "user ID")
}

func (c *assetsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.env.positiveID("user", c.userID) {
		return subcommands.ExitUsageError
	}

	return c.env.run(ctx, "list assets", func(b *Backend) error {
		assets, err := b.Assets.GetAllAssetsForUser(ctx, c.userID)
		if err != nil {
			return err
		}
		if len(assets) == 0 {
			fmt.Fprintln(c.env.Out, "No assets found for this user.")
			return nil
		}

		w := tabwriter.NewWriter(c.env.Out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTICKER\tNAME\tCLASS\tACCOUNT")
		for _, a := range assets {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", a.AssetID, a.TickerSymbol, a.AssetName, a.AssetClass, a.AccountName)
		}
		return w.Flush()
	})
}

type deleteAssetCmd struct {
	env     *Env
	assetID int64
}

func (*deleteAssetCmd) Name() string     { return "delete-asset" }
func (*deleteAssetCmd) Synopsis() string { return "delete an asset with its transactions and prices" }
func (*deleteAssetCmd) Usage() string {
	return `portfolio delete-asset -id <asset id>
`
}

func (c *deleteAssetCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.assetID, "id", 0, "asset ID")
}

func (c *deleteAssetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.env.positiveID("id", c.assetID) {
		return subcommands.ExitUsageError
	}

	return c.env.run(ctx, "delete asset", func(b *Backend) error {
		if err := b.Assets.DeleteAsset(ctx, c.assetID); err != nil {
			return err
		}
		fmt.Fprintf(c.env.Out, "Asset ID %d deleted.\n", c.assetID)
		return nil
	})
}
