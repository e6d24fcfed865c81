package cli

import (
	"context"
	"flag"
	"fmt"

	"portfolio-tracker/internal/dto"

	"github.com/google/subcommands"
)

type recordTxCmd struct {
	env     *Env
	assetID int64
	req     dto.RecordTransactionRequest
}

func (*recordTxCmd) Name() string     { return "record-tx" }
func (*recordTxCmd) Synopsis() string { return "record a buy or sell of an asset" }
func (*recordTxCmd) Usage() string {
	return `portfolio record-tx -asset <asset id> -shares <qty> -price <price> [-type buy|sell] [-cost <basis>] [-date YYYY-MM-DD]

  The cost basis defaults to shares times price and the date to today.
`
}

func (c *recordTxCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.assetID, "asset", 0, "asset ID")
	f.StringVar(&c.req.TransactionType, "type", "buy", "transaction type: buy or sell")
	f.StringVar(&c.req.SharesQuantity, "shares", "", "number of shares")
	f.StringVar(&c.req.Price, "price", "", "price per share")
	f.StringVar(&c.req.CostBasis, "cost", "", "total cost basis")
	f.StringVar(&c.req.TransactionDate, "date", "", "trade date (YYYY-MM-DD)")
}

func (c *recordTxCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.env.positiveID("asset", c.assetID) || !c.env.validate(c.req) {
		return subcommands.ExitUsageError
	}
	transaction, err := c.req.ToModel(c.assetID)
	if err != nil {
		return c.env.usageError("Invalid transaction: %v", err)
	}

	return c.env.run(ctx, "record transaction", func(b *Backend) error {
		if err := b.Ledger.RecordTransaction(ctx, transaction); err != nil {
			return err
		}
		fmt.Fprintf(c.env.Out, "Transaction recorded with ID: %d\n", transaction.ID)
		return nil
	})
}

type recordPriceCmd struct {
	env     *Env
	assetID int64
	req     dto.RecordPriceRequest
}

func (*recordPriceCmd) Name() string     { return "record-price" }
func (*recordPriceCmd) Synopsis() string { return "record an asset's closing price" }
func (*recordPriceCmd) Usage() string {
	return `portfolio record-price -asset <asset id> -price <closing price> [-date YYYY-MM-DD]

  Recording a second price for the same day replaces the first.
`
}

func (c *recordPriceCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.assetID, "asset", 0, "asset ID")
	f.StringVar(&c.req.ClosingPrice, "price", "", "closing price")
	f.StringVar(&c.req.PriceDate, "date", "", "price date (YYYY-MM-DD), defaults to today")
}

func (c *recordPriceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.env.positiveID("asset", c.assetID) || !c.env.validate(c.req) {
		return subcommands.ExitUsageError
	}
	marketData, err := c.req.ToModel(c.assetID)
	if err != nil {
		return c.env.usageError("Invalid price: %v", err)
	}

	return c.env.run(ctx, "record closing price", func(b *Backend) error {
		if err := b.Ledger.RecordClosingPrice(ctx, marketData); err != nil {
			return err
		}
		fmt.Fprintf(c.env.Out, "Closing price recorded for asset %d.\n", c.assetID)
		return nil
	})
}

type priceCmd struct {
	env     *Env
	assetID int64
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "show the latest closing price of an asset" }
func (*priceCmd) Usage() string {
	return `portfolio price -asset <asset id>
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.assetID, "asset", 0, "asset ID")
}

func (c *priceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.env.positiveID("asset", c.assetID) {
		return subcommands.ExitUsageError
	}

	return c.env.run(ctx, "fetch closing price", func(b *Backend) error {
		md, err := b.Ledger.GetLatestPrice(ctx, c.assetID)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.env.Out, "Asset %d closed at %s on %s\n",
			c.assetID, md.ClosingPrice.StringFixed(2), md.PriceDate.Format(dto.DateLayout))
		return nil
	})
}
