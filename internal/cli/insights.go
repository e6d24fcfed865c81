package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type insightsCmd struct {
	env    *Env
	userID int64
	style  string
	width  int
}

func (*insightsCmd) Name() string { return "insights" }
func (*insightsCmd) Synopsis() string {
	return "show total value, allocation and performance of a user's portfolio"
}
func (*insightsCmd) Usage() string {
	return `portfolio insights -user <user id> [-style auto|dark|light|notty] [-w <width>]
`
}

func (c *insightsCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.userID, "user", 1, "user ID")
	f.StringVar(&c.style, "style", "auto", "glamour style used to render the dashboard")
	f.IntVar(&c.width, "w", 100, "word wrap width")
}

func (c *insightsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.env.positiveID("user", c.userID) {
		return subcommands.ExitUsageError
	}

	return c.env.run(ctx, "generate insights", func(b *Backend) error {
		dashboard, err := b.Insights.GetDashboard(ctx, c.userID)
		if err != nil {
			return err
		}
		out, err := c.env.Renderer.Terminal(dashboard, c.style, c.width)
		if err != nil {
			return err
		}
		fmt.Fprint(c.env.Out, out)
		return nil
	})
}
