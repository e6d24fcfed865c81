package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"portfolio-tracker/internal/cli"
	"portfolio-tracker/internal/config"

	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, "portfolio")

	env, err := cli.NewEnv(config.Load(), os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}
	cli.Register(commander, env)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
