// Command regfake generates synthetic person, business, vehicle and account
// records for test fixtures.
//
// Usage:
//
//	regfake generate -type RT_NATURAL_PERSON -mod female -count 10
//	regfake templates
//	regfake seed -store bolt -file refdata.yaml
//	regfake serve -addr :8080
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
)

var errUsage = errors.New("usage: regfake <generate|templates|seed|serve> [flags]")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("[CLI] %v", err)
	}
}

// run dispatches args to a subcommand. Records and listings go to stdout;
// logs go to the standard logger.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "generate":
		return runGenerate(ctx, args[1:], stdout)
	case "templates":
		return runTemplates(args[1:], stdout)
	case "seed":
		return runSeed(ctx, args[1:])
	case "serve":
		return runServe(ctx, args[1:])
	case "-h", "-help", "--help", "help":
		fmt.Fprintln(stdout, errUsage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%w", args[0], errUsage)
	}
}
