package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/edward-yakop/go-whisperer/internal/app"
	"github.com/edward-yakop/go-whisperer/internal/misc"
)

func main() {
	args := app.ArgsList{}
	flag.StringVar(&args.BaseURL,
		"base", "",
		"base url to send requests to, e.g. https://www.example.com (default $"+app.EnvBaseURL+")")
	flag.StringVar(&args.URI,
		"uri", "",
		"resource path relative to the base url, e.g. jargen/2014-09-01 (*required)")
	flag.StringVar(&args.Output,
		"output", "",
		"file to save the response body to, stdout when empty")
	flag.StringVar(&args.Key,
		"key", "",
		"OAuth1 consumer key (default $"+app.EnvConsumerKey+")")
	flag.StringVar(&args.Secret,
		"secret", "",
		"OAuth1 consumer secret (default $"+app.EnvConsumerSecret+")")
	flag.StringVar(&args.Decode,
		"decode", "identity",
		"decode the streamed body: identity, xz, lzma")
	flag.DurationVar(&args.Timeout,
		"timeout", 0,
		"request timeout, 0 for none")
	flag.BoolVar(&args.Debug,
		"debug", false,
		"dump requests and responses")
	flag.BoolVar(&args.Verbose,
		"verbose", false,
		"verbose output trace log")
	envFile := flag.String("env", ".env",
		"dotenv file with default settings")
	flag.Parse()

	misc.SetDefaultLog(os.Stderr, misc.LogLevel(args.Verbose))

	if err := app.LoadEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	app.ApplyEnv(&args)

	opt, err := app.ParseOption(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "--------------------------------------------")
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintln(os.Stderr, "--------------------------------------------")
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err = app.NewApp(opt, os.Stdout).Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		stop()
		os.Exit(1)
	}
}
