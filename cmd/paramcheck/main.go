package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/billie-coop/rsvp/internal/tools/paramcheck"
)

func main() {
	cfg, err := paramcheck.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse flags: %v\n", err)
		os.Exit(2)
	}
	if err := paramcheck.Run(cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "paramcheck: %v\n", err)
		os.Exit(1)
	}
}
