// Command recover prints the secret of every case file given on the command
// line.
//
//	recover [-modulus P] [-workers N] [-select=false] case1.json case2.bin ...
//
// Set GLOG=debug to log every recovered case, GLOG=no to silence the logs.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"os/signal"
	"runtime"
	"sharerecovery/lagrange"
	"sharerecovery/logging"
	"sharerecovery/recovery"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("recover", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		modulus      string
		workers      int
		selectShares bool
	)
	fs.StringVar(&modulus, "modulus", big.NewInt(lagrange.DefaultPrime).String(), "Field prime (decimal)")
	fs.IntVar(&workers, "workers", runtime.NumCPU(), "Cases processed in parallel")
	fs.BoolVar(&selectShares, "select", true, "Use the first k shares when a case has more than k")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: recover [flags] <case1.json> <case2.json> ...\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	m, ok := new(big.Int).SetString(modulus, 10)
	if !ok {
		fmt.Fprintf(stderr, "invalid modulus %q\n", modulus)
		return 2
	}

	runner, err := recovery.NewRunner(
		recovery.WithModulus(m),
		recovery.WithWorkers(workers),
		recovery.WithShareSelection(selectShares),
		recovery.WithLogger(logging.GetLogger("recover")),
	)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	status := 0
	for _, res := range runner.Run(ctx, fs.Args()) {
		if res.Err != nil {
			fmt.Fprintf(stderr, "Error: %s: %v\n", res.Path, res.Err)
			status = 1
			continue
		}
		fmt.Fprintf(stdout, "%s -> Recovered Secret = %s\n", res.Path, res.Secret)
	}
	return status
}
