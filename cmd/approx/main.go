// Command approx exits with status 1 when two numbers differ by more than a
// tolerance and 0 otherwise. It is used to compare the output of the parallel
// and sequential integrators.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
)

func main() {
	tol := flag.Float64("tol", 0.1, "maximum accepted absolute difference")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-tol t] <a> <b>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	os.Exit(run(flag.Args(), *tol))
}

func run(args []string, tol float64) int {
	if len(args) != 2 {
		flag.Usage()
		return 2
	}
	a, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	b, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if math.Abs(a-b) > tol {
		return 1
	}
	return 0
}
