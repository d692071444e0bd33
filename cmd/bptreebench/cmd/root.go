package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagOi   int
	flagOl   int
	flagN    int
	flagSeed int64
)

var rootCmd = &cobra.Command{
	Use:   "bptreebench",
	Short: "Benchmark driver for pkg/bptree",
	Long: `bptreebench drives an in-memory B+ tree through insert, scan, and
mixed insert/erase workloads, reporting operation counts and latencies as
Prometheus metrics dumped to stdout at the end of a run.`,
}

// Execute adds all child commands to the root command and runs it. Any
// error is reported to stderr and exits the process with status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagOi, "oi", 64, "internal fan-out")
	rootCmd.PersistentFlags().IntVar(&flagOl, "ol", 64, "leaf fan-out")
	rootCmd.PersistentFlags().IntVar(&flagN, "n", 100000, "number of operations to perform")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 1, "PRNG seed for key generation")
}
