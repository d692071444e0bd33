package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"bptree/pkg/bptree"
)

var insertCmd = &cobra.Command{
	Use:   "insert",
	Short: "Insert N random keys and report throughput",
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := bptree.New[int64, int64, uint32](flagOi, flagOl)
		if err != nil {
			return err
		}

		rng := rand.New(rand.NewSource(flagSeed))
		metrics := newBenchMetrics("insert")

		start := time.Now()

		for i := 0; i < flagN; i++ {
			key := rng.Int63n(int64(flagN) * 4)

			opStart := time.Now()
			if _, err := tree.Insert(key, key); err != nil {
				return fmt.Errorf("insert %d: %w", key, err)
			}
			metrics.record("insert", time.Since(opStart))
		}

		elapsed := time.Since(start)

		fmt.Printf("inserted %d entries in %s (%.0f ops/sec), tree depth %d\n",
			flagN, elapsed, float64(flagN)/elapsed.Seconds(), tree.Depth())

		return metrics.dump()
	},
}

func init() {
	rootCmd.AddCommand(insertCmd)
}
