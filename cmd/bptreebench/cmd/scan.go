package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"bptree/pkg/bptree"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Build a tree of N entries, then scan it forward and backward",
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := bptree.New[int64, int64, uint32](flagOi, flagOl)
		if err != nil {
			return err
		}

		if flagN <= 0 {
			return fmt.Errorf("scan: --n must be positive")
		}

		rng := rand.New(rand.NewSource(flagSeed))

		for i := 0; i < flagN; i++ {
			key := int64(i)*2 + rng.Int63n(2)
			if _, err := tree.Insert(key, key); err != nil {
				return fmt.Errorf("insert %d: %w", key, err)
			}
		}

		metrics := newBenchMetrics("scan")

		start := time.Now()
		count := 0

		for it := tree.Begin(); !it.AtEnd(); it = it.Next() {
			count++
		}

		metrics.record("forward_scan", time.Since(start))
		fmt.Printf("forward scan visited %d entries in %s\n", count, time.Since(start))

		start = time.Now()
		count = 0

		for it := tree.End().Prev(); !it.Equal(tree.Begin()); it = it.Prev() {
			count++
		}
		count++ // the final Begin() position itself

		metrics.record("backward_scan", time.Since(start))
		fmt.Printf("backward scan visited %d entries in %s\n", count, time.Since(start))

		return metrics.dump()
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
