package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"bptree/pkg/bptree"
)

var mixedCmd = &cobra.Command{
	Use:   "mixed",
	Short: "Drive a biased random mix of inserts and erase-by-rank",
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := bptree.New[int64, int64, uint32](flagOi, flagOl)
		if err != nil {
			return err
		}

		rng := rand.New(rand.NewSource(flagSeed))
		metrics := newBenchMetrics("mixed")

		start := time.Now()
		inserts, erases := 0, 0

		for i := 0; i < flagN; i++ {
			// Bias toward inserting while the tree is small, so it doesn't
			// spend the whole run oscillating around zero entries.
			insertProbability := 0.7
			if tree.Len() > flagN {
				insertProbability = 0.4
			}

			if tree.Len() == 0 || rng.Float64() < insertProbability {
				key := rng.Int63n(int64(flagN) * 4)

				opStart := time.Now()
				if _, err := tree.Insert(key, key); err != nil {
					return fmt.Errorf("insert %d: %w", key, err)
				}
				metrics.record("insert", time.Since(opStart))
				inserts++

				continue
			}

			it := tree.Begin()
			skip := rng.Intn(tree.Len())
			for j := 0; j < skip; j++ {
				it = it.Next()
			}

			opStart := time.Now()
			if _, err := tree.Erase(it); err != nil {
				return fmt.Errorf("erase at rank %d: %w", skip, err)
			}
			metrics.record("erase", time.Since(opStart))
			erases++
		}

		elapsed := time.Since(start)

		fmt.Printf("mixed workload: %d inserts, %d erases in %s (%.0f ops/sec), final size %d, depth %d\n",
			inserts, erases, elapsed, float64(flagN)/elapsed.Seconds(), tree.Len(), tree.Depth())

		if err := tree.Check(); err != nil {
			return fmt.Errorf("post-run consistency check failed: %w", err)
		}

		return metrics.dump()
	},
}

func init() {
	rootCmd.AddCommand(mixedCmd)
}
