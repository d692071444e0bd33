// Command bptreebench drives pkg/bptree through insert, scan, and mixed
// insert/erase workloads and reports operation counts and latencies. It
// is a thin external collaborator around the tree, not part of the
// container's own API surface.
package main

import "bptree/cmd/bptreebench/cmd"

func main() {
	cmd.Execute()
}
