// Command jst builds and searches journaled sequence trees (distilled
// spec's end-to-end CLI boundary): "build" ingests a reference FASTA and a
// VCF into an on-disk RCS store, "search" runs the bucket searcher against
// a store and emits a BAM of confirmed matches, and "stats" reports a
// store's variant and coverage counts.
package main

import (
	"v.io/x/lib/cmdline"
)

func main() {
	cmdline.Main(&cmdline.Command{
		Name:  "jst",
		Short: "Build and search journaled sequence trees",
		Children: []*cmdline.Command{
			newCmdBuild(),
			newCmdSearch(),
			newCmdStats(),
		},
	})
}
