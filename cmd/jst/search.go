package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"v.io/x/lib/cmdline"

	"github.com/grailbio/jst/bamout"
	"github.com/grailbio/jst/rcs"
	"github.com/grailbio/jst/search"
	"github.com/grailbio/jst/seqtree"
)

type searchFlags struct {
	store   *string
	needles *string
	out     *string
	errRate *float64
	trim    *int
	gzIn    *bool
}

func newCmdSearch() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "search",
		Short: "Search an RCS store for approximate needle matches and emit a BAM",
	}
	flags := searchFlags{
		store:   cmd.Flags.String("store", "", "Input RCS store path"),
		needles: cmd.Flags.String("needles", "", "Path to a file of needle sequences, one per line"),
		out:     cmd.Flags.String("o", "", "Output BAM path"),
		errRate: cmd.Flags.Float64("error-rate", 0.1, "Fraction of a needle's length tolerated as edits"),
		trim:    cmd.Flags.Int("trim", 0, "Cap each tree node's own window; 0 disables trimming"),
		gzIn:    cmd.Flags.Bool("gzip", true, "Input store is gzip-compressed"),
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		return runSearch(flags)
	})
	return cmd
}

func loadStore(path string, gzipped bool) (*rcs.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "jst search: opening store")
	}
	defer f.Close()
	if !gzipped {
		return rcs.Read(f)
	}
	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, errors.Wrap(err, "jst search: opening gzip store")
	}
	defer gr.Close()
	return rcs.Read(gr)
}

func readNeedles(path string) ([][]byte, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "jst search: opening needles")
	}
	defer f.Close()
	var needles [][]byte
	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		needles = append(needles, []byte(line))
		names = append(names, fmt.Sprintf("needle-%d", len(needles)-1))
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "jst search: reading needles")
	}
	return needles, names, nil
}

func runSearch(flags searchFlags) error {
	if *flags.store == "" || *flags.needles == "" || *flags.out == "" {
		return errors.New("jst search: -store, -needles and -o are required")
	}
	store, err := loadStore(*flags.store, *flags.gzIn)
	if err != nil {
		return err
	}
	needles, names, err := readNeedles(*flags.needles)
	if err != nil {
		return err
	}
	if len(needles) == 0 {
		return errors.New("jst search: no needles to search for")
	}

	base := seqtree.NewBaseTree(store.Source(), store.Variants(), store.Size())
	bucket := search.Bucket{Base: base, Needles: needles, H: store.Size()}
	opts := search.Options{ErrorRate: *flags.errRate, Trim: *flags.trim}

	log.Printf("jst search: searching %d needles against a %d-byte source", len(needles), len(store.Source()))
	matches, err := search.Search(bucket, opts)
	if err != nil {
		return errors.Wrap(err, "jst search: searching")
	}
	log.Printf("jst search: %d confirmed matches", len(matches))

	header, err := sam.NewHeader(nil, nil)
	if err != nil {
		return errors.Wrap(err, "jst search: building BAM header")
	}
	outFile, err := os.Create(*flags.out)
	if err != nil {
		return errors.Wrap(err, "jst search: creating output")
	}
	defer outFile.Close()
	writer, err := bam.NewWriter(outFile, header, 1)
	if err != nil {
		return errors.Wrap(err, "jst search: creating BAM writer")
	}
	defer writer.Close()

	for i, m := range matches {
		rec, err := bamout.Record(names[m.NeedleIndex], needles[m.NeedleIndex], m)
		if err != nil {
			return errors.Wrapf(err, "jst search: building record %d", i)
		}
		if err := writer.Write(rec); err != nil {
			return errors.Wrapf(err, "jst search: writing record %d", i)
		}
	}
	return nil
}
