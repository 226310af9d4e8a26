package main

import (
	"os"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"v.io/x/lib/cmdline"

	"github.com/grailbio/jst/encoding/fasta"
	"github.com/grailbio/jst/ingest"
)

type buildFlags struct {
	ref   *string
	vcf   *string
	h     *int
	out   *string
	gzOut *bool
}

func newCmdBuild() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "build",
		Short: "Ingest a reference FASTA and a VCF into an RCS store",
	}
	flags := buildFlags{
		ref:   cmd.Flags.String("ref", "", "Reference FASTA path"),
		vcf:   cmd.Flags.String("vcf", "", "Input VCF path"),
		h:     cmd.Flags.Int("haplotypes", 2, "Number of haplotypes the coverage bitset tracks"),
		out:   cmd.Flags.String("o", "", "Output RCS store path"),
		gzOut: cmd.Flags.Bool("gzip", true, "Gzip-compress the output store on top of its own internal snappy block"),
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		return runBuild(flags)
	})
	return cmd
}

func runBuild(flags buildFlags) error {
	if *flags.ref == "" || *flags.vcf == "" || *flags.out == "" {
		return errors.New("jst build: -ref, -vcf and -o are required")
	}
	refFile, err := os.Open(*flags.ref)
	if err != nil {
		return errors.Wrap(err, "jst build: opening reference")
	}
	defer refFile.Close()
	ref, err := fasta.New(refFile)
	if err != nil {
		return errors.Wrap(err, "jst build: parsing reference")
	}

	vcfFile, err := os.Open(*flags.vcf)
	if err != nil {
		return errors.Wrap(err, "jst build: opening VCF")
	}
	defer vcfFile.Close()

	log.Printf("jst build: ingesting %s against %s", *flags.vcf, *flags.ref)
	store, err := ingest.BuildStore(ref, vcfFile, *flags.h)
	if err != nil {
		return errors.Wrap(err, "jst build: ingesting VCF")
	}

	outFile, err := os.Create(*flags.out)
	if err != nil {
		return errors.Wrap(err, "jst build: creating output")
	}
	defer outFile.Close()

	if *flags.gzOut {
		gw := gzip.NewWriter(outFile)
		if err := store.Write(gw); err != nil {
			return errors.Wrap(err, "jst build: writing store")
		}
		if err := gw.Close(); err != nil {
			return errors.Wrap(err, "jst build: flushing gzip")
		}
	} else if err := store.Write(outFile); err != nil {
		return errors.Wrap(err, "jst build: writing store")
	}
	log.Printf("jst build: wrote %d variants to %s", len(store.Variants()), *flags.out)
	return nil
}
