package main

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/pkg/errors"
	"v.io/x/lib/cmdline"

	"github.com/grailbio/jst/variant"
)

type statsFlags struct {
	store *string
	gzIn  *bool
}

func newCmdStats() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "stats",
		Short: "Report variant and coverage counts for an RCS store",
	}
	flags := statsFlags{
		store: cmd.Flags.String("store", "", "Input RCS store path"),
		gzIn:  cmd.Flags.Bool("gzip", true, "Input store is gzip-compressed"),
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		return runStats(flags, env)
	})
	return cmd
}

func runStats(flags statsFlags, env *cmdline.Env) error {
	if *flags.store == "" {
		return errors.New("jst stats: -store is required")
	}
	store, err := loadStore(*flags.store, *flags.gzIn)
	if err != nil {
		return err
	}
	counts := map[variant.Kind]int{}
	for _, v := range store.Variants() {
		counts[v.Kind()]++
	}
	fmt.Fprintf(env.Stdout, "source length: %d\n", len(store.Source()))
	fmt.Fprintf(env.Stdout, "haplotype bits: %d\n", store.Size())
	fmt.Fprintf(env.Stdout, "variants: %d (SNV: %d, indel: %d)\n",
		len(store.Variants()), counts[variant.SNV], counts[variant.Indel])
	return nil
}
