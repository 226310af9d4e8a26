// Package jsterr defines the error taxonomy shared across the jst packages.
//
// Construction errors (DomainMismatch, OutOfDomain, InvariantViolation) are
// fatal: callers should treat them as "do not use the partially built
// value". Decode and Input errors are reported with context (a byte offset
// or record index) by the caller that wraps them and do not corrupt
// previously-ingested state. SymbolicVariantSkipped names a benign case:
// ingest.ToVariants skips a symbolic ALT without returning an error, so
// ingestion continues.
package jsterr

import "github.com/pkg/errors"

// Sentinel errors, one per kind in the design's error taxonomy. Use
// errors.Is against these, and errors.Cause/errors.Wrap to attach context.
var (
	// ErrDomainMismatch is returned by a coverage operation whose operands
	// are not over the same haplotype domain.
	ErrDomainMismatch = errors.New("jst: coverage domain mismatch")

	// ErrOutOfDomain is returned when a variant's breakpoint exceeds the
	// reference length, or a coverage's size does not equal the store's
	// haplotype count.
	ErrOutOfDomain = errors.New("jst: value out of domain")

	// ErrInvariantViolation is returned by a journal operation on an
	// invalid range (first > last, or range exceeds journal size).
	ErrInvariantViolation = errors.New("jst: invariant violation")

	// ErrDecode is returned when a persisted store is malformed.
	ErrDecode = errors.New("jst: malformed persisted store")

	// ErrInput is returned for an unparsable VCF record (bad genotype,
	// unknown contig).
	ErrInput = errors.New("jst: malformed input record")

	// ErrSymbolicVariantSkipped is a benign signal: the VCF ALT started
	// with '<' and was skipped. Ingestion continues.
	ErrSymbolicVariantSkipped = errors.New("jst: symbolic variant skipped")

	// ErrSearchAborted signals user cancellation via iterator/traverser
	// drop; it is propagated as normal termination, not a failure.
	ErrSearchAborted = errors.New("jst: search aborted")
)

// WithContext wraps err with a positional context string (a byte offset, a
// record index, a field name) the way encoding/fasta and interval wrap
// scanner errors in the teacher codebase.
func WithContext(err error, context string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, context)
}
