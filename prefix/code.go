package prefix

import (
	"errors"
	"fmt"

	"github.com/bitseq-go/bitseq"
)

// Code maps symbols to codewords.  Codewords may be mutable or frozen
// bit sequences; either way the codec never mutates or copies the table,
// and the caller retains ownership.
//
// A Code must be prefix-free: no codeword may be a prefix of another.
// This is checked when a Tree is built, not when the table is assembled.
type Code[S comparable] map[S]bitseq.Bits

// Table-shape and codeword-shape failures, detected before any tree
// work begins.
var (
	// ErrEmptyCode rejects a table with no entries.
	ErrEmptyCode = errors.New("prefix: empty code")

	// ErrNilCodeword rejects a table entry whose codeword is nil.
	ErrNilCodeword = errors.New("prefix: nil codeword")

	// ErrEmptyCodeword rejects a table entry whose codeword has zero
	// length.
	ErrEmptyCodeword = errors.New("prefix: empty codeword")
)

// Codec failures.
var (
	// ErrAmbiguous rejects a table in which one codeword is a prefix of
	// another.
	ErrAmbiguous = errors.New("prefix: ambiguous prefix code")

	// ErrUnknownSymbol is returned by Encode for a symbol absent from
	// the table.
	ErrUnknownSymbol = errors.New("prefix: unknown symbol")

	// ErrMalformed is returned when the decoded bits reach a point no
	// codeword passes through.
	ErrMalformed = errors.New("prefix: bits do not match any codeword")

	// ErrIncomplete is returned when the input ends in the middle of a
	// codeword.
	ErrIncomplete = errors.New("prefix: bit sequence ends mid-codeword")
)

// Validate checks the structural well-formedness of a code table: it
// must be non-empty and every codeword must be a non-nil bit sequence
// of length at least one.  Validate accepts the table as-is on success;
// it neither copies nor normalizes it.  Prefix-freeness is checked by
// NewTree, not here.
func Validate[S comparable](code Code[S]) error {
	if len(code) == 0 {
		return ErrEmptyCode
	}
	for sym, cw := range code {
		if cw == nil {
			return fmt.Errorf("%w for symbol %v", ErrNilCodeword, sym)
		}
		if cw.Len() == 0 {
			return fmt.Errorf("%w for symbol %v", ErrEmptyCodeword, sym)
		}
	}
	return nil
}
