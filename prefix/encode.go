package prefix

import (
	"fmt"

	"github.com/bitseq-go/bitseq"
)

// Encode validates code, then appends the codeword for each symbol of
// symbols, in order, to out.  Encoding needs no tree; it is a pure
// table lookup per symbol.
//
// Encoding is not atomic: if symbols[k] is missing from the table,
// Encode fails with ErrUnknownSymbol after the codewords for
// symbols[:k] have already been appended to out.  Callers that need
// all-or-nothing behavior must pre-check the symbol stream or discard
// out on failure.
func Encode[S comparable](code Code[S], symbols []S, out *bitseq.Bitseq) error {
	if err := Validate(code); err != nil {
		return err
	}
	for i, sym := range symbols {
		cw, ok := code[sym]
		if !ok {
			return fmt.Errorf("%w: %v at index %d", ErrUnknownSymbol, sym, i)
		}
		out.AppendBits(cw)
	}
	return nil
}
