package prefix

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitseq-go/bitseq"
)

func collect[S comparable](it *Iterator[S]) ([]S, error) {
	var out []S
	for it.Next() {
		out = append(out, it.Symbol())
	}
	return out, it.Err()
}

func TestDecode(t *testing.T) {
	code := mustTable(t, map[string]string{"a": "0", "b": "10", "c": "11"})

	symbols, err := Decode(code, mustBits(t, "010110"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "a"}, symbols)
}

func TestDecodeEmptyInput(t *testing.T) {
	code := mustTable(t, map[string]string{"a": "0"})

	symbols, err := Decode(code, bitseq.New(0))
	require.NoError(t, err)
	assert.Empty(t, symbols)
}

func TestDecodeMalformed(t *testing.T) {
	code := mustTable(t, map[string]string{"a": "1"})

	_, err := Decode(code, mustBits(t, "101"))
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "at bit 1")
}

func TestDecodeIncomplete(t *testing.T) {
	code := mustTable(t, map[string]string{"a": "00", "b": "01", "c": "1"})

	_, err := Decode(code, mustBits(t, "10010"))
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Contains(t, err.Error(), "1 trailing bits")
}

func TestDecodeValidatesFirst(t *testing.T) {
	_, err := Decode(Code[string]{}, bitseq.New(0))
	assert.ErrorIs(t, err, ErrEmptyCode)

	_, err = Iterdecode(Code[string]{"a": mustBits(t, "")}, bitseq.New(0))
	assert.ErrorIs(t, err, ErrEmptyCodeword)
}

func TestDecodeFrozenInput(t *testing.T) {
	code := mustTable(t, map[string]string{"a": "00", "b": "01", "c": "1"})

	symbols, err := Decode(code, bitseq.Freeze(mustBits(t, "100011")))
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b", "c"}, symbols)
}

func TestRoundTrip(t *testing.T) {
	code := mustTable(t, map[string]string{
		"e": "0",
		"t": "10",
		"a": "110",
		"o": "1110",
		"n": "11110",
		"s": "11111",
	})
	tree, err := NewTree(code)
	require.NoError(t, err)

	for _, text := range []string{"notes", "toast", "season", "eat", "e", "statesense"} {
		symbols := strings.Split(text, "")

		out := bitseq.New(0)
		require.NoError(t, Encode(code, symbols, out))

		batch, err := tree.Decode(out)
		require.NoError(t, err)
		if diff := cmp.Diff(symbols, batch); diff != "" {
			t.Errorf("round trip mismatch for %q (-want +got):\n%s", text, diff)
		}

		lazy, err := collect(tree.Iter(out))
		require.NoError(t, err)
		if diff := cmp.Diff(symbols, lazy); diff != "" {
			t.Errorf("lazy round trip mismatch for %q (-want +got):\n%s", text, diff)
		}
	}
}

func TestDecoderAgreement(t *testing.T) {
	type testRow struct {
		name  string
		words map[string]string
		bits  string
	}

	testData := [...]testRow{
		{name: "success", words: map[string]string{"a": "0", "b": "10", "c": "11"}, bits: "010110"},
		{name: "empty input", words: map[string]string{"a": "0"}, bits: ""},
		{name: "malformed", words: map[string]string{"a": "1"}, bits: "101"},
		{name: "malformed mid-codeword", words: map[string]string{"a": "00", "b": "01"}, bits: "0010"},
		{name: "incomplete", words: map[string]string{"a": "00", "b": "01", "c": "1"}, bits: "10010"},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			tree, err := NewTree(mustTable(t, row.words))
			require.NoError(t, err)
			bits := mustBits(t, row.bits)

			batch, batchErr := tree.Decode(bits)
			lazy, lazyErr := collect(tree.Iter(bits))

			if batchErr == nil {
				require.NoError(t, lazyErr)
				if diff := cmp.Diff(batch, lazy); diff != "" {
					t.Errorf("decoder outputs differ (-batch +lazy):\n%s", diff)
				}
				return
			}

			// The lazy path must fail at the same bit position, after
			// yielding the symbols recognized before it.
			require.Error(t, lazyErr)
			assert.Equal(t, batchErr.Error(), lazyErr.Error())
		})
	}
}

func TestIteratorYieldsBeforeFailure(t *testing.T) {
	code := mustTable(t, map[string]string{"a": "1"})
	tree, err := NewTree(code)
	require.NoError(t, err)

	it := tree.Iter(mustBits(t, "101"))
	require.True(t, it.Next())
	assert.Equal(t, "a", it.Symbol())
	assert.NoError(t, it.Err())

	assert.False(t, it.Next())
	assert.ErrorIs(t, it.Err(), ErrMalformed)

	// Exhausted for good.
	assert.False(t, it.Next())
}

func TestIteratorEarlyStop(t *testing.T) {
	code := mustTable(t, map[string]string{"a": "0", "b": "10", "c": "11"})
	tree, err := NewTree(code)
	require.NoError(t, err)
	bits := mustBits(t, "010110")

	it := tree.Iter(bits)
	require.True(t, it.Next())
	require.True(t, it.Next())
	// Walking away mid-stream is always safe: the input and the tree
	// are untouched, and a fresh iterator starts over.
	assert.Equal(t, "010110", bits.String())

	full, err := collect(tree.Iter(bits))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "a"}, full)
}

func TestTreeReuse(t *testing.T) {
	code := mustTable(t, map[string]string{"a": "00", "b": "01", "c": "1"})
	tree, err := NewTree(code)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		symbols, err := tree.Decode(mustBits(t, "100011"))
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b", "c"}, symbols)
	}
}
