package prefix_test

import (
	"fmt"
	"strings"

	"github.com/bitseq-go/bitseq"
	"github.com/bitseq-go/bitseq/prefix"
)

func Example() {
	table := prefix.Code[string]{}
	for sym, word := range map[string]string{"a": "0", "b": "10", "c": "11"} {
		cw, _ := bitseq.FromString(word)
		table[sym] = bitseq.Freeze(cw)
	}

	out := bitseq.New(0)
	if err := prefix.Encode(table, []string{"a", "b", "c", "a"}, out); err != nil {
		panic(err)
	}
	fmt.Println(out)

	symbols, err := prefix.Decode(table, out)
	if err != nil {
		panic(err)
	}
	fmt.Println(strings.Join(symbols, ""))
	// Output:
	// 010110
	// abca
}

func ExampleIterdecode() {
	table := prefix.Code[rune]{
		'x': bitseq.Freeze(mustWord("0")),
		'y': bitseq.Freeze(mustWord("1")),
	}

	bits, _ := bitseq.FromString("0110")
	it, err := prefix.Iterdecode(table, bits)
	if err != nil {
		panic(err)
	}
	for it.Next() {
		fmt.Printf("%c", it.Symbol())
	}
	if err := it.Err(); err != nil {
		panic(err)
	}
	// Output:
	// xyyx
}

func mustWord(s string) *bitseq.Bitseq {
	b, err := bitseq.FromString(s)
	if err != nil {
		panic(err)
	}
	return b
}
