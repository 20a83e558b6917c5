// Command bitcodec encodes and decodes text with a prefix code supplied
// in a config file.
//
// The config file (YAML, JSON, or TOML) names an optional endianness and
// the code table.  Symbol keys must be single characters; config keys
// are folded to lower case.
//
//	endian: big
//	code:
//	  a: "0"
//	  b: "10"
//	  c: "11"
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/bitseq-go/bitseq"
	"github.com/bitseq-go/bitseq/prefix"
)

func main() {
	configPath := flag.String("config", "bitcodec.yaml", "path to the code table config")
	inPath := flag.String("in", "-", "input file, or - for stdin")
	outPath := flag.String("out", "-", "output file, or - for stdout")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}

	if flag.NArg() == 0 {
		showHelp()
		os.Exit(2)
	}

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "encode":
		err = runEncode(logger, *configPath, *inPath, *outPath)
	case "decode":
		err = runDecode(logger, *configPath, *inPath, *outPath)
	case "check":
		err = runCheck(logger, *configPath)
	case "version":
		info := bitseq.SysInfo()
		fmt.Printf("bitcodec %s (%s/%s, %d-bit)\n", info.Version, info.OS, info.Arch, info.WordBits)
	default:
		logger.Error().Str("command", cmd).Msg("unknown command")
		showHelp()
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("command failed")
	}
}

func showHelp() {
	fmt.Fprintf(os.Stderr, `Usage: bitcodec [flags] <command>

Commands:
  encode    encode text from -in into a framed bit sequence at -out
  decode    decode a framed bit sequence from -in into text at -out
  check     validate the code table and run a round-trip self-test
  version   print version and platform details

Flags:
`)
	flag.PrintDefaults()
}

// loadTable reads the code table from the config file.  Codewords are
// frozen so no later mutation of the loaded table can desynchronize a
// cached tree.
func loadTable(path string) (prefix.Code[rune], bitseq.Endian, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("endian", "big")
	if err := v.ReadInConfig(); err != nil {
		return nil, bitseq.BigEndian, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	endian, err := bitseq.ParseEndian(v.GetString("endian"))
	if err != nil {
		return nil, bitseq.BigEndian, err
	}

	raw := v.GetStringMapString("code")
	code := make(prefix.Code[rune], len(raw))
	for sym, word := range raw {
		runes := []rune(sym)
		if len(runes) != 1 {
			return nil, endian, fmt.Errorf("symbol %q must be a single character", sym)
		}
		bs, err := bitseq.FromString(word, bitseq.WithEndian(endian))
		if err != nil {
			return nil, endian, fmt.Errorf("codeword for symbol %q: %w", sym, err)
		}
		code[runes[0]] = bitseq.Freeze(bs)
	}
	return code, endian, nil
}

func runEncode(logger zerolog.Logger, configPath, inPath, outPath string) error {
	code, endian, err := loadTable(configPath)
	if err != nil {
		return err
	}

	text, err := readInput(inPath)
	if err != nil {
		return err
	}
	symbols := []rune(strings.TrimSuffix(string(text), "\n"))

	out := bitseq.New(0, bitseq.WithEndian(endian))
	if err := prefix.Encode(code, symbols, out); err != nil {
		return err
	}
	logger.Debug().
		Int("symbols", len(symbols)).
		Int("bits", out.Len()).
		Str("endian", endian.String()).
		Msg("encoded")

	framed, err := out.MarshalBinary()
	if err != nil {
		return err
	}
	return writeOutput(outPath, framed)
}

func runDecode(logger zerolog.Logger, configPath, inPath, outPath string) error {
	code, _, err := loadTable(configPath)
	if err != nil {
		return err
	}

	framed, err := readInput(inPath)
	if err != nil {
		return err
	}
	var bits bitseq.Bitseq
	if err := bits.UnmarshalBinary(framed); err != nil {
		return err
	}

	symbols, err := prefix.Decode(code, &bits)
	if err != nil {
		return err
	}
	logger.Debug().
		Int("bits", bits.Len()).
		Int("symbols", len(symbols)).
		Msg("decoded")

	return writeOutput(outPath, []byte(string(symbols)+"\n"))
}

// runCheck validates the table, builds its tree, and round-trips a
// random symbol stream through both decode paths.  It doubles as the
// package self-test entry point.
func runCheck(logger zerolog.Logger, configPath string) error {
	code, endian, err := loadTable(configPath)
	if err != nil {
		return err
	}

	tree, err := prefix.NewTree(code)
	if err != nil {
		return err
	}
	logger.Info().
		Int("symbols", tree.NumSymbols()).
		Str("endian", endian.String()).
		Msg("code table is well-formed")

	domain := make([]rune, 0, len(code))
	for sym := range code {
		domain = append(domain, sym)
	}
	sample := make([]rune, 1000)
	for i := range sample {
		sample[i] = domain[rand.Intn(len(domain))]
	}

	bits := bitseq.New(0, bitseq.WithEndian(endian))
	if err := prefix.Encode(code, sample, bits); err != nil {
		return err
	}
	batch, err := tree.Decode(bits)
	if err != nil {
		return err
	}
	var lazy []rune
	it := tree.Iter(bits)
	for it.Next() {
		lazy = append(lazy, it.Symbol())
	}
	if err := it.Err(); err != nil {
		return err
	}
	if string(batch) != string(sample) || string(lazy) != string(sample) {
		return fmt.Errorf("round trip mismatch over %d symbols", len(sample))
	}
	logger.Info().
		Int("sampleSize", len(sample)).
		Int("bits", bits.Len()).
		Msg("round-trip self-test passed")
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
