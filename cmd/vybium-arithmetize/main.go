// Command vybium-arithmetize reads a jump stack trace as JSON lines from
// stdin, runs the full arithmetization pipeline (pad, sample challenges and
// initials, extend, low-degree extend) and writes a JSON summary to stdout.
//
// Each input line is one trace row:
//
//	{"clk": 0, "ci": 9, "jsp": 0, "jso": 0, "jsd": 0}
package main

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-arithmetization/internal/vybium-stark-arithmetization/domain"
	"github.com/vybium/vybium-stark-arithmetization/internal/vybium-stark-arithmetization/table"
)

type traceRow struct {
	Clk uint64 `json:"clk"`
	Ci  uint64 `json:"ci"`
	Jsp uint64 `json:"jsp"`
	Jso uint64 `json:"jso"`
	Jsd uint64 `json:"jsd"`
}

type summary struct {
	Height            int    `json:"height"`
	PaddedHeight      int    `json:"padded_height"`
	FullWidth         int    `json:"full_width"`
	Omicron           string `json:"omicron"`
	ProcessorTerminal string `json:"processor_perm_terminal"`
	CodewordLength    int    `json:"codeword_length"`
}

func main() {
	var (
		order       = flag.Int("order", 1<<20, "order of the outer domain generator, a power of two bounding the trace length")
		expansion   = flag.Int("expansion", 4, "evaluation domain blowup factor")
		randomizers = flag.Int("randomizers", 2, "number of zero-knowledge randomizer rows")
		seedHex     = flag.String("seed", "", "hex transcript seed for challenge sampling (random when empty)")
		verbose     = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()
	if !*verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}

	matrix, err := readTrace(os.Stdin)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to read trace")
	}
	logger.Info().Int("rows", len(matrix)).Msg("read jump stack trace")

	generator := field.PrimitiveRootOfUnity(uint64(*order))
	jumpStack, err := table.NewJumpStackTableProver(generator, *order, *randomizers, matrix)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to construct jump stack table")
	}

	arithmetization, err := table.NewArithmetization(jumpStack, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to assemble arithmetization")
	}

	if err := arithmetization.PadAll(); err != nil {
		logger.Fatal().Err(err).Msg("failed to pad tables")
	}
	logger.Info().
		Int("padded_height", jumpStack.PaddedHeight()).
		Msg("padded all tables")

	seed, err := transcriptSeed(*seedHex)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to derive transcript seed")
	}
	challenges := table.SampleAllChallenges(seed)

	initials, err := table.NewRandomInitials()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to draw initials")
	}

	extended, err := arithmetization.ExtendAll(challenges, initials)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to extend tables")
	}
	terminals := extended.Terminals()
	logger.Info().
		Str("processor_perm_terminal", terminals.JumpStack.ProcessorPermTerminal.String()).
		Msg("extended all tables")

	out := summary{
		Height:            jumpStack.Height(),
		PaddedHeight:      jumpStack.PaddedHeight(),
		FullWidth:         table.JumpStackFullWidth,
		Omicron:           jumpStack.Omicron().String(),
		ProcessorTerminal: terminals.JumpStack.ProcessorPermTerminal.String(),
	}

	// An empty trace has nothing to interpolate; skip codeword production.
	if jumpStack.PaddedHeight() > 0 {
		evalDomain, err := domain.New(jumpStack.PaddedHeight() * *expansion)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to build evaluation domain")
		}

		codewords, err := extended.CodewordTables(evalDomain)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to produce codeword tables")
		}
		out.CodewordLength = codewords.JumpStack.Height()
		logger.Info().
			Int("codeword_length", out.CodewordLength).
			Msg("produced codeword tables")
	}

	encoder := json.NewEncoder(os.Stdout)
	if err := encoder.Encode(out); err != nil {
		logger.Fatal().Err(err).Msg("failed to write summary")
	}
}

// readTrace parses one trace row per input line, skipping blank lines
func readTrace(r *os.File) ([][]field.Element, error) {
	matrix := make([][]field.Element, 0)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var row traceRow
		if err := json.Unmarshal(line, &row); err != nil {
			return nil, fmt.Errorf("failed to parse row %d: %w", len(matrix), err)
		}

		matrix = append(matrix, []field.Element{
			field.New(row.Clk),
			field.New(row.Ci),
			field.New(row.Jsp),
			field.New(row.Jso),
			field.New(row.Jsd),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}

	return matrix, nil
}

// transcriptSeed decodes the -seed flag, or draws a fresh seed when empty
func transcriptSeed(seedHex string) ([]byte, error) {
	if seedHex != "" {
		seed, err := hex.DecodeString(seedHex)
		if err != nil {
			return nil, fmt.Errorf("invalid -seed: %w", err)
		}
		return seed, nil
	}

	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("failed to draw seed: %w", err)
	}
	return seed, nil
}
