package table

import (
	"fmt"
	"sync"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"

	"github.com/vybium/vybium-stark-arithmetization/internal/vybium-stark-arithmetization/domain"
	"github.com/vybium/vybium-stark-arithmetization/internal/vybium-stark-arithmetization/xfield"
	arith "github.com/vybium/vybium-stark-arithmetization/pkg/vybium-stark-arithmetization"
)

// ExtBaseTable holds one extended trace over the extension field, or the
// codewords produced from it. It reuses the shape of the base table it was
// promoted from, so constraint-checking code is agnostic to trace view vs.
// codeword view.
type ExtBaseTable struct {
	name           string
	fullWidth      int
	paddedHeight   int
	numRandomizers int
	omicron        field.Element
	generator      field.Element
	order          int
	matrix         [][]xfield.Element

	// codeword marks a table holding one codeword per column in place of
	// trace rows
	codeword bool
}

// Name returns the diagnostic identifier
func (et *ExtBaseTable) Name() string {
	return et.name
}

// FullWidth returns the extended column width: base width plus the number
// of running-argument columns
func (et *ExtBaseTable) FullWidth() int {
	return et.fullWidth
}

// Height returns the current number of rows
func (et *ExtBaseTable) Height() int {
	return len(et.matrix)
}

// PaddedHeight returns the power-of-two height inherited from the base table
func (et *ExtBaseTable) PaddedHeight() int {
	return et.paddedHeight
}

// NumRandomizers returns the count of zero-knowledge randomizer rows
func (et *ExtBaseTable) NumRandomizers() int {
	return et.numRandomizers
}

// Omicron returns the trace-domain generator
func (et *ExtBaseTable) Omicron() field.Element {
	return et.omicron
}

// IsCodeword reports whether the table holds codewords instead of trace rows
func (et *ExtBaseTable) IsCodeword() bool {
	return et.codeword
}

// Row returns one row by index
func (et *ExtBaseTable) Row(i int) []xfield.Element {
	return et.matrix[i]
}

// Column gathers one column across all rows
func (et *ExtBaseTable) Column(j int) []xfield.Element {
	column := make([]xfield.Element, len(et.matrix))
	for i := range et.matrix {
		column[i] = et.matrix[i][j]
	}
	return column
}

// Pad is a fatal usage error on extended tables: padding is meaningful only
// before promotion to the extension field
func (et *ExtBaseTable) Pad() error {
	return arith.NewInvalidUsage(et.name, "extension tables don't get padded")
}

// lowDegreeExtension interpolates each column as a polynomial of degree <
// paddedHeight over the trace domain and evaluates it over the given larger
// evaluation domain, yielding one codeword per column.
//
// Columns are independent and extended in parallel. The result is
// deterministic: bit-identical extended traces reproduce bit-identical
// codewords.
func (et *ExtBaseTable) lowDegreeExtension(evalDomain *domain.ArithmeticDomain) ([][]xfield.Element, error) {
	if et.codeword {
		return nil, arith.NewInvalidUsage(et.name, "table already holds codewords")
	}
	if len(et.matrix) == 0 {
		return nil, arith.NewInvalidUsage(et.name, "codeword production requires trace rows")
	}
	if len(et.matrix) != et.paddedHeight {
		return nil, arith.NewInvalidUsage(et.name,
			fmt.Sprintf("trace height %d differs from padded height %d; pad before extending",
				len(et.matrix), et.paddedHeight))
	}
	if evalDomain.Length < et.paddedHeight {
		return nil, arith.NewDomainMismatch(et.name,
			fmt.Sprintf("evaluation domain length %d cannot carry columns of height %d",
				evalDomain.Length, et.paddedHeight))
	}

	traceDomain, err := domain.NewWithGenerator(et.omicron, et.paddedHeight)
	if err != nil {
		return nil, arith.NewDomainMismatch(et.name, err.Error())
	}

	codewords := make([][]xfield.Element, et.fullWidth)

	var wg sync.WaitGroup
	errs := make(chan error, et.fullWidth)

	for col := 0; col < et.fullWidth; col++ {
		wg.Add(1)
		go func(colIdx int) {
			defer wg.Done()

			poly, err := traceDomain.Interpolate(et.Column(colIdx))
			if err != nil {
				errs <- fmt.Errorf("failed to interpolate column %d: %w", colIdx, err)
				return
			}

			codeword, err := evalDomain.Evaluate(poly)
			if err != nil {
				errs <- fmt.Errorf("failed to extend column %d: %w", colIdx, err)
				return
			}

			codewords[colIdx] = codeword
		}(col)
	}

	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		return nil, err
	}

	return codewords, nil
}

// withCodewords returns a table of the same shape holding the given
// codewords in place of trace rows
func (et *ExtBaseTable) withCodewords(evalDomain *domain.ArithmeticDomain, codewords [][]xfield.Element) *ExtBaseTable {
	matrix := make([][]xfield.Element, evalDomain.Length)
	for i := range matrix {
		row := make([]xfield.Element, et.fullWidth)
		for j := 0; j < et.fullWidth; j++ {
			row[j] = codewords[j][i]
		}
		matrix[i] = row
	}

	return &ExtBaseTable{
		name:           et.name,
		fullWidth:      et.fullWidth,
		paddedHeight:   et.paddedHeight,
		numRandomizers: et.numRandomizers,
		omicron:        et.omicron,
		generator:      et.generator,
		order:          et.order,
		matrix:         matrix,
		codeword:       true,
	}
}
