package lexer

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Operator characters are drawn from the ASCII operator punctuation plus
// the specific Unicode blocks the lexical-primitives design names. Rather
// than a long chain of rune-range comparisons, the head and tail classes
// are built once at package init as *unicode.RangeTable values via
// golang.org/x/text/unicode/rangetable, the way a Unicode-table-heavy
// lexer in the retrieved corpus assembles custom character classes.
var (
	operatorHeadTable *unicode.RangeTable
	operatorTailTable *unicode.RangeTable
)

const asciiOperatorChars = "=/-+!*%<>&|^~?"

func init() {
	var headRunes []rune
	for _, r := range asciiOperatorChars {
		headRunes = append(headRunes, r)
	}

	headRanges := []struct{ lo, hi rune }{
		{0x00A1, 0x00A7},
		{0x00A9, 0x00A9},
		{0x00AB, 0x00AB},
		{0x00AC, 0x00AC},
		{0x00AE, 0x00AE},
		{0x00B0, 0x00B1},
		{0x00B6, 0x00B6},
		{0x00BB, 0x00BB},
		{0x00BF, 0x00BF},
		{0x00D7, 0x00D7},
		{0x00F7, 0x00F7},
		{0x2016, 0x2017},
		{0x2020, 0x2027},
		{0x2030, 0x203E},
		{0x2041, 0x2053},
		{0x2055, 0x205E},
		{0x2190, 0x23FF},
		{0x2500, 0x2775},
		{0x2794, 0x2BFF},
		{0x2E00, 0x2E7F},
		{0x3001, 0x3003},
		{0x3008, 0x3030},
	}

	tailRanges := append([]struct{ lo, hi rune }{
		{0x0300, 0x036F},
		{0x1DC0, 0x1DFF},
		{0x20D0, 0x20FF},
		{0xFE00, 0xFE0F},
		{0xFE20, 0xFE2F},
		{0xE0100, 0xE01FF},
	}, headRanges...)

	operatorHeadTable = rangetable.Merge(rangetable.New(headRunes...), buildTable(headRanges))
	operatorTailTable = rangetable.Merge(rangetable.New(headRunes...), buildTable(tailRanges))
}

func buildTable(ranges []struct{ lo, hi rune }) *unicode.RangeTable {
	var runes []rune
	for _, r := range ranges {
		for c := r.lo; c <= r.hi && len(runes) < 1<<20; c++ {
			runes = append(runes, c)
		}
	}
	return rangetable.New(runes...)
}

// IsOperatorHead reports whether r may start an operator token.
func IsOperatorHead(r rune) bool {
	return unicode.Is(operatorHeadTable, r)
}

// IsOperatorTail reports whether r may continue an already-started
// operator token (a superset of IsOperatorHead: combining marks may
// continue but never start an operator).
func IsOperatorTail(r rune) bool {
	return unicode.Is(operatorTailTable, r)
}
