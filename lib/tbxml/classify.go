// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tbxml

import (
	"fmt"
	"strconv"
)

// AttributeKind is the declared kind of a template slot. The numeric
// values are the kind bytes written to the wire and must not change.
type AttributeKind uint8

const (
	// KindNumeric slots hold a float64.
	KindNumeric AttributeKind = 0

	// KindText slots hold the raw attribute string.
	KindText AttributeKind = 1
)

// String returns "numeric" or "text".
func (kind AttributeKind) String() string {
	switch kind {
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("unknown(%d)", kind)
	}
}

// Valid reports whether kind is one of the defined kinds.
func (kind AttributeKind) Valid() bool {
	return kind == KindNumeric || kind == KindText
}

// Classify returns KindNumeric when value is a decimal floating-point
// literal as accepted by [ParseNumeric], and KindText otherwise.
func Classify(value string) AttributeKind {
	if isNumericLiteral(value) {
		return KindNumeric
	}
	return KindText
}

// ParseNumeric parses value under the numeric grammar:
//
//	[+-]? ( digits ( '.' digits? )? | '.' digits ) ( [eE] [+-]? digits )?
//
// Digits are ASCII and '.' is the only decimal separator, independent
// of any locale. Surrounding whitespace, digit separators, hex
// floats, and the NaN/Infinity words are all Text. A literal beyond
// float64 range is still numeric and parses to ±Inf.
func ParseNumeric(value string) (float64, bool) {
	if !isNumericLiteral(value) {
		return 0, false
	}
	// The grammar is a strict subset of what ParseFloat accepts, so
	// the only possible error is ErrRange, which still carries ±Inf.
	number, _ := strconv.ParseFloat(value, 64)
	return number, true
}

func isNumericLiteral(value string) bool {
	position := 0
	if position < len(value) && (value[position] == '+' || value[position] == '-') {
		position++
	}

	integerDigits := countDigits(value[position:])
	position += integerDigits

	fractionDigits := 0
	if position < len(value) && value[position] == '.' {
		position++
		fractionDigits = countDigits(value[position:])
		position += fractionDigits
	}
	if integerDigits == 0 && fractionDigits == 0 {
		return false
	}

	if position < len(value) && (value[position] == 'e' || value[position] == 'E') {
		position++
		if position < len(value) && (value[position] == '+' || value[position] == '-') {
			position++
		}
		exponentDigits := countDigits(value[position:])
		if exponentDigits == 0 {
			return false
		}
		position += exponentDigits
	}

	return position == len(value)
}

func countDigits(value string) int {
	count := 0
	for count < len(value) && value[count] >= '0' && value[count] <= '9' {
		count++
	}
	return count
}
