// Package parse holds the locale policies used to turn spreadsheet text into numbers and dates.
//
// The default policies mirror the conventions of the purchasing spreadsheets: comma as the
// decimal separator, period as the thousands separator and day/month/year dates. Other
// conventions are silently misread, so consumers take the policy as a parameter.
package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// NumberParser converts formatted text into a decimal. Implementations never fail:
// unparseable input yields zero.
type NumberParser interface {
	ParseNumber(text string) decimal.Decimal
}

// NumberFunc adapts a plain function to NumberParser.
type NumberFunc func(text string) decimal.Decimal

// ParseNumber implements NumberParser.
func (f NumberFunc) ParseNumber(text string) decimal.Decimal {
	return f(text)
}

// Policy names accepted by NumberPolicy.
const (
	PolicyCommaDecimal = "comma-decimal"
	PolicyDotDecimal   = "dot-decimal"
)

var (
	notCommaDecimal = regexp.MustCompile(`[^\d,-]`)
	notDotDecimal   = regexp.MustCompile(`[^\d.-]`)
	leadingNumber   = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
)

// CommaDecimal strips everything except digits, commas and minus signs, turns the first
// comma into a decimal point and reads the longest numeric prefix. "1.234,50" becomes
// 1234.50. A period used as a decimal separator is stripped along with thousands
// separators, so "1,234.50" reads as 1.2345.
var CommaDecimal NumberParser = NumberFunc(func(text string) decimal.Decimal {
	cleaned := notCommaDecimal.ReplaceAllString(text, "")
	return leadingDecimal(strings.Replace(cleaned, ",", ".", 1))
})

// DotDecimal strips everything except digits, periods and minus signs. "1,234.50"
// becomes 1234.50.
var DotDecimal NumberParser = NumberFunc(func(text string) decimal.Decimal {
	return leadingDecimal(notDotDecimal.ReplaceAllString(text, ""))
})

// NumberPolicy returns the parser registered under name. An empty name selects CommaDecimal.
func NumberPolicy(name string) (NumberParser, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyCommaDecimal:
		return CommaDecimal, nil
	case PolicyDotDecimal:
		return DotDecimal, nil
	default:
		return nil, fmt.Errorf("unknown number policy: %q", name)
	}
}

func leadingDecimal(s string) decimal.Decimal {
	match := leadingNumber.FindString(s)
	if match == "" {
		return decimal.Zero
	}
	match = strings.TrimSuffix(match, ".")
	switch {
	case strings.HasPrefix(match, "-."):
		match = "-0" + match[1:]
	case strings.HasPrefix(match, "."):
		match = "0" + match
	}
	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero
	}
	return d
}
