package lineitems

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-quoteflow/pkg/option"
)

// packingNumberPattern matches the first decimal or integer token inside a
// packing-size label, e.g. "PAPER BAGS 15 KGS" -> 15, "DRUM 22.5 L" -> 22.5.
var packingNumberPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

// ExtractPackingNumber pulls the per-package quantity out of a packing-size
// label. ok is false when the label carries no parseable number; callers then
// leave the packing quantity blank.
func ExtractPackingNumber(label string) (float64, bool) {
	match := packingNumberPattern.FindString(label)
	if match == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParsePackingSizes splits the catalog's semicolon-delimited packing-size
// field into discrete choices. Blank segments are dropped.
func ParsePackingSizes(raw string) []option.Entry {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	out := make([]option.Entry, 0, len(parts))
	for _, part := range parts {
		size := strings.TrimSpace(part)
		if size == "" {
			continue
		}
		out = append(out, option.Entry{Label: size, Value: size})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// PackingQuantity derives the number of packages needed for a quantity given
// a packing-size label: ceil(quantity / n) rendered as a decimal string, or
// "" when the label has no extractable number.
func PackingQuantity(quantity float64, packingSize string) string {
	n, ok := ExtractPackingNumber(packingSize)
	if !ok || n <= 0 {
		return ""
	}
	return strconv.FormatInt(int64(math.Ceil(quantity/n)), 10)
}

// round2 rounds to two decimals, the precision catalog prices carry.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
