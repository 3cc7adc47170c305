package records

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/mesh-intelligence/storefront/pkg/types"
)

const (
	prefixLen = 3
	idWidth   = 3
)

// Prefix returns the id prefix for t: its first three letters, uppercased.
func Prefix(t types.EntityType) string {
	name := string(t)
	if len(name) > prefixLen {
		name = name[:prefixLen]
	}
	return strings.ToUpper(name)
}

// NextID returns the id the next record of type t receives: one more than the
// highest numeric suffix among records, zero-padded to three digits. Ids of
// deleted records are reissued only when no higher id remains.
func NextID(t types.EntityType, records []types.Record) string {
	highest := 0
	for _, r := range records {
		if n := idNumber(r.ID()); n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s-%0*d", Prefix(t), idWidth, highest+1)
}

// idNumber reads the number at the start of the segment after the first
// dash, skipping leading whitespace and an optional plus sign. Ids without a
// dash, without digits there, or with a number too large for an int count
// as 0.
func idNumber(id string) int {
	_, rest, ok := strings.Cut(id, "-")
	if !ok {
		return 0
	}
	seg, _, _ := strings.Cut(rest, "-")
	seg = strings.TrimLeftFunc(seg, unicode.IsSpace)
	seg = strings.TrimPrefix(seg, "+")

	end := 0
	for end < len(seg) && seg[end] >= '0' && seg[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(seg[:end])
	if err != nil {
		return 0
	}
	return n
}
