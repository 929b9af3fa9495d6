// Package ordernum computes the next usable ORD-NNN order identifier.
//
// Numbers are allocated gap-first: ORD-003 is handed out before ORD-005 when
// 003 was freed by a deletion. Allocation is advisory only; two callers can
// compute the same candidate, and the unique constraint on the customers
// table decides the race at insert time.
package ordernum

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

var pattern = regexp.MustCompile(`^ORD-(\d+)$`)

// Next returns the lowest unused order number given every existing order
// number. Entries that don't match ORD-<digits> or parse to a non-positive
// value are ignored. An empty input yields ORD-001.
func Next(existing []string) string {
	nums := make([]int, 0, len(existing))
	for _, s := range existing {
		m := pattern.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		nums = append(nums, n)
	}
	sort.Ints(nums)

	next := 1
	for _, n := range nums {
		if n != next {
			break
		}
		next++
	}
	return Format(next)
}

// Format renders n as an ORD-NNN identifier, zero-padded to three digits.
func Format(n int) string {
	return fmt.Sprintf("ORD-%03d", n)
}
