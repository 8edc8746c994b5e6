package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// CompactYears renders a set of years as comma-separated runs, e.g.
// {2021, 2023, 2024, 2025} becomes "2021, 2023-2025".
func CompactYears(years []int) string {
	if len(years) == 0 {
		return ""
	}

	sorted := lo.Uniq(years)
	sort.Ints(sorted)

	var parts []string
	start := sorted[0]
	prev := sorted[0]
	flush := func() {
		if start == prev {
			parts = append(parts, strconv.Itoa(start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
		}
	}

	for _, y := range sorted[1:] {
		if y == prev+1 {
			prev = y
			continue
		}
		flush()
		start, prev = y, y
	}
	flush()

	return strings.Join(parts, ", ")
}
