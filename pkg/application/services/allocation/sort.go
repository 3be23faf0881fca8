package allocation

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ygroup/backlog/pkg/domain/entities"
)

const reworkPrefix = "RW"

// orderByFairness sorts the given line indices by creation date ascending,
// then applies the same-date tie-break within each run of equal dates:
// all-RW groups by the numeric value of the order id's last 5 characters,
// all-plain groups by order id, mixed groups by order total value descending.
// The returned slice is a reordered copy; lines are not touched.
func orderByFairness(lines []entities.BacklogLine, idxs []int) []int {
	sorted := make([]int, len(idxs))
	copy(sorted, idxs)

	sort.SliceStable(sorted, func(a, b int) bool {
		return lines[sorted[a]].CreatedOn.Before(lines[sorted[b]].CreatedOn)
	})

	start := 0
	for start < len(sorted) {
		end := start + 1
		for end < len(sorted) && lines[sorted[end]].CreatedOn.Equal(lines[sorted[start]].CreatedOn) {
			end++
		}
		if end-start > 1 {
			breakDateTie(lines, sorted[start:end])
		}
		start = end
	}

	return sorted
}

func breakDateTie(lines []entities.BacklogLine, group []int) {
	allRework := true
	noneRework := true
	for _, idx := range group {
		if strings.HasPrefix(string(lines[idx].OrderID), reworkPrefix) {
			noneRework = false
		} else {
			allRework = false
		}
	}

	switch {
	case allRework:
		sort.SliceStable(group, func(a, b int) bool {
			return reworkSuffix(lines[group[a]].OrderID) < reworkSuffix(lines[group[b]].OrderID)
		})
	case noneRework:
		sort.SliceStable(group, func(a, b int) bool {
			return lines[group[a]].OrderID < lines[group[b]].OrderID
		})
	default:
		sort.SliceStable(group, func(a, b int) bool {
			return lines[group[a]].TotalOrderValue.GreaterThan(lines[group[b]].TotalOrderValue)
		})
	}
}

// reworkSuffix parses the numeric value of an order id's last 5 characters.
// Non-numeric suffixes sort after every numeric one.
func reworkSuffix(id entities.OrderID) float64 {
	s := string(id)
	if len(s) > 5 {
		s = s[len(s)-5:]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return math.Inf(1)
	}
	return float64(n)
}
