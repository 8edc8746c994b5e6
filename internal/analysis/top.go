package analysis

import "sort"

// Metric picks the measure a ranking is ordered by.
type Metric[K comparable] func(Row[K]) int64

func ByTime[K comparable](r Row[K]) int64 {
	return r.Ms
}

// Overall is the group key of a ranking over the whole table.
type Overall struct{}

func WholeTable[K comparable](K) Overall {
	return Overall{}
}

type Group[G comparable, K comparable] struct {
	Key  G
	Rows []Row[K]
}

// TopN keeps the n highest rows of every group, ordered by metric from high
// to low. Ties keep their input order. When minPlays is positive, rows with
// Plays <= minPlays are dropped before ranking. Groups come out in the order
// they first appear in rows; groups left empty by the filter are omitted.
func TopN[K comparable, G comparable](rows []Row[K], group func(K) G, metric Metric[K], n int, minPlays int) []Group[G, K] {
	if n <= 0 {
		return nil
	}

	index := map[G]int{}
	var groups []Group[G, K]
	for _, r := range rows {
		if minPlays > 0 && r.Plays <= minPlays {
			continue
		}
		g := group(r.Key)
		i, ok := index[g]
		if !ok {
			i = len(groups)
			index[g] = i
			groups = append(groups, Group[G, K]{Key: g})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}

	for i := range groups {
		ranked := groups[i].Rows
		sort.SliceStable(ranked, func(a, b int) bool {
			return metric(ranked[a]) > metric(ranked[b])
		})
		if len(ranked) > n {
			ranked = ranked[:n]
		}
		groups[i].Rows = ranked
	}

	return groups
}

// Top ranks the whole table as a single group.
func Top[K comparable](rows []Row[K], metric Metric[K], n int, minPlays int) []Row[K] {
	groups := TopN(rows, WholeTable[K], metric, n, minPlays)
	if len(groups) == 0 {
		return nil
	}
	return groups[0].Rows
}
