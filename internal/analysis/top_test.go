package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type groupedKey struct {
	Group string
	Name  string
}

func groupOf(k groupedKey) string {
	return k.Group
}

func rowsOf(specs ...any) []Row[groupedKey] {
	var rows []Row[groupedKey]
	for i := 0; i+3 < len(specs); i += 4 {
		rows = append(rows, Row[groupedKey]{
			Key:   groupedKey{Group: specs[i].(string), Name: specs[i+1].(string)},
			Ms:    int64(specs[i+2].(int)),
			Plays: specs[i+3].(int),
		})
	}
	return rows
}

func names(rows []Row[groupedKey]) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r.Key.Name)
	}
	return out
}

func TestTopNPerGroup(t *testing.T) {
	rows := rowsOf(
		"2021", "a", 10, 1,
		"2022", "b", 50, 1,
		"2021", "c", 30, 1,
		"2021", "d", 20, 1,
		"2022", "e", 60, 1,
		"2021", "f", 40, 1,
	)

	groups := TopN(rows, groupOf, ByTime[groupedKey], 2, 0)
	require.Len(t, groups, 2)

	require.Equal(t, "2021", groups[0].Key)
	require.Equal(t, []string{"f", "c"}, names(groups[0].Rows))

	require.Equal(t, "2022", groups[1].Key)
	require.Equal(t, []string{"e", "b"}, names(groups[1].Rows))
}

func TestTopNBoundsAndOrdering(t *testing.T) {
	rows := rowsOf(
		"g", "a", 5, 1,
		"g", "b", 9, 1,
		"g", "c", 1, 1,
		"g", "d", 7, 1,
		"g", "e", 3, 1,
		"g", "f", 8, 1,
		"g", "h", 2, 1,
	)

	groups := TopN(rows, groupOf, ByTime[groupedKey], 5, 0)
	require.Len(t, groups, 1)
	kept := groups[0].Rows
	require.Len(t, kept, 5)

	for i := 1; i < len(kept); i++ {
		require.GreaterOrEqual(t, kept[i-1].Ms, kept[i].Ms)
	}

	smallest := kept[len(kept)-1].Ms
	keptNames := map[string]bool{}
	for _, r := range kept {
		keptNames[r.Key.Name] = true
	}
	for _, r := range rows {
		if !keptNames[r.Key.Name] {
			require.LessOrEqual(t, r.Ms, smallest)
		}
	}
}

func TestTopNTiesKeepInputOrder(t *testing.T) {
	rows := rowsOf(
		"g", "first", 10, 1,
		"g", "second", 10, 1,
		"g", "big", 20, 1,
		"g", "third", 10, 1,
	)

	require.Equal(t, []string{"big", "first"}, names(Top(rows, ByTime[groupedKey], 2, 0)))
	require.Equal(t, []string{"big", "first", "second", "third"}, names(Top(rows, ByTime[groupedKey], 10, 0)))
}

func TestTopNShortfallKeepsEverything(t *testing.T) {
	rows := rowsOf("g", "a", 1, 1, "g", "b", 2, 1)
	require.Equal(t, []string{"b", "a"}, names(Top(rows, ByTime[groupedKey], 5, 0)))
}

func TestTopNMinPlays(t *testing.T) {
	rows := rowsOf(
		"artist", "five", 100, 5,
		"artist", "six", 50, 6,
		"other", "only", 10, 2,
	)

	groups := TopN(rows, groupOf, ByTime[groupedKey], 5, 5)
	require.Len(t, groups, 1, "groups emptied by the filter are dropped")
	require.Equal(t, []string{"six"}, names(groups[0].Rows))
}

func TestTopNByPlays(t *testing.T) {
	rows := rowsOf(
		"g", "long", 1000, 1,
		"g", "often", 10, 9,
	)
	require.Equal(t, []string{"often", "long"}, names(Top(rows, byPlays[groupedKey], 2, 0)))
}

func TestTopNEmpty(t *testing.T) {
	require.Nil(t, Top[groupedKey](nil, ByTime[groupedKey], 5, 0))
	require.Nil(t, Top(rowsOf("g", "a", 1, 1), ByTime[groupedKey], 0, 0))
}

func TestTopNDoesNotReorderInput(t *testing.T) {
	rows := rowsOf("g", "a", 1, 1, "g", "b", 2, 1)
	Top(rows, ByTime[groupedKey], 2, 0)
	require.Equal(t, []string{"a", "b"}, names(rows))
}

func byPlays[K comparable](r Row[K]) int64 {
	return int64(r.Plays)
}
