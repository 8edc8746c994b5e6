package analysis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompactYears(t *testing.T) {
	tests := []struct {
		years []int
		want  string
	}{
		{nil, ""},
		{[]int{}, ""},
		{[]int{2020}, "2020"},
		{[]int{2020, 2020}, "2020"},
		{[]int{2020, 2021, 2022}, "2020-2022"},
		{[]int{2020, 2022}, "2020, 2022"},
		{[]int{2019, 2021, 2022, 2023}, "2019, 2021-2023"},
		{[]int{2025, 2021, 2024, 2023}, "2021, 2023-2025"},
		{[]int{2023, 2021, 2023, 2022, 2021}, "2021-2023"},
		{[]int{2010, 2011, 2015, 2017, 2018}, "2010-2011, 2015, 2017-2018"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, CompactYears(tt.years), "CompactYears(%v)", tt.years)
	}
}

func TestCompactYearsDoesNotModifyInput(t *testing.T) {
	years := []int{2023, 2021, 2022}
	CompactYears(years)
	require.Equal(t, []int{2023, 2021, 2022}, years)
}
