package util

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareNatural(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"실습2", "실습10", -1},
		{"실습10", "실습2", 1},
		{"Homework2", "Homework10", -1},
		{"Homework1", "Homework1", 0},
		{"Homework02", "Homework2", 0},
		{"Homework1", "Homework1 추가", -1},
		{"a", "b", -1},
		{"", "a", -1},
		{"실습1", "출석", -1},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CompareNatural(tc.a, tc.b), "CompareNatural(%q, %q)", tc.a, tc.b)
	}
}

func TestCompareNaturalSortOrder(t *testing.T) {
	names := []string{"Homework10", "Homework2", "Homework1", "실습3", "실습10", "실습1"}
	sort.Slice(names, func(i, j int) bool { return CompareNatural(names[i], names[j]) < 0 })

	assert.Equal(t, []string{"Homework1", "Homework2", "Homework10", "실습1", "실습3", "실습10"}, names)
}
