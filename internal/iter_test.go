package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[string]string{"A": "1"}
	b := map[string]string{"B": "2", "C": "3"}

	got := maps.Collect(IterSeq2Concat(maps.All(a), maps.All(b)))
	assert.Equal(map[string]string{"A": "1", "B": "2", "C": "3"}, got)

	count := 0
	for range IterSeq2Concat(maps.All(a), maps.All(b)) {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestIterSeq2Sorted(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"ZETA": 1, "ALPHA": 2}
	b := map[string]int{"MID": 3, "ALPHA": 4}

	var keys []string
	var values []int
	for key, value := range IterSeq2Sorted(IterSeq2Concat(maps.All(a), maps.All(b))) {
		keys = append(keys, key)
		values = append(values, value)
	}
	assert.Equal([]string{"ALPHA", "MID", "ZETA"}, keys)
	assert.Equal([]int{4, 3, 1}, values)

	first := slices.Collect(func(yield func(string) bool) {
		for key := range IterSeq2Sorted(maps.All(a)) {
			if !yield(key) {
				return
			}
			break
		}
	})
	assert.Equal([]string{"ALPHA"}, first)
}
