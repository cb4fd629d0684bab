package calendar

import (
	"sort"
	"time"
)

// HourHistogram раскладывает начала записей по часам суток (0–23) в поясе loc.
func HourHistogram(starts []time.Time, loc *time.Location) [24]int {
	var out [24]int
	for _, s := range starts {
		if loc != nil {
			s = s.In(loc)
		}
		out[s.Hour()]++
	}
	return out
}

// CountBucket — пара "ключ — количество" для группировок.
type CountBucket struct {
	Key   string
	Count int64
}

// SortBuckets сортирует по убыванию количества, при равенстве — по ключу.
func SortBuckets(b []CountBucket) []CountBucket {
	sort.SliceStable(b, func(i, j int) bool {
		if b[i].Count != b[j].Count {
			return b[i].Count > b[j].Count
		}
		return b[i].Key < b[j].Key
	})
	return b
}
