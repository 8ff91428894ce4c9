package stats

import (
	"sort"
	"strings"
)

// Accumulator collects summary statistics for a single bucket.
type Accumulator struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
}

func (a *Accumulator) Record(v float64) {
	if a.Count == 0 || v < a.Min {
		a.Min = v
	}

	if a.Count == 0 || v > a.Max {
		a.Max = v
	}

	a.Count++
	a.Sum += v
}

func (a *Accumulator) Mean() float64 {
	if a.Count == 0 {
		return 0
	}

	return a.Sum / float64(a.Count)
}

// Bundle is a lookup table of accumulators keyed by normalized key-sets.
// Values are plain numbers; settled futures feed their results in here as
// data, nothing more.
type Bundle struct {
	buckets map[string]*Accumulator
}

func NewBundle() *Bundle {
	return &Bundle{
		buckets: make(map[string]*Accumulator),
	}
}

// Record adds a value to the accumulator for the given key-set. Key-sets are
// normalized, so ordering, case and duplicates do not create new buckets.
func (b *Bundle) Record(value float64, keys ...string) {
	k := normalize(keys)

	acc := b.buckets[k]
	if acc == nil {
		acc = &Accumulator{}
		b.buckets[k] = acc
	}

	acc.Record(value)
}

// Get returns the accumulator for the given key-set, or nil if nothing was
// recorded under it.
func (b *Bundle) Get(keys ...string) *Accumulator {
	return b.buckets[normalize(keys)]
}

func (b *Bundle) Len() int {
	return len(b.buckets)
}

func normalize(keys []string) string {
	normalized := make([]string, 0, len(keys))
	for _, k := range keys {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			normalized = append(normalized, k)
		}
	}

	sort.Strings(normalized)

	deduped := normalized[:0]
	for i, k := range normalized {
		if i == 0 || k != normalized[i-1] {
			deduped = append(deduped, k)
		}
	}

	return strings.Join(deduped, ",")
}
