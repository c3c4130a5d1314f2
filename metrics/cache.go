package metrics

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"
	"math"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"gigtrack-api/models"
)

type cacheKey [sha256.Size]byte

// Cache memoizes period summaries on the structural identity of their
// inputs: the records inside the window, the window, the toggles, the tax
// rate and the fuel estimate. Any change to one of those produces a new key,
// so entries never need invalidating. Safe for concurrent use.
type Cache struct {
	entries *lru.Cache[cacheKey, PeriodMetrics]

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCache keeps at most size summaries, evicting the least recently used.
func NewCache(size int) *Cache {
	if size < 1 {
		size = 1
	}
	entries, err := lru.New[cacheKey, PeriodMetrics](size)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return &Cache{entries: entries}
}

// AggregatePeriod behaves like the package-level AggregatePeriod but reuses
// a previous result when nothing it depends on has changed.
func (c *Cache) AggregatePeriod(w Window, snap models.Snapshot, toggles Toggles, taxRatePercent float64, est FuelEstimate) (PeriodMetrics, error) {
	f, err := FilterWindow(w, snap)
	if err != nil {
		return PeriodMetrics{}, err
	}
	key := keyFor(w, f, toggles, taxRatePercent, est)

	if m, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return m, nil
	}
	c.misses.Add(1)

	m := Summarize(w, f, toggles, taxRatePercent, est)
	c.entries.Add(key, m)
	return m, nil
}

// Stats returns the hit and miss counters.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *Cache) Len() int {
	return c.entries.Len()
}

func keyFor(w Window, f Filtered, toggles Toggles, taxRatePercent float64, est FuelEstimate) cacheKey {
	h := sha256.New()

	writeString(h, string(w.Granularity))
	writeString(h, w.Start.Location().String())
	writeInt(h, w.Start.UnixNano())
	writeInt(h, w.End.UnixNano())
	writeBool(h, toggles.IncludeExternalExpenses)
	writeBool(h, toggles.IncludeTax)
	writeBool(h, toggles.IncludePersonalFuel)
	writeFloat(h, taxRatePercent)
	writeFloat(h, est.AvgCostPerDistance)
	writeFloat(h, est.AvgEfficiency)
	writeBool(h, est.IsEstimate)

	writeInt(h, int64(len(f.Trips)))
	for _, t := range f.Trips {
		writeString(h, t.Date)
		writeBool(h, t.IsBusiness())
		writeFloat(h, t.Km)
		writeFloat(h, t.DurationHours)
		writeFloat(h, t.Earnings)
	}
	writeInt(h, int64(len(f.Fuel)))
	for _, l := range f.Fuel {
		writeString(h, l.Date)
		writeFloat(h, l.Litres)
		writeFloat(h, l.TotalPrice)
	}
	writeInt(h, int64(len(f.Expenses)))
	for _, e := range f.Expenses {
		writeString(h, e.Date)
		writeFloat(h, e.Cost)
	}

	var k cacheKey
	copy(k[:], h.Sum(nil))
	return k
}

func writeString(h hash.Hash, s string) {
	writeInt(h, int64(len(s)))
	h.Write([]byte(s))
}

func writeInt(h hash.Hash, v int64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	h.Write(b[:])
}

func writeFloat(h hash.Hash, v float64) {
	writeInt(h, int64(math.Float64bits(v)))
}

func writeBool(h hash.Hash, v bool) {
	if v {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
}
