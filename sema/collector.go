package sema

// Collector accumulates diagnostics in the order they are recorded.
// A Collector is not safe for concurrent use; parallel analysis gives each
// worker its own and merges them afterwards.
type Collector struct {
	diags Diagnostics
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector { return &Collector{} }

// Record appends d.
func (c *Collector) Record(d Diagnostic) {
	c.diags = append(c.diags, d)
}

// All returns a copy of the recorded diagnostics.
func (c *Collector) All() Diagnostics {
	out := make(Diagnostics, len(c.diags))
	copy(out, c.diags)
	return out
}

// Len returns the number of recorded diagnostics.
func (c *Collector) Len() int { return len(c.diags) }

// Merge appends every diagnostic of other, preserving its order.
func (c *Collector) Merge(other *Collector) {
	if other == nil {
		return
	}
	c.diags = append(c.diags, other.diags...)
}

// Err returns nil when nothing was recorded, else the diagnostics.
func (c *Collector) Err() error {
	if len(c.diags) == 0 {
		return nil
	}
	return c.All()
}
