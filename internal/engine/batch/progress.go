package batch

import (
	"time"
)

// Progress counts the work done by a scan of the upstream dataset.
type Progress struct {
	// Fetches is the number of upstream requests issued.
	Fetches int

	// RecordsScanned is the number of raw records received.
	RecordsScanned int

	// Matches is the number of records that passed the filter.
	Matches int

	// ItemsTaken is the number of buffered records handed out.
	ItemsTaken int

	// BatchesTaken is the number of non-empty batches handed out.
	BatchesTaken int

	// StartTime is when the scan started.
	StartTime time.Time

	// LastUpdateTime is when a counter last changed.
	LastUpdateTime time.Time
}

// NewProgress returns a Progress started now.
func NewProgress() *Progress {
	now := time.Now()
	return &Progress{StartTime: now, LastUpdateTime: now}
}

// AddFetch records one upstream window of raw records, of which matches passed the filter.
func (p *Progress) AddFetch(raw, matches int) {
	p.Fetches++
	p.RecordsScanned += raw
	p.Matches += matches
	p.LastUpdateTime = time.Now()
}

// AddTaken records one batch handed out.
func (p *Progress) AddTaken(items int) {
	if items == 0 {
		return
	}
	p.ItemsTaken += items
	p.BatchesTaken++
	p.LastUpdateTime = time.Now()
}

// ElapsedTime returns the time since the scan started.
func (p *Progress) ElapsedTime() time.Duration {
	return time.Since(p.StartTime)
}

// MatchRate returns the fraction of scanned records that matched, in [0, 1].
func (p *Progress) MatchRate() float64 {
	if p.RecordsScanned == 0 {
		return 0
	}
	return float64(p.Matches) / float64(p.RecordsScanned)
}

// Snapshot returns a copy of the counters.
func (p *Progress) Snapshot() Progress {
	return *p
}
