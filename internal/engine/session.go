// Package engine scans the upstream dataset and pages the open trucks.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rshade/foodtruckfinder/internal/engine/batch"
	"github.com/rshade/foodtruckfinder/internal/foodtruck"
	"github.com/rshade/foodtruckfinder/internal/logging"
)

// Session defaults.
const (
	DefaultPageSize   = 10
	DefaultFetchLimit = 1000

	// ExhaustedOffset is the cursor value once the upstream has no more records.
	ExhaustedOffset = -1
)

// ErrInvalidFetchLimit is returned for a non-positive fetch limit.
var ErrInvalidFetchLimit = errors.New("fetch limit must be positive")

// Fetcher returns one upstream window of raw records starting at offset.
type Fetcher interface {
	Fetch(ctx context.Context, offset int) ([]foodtruck.Truck, error)
}

// SessionConfig configures a Session.
type SessionConfig struct {
	// PageSize is the number of records per display page.
	PageSize int

	// FetchLimit is the upstream window size; a shorter window ends the scan.
	FetchLimit int

	// Policy decides what happens to records with malformed schedules.
	Policy foodtruck.MalformedPolicy

	// Now returns the moment trucks must be open at. Defaults to the local clock.
	Now func() foodtruck.Moment
}

// Session scans the upstream dataset forward, keeps the trucks open now, and
// hands them out one page at a time. The cursor and page buffer persist across
// calls so each page continues where the previous one stopped.
//
// A Session is not safe for concurrent use; independent sessions share nothing.
type Session struct {
	fetcher    Fetcher
	pageSize   int
	fetchLimit int
	policy     foodtruck.MalformedPolicy
	now        func() foodtruck.Moment

	offset   int
	buffer   batch.Queue[foodtruck.Truck]
	progress *batch.Progress
}

// NewSession creates a Session starting at offset 0.
func NewSession(fetcher Fetcher, cfg SessionConfig) (*Session, error) {
	if fetcher == nil {
		return nil, errors.New("fetcher cannot be nil")
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.FetchLimit == 0 {
		cfg.FetchLimit = DefaultFetchLimit
	}
	if err := batch.ValidateBatchSize(cfg.PageSize); err != nil {
		return nil, fmt.Errorf("page size: %w", err)
	}
	if cfg.FetchLimit < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFetchLimit, cfg.FetchLimit)
	}
	if cfg.Now == nil {
		cfg.Now = func() foodtruck.Moment { return foodtruck.MomentOf(time.Now()) }
	}

	return &Session{
		fetcher:    fetcher,
		pageSize:   cfg.PageSize,
		fetchLimit: cfg.FetchLimit,
		policy:     cfg.Policy,
		now:        cfg.Now,
		progress:   batch.NewProgress(),
	}, nil
}

// PageSize returns the configured page size.
func (s *Session) PageSize() int {
	return s.pageSize
}

// Offset returns the upstream cursor, or ExhaustedOffset.
func (s *Session) Offset() int {
	return s.offset
}

// Exhausted reports whether the upstream has been fully scanned.
func (s *Session) Exhausted() bool {
	return s.offset == ExhaustedOffset
}

// Buffered returns the number of filtered records waiting to be shown.
func (s *Session) Buffered() int {
	return s.buffer.Len()
}

// Progress returns a snapshot of the scan counters.
func (s *Session) Progress() batch.Progress {
	return s.progress.Snapshot()
}

// NextResults fetches upstream windows from the cursor onward until at least
// one page of open trucks has been collected or the upstream is exhausted.
// A window shorter than the fetch limit marks the session exhausted, after
// which NextResults issues no requests and returns nothing.
//
// On error the records gathered before the failure are returned along with it
// and the cursor still points at the window that failed.
func (s *Session) NextResults(ctx context.Context) ([]foodtruck.Truck, error) {
	log := logging.FromContext(ctx)
	result := make([]foodtruck.Truck, 0, s.pageSize)

	for len(result) < s.pageSize && !s.Exhausted() {
		raw, err := s.fetcher.Fetch(ctx, s.offset)
		if err != nil {
			return result, fmt.Errorf("fetching offset %d: %w", s.offset, err)
		}

		open, err := foodtruck.FilterOpen(ctx, raw, s.now(), s.policy)
		if err != nil {
			return result, fmt.Errorf("filtering offset %d: %w", s.offset, err)
		}
		result = append(result, open...)
		s.progress.AddFetch(len(raw), len(open))

		if len(raw) < s.fetchLimit {
			log.Info().Ctx(ctx).
				Str("component", "engine").
				Str("operation", "next_results").
				Int("offset", s.offset).
				Int("records", len(raw)).
				Int("records_scanned", s.progress.RecordsScanned).
				Msg("upstream exhausted")
			s.offset = ExhaustedOffset
			break
		}
		s.offset += s.fetchLimit
	}

	return result, nil
}

// NextPage returns the next page of open trucks in upstream order. The buffer
// is topped up by one NextResults pass when it holds less than a page. A page
// shorter than PageSize is returned only once the upstream is exhausted.
func (s *Session) NextPage(ctx context.Context) ([]foodtruck.Truck, error) {
	if s.buffer.Len() < s.pageSize {
		more, err := s.NextResults(ctx)
		s.buffer.Push(more...)
		if err != nil {
			return nil, err
		}
	}

	page := s.buffer.Take(s.pageSize)
	s.progress.AddTaken(len(page))

	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("component", "engine").
		Str("operation", "next_page").
		Int("page_items", len(page)).
		Int("buffered", s.buffer.Len()).
		Bool("exhausted", s.Exhausted()).
		Msg("page ready")

	return page, nil
}
