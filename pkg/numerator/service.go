// Package numerator issues per-mill deal numbers backed by sys_sequences.
package numerator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"ricemill/internal/core/id"
)

// Strategy defines the numbering generation strategy.
type Strategy int

const (
	// StrategyStrict uses UPSERT ... RETURNING for every number.
	// Guarantees sequential numbers without gaps.
	StrategyStrict Strategy = iota

	// StrategyCached allocates ranges of numbers in memory.
	// Faster, but may produce gaps if the process restarts.
	StrategyCached
)

// Options configuration for number generation.
type Options struct {
	Strategy Strategy
	// RangeSize is the number of values reserved at once by StrategyCached.
	// Default is 50.
	RangeSize int64
}

// DefaultOptions returns standard options (Strict).
func DefaultOptions() *Options {
	return &Options{
		Strategy: StrategyStrict,
	}
}

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type cachedRange struct {
	current int64
	max     int64
}

// Service provides deal numbering.
// Counters are kept per mill, prefix and year.
type Service struct {
	querier Querier
	opts    *Options

	cacheMu sync.Mutex
	// ranges is keyed by "<millID>:<prefix>:<year>"
	ranges map[string]*cachedRange
}

// New creates a numerator service. opts may be nil for Strict numbering.
func New(querier Querier, opts *Options) *Service {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Service{
		querier: querier,
		opts:    opts,
		ranges:  make(map[string]*cachedRange),
	}
}

// Next returns the next number for the mill, e.g. RP-2024-00001.
// The year is taken from date.
func (s *Service) Next(ctx context.Context, millID id.ID, prefix string, date time.Time) (string, error) {
	if s == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}
	if prefix == "" {
		return "", fmt.Errorf("numerator: empty prefix")
	}

	year := date.Year()

	var (
		num int64
		err error
	)
	switch s.opts.Strategy {
	case StrategyCached:
		num, err = s.nextCached(ctx, millID, prefix, year)
	default:
		num, err = s.reserve(ctx, millID, prefix, year, 1)
	}
	if err != nil {
		return "", err
	}

	return Format(prefix, year, num), nil
}

// reserve bumps the counter by n and returns the new last value.
func (s *Service) reserve(ctx context.Context, millID id.ID, prefix string, year int, n int64) (int64, error) {
	var last int64
	err := s.querier.QueryRow(ctx, `
		INSERT INTO sys_sequences (mill_id, prefix, year, current_val)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (mill_id, prefix, year) DO UPDATE SET current_val = sys_sequences.current_val + $4
		RETURNING current_val
	`, millID, prefix, year, n).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("reserve %s/%d: %w", prefix, year, err)
	}
	return last, nil
}

// nextCached serves numbers from memory, refilling from DB when the range is used up.
func (s *Service) nextCached(ctx context.Context, millID id.ID, prefix string, year int) (int64, error) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	key := fmt.Sprintf("%s:%s:%d", millID, prefix, year)
	rng, exists := s.ranges[key]
	if !exists {
		rng = &cachedRange{}
		s.ranges[key] = rng
	}

	if rng.current >= rng.max {
		size := s.opts.RangeSize
		if size <= 0 {
			size = 50
		}
		newMax, err := s.reserve(ctx, millID, prefix, year, size)
		if err != nil {
			return 0, err
		}
		// Reserved range is (newMax-size, newMax].
		rng.current = newMax - size
		rng.max = newMax
	}

	rng.current++
	return rng.current, nil
}

// Format renders PREFIX-YYYY-NNNNN.
func Format(prefix string, year int, num int64) string {
	return fmt.Sprintf("%s-%04d-%05d", prefix, year, num)
}

// ParseNumber extracts the numeric part of a formatted number.
// Returns -1 if parsing fails.
func ParseNumber(formatted string) int64 {
	i := strings.LastIndexByte(formatted, '-')
	if i < 0 {
		return -1
	}
	num, err := strconv.ParseInt(formatted[i+1:], 10, 64)
	if err != nil {
		return -1
	}
	return num
}
