package idgen

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Bit layout of an identifier: 41-bit millisecond timestamp | 10-bit instance | 12-bit sequence.
const (
	InstanceBits = 10
	SequenceBits = 12

	MaxInstance = -1 ^ (-1 << InstanceBits)
	maxSequence = -1 ^ (-1 << SequenceBits)

	instanceShift = SequenceBits
	timeShift     = SequenceBits + InstanceBits

	// MaxTimestamp is the last millisecond past the epoch that fits the layout.
	MaxTimestamp int64 = -1 ^ (-1 << (63 - timeShift))
)

var (
	ErrClockRollback     = errors.New("clock moved backwards")
	ErrTimestampOutRange = errors.New("timestamp outside the identifier range")
)

// Generator produces time-sortable snowflake identifiers for one instance.
// It is safe for concurrent use by multiple goroutines.
type Generator struct {
	mu sync.Mutex

	instance  int64
	epochMs   int64
	tolerance time.Duration
	clock     func() int64

	lastMs int64
	seq    int64
	failed bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithEpoch sets the instant timestamps are measured from. Defaults to the Unix epoch.
func WithEpoch(epoch time.Time) Option {
	return func(g *Generator) { g.epochMs = epoch.UnixMilli() }
}

// WithClock replaces the wall clock; the function returns Unix milliseconds.
func WithClock(clock func() int64) Option {
	return func(g *Generator) { g.clock = clock }
}

// WithRollbackTolerance sets how far the clock may step back before NextID gives up
// instead of waiting for it to catch up.
func WithRollbackTolerance(d time.Duration) Option {
	return func(g *Generator) { g.tolerance = d }
}

// New returns a Generator for the given instance tag. The tag must be unique among all
// generators writing to the same data store.
func New(instance int64, opts ...Option) (*Generator, error) {
	if instance < 0 || instance > MaxInstance {
		return nil, fmt.Errorf("instance %d out of range [0, %d]", instance, MaxInstance)
	}
	g := &Generator{
		instance:  instance,
		tolerance: 5 * time.Millisecond,
		clock:     func() int64 { return time.Now().UnixMilli() },
		lastMs:    -1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Instance returns the configured instance tag.
func (g *Generator) Instance() int64 { return g.instance }

// NextID returns the next identifier. Once a rollback beyond the tolerance has been
// observed every call fails with ErrClockRollback.
func (g *Generator) NextID() (snowflake.ID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.failed {
		return 0, ErrClockRollback
	}

	now := g.clock() - g.epochMs
	if now < 0 || now > MaxTimestamp {
		return 0, fmt.Errorf("%w: %dms since epoch", ErrTimestampOutRange, now)
	}
	if now < g.lastMs {
		behind := time.Duration(g.lastMs-now) * time.Millisecond
		if behind > g.tolerance {
			g.failed = true
			return 0, fmt.Errorf("%w by %s", ErrClockRollback, behind)
		}
		for now < g.lastMs {
			time.Sleep(time.Duration(g.lastMs-now) * time.Millisecond)
			now = g.clock() - g.epochMs
		}
	}

	if now == g.lastMs {
		g.seq = (g.seq + 1) & maxSequence
		if g.seq == 0 {
			for now <= g.lastMs {
				now = g.clock() - g.epochMs
			}
		}
	} else {
		g.seq = 0
	}
	if now > MaxTimestamp {
		return 0, fmt.Errorf("%w: %dms since epoch", ErrTimestampOutRange, now)
	}
	g.lastMs = now

	return snowflake.ID(now<<timeShift | g.instance<<instanceShift | g.seq), nil
}

// Parts is an identifier split into its fields.
type Parts struct {
	Timestamp time.Time
	Instance  int64
	Sequence  int64
}

// Decompose splits id assuming it was produced with the given epoch.
func Decompose(id snowflake.ID, epoch time.Time) Parts {
	v := id.Int64()
	return Parts{
		Timestamp: time.UnixMilli(v>>timeShift + epoch.UnixMilli()),
		Instance:  (v >> instanceShift) & MaxInstance,
		Sequence:  v & maxSequence,
	}
}
