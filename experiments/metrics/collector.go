package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Episodes     int
	Cutoff       int
	FullPlayouts int
	CacheHits    int
	IsTreeReset  bool
}

type MoveMetric struct {
	Step   int
	Player int // game.Player
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int // game.Player
	Winner         int // game.Player, -1 for a draw
	Scores         [2]int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(goroutines, cutoff int)
	SetTreeReset(value bool)
	AddFullPlayout()
	AddCacheHit()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	cutoff       int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	cacheHits    atomic.Int32
	isTreeReset  atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) SetTreeReset(value bool) {
	m.isTreeReset.Store(value)
}

// Start resets the counters for a new search.
func (m *collector) Start(goroutines, cutoff int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.cutoff = cutoff
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.cacheHits.Store(0)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddCacheHit() {
	m.cacheHits.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		CacheHits:    int(m.cacheHits.Load()),
		Cutoff:       m.cutoff,
		IsTreeReset:  m.isTreeReset.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, cutoff int) {}
func (m *dummyCollector) SetTreeReset(value bool)      {}
func (m *dummyCollector) AddFullPlayout()              {}
func (m *dummyCollector) AddCacheHit()                 {}
func (m *dummyCollector) AddEpisode()                  {}
func (m *dummyCollector) Complete() SearchMetric       { return SearchMetric{} }
