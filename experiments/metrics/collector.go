package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Depth     int // deepest fully completed iteration
	Nodes     int
	Cutoffs   int
	Score     float64 // value of the chosen move
	Duration  time.Duration
	Truncated bool
}

type MoveMetric struct {
	Step   int
	Player string
	Move   string
	SearchMetric
}

type GameMetric struct {
	Winner     string
	Reason     string
	Plies      int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}

type Collector interface {
	Start()
	AddNode()
	AddCutoff()
	SetDepth(depth int)
	SetTruncated(value bool)
	Complete() SearchMetric
}

type collector struct {
	startTime time.Time
	depth     atomic.Int32
	nodes     atomic.Int64
	cutoffs   atomic.Int64
	truncated atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
	m.depth.Store(0)
	m.nodes.Store(0)
	m.cutoffs.Store(0)
	m.truncated.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) SetDepth(depth int) {
	m.depth.Store(int32(depth))
}

func (m *collector) SetTruncated(value bool) {
	m.truncated.Store(value)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:     int(m.depth.Load()),
		Nodes:     int(m.nodes.Load()),
		Cutoffs:   int(m.cutoffs.Load()),
		Duration:  time.Since(m.startTime),
		Truncated: m.truncated.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                  {}
func (m *dummyCollector) AddNode()                {}
func (m *dummyCollector) AddCutoff()              {}
func (m *dummyCollector) SetDepth(depth int)      {}
func (m *dummyCollector) SetTruncated(value bool) {}
func (m *dummyCollector) Complete() SearchMetric  { return SearchMetric{} }
