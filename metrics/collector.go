// Package metrics records what happened during an interview session.
package metrics

import (
	"time"
)

type TurnMetric struct {
	Turn      int
	Phase     string // phase the answer was given in
	Step      string
	Input     string
	Advanced  bool
	Reason    string // retry reason, empty when advanced
	RetryKind string // stable grouping key for Reason
	Committed bool
	Promoted  bool
	Duration  time.Duration
}

type SessionMetric struct {
	SessionID       string
	Scenario        string
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
	Turns           int
	Retries         int
	RetriesByReason map[string]int // keyed by TurnMetric.RetryKind
	Commits         int
	Promotions      int
	Completed       bool
}

type Collector interface {
	Start(sessionID string)
	AddTurn(turn TurnMetric)
	Complete(scenario string, completed bool) (SessionMetric, []TurnMetric)
}

type collector struct {
	sessionID  string
	startTime  time.Time
	turns      []TurnMetric
	retries    int
	byReason   map[string]int
	commits    int
	promotions int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(sessionID string) {
	m.sessionID = sessionID
	m.startTime = time.Now()
	m.turns = nil
	m.retries, m.commits, m.promotions = 0, 0, 0
	m.byReason = make(map[string]int)
}

func (m *collector) AddTurn(turn TurnMetric) {
	turn.Turn = len(m.turns) + 1
	m.turns = append(m.turns, turn)
	if !turn.Advanced {
		m.retries++
		if m.byReason == nil {
			m.byReason = make(map[string]int)
		}
		m.byReason[turn.RetryKind]++
	}
	if turn.Committed {
		m.commits++
	}
	if turn.Promoted {
		m.promotions++
	}
}

func (m *collector) Complete(scenario string, completed bool) (SessionMetric, []TurnMetric) {
	end := time.Now()
	return SessionMetric{
		SessionID:       m.sessionID,
		Scenario:        scenario,
		StartTime:       m.startTime,
		EndTime:         end,
		Duration:        end.Sub(m.startTime),
		Turns:           len(m.turns),
		Retries:         m.retries,
		RetriesByReason: m.byReason,
		Commits:         m.commits,
		Promotions:      m.promotions,
		Completed:       completed,
	}, m.turns
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(sessionID string)  {}
func (m *dummyCollector) AddTurn(turn TurnMetric) {}
func (m *dummyCollector) Complete(scenario string, completed bool) (SessionMetric, []TurnMetric) {
	return SessionMetric{}, nil
}
