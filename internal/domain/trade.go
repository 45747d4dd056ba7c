package domain

import (
	"sort"
	"time"
)

// Direction is the side taken when opening a position.
type Direction string

const (
	BuyYes Direction = "BUY_YES"
	BuyNo  Direction = "BUY_NO"
	// Arb pairs a YES buy on the cheap venue with a NO buy on the
	// expensive one; the spread is locked at entry.
	Arb Direction = "ARB"
)

// Confidence is the tier a strategy assigns to its own proposal.
type Confidence string

const (
	ConfidenceLow     Confidence = "LOW"
	ConfidenceMedium  Confidence = "MEDIUM"
	ConfidenceHigh    Confidence = "HIGH"
	ConfidenceMaximum Confidence = "MAXIMUM"
)

// ArbDetail records both legs of a cross-venue spread trade.
type ArbDetail struct {
	BuyVenue  string  `json:"buy_platform"`
	BuyPrice  float64 `json:"buy_price"`
	SellVenue string  `json:"sell_platform"`
	SellPrice float64 `json:"sell_price"`
	Spread    float64 `json:"spread"`
}

// Proposal is a strategy's advisory intent to open a position. It is
// ephemeral: caps and dedup are enforced by the coordinator, never here.
type Proposal struct {
	Market        string
	NormKey       string
	Venue         string // display label; "Kalshi → Polymarket" for arb
	URL           string
	Category      string
	Direction     Direction
	MarketPrice   float64 // 0–100
	EstimatedProb float64 // 0–100
	EdgePP        float64
	Stake         float64
	KellyFraction float64
	Source        string
	Rationale     string
	Confidence    Confidence
	Arb           *ArbDetail
}

// Trade is the persisted record of an admitted proposal. Append-only;
// the global log keeps the most recent entries up to a fixed cap.
type Trade struct {
	ID            string     `json:"id"`
	AgentID       string     `json:"agent_id"`
	AgentName     string     `json:"agent_name"`
	Timestamp     time.Time  `json:"timestamp"`
	Market        string     `json:"market"`
	NormKey       string     `json:"norm_key"`
	Venue         string     `json:"platform"`
	URL           string     `json:"url"`
	Category      string     `json:"category"`
	Direction     Direction  `json:"direction"`
	EntryPrice    float64    `json:"entry_price"` // slippage-adjusted
	MarketPrice   float64    `json:"market_price"`
	EstimatedProb float64    `json:"estimated_prob"`
	EdgePP        float64    `json:"edge_pp"`
	Stake         float64    `json:"bet_amount"`
	KellyFraction float64    `json:"kelly_fraction"`
	Source        string     `json:"source"`
	Rationale     string     `json:"rationale"`
	Confidence    Confidence `json:"confidence"`
	Status        string     `json:"status"`
	PnL           float64    `json:"pnl"`
	Arb           *ArbDetail `json:"arb_detail,omitempty"`
}

// Trade status values. OPEN until settled by an explicit close.
const (
	TradeOpen = "OPEN"
	TradeWon  = "WON"
	TradeLost = "LOST"
)

// Position is one open exposure owned by an agent. Created only by the
// coordinator; only CurrentPrice moves afterwards, via mark-to-market.
type Position struct {
	TradeID      string     `json:"trade_id"`
	Market       string     `json:"market"`
	NormKey      string     `json:"norm_key"`
	Direction    Direction  `json:"direction"`
	EntryPrice   float64    `json:"entry_price"`
	CurrentPrice float64    `json:"current_price"`
	Stake        float64    `json:"bet_amount"`
	OpenedAt     time.Time  `json:"timestamp"`
	Venue        string     `json:"platform"`
	URL          string     `json:"url"`
	Arb          *ArbDetail `json:"arb_detail,omitempty"`
}

// Decision is the per-agent outcome of one cycle.
type Decision string

const (
	DecisionTrade Decision = "TRADE"
	DecisionHold  Decision = "HOLD"
)

// HoldReason classifies why an agent admitted nothing this cycle.
type HoldReason string

// Hold reasons, strongest first. DependencyUnavailable outranks the cap,
// which outranks the default no-edge reason.
const (
	ReasonDependencyUnavailable HoldReason = "DEPENDENCY_DATA_UNAVAILABLE"
	ReasonAtMaxPositions        HoldReason = "AT_MAX_POSITIONS"
	ReasonNoQualifyingEdge      HoldReason = "NO_QUALIFYING_EDGE"
)

// rank orders hold reasons for reporting. Lower is stronger.
func (r HoldReason) rank() int {
	switch r {
	case ReasonDependencyUnavailable:
		return 0
	case ReasonAtMaxPositions:
		return 1
	case ReasonNoQualifyingEdge:
		return 2
	}
	return 3
}

// ReasonCount is one ranked hold reason with its occurrence count.
type ReasonCount struct {
	Reason HoldReason `json:"reason"`
	Count  int        `json:"count"`
}

// Cycle is the audit record of one agent's pass: what it decided and,
// on HOLD, the distinct reasons that fired, ranked strongest first.
type Cycle struct {
	Timestamp   time.Time     `json:"timestamp"`
	AgentID     string        `json:"agent_id"`
	Decision    Decision      `json:"decision"`
	HoldReasons []ReasonCount `json:"top_hold_reasons"`
	TradeIDs    []string      `json:"trade_ids"`
}

// SortReasons orders reason counts strongest-first in place and returns
// the slice. Unknown reasons sort last.
func SortReasons(rs []ReasonCount) []ReasonCount {
	sort.Slice(rs, func(i, j int) bool {
		return rs[i].Reason.rank() < rs[j].Reason.rank()
	})
	return rs
}
