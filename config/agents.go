package config

import "github.com/alejandrodnm/botarena/internal/domain"

// DefaultAgents devuelve el roster de producción: seis agentes, cada uno
// con una variante de estrategia distinta. Los textos de display los
// consume el dashboard tal cual.
func DefaultAgents() []domain.Profile {
	return []domain.Profile{
		{
			ID:           "tiago",
			Name:         "Tiago the Armadillo",
			Emoji:        "🦔",
			Color:        "#00ff88",
			Title:        "Defensive Value Analyst",
			Personality:  "Conservative, methodical, obsessed with downside protection. Speaks in measured tones. Never chases hype. Favorite quote: 'The first rule is don't lose money. The second rule is don't forget the first rule.'",
			Strategy:     "contrarian_value",
			StrategyName: "Contrarian Value",
			Description:  "Buys markets that are significantly underpriced vs reference odds. Only enters when the edge exceeds 8pp AND liquidity is sufficient. Uses quarter-Kelly sizing to limit downside. Avoids markets expiring within 7 days (too much noise). Think of Tiago as the Warren Buffett of prediction markets — patient, disciplined, value-obsessed.",
			Params: domain.RiskParams{
				MinEdge:         8,
				KellyFraction:   0.25,
				MinVolume:       50000,
				MaxPositions:    5,
				MinDaysToExpiry: 7,
			},
		},
		{
			ID:           "mako",
			Name:         "Mako the Shark",
			Emoji:        "🦈",
			Color:        "#4488ff",
			Title:        "Cross-Platform Arbitrageur",
			Personality:  "Aggressive, fast-moving, speaks in short decisive sentences. Sees markets as a feeding ground. Always scanning for blood in the water. Never explains twice.",
			Strategy:     "cross_platform_arb",
			StrategyName: "Cross-Platform Arbitrage",
			Description:  "Exploits price discrepancies between Polymarket and Kalshi. When the same event trades at different prices, Mako buys cheap and sells expensive — locking in a spread regardless of outcome. Uses half-Kelly on the spread size. The purest form of alpha: structural market inefficiency.",
			Params: domain.RiskParams{
				MinSpread:     5,
				KellyFraction: 0.5,
				MinVolume:     20000,
				MaxPositions:  8,
			},
		},
		{
			ID:           "freya",
			Name:         "Freya the Fox",
			Emoji:        "🦊",
			Color:        "#ff8800",
			Title:        "Momentum & Narrative Trader",
			Personality:  "Cunning, articulate, reads the room better than anyone. Trades narrative shifts before the crowd catches on. Loves a good story. Always has a contrarian take ready.",
			Strategy:     "momentum_narrative",
			StrategyName: "Momentum Narrative",
			Description:  "Identifies markets where 24h volume is surging relative to historical average, signaling a narrative shift. Buys into the momentum early, rides it, and exits when volume fades. Uses third-Kelly sizing. Freya reads the crowd — when everyone suddenly cares about a market, there's usually a reason.",
			Params: domain.RiskParams{
				VolumeSurgeRatio: 2.0,
				KellyFraction:    0.33,
				MinVolume24h:     30000,
				MaxPositions:     6,
				MinEdge:          3,
			},
		},
		{
			ID:           "ollie",
			Name:         "Ollie the Owl",
			Emoji:        "🦉",
			Color:        "#9966ff",
			Title:        "Statistical Macro Analyst",
			Personality:  "Academic, precise, quotes base rates and historical precedents constantly. Slightly pedantic but almost always right. Wears metaphorical reading glasses. Loves Bayesian reasoning.",
			Strategy:     "statistical_value",
			StrategyName: "Base Rate Bayesian",
			Description:  "Uses historical base rates and Bayesian updating to estimate true probabilities. Only trades when market price diverges from the base-rate-adjusted estimate by 10pp+. Conservative Kelly at 20%. Ollie doesn't care what the crowd thinks — he cares what the data says.",
			Params: domain.RiskParams{
				MinEdge:         10,
				KellyFraction:   0.20,
				MinVolume:       30000,
				MaxPositions:    4,
				MinDaysToExpiry: 14,
			},
		},
		{
			ID:           "pepper",
			Name:         "Pepper the Honeybadger",
			Emoji:        "🦡",
			Color:        "#ff3355",
			Title:        "High-Conviction YOLO Trader",
			Personality:  "Absolutely fearless, borderline reckless. Talks in ALL CAPS when excited. Has zero respect for conventional wisdom. Will size up aggressively on high-conviction plays. Somehow it works more often than it should.",
			Strategy:     "high_conviction",
			StrategyName: "High Conviction",
			Description:  "Takes concentrated positions in markets with massive edges (15pp+). Uses full Kelly — maximum aggression. Fewer trades but much larger sizing. Pepper doesn't diversify. Pepper doesn't hedge. Pepper sees edge and attacks. High variance, high potential return.",
			Params: domain.RiskParams{
				MinEdge:       15,
				KellyFraction: 1.0,
				MinVolume:     100000,
				MaxPositions:  3,
			},
		},
		{
			ID:           "ming",
			Name:         "Ming the Pangolin",
			Emoji:        "🐲",
			Color:        "#ffaa00",
			Title:        "Tail Risk Specialist",
			Personality:  "Quiet, patient, philosophical. Sees the world through the lens of rare events. Speaks softly but carries devastating conviction when tail events approach. Favorite topic: black swans.",
			Strategy:     "tail_risk",
			StrategyName: "Tail Risk Hunter",
			Description:  "Specializes in markets priced at extreme probabilities (<15% or >85%) where the market may be underpricing tail risk. Buys cheap long shots and sells expensive near-certainties. Uses tiny Kelly (10%) because most of these won't hit — but when they do, the payoff is enormous.",
			Params: domain.RiskParams{
				LowThreshold:  15,
				HighThreshold: 85,
				MinMispricing: 5,
				KellyFraction: 0.10,
				MaxPositions:  6,
				MinVolume:     25000,
			},
		},
	}
}
