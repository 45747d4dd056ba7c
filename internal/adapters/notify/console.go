// Package notify imprime los resultados de la arena en consola: el
// leaderboard del ciclo, los libros abiertos y el log de trades.
package notify

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/botarena/internal/application/arena"
	"github.com/alejandrodnm/botarena/internal/domain"
)

// Console escribe los reportes de ciclo a un writer.
type Console struct {
	out     io.Writer
	verbose bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(verbose bool) *Console {
	return &Console{out: os.Stdout, verbose: verbose}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, verbose bool) *Console {
	return &Console{out: w, verbose: verbose}
}

// PrintResult imprime el resumen del ciclo: cabecera, leaderboard y, en
// modo verbose, las posiciones abiertas y los últimos trades.
func (c *Console) PrintResult(res *arena.Result) {
	fmt.Fprintf(c.out, "\n[%s] %d markets (polymarket:%d kalshi:%d) — %d new trades\n\n",
		res.LastUpdatedHuman, res.TotalMarkets, res.PolymarketCount, res.KalshiCount, res.NewTradesCount)

	c.printLeaderboard(res.Agents)

	if c.verbose {
		c.printPositions(res.Agents)
		c.PrintTrades(res.RecentTrades)
	}
}

// printLeaderboard ordena los agentes por equity y pinta la tabla
// principal del ciclo.
func (c *Console) printLeaderboard(rows []arena.AgentRow) {
	ranked := make([]arena.AgentRow, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalEquity > ranked[j].TotalEquity
	})

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Agent", "Strategy", "Equity", "Return", "Realized", "Unreal", "Win%", "DD%", "Pos", "Trades", "Last")

	for i, row := range ranked {
		table.Append(
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%s %s", row.Emoji, row.Name),
			row.StrategyName,
			fmt.Sprintf("$%.2f", row.TotalEquity),
			fmt.Sprintf("%+.2f%%", row.ReturnPct),
			fmt.Sprintf("$%.2f", row.RealizedPnL),
			fmt.Sprintf("$%.2f", row.UnrealizedPnL),
			fmt.Sprintf("%.1f%%", row.WinRate),
			fmt.Sprintf("%.2f%%", row.DrawdownPct),
			fmt.Sprintf("%d", row.OpenPositions),
			fmt.Sprintf("%d", row.TotalTrades),
			decisionLabel(row.LatestCycle),
		)
	}
	table.Render()
}

// printPositions lista el libro abierto de cada agente.
func (c *Console) printPositions(rows []arena.AgentRow) {
	for _, row := range rows {
		if len(row.Positions) == 0 {
			continue
		}
		fmt.Fprintf(c.out, "\n  %s %s — %d open:\n", row.Emoji, row.Name, len(row.Positions))
		for _, pos := range row.Positions {
			fmt.Fprintf(c.out, "    %-7s %-46s in:%5.1f now:%5.1f $%.2f [%s]\n",
				pos.Direction,
				domain.TruncateTitle(pos.Market, 46),
				pos.EntryPrice,
				pos.CurrentPrice,
				pos.Stake,
				pos.Venue,
			)
		}
	}
}

// PrintTrades pinta el log de trades tal como llega (más recientes
// primero en el payload del ciclo).
func (c *Console) PrintTrades(trades []domain.Trade) {
	if len(trades) == 0 {
		fmt.Fprintf(c.out, "\n[%s] no trades yet\n", time.Now().Format("15:04:05"))
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("When", "Agent", "Dir", "Market", "Entry", "Stake", "Conf", "Status")

	for _, t := range trades {
		table.Append(
			t.Timestamp.Format("01-02 15:04"),
			t.AgentName,
			string(t.Direction),
			domain.TruncateTitle(t.Market, 40),
			fmt.Sprintf("%.1f", t.EntryPrice),
			fmt.Sprintf("$%.2f", t.Stake),
			string(t.Confidence),
			t.Status,
		)
	}
	table.Render()
}

// --- helpers ---

// decisionLabel compacta la última decisión del agente para la tabla.
func decisionLabel(cy domain.Cycle) string {
	if cy.Decision == domain.DecisionTrade {
		return fmt.Sprintf("TRADE(%d)", len(cy.TradeIDs))
	}
	if len(cy.HoldReasons) == 0 {
		return "HOLD"
	}
	return "HOLD " + shortReason(cy.HoldReasons[0].Reason)
}

func shortReason(r domain.HoldReason) string {
	switch r {
	case domain.ReasonDependencyUnavailable:
		return "no-data"
	case domain.ReasonAtMaxPositions:
		return "at-cap"
	case domain.ReasonNoQualifyingEdge:
		return "no-edge"
	}
	return strings.ToLower(string(r))
}
