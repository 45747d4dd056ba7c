package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alejandrodnm/botarena/internal/application/arena"
	"github.com/alejandrodnm/botarena/internal/domain"
	"github.com/alejandrodnm/botarena/internal/ports"
	"github.com/alejandrodnm/botarena/internal/report"
)

type handlers struct {
	runner *arena.Runner
	store  ports.ArenaStore
}

// agentHistoryMax acota el historial de trades en la vista por agente.
const agentHistoryMax = 50

// getArena ejecuta un ciclo y devuelve el payload completo del dashboard.
// Con ?refresh=1 fuerza la recarga del universo aunque la cache siga viva.
func (h *handlers) getArena(c *gin.Context) {
	force := c.Query("refresh") == "1"
	res := h.runner.RunOnce(c.Request.Context(), force)
	c.JSON(http.StatusOK, res)
}

// getTrades devuelve el log de trades, más reciente primero. Filtros:
// ?agent=<id> y ?limit=<n> (100 por defecto).
func (h *handlers) getTrades(c *gin.Context) {
	trades, err := h.store.LoadTrades(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	agent := c.Query("agent")
	out := make([]domain.Trade, 0, len(trades))
	for i := len(trades) - 1; i >= 0; i-- {
		if agent != "" && trades[i].AgentID != agent {
			continue
		}
		out = append(out, trades[i])
	}
	total := len(out)
	limit := queryInt(c, "limit")
	if limit <= 0 {
		limit = 100
	}
	if limit < len(out) {
		out = out[:limit]
	}
	c.JSON(http.StatusOK, gin.H{"trades": out, "count": len(out), "total": total})
}

// getAgent ejecuta un ciclo y devuelve la fila del agente con su historial
// de trades (últimos 50).
func (h *handlers) getAgent(c *gin.Context) {
	id := c.Param("id")
	res := h.runner.RunOnce(c.Request.Context(), false)

	var row *arena.AgentRow
	for i := range res.Agents {
		if res.Agents[i].ID == id {
			row = &res.Agents[i]
			break
		}
	}
	if row == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown agent: " + id})
		return
	}

	trades, err := h.store.LoadTrades(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	history := make([]domain.Trade, 0, agentHistoryMax)
	for i := len(trades) - 1; i >= 0 && len(history) < agentHistoryMax; i-- {
		if trades[i].AgentID == id {
			history = append(history, trades[i])
		}
	}
	c.JSON(http.StatusOK, gin.H{"bot": row, "trade_history": history})
}

// getCycles devuelve el log de decisiones, más reciente primero. Filtros:
// ?agent=<id> y ?limit=<n>.
func (h *handlers) getCycles(c *gin.Context) {
	cycles, err := h.store.LoadCycles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	agent := c.Query("agent")
	out := make([]domain.Cycle, 0, len(cycles))
	for _, cy := range cycles {
		if agent != "" && cy.AgentID != agent {
			continue
		}
		out = append(out, cy)
	}
	if limit := queryInt(c, "limit"); limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	c.JSON(http.StatusOK, gin.H{"cycles": out, "count": len(out)})
}

// getReport ejecuta un ciclo y devuelve el informe de curvas de equity
// como página HTML autocontenida.
func (h *handlers) getReport(c *gin.Context) {
	res := h.runner.RunOnce(c.Request.Context(), false)
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := report.WriteEquityReport(c.Writer, res); err != nil {
		slog.Warn("report render failed", "error", err)
	}
}

// postReset borra estados, trades y ciclos y devuelve a todos los agentes
// su bankroll inicial.
func (h *handlers) postReset(c *gin.Context) {
	if err := h.runner.Reset(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset", "message": "All bots reset to $10,000"})
}

type settleRequest struct {
	AgentID string `json:"agent_id" binding:"required"`
	TradeID string `json:"trade_id" binding:"required"`
	// Puntero para que won=false pase la validación required.
	Won *bool `json:"won" binding:"required"`
}

// postSettle liquida una posición abierta contra el resultado real del
// mercado y devuelve el trade cerrado.
func (h *handlers) postSettle(c *gin.Context) {
	var req settleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settled, err := h.runner.SettleTrade(c.Request.Context(), req.AgentID, req.TradeID, *req.Won)
	switch {
	case errors.Is(err, arena.ErrUnknownAgent), errors.Is(err, arena.ErrUnknownPosition):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trade": settled})
}

func queryInt(c *gin.Context, key string) int {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
