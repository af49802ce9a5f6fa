package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"order-board/internal/domain"
	"order-board/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const prefsKey = "board:prefs"

type Handler struct {
	board *services.Board
	rdb   *redis.Client
}

func NewHandler(b *services.Board, rdb *redis.Client) *Handler {
	return &Handler{board: b, rdb: rdb}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/board/orders", h.GetBoard)
	r.GET("/board/stats", h.GetStats)
	r.POST("/board/orders/:id/status", h.ChangeStatus)
	r.GET("/board/prefs", h.GetPrefs)
	r.PUT("/board/prefs", h.PutPrefs)
}

func (h *Handler) GetBoard(c *gin.Context) {
	orders := h.board.VisibleOrders()
	urgency := h.board.Urgencies()

	out := make([]BoardOrder, 0, len(orders))
	for _, o := range orders {
		band, ok := urgency[o.ID]
		if !ok {
			band = domain.UrgencyNominal
		}
		out = append(out, BoardOrder{Order: o, Urgency: band})
	}

	c.JSON(http.StatusOK, BoardResponse{Orders: out, Stats: h.board.Stats()})
}

func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.board.Stats())
}

func (h *Handler) ChangeStatus(c *gin.Context) {
	var req StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.board.RequestStatusChange(c.Request.Context(), c.Param("id"), req.Status)
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrRemoteCommand):
		// Local state is already rolled back by the time this surfaces.
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *Handler) GetPrefs(c *gin.Context) {
	prefs := defaultPrefs()

	b, err := h.rdb.Get(context.Background(), prefsKey).Result()
	if err == nil {
		prefs = decodePrefs(b)
	}

	c.JSON(http.StatusOK, prefs)
}

func defaultPrefs() BoardPrefs {
	return BoardPrefs{SoundEnabled: true}
}

// decodePrefs falls back to defaults on a corrupt stored value instead of
// serving whatever fields happened to decode before the error.
func decodePrefs(raw string) BoardPrefs {
	prefs := defaultPrefs()
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		log.Printf("prefs: corrupt stored value, using defaults: %v", err)
		return defaultPrefs()
	}
	return prefs
}

func (h *Handler) PutPrefs(c *gin.Context) {
	var prefs BoardPrefs
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, _ := json.Marshal(prefs)
	if err := h.rdb.Set(context.Background(), prefsKey, data, 0).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, prefs)
}
