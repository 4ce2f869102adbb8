package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bigwin-backend/internal/services"
)

type GameHandler struct {
	wagers *services.WagerEngine
}

func NewGameHandler(wagers *services.WagerEngine) *GameHandler {
	return &GameHandler{wagers: wagers}
}

type wagerBody struct {
	UserID string `json:"user_id"`
	Bet    int64  `json:"bet"`
}

// Play settles a wager on /game/:game. The four games share one handler;
// the path segment picks the counter and ledger label.
func (h *GameHandler) Play(c *gin.Context) {
	game := c.Param("game")

	var body wagerBody
	if err := c.ShouldBindJSON(&body); err != nil || body.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id in body."})
		return
	}

	result, err := h.wagers.Play(c.Request.Context(), body.UserID, game, body.Bet)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownGame),
			errors.Is(err, services.ErrInvalidBet),
			errors.Is(err, services.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to settle wager"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"win":         result.Win,
		"prize":       result.Prize,
		"stars_after": result.StarsAfter,
	})
}
