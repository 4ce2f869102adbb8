package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bigwin-backend/internal/models"
	"bigwin-backend/internal/services"
)

type UserHandler struct {
	accounts *services.AccountService
	bonus    *services.BonusEngine
	queries  *services.QueryService
}

func NewUserHandler(accounts *services.AccountService, bonus *services.BonusEngine, queries *services.QueryService) *UserHandler {
	return &UserHandler{
		accounts: accounts,
		bonus:    bonus,
		queries:  queries,
	}
}

type userIDBody struct {
	UserID string `json:"user_id"`
}

type profileResponse struct {
	ID string `json:"id"`
	*models.Account
	RefLink string `json:"ref_link"`
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id (query param)."})
		return
	}

	account, err := h.accounts.Ensure(c.Request.Context(), userID, c.Query("name"), c.Query("ref"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, profileResponse{
		ID:      userID,
		Account: account,
		RefLink: h.queries.RefLink(userID),
	})
}

func (h *UserHandler) ClaimBonus(c *gin.Context) {
	var body userIDBody
	if err := c.ShouldBindJSON(&body); err != nil || body.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id in body."})
		return
	}

	result, err := h.bonus.Claim(c.Request.Context(), body.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim bonus"})
		return
	}

	if !result.Granted {
		c.JSON(http.StatusOK, gin.H{
			"ok":      false,
			"message": fmt.Sprintf("Ya reclamaste hoy. Vuelve en %d horas.", result.WaitHours),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"amount":  result.Amount,
		"message": fmt.Sprintf("Reclamaste %d⭐", result.Amount),
	})
}

func (h *UserHandler) GetRanking(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "50")
	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit <= 0 {
		limit = 50
	}

	top, err := h.queries.Ranking(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load ranking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"top": top})
}

func (h *UserHandler) GetHistory(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id"})
		return
	}

	history, err := h.queries.History(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

func (h *UserHandler) GetReferrals(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id"})
		return
	}

	referrals, refLink, err := h.queries.Referrals(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load referrals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"referrals": referrals,
		"ref_link":  refLink,
	})
}
