package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/rescue_chain/internal/models"
	"github.com/shenikar/rescue_chain/internal/service"
)

// @Summary Get incentive balance
// @Tags Coins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} BalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /coins/balance [get]
func (h *Handler) getBalance(c *gin.Context) {
	log, actor, ok := h.requestLog(c, "getBalance")
	if !ok {
		return
	}

	balance, err := h.incentiveService.Balance(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, log, err)
		return
	}

	withdrawable := int64(0)
	if balance >= h.cfg.MinWithdrawal {
		withdrawable = service.WithdrawableAmount(balance, h.cfg.WithdrawalStep)
	}
	c.JSON(http.StatusOK, BalanceResponse{
		Balance:       balance,
		Withdrawable:  withdrawable,
		MinWithdrawal: h.cfg.MinWithdrawal,
	})
}

// @Summary Get payout details
// @Tags Coins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.PayoutDetails
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /coins/payout-details [get]
func (h *Handler) getPayoutDetails(c *gin.Context) {
	log, actor, ok := h.requestLog(c, "getPayoutDetails")
	if !ok {
		return
	}

	details, err := h.incentiveService.GetPayoutDetails(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// @Summary Save payout details
// @Description Non-empty fields replace the stored ones.
// @Tags Coins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param details body PayoutDetailsRequest true "Payout details"
// @Success 200 {object} models.PayoutDetails
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /coins/payout-details [put]
func (h *Handler) savePayoutDetails(c *gin.Context) {
	log, actor, ok := h.requestLog(c, "savePayoutDetails")
	if !ok {
		return
	}

	var input PayoutDetailsRequest
	if !h.bindJSON(c, log, &input) {
		return
	}

	details, err := h.incentiveService.SavePayoutDetails(c.Request.Context(), actor.ID, DTOToPayoutDetails(input))
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// @Summary Get contributions
// @Description Incentives credited per approved incident, newest first.
// @Tags Coins
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Contribution
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /coins/contributions [get]
func (h *Handler) getContributions(c *gin.Context) {
	log, actor, ok := h.requestLog(c, "getContributions")
	if !ok {
		return
	}

	contributions, err := h.incentiveService.Contributions(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, contributions)
}

// @Summary Withdraw incentives
// @Description Withdraws the largest multiple of the withdrawal step. A repeated Idempotency-Key returns the pending or completed withdrawal; after a failed payout it starts a new attempt.
// @Tags Coins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Client idempotency key"
// @Param request body WithdrawRequest true "Payout method"
// @Success 200 {object} WithdrawalResponse
// @Failure 400 {object} map[string]string "Insufficient funds or missing payout details"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Payout provider failed, balance restored"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /coins/withdraw [post]
func (h *Handler) withdraw(c *gin.Context) {
	log, actor, ok := h.requestLog(c, "withdraw")
	if !ok {
		return
	}

	var input WithdrawRequest
	if !h.bindJSON(c, log, &input) {
		return
	}
	key := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	if len(key) > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "idempotency key is too long"})
		return
	}

	withdrawal, err := h.incentiveService.Withdraw(c.Request.Context(), actor.ID, models.PayoutMethod(input.Method), key)
	if err != nil {
		respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToWithdrawalResponse(withdrawal))
}
