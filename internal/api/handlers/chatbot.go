package handlers

import (
	"net/http"

	"github.com/seogenix/backend/internal/analysis"
	"github.com/seogenix/backend/internal/api/dto"
	"github.com/seogenix/backend/internal/domain/user"
	"github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/pkg/metrics"
	"github.com/seogenix/backend/internal/pkg/utils"
	"github.com/seogenix/backend/internal/pkg/validator"
	"github.com/seogenix/backend/internal/services"
)

// ChatbotHandler serves the in-app and landing-page chat endpoints.
type ChatbotHandler struct {
	chatbot   *analysis.ChatbotService
	usage     *services.UsageService
	users     user.Repository
	logger    *logger.Logger
	validator *validator.Validator
}

func NewChatbotHandler(chatbot *analysis.ChatbotService, usageSvc *services.UsageService, users user.Repository, log *logger.Logger, val *validator.Validator) *ChatbotHandler {
	return &ChatbotHandler{
		chatbot:   chatbot,
		usage:     usageSvc,
		users:     users,
		logger:    log,
		validator: val,
	}
}

// Product answers an authenticated in-app chat message. Plans without
// chatbot access get a 403 with an upgrade message before any generation.
// @Summary Product chatbot
// @Tags Chatbot
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Message"
// @Success 200 {object} analysis.ChatReply
// @Failure 403 {object} utils.ErrorResponse
// @Router /chatbot [post]
func (h *ChatbotHandler) Product(w http.ResponseWriter, r *http.Request) {
	account, eng, _, err := accountEngine(r, h.users, h.usage)
	if err != nil {
		writeAppError(w, err)
		return
	}

	var req dto.ChatRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	reply, err := h.chatbot.Product(r.Context(), account.ID, eng.ChatbotLevel(), req.Message)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.ErrCodeFeatureLocked {
			metrics.RecordEntitlementDenial("ai_chatbot")
		}
		writeAppError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reply)
}

// Landing answers an unauthenticated marketing-site question.
// @Summary Landing page chatbot
// @Tags Chatbot
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Message"
// @Success 200 {object} analysis.ChatReply
// @Router /landing-chat [post]
func (h *ChatbotHandler) Landing(w http.ResponseWriter, r *http.Request) {
	var req dto.ChatRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	reply, err := h.chatbot.Landing(r.Context(), req.Message)
	if err != nil {
		writeAppError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reply)
}
