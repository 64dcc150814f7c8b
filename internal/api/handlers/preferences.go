package handlers

import (
	"net/http"

	"github.com/seogenix/backend/internal/api/dto"
	"github.com/seogenix/backend/internal/api/middleware"
	"github.com/seogenix/backend/internal/domain/user"
	"github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/pkg/utils"
	"github.com/seogenix/backend/internal/pkg/validator"
)

// PreferencesHandler reads and writes the per-account preference record.
type PreferencesHandler struct {
	users     user.Repository
	logger    *logger.Logger
	validator *validator.Validator
}

func NewPreferencesHandler(users user.Repository, log *logger.Logger, val *validator.Validator) *PreferencesHandler {
	return &PreferencesHandler{users: users, logger: log, validator: val}
}

// Get returns the account's preferences, defaults when never saved.
// @Summary Get preferences
// @Tags Preferences
// @Produce json
// @Success 200 {object} user.Preferences
// @Router /preferences [get]
func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication"))
		return
	}
	prefs, err := h.users.GetPreferences(r.Context(), userID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, prefs)
}

// Update replaces the account's preferences.
// @Summary Update preferences
// @Tags Preferences
// @Accept json
// @Produce json
// @Param request body dto.PreferencesRequest true "Preferences"
// @Success 200 {object} user.Preferences
// @Router /preferences [put]
func (h *PreferencesHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication"))
		return
	}

	var req dto.PreferencesRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	prefs := &user.Preferences{
		UserID:         userID,
		DismissedHints: req.DismissedHints,
		WeeklyDigest:   req.WeeklyDigest,
	}
	if err := h.users.SavePreferences(r.Context(), prefs); err != nil {
		writeAppError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, prefs)
}
