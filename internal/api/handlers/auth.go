package handlers

import (
	"net/http"

	"github.com/seogenix/backend/internal/api/dto"
	"github.com/seogenix/backend/internal/api/middleware"
	"github.com/seogenix/backend/internal/auth"
	"github.com/seogenix/backend/internal/config"
	"github.com/seogenix/backend/internal/domain/user"
	"github.com/seogenix/backend/internal/pkg/errors"
	"github.com/seogenix/backend/internal/pkg/logger"
	"github.com/seogenix/backend/internal/pkg/utils"
	"github.com/seogenix/backend/internal/pkg/validator"
	"github.com/seogenix/backend/internal/services"
)

// AuthHandler handles registration, login and session refresh.
type AuthHandler struct {
	authService *services.AuthService
	users       user.Repository
	config      *config.Config
	logger      *logger.Logger
	validator   *validator.Validator
}

func NewAuthHandler(authService *services.AuthService, users user.Repository, cfg *config.Config, log *logger.Logger, val *validator.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		users:       users,
		config:      cfg,
		logger:      log,
		validator:   val,
	}
}

// Register creates an account on the free tier.
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.AuthResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	account, tokens, err := h.authService.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		writeAppError(w, err)
		return
	}

	h.setSessionCookies(w, tokens)
	utils.WriteJSON(w, http.StatusCreated, dto.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         account,
	})
}

// Login authenticates an account.
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	account, tokens, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{"email": req.Email}).Warn("Login failed")
		writeAppError(w, err)
		return
	}

	h.setSessionCookies(w, tokens)
	utils.WriteJSON(w, http.StatusOK, dto.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         account,
	})
}

// Refresh exchanges a refresh token for a new pair.
// @Summary Refresh session tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} auth.TokenPair
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	tokens, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeAppError(w, err)
		return
	}

	h.setSessionCookies(w, tokens)
	utils.WriteJSON(w, http.StatusOK, tokens)
}

// Me returns the authenticated account.
// @Summary Current account
// @Tags Auth
// @Produce json
// @Success 200 {object} user.User
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Missing authentication"))
		return
	}
	account, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, account)
}

func (h *AuthHandler) setSessionCookies(w http.ResponseWriter, tokens auth.TokenPair) {
	secure := h.config.Server.Environment == "production"
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    tokens.AccessToken,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(h.config.Auth.AccessTokenExpiry.Seconds()),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    tokens.RefreshToken,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(h.config.Auth.RefreshTokenExpiry.Seconds()),
	})
}
