package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sitewatch/sitewatch-backend/internal/application/auth"
	"github.com/sitewatch/sitewatch-backend/internal/domain"
	"github.com/sitewatch/sitewatch-backend/internal/logger"
	"github.com/sitewatch/sitewatch-backend/internal/metrics"
	"github.com/sitewatch/sitewatch-backend/internal/transport/http/dto"
	"github.com/sitewatch/sitewatch-backend/internal/transport/http/middleware"
	"github.com/sitewatch/sitewatch-backend/internal/transport/http/response"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), auth.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Role:            req.Role,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	metrics.RecordRegistration()
	logger.WithCtx(r.Context()).Info().
		Int64("user_id", res.User.ID).
		Str("email", res.User.Email).
		Msg("user_registered")

	response.Created(w, dto.RegisterData{
		User:    dto.NewUserView(res.User),
		Message: res.Message,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), auth.LoginInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		metrics.RecordLoginFailed()
		response.WriteError(w, r, err)
		return
	}

	metrics.RecordLogin()
	logger.WithCtx(r.Context()).Info().
		Int64("user_id", res.User.ID).
		Msg("user_logged_in")

	response.OK(w, dto.AuthData{
		User: dto.NewUserView(res.User),
		Tokens: dto.TokensView{
			AccessToken: res.Token.AccessToken,
			TokenType:   res.Token.TokenType,
			ExpiresIn:   res.Token.ExpiresIn,
		},
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	msg := h.svc.Logout(r.Context())
	response.OK(w, dto.MessageData{Message: msg})
}

// VerifyEmail handles both the mail-link GET (?token=...) and the
// JSON POST from the frontend.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		var req dto.VerifyEmailRequest
		if err := response.DecodeJSON(r, &req); err != nil {
			response.WriteError(w, r, err)
			return
		}
		if err := req.Validate(); err != nil {
			response.WriteError(w, r, err)
			return
		}
		token = req.Token
	}

	msg, err := h.svc.VerifyEmail(r.Context(), token)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	metrics.RecordEmailVerification()
	response.OK(w, dto.MessageData{Message: msg})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	msg, err := h.svc.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MessageData{Message: msg})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	msg, err := h.svc.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	metrics.RecordPasswordReset()
	response.OK(w, dto.MessageData{Message: msg})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	u, err := h.svc.GetUserByID(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewUserView(u))
}

// SetUserActive is the admin activate/deactivate toggle.
func (h *AuthHandler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	targetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || targetID <= 0 {
		response.WriteError(w, r, domain.ErrInvalidField("id", "must be a positive integer"))
		return
	}

	var req dto.SetUserActiveRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.SetUserActive(r.Context(), targetID, *req.IsActive); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.GetUserByID(r.Context(), targetID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Int64("user_id", targetID).
		Bool("is_active", u.IsActive).
		Msg("user_active_changed")

	response.OK(w, dto.NewUserView(u))
}
