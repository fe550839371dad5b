package handlers

import (
	"net/http"

	"entregas/internal/domain"
	"entregas/internal/http/middleware"
	"entregas/internal/logx"
)

// AuthHandler serves HTTP endpoints for authentication.
type AuthHandler struct {
	uc     accountUsecase
	logger logx.Logger
}

// NewAuthHandler wires an accountUsecase into HTTP handlers.
func NewAuthHandler(logger logx.Logger, uc accountUsecase) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	token, u, err := h.uc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}

	resp := loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Role:        string(u.Role),
		Name:        u.Name,
	}
	if u.Role == domain.RoleCourier {
		resp.Companies = companiesToStrings(u.Companies)
	}
	writeJSON(h.logger, w, r, http.StatusOK, resp)
}

// Me handles GET /auth/me and returns the authenticated identity summary.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	if u == nil {
		writeError(h.logger, w, r, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, userToResponse(*u))
}
