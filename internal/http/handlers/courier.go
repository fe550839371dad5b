package handlers

import (
	"net/http"
	"strconv"

	"entregas/internal/http/middleware"
	"entregas/internal/logx"
	"entregas/internal/service/account"
)

// CourierHandler serves HTTP endpoints for courier account management.
type CourierHandler struct {
	uc     accountUsecase
	logger logx.Logger
}

// NewCourierHandler wires an accountUsecase into HTTP handlers.
func NewCourierHandler(logger logx.Logger, uc accountUsecase) *CourierHandler {
	return &CourierHandler{uc: uc, logger: logger}
}

// List handles GET /couriers.
func (h *CourierHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	list, err := h.uc.ListCouriers(r.Context(), actor)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, usersToResponse(list))
}

// Create handles POST /couriers.
func (h *CourierHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	var req createCourierRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	u, err := h.uc.CreateCourier(r.Context(), actor, account.CreateCourierInput{
		Name:      req.Name,
		Username:  req.Username,
		Password:  req.Password,
		Companies: req.Companies,
	})
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}

	w.Header().Set("Location", "/couriers/"+strconv.FormatInt(u.ID, 10))
	writeJSON(h.logger, w, r, http.StatusCreated, userToResponse(*u))
}

// SetCompanies handles PUT /couriers/{id}/companies.
func (h *CourierHandler) SetCompanies(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	var req setCompaniesRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	companies, err := h.uc.SetCompanies(r.Context(), actor, id, req.Companies)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, setCompaniesResponse{
		Companies: companiesToStrings(companies),
	})
}
