package handlers

import (
	"net/http"
	"strconv"
	"time"

	"entregas/internal/domain"
	"entregas/internal/http/middleware"
	"entregas/internal/logx"
)

const maxUploadBytes = 10 << 20

// DeliveryHandler serves HTTP endpoints for the delivery lifecycle.
type DeliveryHandler struct {
	uc     proofUsecase
	logger logx.Logger
}

// NewDeliveryHandler wires a proofUsecase into HTTP handlers.
func NewDeliveryHandler(logger logx.Logger, uc proofUsecase) *DeliveryHandler {
	return &DeliveryHandler{uc: uc, logger: logger}
}

// Upload handles POST /deliveries/upload (multipart: company, photo).
func (h *DeliveryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid multipart form")
		return
	}

	company := r.FormValue("company")
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "photo file is required")
		return
	}
	defer file.Close()

	d, err := h.uc.Upload(r.Context(), actor, company, header.Filename, file)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, deliveryToResponse(*d))
}

// List handles GET /deliveries with optional status/company/date filters and,
// for admins, a courier filter.
func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	f, err := filterFromQuery(r)
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.uc.List(r.Context(), actor, f)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveriesToResponse(list))
}

// Transition handles PATCH /deliveries/{id}/status.
func (h *DeliveryHandler) Transition(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid id")
		return
	}

	var req transitionRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	d, err := h.uc.Transition(r.Context(), actor, id, req.Status, req.Notes)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryToResponse(*d))
}

// Stats handles GET /stats/fortnight?start=YYYY-MM-DD.
func (h *DeliveryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	actor := middleware.UserFromContext(r.Context())

	start, err := parseDate(r.URL.Query().Get("start"))
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid start date")
		return
	}

	stats, err := h.uc.Stats(r.Context(), actor, start)
	if err != nil {
		writeAppError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, statsToResponse(stats))
}

func filterFromQuery(r *http.Request) (domain.DeliveryFilter, error) {
	var f domain.DeliveryFilter
	q := r.URL.Query()

	if s := q.Get("status"); s != "" {
		st := domain.DeliveryStatus(s)
		f.Status = &st
	}
	if s := q.Get("company"); s != "" {
		c := domain.NormalizeCompany(s)
		f.Company = &c
	}
	if s := q.Get("courier_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			return f, errInvalidQuery("courier_id")
		}
		f.CourierID = &id
	}
	if s := q.Get("from"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return f, errInvalidQuery("from")
		}
		f.From = &t
	}
	if s := q.Get("to"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return f, errInvalidQuery("to")
		}
		// inclusive end date at day granularity
		end := t.Add(24 * time.Hour)
		f.To = &end
	}
	return f, nil
}

type errInvalidQuery string

func (e errInvalidQuery) Error() string { return "invalid " + string(e) }
