package handlers

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entregas/internal/apperr"
	"entregas/internal/domain"
	"entregas/internal/logx"
)

type stubProofUsecase struct {
	uploadFn     func(ctx context.Context, actor *domain.User, company, originalName string, photo io.Reader) (*domain.Delivery, error)
	listFn       func(ctx context.Context, actor *domain.User, f domain.DeliveryFilter) ([]domain.Delivery, error)
	transitionFn func(ctx context.Context, actor *domain.User, id int64, status string, notes *string) (*domain.Delivery, error)
	statsFn      func(ctx context.Context, actor *domain.User, windowStart time.Time) (domain.FortnightStats, error)
}

func (s *stubProofUsecase) Upload(ctx context.Context, actor *domain.User, company, originalName string, photo io.Reader) (*domain.Delivery, error) {
	if s.uploadFn == nil {
		panic("Upload not expected in this test")
	}
	return s.uploadFn(ctx, actor, company, originalName, photo)
}

func (s *stubProofUsecase) List(ctx context.Context, actor *domain.User, f domain.DeliveryFilter) ([]domain.Delivery, error) {
	if s.listFn == nil {
		panic("List not expected in this test")
	}
	return s.listFn(ctx, actor, f)
}

func (s *stubProofUsecase) Transition(ctx context.Context, actor *domain.User, id int64, status string, notes *string) (*domain.Delivery, error) {
	if s.transitionFn == nil {
		panic("Transition not expected in this test")
	}
	return s.transitionFn(ctx, actor, id, status, notes)
}

func (s *stubProofUsecase) Stats(ctx context.Context, actor *domain.User, windowStart time.Time) (domain.FortnightStats, error) {
	if s.statsFn == nil {
		panic("Stats not expected in this test")
	}
	return s.statsFn(ctx, actor, windowStart)
}

func multipartUpload(t *testing.T, company, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("company", company))
	fw, err := mw.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func courier(companies ...domain.Company) *domain.User {
	return &domain.User{ID: 7, Name: "João", Role: domain.RoleCourier, Companies: companies}
}

func TestDeliveryHandler_Upload_OK(t *testing.T) {
	t.Parallel()

	body, contentType := multipartUpload(t, "JET", "proof.jpg", []byte("img-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/deliveries/upload", body)
	req.Header.Set("Content-Type", contentType)
	req = withActor(req, courier(domain.CompanyJet))
	rr := httptest.NewRecorder()

	created := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	uc := &stubProofUsecase{
		uploadFn: func(ctx context.Context, actor *domain.User, company, originalName string, photo io.Reader) (*domain.Delivery, error) {
			require.Equal(t, "JET", company)
			require.Equal(t, "proof.jpg", originalName)
			data, err := io.ReadAll(photo)
			require.NoError(t, err)
			require.Equal(t, "img-bytes", string(data))
			return &domain.Delivery{
				ID:        100,
				CourierID: actor.ID,
				Company:   domain.CompanyJet,
				PhotoURL:  "/uploads/abc.jpg",
				Status:    domain.StatusPending,
				CreatedAt: created,
			}, nil
		},
	}

	h := NewDeliveryHandler(logx.Nop(), uc)
	h.Upload(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{
		"id": 100,
		"courier_id": 7,
		"company": "JET",
		"photo_url": "/uploads/abc.jpg",
		"status": "pending",
		"created_at": "2026-08-10T12:00:00Z"
	}`, rr.Body.String())
}

func TestDeliveryHandler_Upload_MissingPhoto(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("company", "JET"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/deliveries/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = withActor(req, courier(domain.CompanyJet))
	rr := httptest.NewRecorder()

	h := NewDeliveryHandler(logx.Nop(), &stubProofUsecase{})
	h.Upload(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeliveryHandler_Upload_BadExtension(t *testing.T) {
	t.Parallel()

	body, contentType := multipartUpload(t, "JET", "proof.pdf", []byte("not-an-image"))
	req := httptest.NewRequest(http.MethodPost, "/deliveries/upload", body)
	req.Header.Set("Content-Type", contentType)
	req = withActor(req, courier(domain.CompanyJet))
	rr := httptest.NewRecorder()

	uc := &stubProofUsecase{
		uploadFn: func(ctx context.Context, actor *domain.User, company, originalName string, photo io.Reader) (*domain.Delivery, error) {
			return nil, apperr.ErrInvalid
		},
	}

	h := NewDeliveryHandler(logx.Nop(), uc)
	h.Upload(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error": "invalid input"}`, rr.Body.String())
}

func TestDeliveryHandler_Upload_OutsideScope(t *testing.T) {
	t.Parallel()

	body, contentType := multipartUpload(t, "JADLOG", "proof.jpg", []byte("img"))
	req := httptest.NewRequest(http.MethodPost, "/deliveries/upload", body)
	req.Header.Set("Content-Type", contentType)
	req = withActor(req, courier(domain.CompanyJet))
	rr := httptest.NewRecorder()

	uc := &stubProofUsecase{
		uploadFn: func(ctx context.Context, actor *domain.User, company, originalName string, photo io.Reader) (*domain.Delivery, error) {
			return nil, apperr.ErrForbidden
		},
	}

	h := NewDeliveryHandler(logx.Nop(), uc)
	h.Upload(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"error": "forbidden"}`, rr.Body.String())
}

func TestDeliveryHandler_List_Filters(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet,
		"/deliveries?status=pending&company=jet&courier_id=7&from=2026-08-01&to=2026-08-10", nil)
	req = withActor(req, &domain.User{ID: 1, Role: domain.RoleAdmin})
	rr := httptest.NewRecorder()

	uc := &stubProofUsecase{
		listFn: func(ctx context.Context, actor *domain.User, f domain.DeliveryFilter) ([]domain.Delivery, error) {
			require.NotNil(t, f.Status)
			assert.Equal(t, domain.StatusPending, *f.Status)
			require.NotNil(t, f.Company)
			assert.Equal(t, domain.CompanyJet, *f.Company)
			require.NotNil(t, f.CourierID)
			assert.Equal(t, int64(7), *f.CourierID)
			require.NotNil(t, f.From)
			assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), *f.From)
			require.NotNil(t, f.To)
			// the "to" day itself is included
			assert.Equal(t, time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC), *f.To)
			return nil, nil
		},
	}

	h := NewDeliveryHandler(logx.Nop(), uc)
	h.List(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestDeliveryHandler_List_BadCourierID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/deliveries?courier_id=abc", nil)
	req = withActor(req, &domain.User{ID: 1, Role: domain.RoleAdmin})
	rr := httptest.NewRecorder()

	h := NewDeliveryHandler(logx.Nop(), &stubProofUsecase{})
	h.List(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error": "invalid courier_id"}`, rr.Body.String())
}

func TestDeliveryHandler_Transition_OK(t *testing.T) {
	t.Parallel()

	body := `{"status":"approved","notes":"all good"}`
	req := httptest.NewRequest(http.MethodPatch, "/deliveries/100/status", strings.NewReader(body))
	req = withActor(req, &domain.User{ID: 1, Role: domain.RoleAdmin})
	req = withURLParam(req, "id", "100")
	rr := httptest.NewRecorder()

	created := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	uc := &stubProofUsecase{
		transitionFn: func(ctx context.Context, actor *domain.User, id int64, status string, notes *string) (*domain.Delivery, error) {
			require.Equal(t, int64(100), id)
			require.Equal(t, "approved", status)
			require.NotNil(t, notes)
			require.Equal(t, "all good", *notes)
			return &domain.Delivery{
				ID:        100,
				CourierID: 7,
				Company:   domain.CompanyJet,
				PhotoURL:  "/uploads/abc.jpg",
				Status:    domain.StatusApproved,
				Notes:     notes,
				CreatedAt: created,
			}, nil
		},
	}

	h := NewDeliveryHandler(logx.Nop(), uc)
	h.Transition(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"id": 100,
		"courier_id": 7,
		"company": "JET",
		"photo_url": "/uploads/abc.jpg",
		"status": "approved",
		"notes": "all good",
		"created_at": "2026-08-10T12:00:00Z"
	}`, rr.Body.String())
}

func TestDeliveryHandler_Transition_BadID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPatch, "/deliveries/abc/status", strings.NewReader(`{"status":"approved"}`))
	req = withActor(req, &domain.User{ID: 1, Role: domain.RoleAdmin})
	req = withURLParam(req, "id", "abc")
	rr := httptest.NewRecorder()

	h := NewDeliveryHandler(logx.Nop(), &stubProofUsecase{})
	h.Transition(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeliveryHandler_Transition_NotFound(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPatch, "/deliveries/404/status", strings.NewReader(`{"status":"approved"}`))
	req = withActor(req, &domain.User{ID: 1, Role: domain.RoleAdmin})
	req = withURLParam(req, "id", "404")
	rr := httptest.NewRecorder()

	uc := &stubProofUsecase{
		transitionFn: func(ctx context.Context, actor *domain.User, id int64, status string, notes *string) (*domain.Delivery, error) {
			return nil, apperr.ErrNotFound
		},
	}

	h := NewDeliveryHandler(logx.Nop(), uc)
	h.Transition(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeliveryHandler_Transition_AlreadyDecided(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPatch, "/deliveries/100/status", strings.NewReader(`{"status":"rejected"}`))
	req = withActor(req, &domain.User{ID: 1, Role: domain.RoleAdmin})
	req = withURLParam(req, "id", "100")
	rr := httptest.NewRecorder()

	uc := &stubProofUsecase{
		transitionFn: func(ctx context.Context, actor *domain.User, id int64, status string, notes *string) (*domain.Delivery, error) {
			return nil, apperr.ErrInvalid
		},
	}

	h := NewDeliveryHandler(logx.Nop(), uc)
	h.Transition(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error": "invalid input"}`, rr.Body.String())
}

func TestDeliveryHandler_Stats_OK(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/stats/fortnight?start=2026-08-01", nil)
	req = withActor(req, &domain.User{ID: 1, Role: domain.RoleAdmin})
	rr := httptest.NewRecorder()

	uc := &stubProofUsecase{
		statsFn: func(ctx context.Context, actor *domain.User, windowStart time.Time) (domain.FortnightStats, error) {
			require.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), windowStart)
			return domain.FortnightStats{
				Start: windowStart,
				End:   windowStart.AddDate(0, 0, domain.StatsWindowDays),
				Total: 5,
				ByDay: map[string]int{"2026-08-01": 3, "2026-08-05": 2},
			}, nil
		},
	}

	h := NewDeliveryHandler(logx.Nop(), uc)
	h.Stats(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"start": "2026-08-01",
		"end": "2026-08-15",
		"total": 5,
		"by_day": {"2026-08-01": 3, "2026-08-05": 2}
	}`, rr.Body.String())
}

func TestDeliveryHandler_Stats_BadStart(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "01-08-2026", "2026-13-40"} {
		req := httptest.NewRequest(http.MethodGet, "/stats/fortnight?start="+raw, nil)
		req = withActor(req, &domain.User{ID: 1, Role: domain.RoleAdmin})
		rr := httptest.NewRecorder()

		h := NewDeliveryHandler(logx.Nop(), &stubProofUsecase{})
		h.Stats(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "start=%q", raw)
	}
}
