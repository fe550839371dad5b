package proof

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"entregas/internal/apperr"
	"entregas/internal/authz"
	"entregas/internal/domain"
	"entregas/internal/logx"
	"entregas/internal/ports/deliverytx"
)

// Metrics holds the lifecycle counters. Nil fields disable the counter.
type Metrics struct {
	Uploads     prometheus.Counter
	Transitions *prometheus.CounterVec
}

// Service - the delivery lifecycle: upload, listing, status transitions and
// the fortnight aggregate. It is the only component that mutates a delivery's
// status.
type Service struct {
	repo             deliveryRepository
	photos           photoStore
	events           eventPublisher
	metrics          Metrics
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
}

// NewService - creates a new lifecycle Service.
func NewService(r deliveryRepository, photos photoStore, events eventPublisher, m Metrics, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             r,
		photos:           photos,
		events:           events,
		metrics:          m,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Upload creates a pending delivery for the acting courier. The company must
// be in the enumeration and inside the courier's scope; the photo is written
// only after both checks pass, so a rejected upload leaves nothing on disk.
func (s *Service) Upload(ctx context.Context, actor *domain.User, company, originalName string, photo io.Reader) (*domain.Delivery, error) {
	c := domain.NormalizeCompany(company)
	if !c.Valid() {
		return nil, apperr.ErrInvalid
	}
	if err := authz.Authorize(actor, authz.UploadFor(c)); err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	photoURL, err := s.photos.Save(ctx, originalName, photo)
	if err != nil {
		return nil, err
	}

	d := &domain.Delivery{
		CourierID: actor.ID,
		Company:   c,
		PhotoURL:  photoURL,
		Status:    domain.StatusPending,
		CreatedAt: s.now(),
	}

	if err := s.repo.Insert(ctx, d); err != nil {
		return nil, err
	}

	if s.metrics.Uploads != nil {
		s.metrics.Uploads.Inc()
	}
	s.publish(ctx, *d)

	s.logger.Info("delivery uploaded",
		logx.String("event", "delivery_uploaded"),
		logx.Int64("delivery_id", d.ID),
		logx.Int64("courier_id", d.CourierID),
		logx.String("company", string(d.Company)),
	)
	return d, nil
}

// List returns deliveries visible to the actor, newest first. A courier is
// always pinned to its own records; any supplied courier filter is ignored.
func (s *Service) List(ctx context.Context, actor *domain.User, f domain.DeliveryFilter) ([]domain.Delivery, error) {
	if err := authz.Authorize(actor, authz.Action{Kind: authz.ViewOwnDeliveries}); err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin {
		own := actor.ID
		f.CourierID = &own
	}
	if f.Company != nil && !f.Company.Valid() {
		return nil, apperr.ErrInvalid
	}
	if f.Status != nil && !f.Status.Valid() {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, f)
}

// Transition moves a pending delivery to approved or rejected. Both target
// states are terminal; the read and the write happen under one row lock so
// concurrent calls cannot both win.
func (s *Service) Transition(ctx context.Context, actor *domain.User, id int64, status string, notes *string) (*domain.Delivery, error) {
	if err := authz.Authorize(actor, authz.Action{Kind: authz.ApproveDelivery}); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, apperr.ErrInvalid
	}
	st := domain.DeliveryStatus(strings.ToLower(strings.TrimSpace(status)))
	if !st.Terminal() {
		return nil, apperr.ErrInvalid
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var updated domain.Delivery
	err := s.repo.WithTx(ctx, func(tx deliverytx.Repository) error {
		d, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return apperr.ErrNotFound
		}
		if d.Status != domain.StatusPending {
			return apperr.ErrInvalid
		}
		if err := tx.UpdateStatus(ctx, id, st, notes); err != nil {
			return err
		}
		d.Status = st
		d.Notes = notes
		updated = *d
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics.Transitions != nil {
		s.metrics.Transitions.WithLabelValues(string(st)).Inc()
	}
	s.publish(ctx, updated)

	s.logger.Info("delivery transitioned",
		logx.String("event", "delivery_transitioned"),
		logx.Int64("delivery_id", updated.ID),
		logx.String("status", string(updated.Status)),
		logx.Int64("admin_id", actor.ID),
	)
	return &updated, nil
}

// Stats counts deliveries per calendar day over the fixed 15-day window
// starting at windowStart, scoped like List.
func (s *Service) Stats(ctx context.Context, actor *domain.User, windowStart time.Time) (domain.FortnightStats, error) {
	if err := authz.Authorize(actor, authz.Action{Kind: authz.ViewOwnDeliveries}); err != nil {
		return domain.FortnightStats{}, err
	}

	var courierID *int64
	if actor.Role != domain.RoleAdmin {
		own := actor.ID
		courierID = &own
	}

	start := windowStart
	end := start.AddDate(0, 0, domain.StatsWindowDays)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	byDay, err := s.repo.StatsByDay(ctx, start, end, courierID)
	if err != nil {
		return domain.FortnightStats{}, err
	}

	total := 0
	for _, n := range byDay {
		total += n
	}
	return domain.FortnightStats{
		Start: start,
		End:   end,
		Total: total,
		ByDay: byDay,
	}, nil
}

func (s *Service) publish(ctx context.Context, d domain.Delivery) {
	if s.events == nil {
		return
	}
	ev := StatusEvent{
		DeliveryID: d.ID,
		CourierID:  d.CourierID,
		Company:    d.Company,
		Status:     d.Status,
		Notes:      d.Notes,
		OccurredAt: s.now(),
	}
	if err := s.events.PublishStatus(ctx, ev); err != nil {
		s.logger.Warn("status event publish failed",
			logx.Int64("delivery_id", d.ID),
			logx.Err(err),
		)
	}
}
