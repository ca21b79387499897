package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/data/repos/testutil"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain/notification"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/events"
	pkgerrors "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/pkg/errors"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/sendgrid"
)

type fakeMail struct {
	mu    sync.Mutex
	sent  []sendgrid.SendEmailRequest
	fail  error
}

func (fm *fakeMail) Send(ctx context.Context, req sendgrid.SendEmailRequest) (*sendgrid.SendEmailResult, error) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	if fm.fail != nil {
		return nil, fm.fail
	}
	fm.sent = append(fm.sent, req)
	return &sendgrid.SendEmailResult{StatusCode: 202}, nil
}

func (fm *fakeMail) sentCount() int {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	return len(fm.sent)
}

type memNotificationRepo struct {
	mu     sync.Mutex
	events map[uuid.UUID]*types.NotificationEvent
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{events: map[uuid.UUID]*types.NotificationEvent{}}
}

func (r *memNotificationRepo) Create(ctx context.Context, tx *gorm.DB, e *types.NotificationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r *memNotificationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.NotificationEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return nil, fmt.Errorf("%w: event %s", pkgerrors.ErrNotFound, id)
	}
	cp := *e
	return &cp, nil
}

func (r *memNotificationRepo) ListPending(ctx context.Context, tx *gorm.DB, limit int) ([]*types.NotificationEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.NotificationEvent
	for _, e := range r.events {
		if e.DispatchState == notification.DispatchPending {
			cp := *e
			out = append(out, &cp)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *memNotificationRepo) MarkDelivered(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return pkgerrors.ErrNotFound
	}
	e.DispatchState = notification.DispatchDelivered
	e.DispatchedAt = &at
	return nil
}

func (r *memNotificationRepo) MarkFailed(ctx context.Context, tx *gorm.DB, id uuid.UUID, dispatchErr string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok {
		return pkgerrors.ErrNotFound
	}
	e.DispatchState = notification.DispatchFailed
	e.DispatchError = dispatchErr
	e.DispatchedAt = &at
	return nil
}

func (r *memNotificationRepo) ListByPaper(ctx context.Context, tx *gorm.DB, paperID uuid.UUID) ([]*types.NotificationEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.NotificationEvent
	for _, e := range r.events {
		if e.PaperID == paperID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func seedEvent(r *memNotificationRepo, eventType notification.EventType, metadata string) *types.NotificationEvent {
	e := &types.NotificationEvent{
		ID:             uuid.New(),
		PaperID:        uuid.New(),
		UserID:         uuid.New(),
		EventType:      eventType,
		RecipientEmail: "author@example.org",
		RecipientName:  "Ada Author",
		PaperTitle:     "Boundary Layer Transition",
		IctacemID:      "ICTACEM-2026-00421",
		Metadata:       []byte(metadata),
		DispatchState:  notification.DispatchPending,
		CreatedAt:      time.Now(),
	}
	_ = r.Create(context.Background(), nil, e)
	return e
}

func newTestDispatcher(t *testing.T, repo *memNotificationRepo, mail *fakeMail) *notificationDispatcher {
	t.Helper()
	log := testutil.Logger(t)
	bus := events.NewMemoryBus(log)
	nd := NewNotificationDispatcher(log, repo, mail, bus, 2, time.Hour)
	return nd.(*notificationDispatcher)
}

func TestDispatchDeliversPendingEvent(t *testing.T) {
	repo := newMemNotificationRepo()
	mail := &fakeMail{}
	nd := newTestDispatcher(t, repo, mail)

	e := seedEvent(repo, notification.EventPaperApproved, `{}`)
	nd.dispatch(context.Background(), e.ID)

	if mail.sentCount() != 1 {
		t.Fatalf("expected 1 send, got %d", mail.sentCount())
	}
	stored, err := repo.GetByID(context.Background(), nil, e.ID)
	if err != nil {
		t.Fatalf("reload event: %v", err)
	}
	if stored.DispatchState != notification.DispatchDelivered {
		t.Fatalf("expected delivered, got %s", stored.DispatchState)
	}
	if stored.DispatchedAt == nil {
		t.Fatalf("expected DispatchedAt to be set")
	}
}

func TestDispatchSkipsNonPendingEvent(t *testing.T) {
	repo := newMemNotificationRepo()
	mail := &fakeMail{}
	nd := newTestDispatcher(t, repo, mail)

	e := seedEvent(repo, notification.EventStatusChanged, `{}`)
	now := time.Now()
	if err := repo.MarkDelivered(context.Background(), nil, e.ID, now); err != nil {
		t.Fatalf("mark delivered: %v", err)
	}

	nd.dispatch(context.Background(), e.ID)
	if mail.sentCount() != 0 {
		t.Fatalf("expected no sends for already-delivered event, got %d", mail.sentCount())
	}
}

func TestDispatchMarksFailedOnSendError(t *testing.T) {
	repo := newMemNotificationRepo()
	mail := &fakeMail{fail: fmt.Errorf("upstream 503")}
	nd := newTestDispatcher(t, repo, mail)

	e := seedEvent(repo, notification.EventAbstractReset, `{"reset_reason":"figures unreadable"}`)
	nd.dispatch(context.Background(), e.ID)

	stored, err := repo.GetByID(context.Background(), nil, e.ID)
	if err != nil {
		t.Fatalf("reload event: %v", err)
	}
	if stored.DispatchState != notification.DispatchFailed {
		t.Fatalf("expected failed, got %s", stored.DispatchState)
	}
	if !strings.Contains(stored.DispatchError, "upstream 503") {
		t.Fatalf("expected dispatch error to carry cause, got %q", stored.DispatchError)
	}
}

func TestStartSweepsPreexistingPendingEvents(t *testing.T) {
	repo := newMemNotificationRepo()
	mail := &fakeMail{}
	nd := newTestDispatcher(t, repo, mail)

	e := seedEvent(repo, notification.EventPaperDeclined, `{}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := nd.Start(ctx); err != nil {
		t.Fatalf("start dispatcher: %v", err)
	}
	defer func() { _ = nd.Stop() }()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		stored, err := repo.GetByID(context.Background(), nil, e.ID)
		if err != nil {
			t.Fatalf("reload event: %v", err)
		}
		if stored.DispatchState == notification.DispatchDelivered {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("event was not delivered by boot sweep")
}

func TestBusMessageTriggersDispatch(t *testing.T) {
	repo := newMemNotificationRepo()
	mail := &fakeMail{}
	nd := newTestDispatcher(t, repo, mail)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := nd.Start(ctx); err != nil {
		t.Fatalf("start dispatcher: %v", err)
	}
	defer func() { _ = nd.Stop() }()

	e := seedEvent(repo, notification.EventReviewCommentAvailable, `{"review_comment":"please expand section 3"}`)
	if err := nd.bus.Publish(ctx, events.Message{EventID: e.ID, EventType: e.EventType}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		stored, err := repo.GetByID(context.Background(), nil, e.ID)
		if err != nil {
			t.Fatalf("reload event: %v", err)
		}
		if stored.DispatchState == notification.DispatchDelivered {
			if mail.sentCount() != 1 {
				t.Fatalf("expected exactly 1 send, got %d", mail.sentCount())
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("published event was not dispatched")
}

func TestRenderNotificationBodies(t *testing.T) {
	base := seedEvent(newMemNotificationRepo(), notification.EventPaperApproved, `{}`)

	subject, body := renderNotification(base)
	if !strings.Contains(subject, "accepted") || !strings.Contains(subject, base.IctacemID) {
		t.Fatalf("unexpected approval subject %q", subject)
	}
	if !strings.Contains(body, "Dear Ada Author,") {
		t.Fatalf("expected greeting in body, got %q", body)
	}

	base.EventType = notification.EventAbstractReset
	base.Metadata = []byte(`{"reset_reason":"wrong template"}`)
	subject, body = renderNotification(base)
	if !strings.Contains(subject, "revision requested") {
		t.Fatalf("unexpected reset subject %q", subject)
	}
	if !strings.Contains(body, "wrong template") {
		t.Fatalf("expected reset reason in body, got %q", body)
	}

	base.EventType = notification.EventStatusChanged
	base.Metadata = []byte(`{"new_status":"review_in_progress"}`)
	_, body = renderNotification(base)
	if !strings.Contains(body, "review_in_progress") {
		t.Fatalf("expected new status in body, got %q", body)
	}
}
