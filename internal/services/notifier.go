package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	types "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/data/repos"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/domain/notification"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/events"
	pkgerrors "github.com/Deepak1230987/Conference-Management-Application-sub001/internal/pkg/errors"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/logger"
	"github.com/Deepak1230987/Conference-Management-Application-sub001/internal/platform/sendgrid"
)

// NotificationDispatcher drains the notification outbox. Delivery is
// at-least-once: bus messages trigger immediate dispatch, and a periodic
// sweep re-queues any row still pending (dropped messages, crashes, other
// instances). A delivery failure marks the row failed and is never surfaced
// to the lifecycle mutation that produced it.
type NotificationDispatcher interface {
	Start(ctx context.Context) error
	Stop() error
}

type notificationDispatcher struct {
	log              *logger.Logger
	notificationRepo repos.NotificationRepo
	mail             sendgrid.Client
	bus              events.Bus

	workers       int
	sweepInterval time.Duration
	sweepLimit    int

	queue  chan events.Message
	cancel context.CancelFunc
	group  *errgroup.Group

	mu      sync.Mutex
	started bool
}

func NewNotificationDispatcher(
	log *logger.Logger,
	notificationRepo repos.NotificationRepo,
	mail sendgrid.Client,
	bus events.Bus,
	workers int,
	sweepInterval time.Duration,
) NotificationDispatcher {
	if workers <= 0 {
		workers = 4
	}
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}
	return &notificationDispatcher{
		log:              log.With("service", "NotificationDispatcher"),
		notificationRepo: notificationRepo,
		mail:             mail,
		bus:              bus,
		workers:          workers,
		sweepInterval:    sweepInterval,
		sweepLimit:       50,
		queue:            make(chan events.Message, 256),
	}
}

func (nd *notificationDispatcher) Start(ctx context.Context) error {
	nd.mu.Lock()
	defer nd.mu.Unlock()
	if nd.started {
		return fmt.Errorf("dispatcher already started")
	}
	nd.started = true

	runCtx, cancel := context.WithCancel(ctx)
	nd.cancel = cancel
	g, gCtx := errgroup.WithContext(runCtx)
	nd.group = g

	if err := nd.bus.StartForwarder(runCtx, func(m events.Message) {
		nd.enqueue(gCtx, m)
	}); err != nil {
		cancel()
		return fmt.Errorf("start bus forwarder: %w", err)
	}

	for i := 0; i < nd.workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-gCtx.Done():
					return nil
				case msg := <-nd.queue:
					nd.dispatch(gCtx, msg.EventID)
				}
			}
		})
	}

	g.Go(func() error {
		// Drain whatever was pending before this instance came up, then
		// sweep on the interval.
		nd.sweep(gCtx)
		ticker := time.NewTicker(nd.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gCtx.Done():
				return nil
			case <-ticker.C:
				nd.sweep(gCtx)
			}
		}
	})

	nd.log.Info("notification dispatcher started", "workers", nd.workers, "sweep_interval", nd.sweepInterval)
	return nil
}

func (nd *notificationDispatcher) Stop() error {
	nd.mu.Lock()
	defer nd.mu.Unlock()
	if !nd.started {
		return nil
	}
	nd.cancel()
	err := nd.group.Wait()
	nd.started = false
	return err
}

func (nd *notificationDispatcher) enqueue(ctx context.Context, m events.Message) {
	select {
	case nd.queue <- m:
	case <-ctx.Done():
	default:
		// Pending rows are re-queued by the next sweep.
		nd.log.Warn("dispatch queue full, deferring to sweep", "event_id", m.EventID)
	}
}

func (nd *notificationDispatcher) sweep(ctx context.Context) {
	rows, err := nd.notificationRepo.ListPending(ctx, nil, nd.sweepLimit)
	if err != nil {
		nd.log.Warn("outbox sweep failed", "error", err)
		return
	}
	for _, row := range rows {
		nd.enqueue(ctx, events.Message{EventID: row.ID, EventType: row.EventType})
	}
}

func (nd *notificationDispatcher) dispatch(ctx context.Context, eventID uuid.UUID) {
	event, err := nd.notificationRepo.GetByID(ctx, nil, eventID)
	if err != nil {
		nd.log.Warn("load notification event failed", "event_id", eventID, "error", err)
		return
	}
	// A row already handled by another worker or instance is skipped, which
	// keeps redelivery from the sweep harmless.
	if event.DispatchState != notification.DispatchPending {
		return
	}

	subject, body := renderNotification(event)
	_, sendErr := nd.mail.Send(ctx, sendgrid.SendEmailRequest{
		To:      []sendgrid.EmailAddress{{Email: event.RecipientEmail, Name: event.RecipientName}},
		Subject: subject,
		Text:    body,
	})
	now := time.Now()
	if sendErr != nil {
		nd.log.Warn("notification delivery failed", "event_id", event.ID, "event_type", event.EventType, "error", sendErr)
		wrapped := fmt.Errorf("%w: %v", pkgerrors.ErrDispatchFailed, sendErr)
		if mErr := nd.notificationRepo.MarkFailed(ctx, nil, event.ID, wrapped.Error(), now); mErr != nil {
			nd.log.Error("mark notification failed errored", "event_id", event.ID, "error", mErr)
		}
		return
	}
	if mErr := nd.notificationRepo.MarkDelivered(ctx, nil, event.ID, now); mErr != nil {
		nd.log.Error("mark notification delivered errored", "event_id", event.ID, "error", mErr)
		return
	}
	nd.log.Info("notification delivered", "event_id", event.ID, "event_type", event.EventType)
}

func renderNotification(event *types.NotificationEvent) (string, string) {
	meta := map[string]string{}
	if len(event.Metadata) > 0 {
		_ = json.Unmarshal(event.Metadata, &meta)
	}
	ref := fmt.Sprintf("%s (%s)", event.PaperTitle, event.IctacemID)

	var subject string
	var lines []string
	greeting := "Dear " + event.RecipientName + ","
	if strings.TrimSpace(event.RecipientName) == "" {
		greeting = "Dear author,"
	}
	lines = append(lines, greeting, "")

	switch event.EventType {
	case notification.EventPaperApproved:
		subject = "Abstract accepted: " + ref
		lines = append(lines, "Your abstract for "+ref+" has been accepted.")
		lines = append(lines, "You may submit the full paper once your registration payment is recorded.")
	case notification.EventPaperDeclined:
		subject = "Submission declined: " + ref
		lines = append(lines, "We regret to inform you that your submission "+ref+" has been declined.")
	case notification.EventReviewCommentAvailable:
		subject = "Reviewer comments available: " + ref
		lines = append(lines, "Reviewer comments are available for your submission "+ref+".")
		if c := meta["review_comment"]; c != "" {
			lines = append(lines, "", "Comments:", c)
		}
	case notification.EventAbstractReset:
		subject = "Abstract revision requested: " + ref
		lines = append(lines, "The committee has requested a revised abstract for "+ref+".")
		if r := meta["reset_reason"]; r != "" {
			lines = append(lines, "", "Reason:", r)
		}
		lines = append(lines, "", "Please upload a revised abstract through the portal.")
	case notification.EventFullPaperReset:
		subject = "Full paper revision requested: " + ref
		lines = append(lines, "The committee has requested a revised full paper for "+ref+".")
		if r := meta["reset_reason"]; r != "" {
			lines = append(lines, "", "Reason:", r)
		}
		lines = append(lines, "", "Please upload a revised full paper through the portal.")
	default:
		subject = "Status update: " + ref
		line := "The status of your submission " + ref + " has changed"
		if s := meta["new_status"]; s != "" {
			line += " to " + s
		}
		lines = append(lines, line+".")
	}

	lines = append(lines, "", "Regards,", "The Organizing Committee")
	return subject, strings.Join(lines, "\n")
}
