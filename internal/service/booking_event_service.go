package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Routing keys of booking events.
const (
	BookingEventCreated       = "booking.created"
	BookingEventStatusChanged = "booking.status_changed"
	BookingEventCheckedIn     = "booking.checked_in"
)

const publishTimeout = 5 * time.Second

type BookingEvent struct {
	BookingID   uuid.UUID  `json:"booking_id"`
	CustomerID  uuid.UUID  `json:"customer_id"`
	DoctorID    *uuid.UUID `json:"doctor_id,omitempty"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	OccurredAt  time.Time  `json:"occurred_at"`
}

// JSONPublisher is satisfied by messaging.Publisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// BookingEventService announces booking changes. Delivery is best effort:
// failures are logged and never returned.
type BookingEventService interface {
	Publish(ctx context.Context, routingKey string, event BookingEvent)
}

type bookingEventService struct {
	publisher JSONPublisher
	log       *logrus.Logger
}

// NewBookingEventService returns a no-op service when publisher is nil.
func NewBookingEventService(publisher JSONPublisher, log *logrus.Logger) BookingEventService {
	return &bookingEventService{publisher: publisher, log: log}
}

func (s *bookingEventService) Publish(ctx context.Context, routingKey string, event BookingEvent) {
	if s.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.PublishJSON(ctx, routingKey, event); err != nil {
		s.log.Warnf("Failed to publish %s for booking %s: %+v", routingKey, event.BookingID, err)
		return
	}

	s.log.Debugf("Published %s for booking %s", routingKey, event.BookingID)
}
