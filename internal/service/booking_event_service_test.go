package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type recordingPublisher struct {
	keys []string
	err  error
}

func (p *recordingPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	p.keys = append(p.keys, key)
	return p.err
}

func TestBookingEventServicePublishes(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewBookingEventService(pub, quietLogger())

	svc.Publish(context.Background(), BookingEventCreated, BookingEvent{BookingID: uuid.New()})
	svc.Publish(context.Background(), BookingEventCheckedIn, BookingEvent{BookingID: uuid.New()})

	if len(pub.keys) != 2 || pub.keys[0] != BookingEventCreated || pub.keys[1] != BookingEventCheckedIn {
		t.Fatalf("published keys = %v", pub.keys)
	}
}

func TestBookingEventServiceSurvivesCancelledRequest(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker gone")}
	svc := NewBookingEventService(pub, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Publish(ctx, BookingEventStatusChanged, BookingEvent{BookingID: uuid.New()})

	if len(pub.keys) != 1 {
		t.Fatalf("published keys = %v, want one attempt", pub.keys)
	}
}

func TestBookingEventServiceWithoutBroker(t *testing.T) {
	svc := NewBookingEventService(nil, quietLogger())
	svc.Publish(context.Background(), BookingEventCreated, BookingEvent{BookingID: uuid.New()})
}
