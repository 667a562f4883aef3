package events

import (
	"context"
	"time"

	"reservationmanager/pkg/kafka"
	"reservationmanager/pkg/logger"
	"reservationmanager/pkg/model"
)

const (
	TypeReservationCreated   = "reservation.created"
	TypeReservationUpdated   = "reservation.updated"
	TypeReservationCancelled = "reservation.cancelled"

	sourceService = "reservations"
)

// ReservationEvents publishes domain events after a successful commit. The
// store remains the source of truth: publishing is best-effort and must never
// fail the operation that triggered it.
type ReservationEvents interface {
	ReservationCreated(ctx context.Context, reservation *model.Reservation)
	ReservationUpdated(ctx context.Context, reservation *model.Reservation)
	ReservationCancelled(ctx context.Context, id string)
}

// messagePublisher is what the kafka producer provides.
type messagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type reservationPayload struct {
	ID          string    `json:"id"`
	HolderName  string    `json:"holder_name,omitempty"`
	HolderEmail string    `json:"holder_email,omitempty"`
	StartDate   time.Time `json:"start_date,omitempty"`
	EndDate     time.Time `json:"end_date,omitempty"`
}

type kafkaEvents struct {
	producer messagePublisher
	log      *logger.Logger
}

func NewKafkaEvents(producer messagePublisher, log *logger.Logger) ReservationEvents {
	return &kafkaEvents{
		producer: producer,
		log:      log,
	}
}

func (e *kafkaEvents) ReservationCreated(ctx context.Context, reservation *model.Reservation) {
	e.publish(ctx, TypeReservationCreated, reservationPayload{
		ID:          reservation.ID,
		HolderName:  reservation.HolderName,
		HolderEmail: reservation.HolderEmail,
		StartDate:   reservation.StartDate,
		EndDate:     reservation.EndDate,
	})
}

func (e *kafkaEvents) ReservationUpdated(ctx context.Context, reservation *model.Reservation) {
	e.publish(ctx, TypeReservationUpdated, reservationPayload{
		ID:          reservation.ID,
		HolderName:  reservation.HolderName,
		HolderEmail: reservation.HolderEmail,
		StartDate:   reservation.StartDate,
		EndDate:     reservation.EndDate,
	})
}

func (e *kafkaEvents) ReservationCancelled(ctx context.Context, id string) {
	e.publish(ctx, TypeReservationCancelled, reservationPayload{ID: id})
}

func (e *kafkaEvents) publish(ctx context.Context, eventType string, payload reservationPayload) {
	msg := kafka.NewMessage().
		WithKey(payload.ID).
		WithEventType(eventType).
		WithSource(sourceService).
		WithValue(payload).
		Build()

	if err := e.producer.Publish(ctx, msg); err != nil {
		e.log.Error("Failed to publish reservation event",
			"event_type", eventType,
			"reservation_id", payload.ID,
			"error", err,
		)
	}
}

type nopEvents struct{}

// NewNopEvents returns a publisher that drops everything. Used when no event
// topic is configured.
func NewNopEvents() ReservationEvents {
	return nopEvents{}
}

func (nopEvents) ReservationCreated(context.Context, *model.Reservation) {}
func (nopEvents) ReservationUpdated(context.Context, *model.Reservation) {}
func (nopEvents) ReservationCancelled(context.Context, string)           {}
