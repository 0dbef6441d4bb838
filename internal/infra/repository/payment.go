package repository

import (
	"context"
	"time"

	"facility-booking/internal/infra"
	"facility-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type PaymentRepository struct{}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

func (r *PaymentRepository) Create(ctx context.Context, db infra.DBTX, rec commands.PaymentRecord) error {
	_, err := db.Exec(ctx, `
		INSERT INTO payments (id, booking_id, method, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())`,
		rec.ID, rec.BookingID, rec.Method, rec.Amount, rec.Status)
	if err != nil {
		return infra.WrapRepoErr("failed to insert payment", err)
	}
	return nil
}

func (r *PaymentRepository) UpdateStatusByBookingID(ctx context.Context, db infra.DBTX, bookingID uuid.UUID, status string) error {
	_, err := db.Exec(ctx, `
		UPDATE payments SET status = $2, updated_at = now()
		WHERE booking_id = $1`, bookingID, status)
	if err != nil {
		return infra.WrapRepoErr("failed to update payment status", err)
	}
	return nil
}

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, db infra.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := db.Exec(ctx, `
		INSERT INTO notification_jobs (id, kind, topic, payload, status, run_at, created_at)
		VALUES ($1, $2, $3, $4, 'pending', $5, now())`,
		uuid.New(), kind, topic, payload, runAt)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}
