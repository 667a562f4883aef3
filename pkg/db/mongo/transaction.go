package mongo

import (
	"context"
	"errors"
	"fmt"

	apperrors "reservationmanager/pkg/errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// TransactionFunc runs inside a single unit of work. The context it receives
// is a mongo session context; passing it to repository calls keeps their
// reads and writes inside the transaction.
type TransactionFunc func(ctx context.Context) error

type TransactionManager interface {
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
}

type mongoTransactionManager struct {
	client *mongo.Client
}

func NewTransactionManager(client *mongo.Client) TransactionManager {
	return &mongoTransactionManager{
		client: client,
	}
}

func (m *mongoTransactionManager) ExecuteTransaction(ctx context.Context, fn TransactionFunc) error {
	session, err := m.client.StartSession()
	if err != nil {
		return apperrors.Internal("failed to start storage session", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, fn(sessCtx)
	})

	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		// A serialization hazard the store detected must surface as a
		// retryable conflict, never as a validation outcome.
		if IsTransientTransactionError(err) {
			return apperrors.ConcurrencyConflict("storage detected a conflicting concurrent writer", err)
		}
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// IsTransientTransactionError reports whether err carries the driver's
// transient-transaction label, meaning the whole unit of work can be retried
// from scratch against fresh state.
func IsTransientTransactionError(err error) bool {
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.HasErrorLabel("TransientTransactionError")
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.HasErrorLabel("TransientTransactionError")
	}
	return false
}
