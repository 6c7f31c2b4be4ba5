package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

type mongoTransactor struct {
	client  *mongo.Client
	enabled bool
}

// NewTransactor returns a Transactor backed by MongoDB sessions. When enabled
// is false (standalone servers cannot run transactions) fn runs directly.
func NewTransactor(client *mongo.Client, enabled bool) Transactor {
	return &mongoTransactor{client: client, enabled: enabled}
}

func (t *mongoTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled {
		return fn(ctx)
	}

	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
