package service

import (
	"context"
	"errors"
	"time"

	customErrors "github.com/sawant8123/storefront-service/internal/errors"
	"github.com/sawant8123/storefront-service/internal/model"
	"github.com/sawant8123/storefront-service/internal/repository"
	"github.com/sawant8123/storefront-service/pkg/resilience"
)

const (
	saveAttempts = 3
	saveBackoff  = 50 * time.Millisecond
)

// mutation edits a freshly loaded user and reports whether it must be saved.
type mutation func(ctx context.Context, user *model.User) (bool, error)

// mutateUser runs a load-modify-save cycle, starting over when another
// request saved the same user in between.
func mutateUser(ctx context.Context, users repository.UserRepository, tx repository.Transactor, userID string, fn mutation) (*model.User, error) {
	var result *model.User

	err := resilience.Retry(ctx, saveAttempts, saveBackoff, isVersionConflict, func() error {
		return tx.WithTransaction(ctx, func(txCtx context.Context) error {
			user, err := users.GetByID(txCtx, userID)
			if errors.Is(err, repository.ErrNotFound) {
				return customErrors.UserNotFound
			}
			if err != nil {
				return err
			}

			changed, err := fn(txCtx, user)
			if err != nil {
				return err
			}
			if changed {
				if err := users.Save(txCtx, user); err != nil {
					return err
				}
			}

			result = user
			return nil
		})
	})
	if isVersionConflict(err) {
		return nil, customErrors.ConcurrentModification
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

func isVersionConflict(err error) bool {
	return errors.Is(err, repository.ErrVersionConflict)
}
