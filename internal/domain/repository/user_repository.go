package repository

import (
	"context"

	"github.com/parkease/backend/internal/domain/model"
)

// UserRepository reads account identities.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
}
