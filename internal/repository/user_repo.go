package repository

import (
	"context"
	"errors"

	"rofoportal/internal/model"
	"rofoportal/internal/store"
)

// ErrUserNotFound is returned for unknown usernames. The auth service maps it
// to the same client message as a bad password.
var ErrUserNotFound = errors.New("user not found")

// UserRepository reads credential records from the users table.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

type userRepo struct{ tab store.Tabular }

func NewUserRepository(tab store.Tabular) UserRepository { return &userRepo{tab: tab} }

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	rows, err := r.tab.Read(ctx, model.TableUsers)
	if err != nil {
		if errors.Is(err, store.ErrTableNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	for _, row := range rows {
		if row[model.ColUsername] == username {
			return &model.User{
				Username:     row[model.ColUsername],
				PasswordHash: row[model.ColPasswordHash],
				Role:         row[model.ColRole],
			}, nil
		}
	}
	return nil, ErrUserNotFound
}
