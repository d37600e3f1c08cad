package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	Create(ctx context.Context, u User) (User, error)
}
