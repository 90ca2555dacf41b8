package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

type Service interface {
	ListUsers(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, user *User) (*User, error)
	UpdateUser(ctx context.Context, id int64, user *User) (*User, error)
	DeleteUser(ctx context.Context, id int64) (*User, error)
	Ping(ctx context.Context) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list users in repository")
		return nil, fmt.Errorf("service: failed to list users: %w", err)
	}

	return users, nil
}

func (s *service) CreateUser(ctx context.Context, user *User) (*User, error) {
	user.ID = 0

	_, err := s.lookupEmail(ctx, user.Email)
	switch {
	case err == nil:
		log.Warn().Str("email", user.Email).Msg("service: attempt to create user with existing email")
		return nil, ErrEmailExists
	case !errors.Is(err, ErrNotFound):
		log.Error().Err(err).Msg("service: failed to check email uniqueness")
		return nil, fmt.Errorf("service: failed to check email: %w", err)
	}

	createdID, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, ErrEmailExists
		}
		log.Error().Err(err).Msg("service: failed to create user in repository")
		return nil, fmt.Errorf("service: failed to save user: %w", err)
	}

	user.ID = createdID
	log.Info().Int64("user_id", createdID).Msg("service: user created")

	return user, nil
}

// UpdateUser полностью заменяет запись с данным id.
// Поля, которых нет в user, сохраняются пустыми, а не остаются прежними.
func (s *service) UpdateUser(ctx context.Context, id int64, user *User) (*User, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn().Int64("user_id", id).Msg("service: user not found, cannot update")
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int64("user_id", id).Msg("service: failed to get user for update")
		return nil, fmt.Errorf("service: failed to get user %d for update: %w", id, err)
	}

	user.ID = id
	normalizeForReplace(user)

	if err := s.repo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			// удалён между проверкой и обновлением
			log.Warn().Int64("user_id", id).Msg("service: user disappeared during update")
			return nil, ErrNotFound
		case errors.Is(err, ErrEmailExists):
			return nil, ErrEmailExists
		}
		log.Error().Err(err).Int64("user_id", id).Msg("service: failed to update user")
		return nil, fmt.Errorf("service: failed to update user %d: %w", id, err)
	}

	return user, nil
}

func (s *service) DeleteUser(ctx context.Context, id int64) (*User, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn().Int64("user_id", id).Msg("service: user not found, cannot delete")
			return nil, ErrNotFound
		}
		log.Error().Err(err).Int64("user_id", id).Msg("service: failed to delete user")
		return nil, fmt.Errorf("service: failed to delete user %d: %w", id, err)
	}

	log.Info().Int64("user_id", id).Msg("service: user deleted")

	return deleted, nil
}

// lookupEmail ищет владельца email. Пустой email уникальным не считается.
func (s *service) lookupEmail(ctx context.Context, email string) (*User, error) {
	if email == "" {
		return nil, ErrNotFound
	}

	return s.repo.GetByEmail(ctx, email)
}

func (s *service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// normalizeForReplace заполняет то, что при замене нельзя оставить незаданным.
// Строки и числа уже покрыты нулевыми значениями Go.
func normalizeForReplace(user *User) {
	if user.ID2.Value == nil {
		empty := ""
		user.ID2.Value = &empty
	}
}
