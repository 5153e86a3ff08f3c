package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/storefront/internal/hash"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

// AccountService owns every rule about users: one admin, unique email, role-partitioned lookup.
type AccountService struct {
	Repo      *repo.GormRepo
	Passwords hash.Scheme
	Events    EventPublisher
}

// CreateAdmin creates the single administrator. A second call fails with ErrConflict,
// also when two calls race and the store rejects the loser.
func (s *AccountService) CreateAdmin(ctx context.Context, req transport.RegisterRequest) (*models.PublicUser, error) {
	exists, err := s.Repo.AdminExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check admin: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("an admin user already exists: %w", ErrConflict)
	}

	return s.create(ctx, req, models.RoleAdmin)
}

func (s *AccountService) RegisterCustomer(ctx context.Context, req transport.RegisterRequest) (*models.PublicUser, error) {
	return s.create(ctx, req, models.RoleCustomer)
}

func (s *AccountService) create(ctx context.Context, req transport.RegisterRequest, role string) (*models.PublicUser, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	stored, err := s.Passwords.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: stored,
		Role:     role,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		return nil, mapUserWriteErr("create user", err)
	}

	pub := user.Public()
	return &pub, nil
}

// AuthenticateAdmin does not tell an unknown email apart from a wrong password.
func (s *AccountService) AuthenticateAdmin(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.Repo.FindUserByEmailAndRole(ctx, email, models.RoleAdmin)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("admin lookup: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if !s.Passwords.Check(user.Password, password) {
		return nil, fmt.Errorf("admin password mismatch: %w", ErrUnauthorized)
	}
	return user, nil
}

func (s *AccountService) AuthenticateCustomer(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.Repo.FindUserByEmailAndRole(ctx, email, models.RoleCustomer)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("customer lookup: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if !s.Passwords.Check(user.Password, password) {
		return nil, fmt.Errorf("customer password mismatch: %w", ErrUnauthorized)
	}
	return user, nil
}

func (s *AccountService) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.Repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateUser writes only the provided fields. The password cannot be changed here.
func (s *AccountService) UpdateUser(ctx context.Context, id string, req transport.UpdateUserRequest) (*models.PublicUser, error) {
	if !util.IsValidID(id) {
		return nil, fmt.Errorf("user id %q: %w", id, ErrInvalidIdentifier)
	}
	uid, _ := util.ParseID(id)

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Role != nil {
		fields["role"] = *req.Role
	}

	user, err := s.Repo.UpdateUserFields(ctx, uid, fields)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return nil, mapUserWriteErr("update user", err)
	}

	pub := user.Public()
	publish(ctx, s.Events, mykafka.TopicUserEvents, pub.ID.String(), map[string]any{
		"type":  "user_updated",
		"id":    pub.ID.String(),
		"email": pub.Email,
		"role":  pub.Role,
	})
	return &pub, nil
}

func (s *AccountService) DeleteUser(ctx context.Context, id string) (string, error) {
	uid, ok := util.ParseID(id)
	if !ok {
		return "", fmt.Errorf("user id %q: %w", id, ErrInvalidIdentifier)
	}

	if err := s.Repo.DeleteUser(ctx, uid); err != nil {
		if repo.IsNotFound(err) {
			return "", fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
		return "", fmt.Errorf("delete user: %w", err)
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, id, map[string]any{
		"type": "user_deleted",
		"id":   id,
	})
	logging.FromContext(ctx).Info("user_deleted", "user_id", id)
	return id, nil
}

// mapUserWriteErr turns a store rejection on one of the user indexes into its failure kind.
func mapUserWriteErr(op string, err error) error {
	idx, ok := repo.ClassifyUnique(err)
	if !ok {
		return fmt.Errorf("%s: %w", op, err)
	}
	switch idx {
	case repo.IndexSingleAdmin:
		return fmt.Errorf("%s: an admin user already exists: %w", op, ErrConflict)
	case repo.IndexEmail:
		return fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
