package service

import (
	"context"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

// AuthService sequences the account flows. Login is partitioned by role: an admin
// cannot sign in through Login and a customer cannot sign in through AdminLogin.
type AuthService struct {
	Accounts *AccountService
	Events   EventPublisher
}

func (s *AuthService) Setup(ctx context.Context, req transport.RegisterRequest) (*models.PublicUser, error) {
	admin, err := s.Accounts.CreateAdmin(ctx, req)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("admin_created", "user_id", admin.ID)
	publish(ctx, s.Events, mykafka.TopicUserEvents, admin.ID.String(), map[string]any{
		"type":  "admin_created",
		"id":    admin.ID.String(),
		"email": admin.Email,
	})
	return admin, nil
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.PublicUser, error) {
	user, err := s.Accounts.RegisterCustomer(ctx, req)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, user.ID.String(), map[string]any{
		"type":  "user_registered",
		"id":    user.ID.String(),
		"email": user.Email,
	})
	return user, nil
}

func (s *AuthService) AdminLogin(ctx context.Context, req transport.LoginRequest) (*models.User, error) {
	admin, err := s.Accounts.AuthenticateAdmin(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, admin.ID.String(), map[string]any{
		"type": "admin_logged_in",
		"id":   admin.ID.String(),
	})
	return admin, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*models.PublicUser, error) {
	user, err := s.Accounts.AuthenticateCustomer(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	pub := user.Public()
	publish(ctx, s.Events, mykafka.TopicUserEvents, pub.ID.String(), map[string]any{
		"type": "user_logged_in",
		"id":   pub.ID.String(),
	})
	return &pub, nil
}
