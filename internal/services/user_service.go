package services

import (
	"context"
	"strings"

	"serenestays/internal/models/db_models"
	"serenestays/internal/models/response_models"
	"serenestays/internal/repositories"
	"serenestays/pkg/utils"
)

type UserServiceInterface interface {
	CreateUser(ctx context.Context, user db_models.Document) (response_models.InsertAck, error)
	GetUserByEmail(ctx context.Context, email string) (db_models.Document, error)
}

type UserService struct {
	users repositories.Collection
}

func NewUserService(users repositories.Collection) UserServiceInterface {
	return &UserService{users: users}
}

// CreateUser stores the profile as sent. Email uniqueness is not enforced.
func (s *UserService) CreateUser(ctx context.Context, user db_models.Document) (response_models.InsertAck, error) {
	res, err := s.users.InsertOne(ctx, user)
	if err != nil {
		return response_models.InsertAck{}, storeError(err)
	}
	return insertAck(res), nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (db_models.Document, error) {
	if strings.TrimSpace(email) == "" {
		return nil, utils.ErrMissingEmail
	}

	user, err := s.users.FindOne(ctx, repositories.Filter{db_models.FieldEmail: email})
	if err != nil {
		return nil, storeError(err)
	}
	return user, nil
}
