package services

import (
	"context"
	"strings"

	"serenestays/internal/models/db_models"
	"serenestays/internal/models/response_models"
	"serenestays/internal/repositories"
	"serenestays/pkg/utils"
)

type SubscriptionServiceInterface interface {
	Subscribe(ctx context.Context, subscription db_models.Document) (response_models.InsertAck, error)
	GetSubscription(ctx context.Context, email string) (db_models.Document, error)
}

type SubscriptionService struct {
	subscriptions repositories.Collection
}

func NewSubscriptionService(subscriptions repositories.Collection) SubscriptionServiceInterface {
	return &SubscriptionService{subscriptions: subscriptions}
}

func (s *SubscriptionService) Subscribe(ctx context.Context, subscription db_models.Document) (response_models.InsertAck, error) {
	res, err := s.subscriptions.InsertOne(ctx, subscription)
	if err != nil {
		return response_models.InsertAck{}, storeError(err)
	}
	return insertAck(res), nil
}

func (s *SubscriptionService) GetSubscription(ctx context.Context, email string) (db_models.Document, error) {
	if strings.TrimSpace(email) == "" {
		return nil, utils.ErrMissingEmail
	}

	sub, err := s.subscriptions.FindOne(ctx, repositories.Filter{db_models.FieldEmail: email})
	if err != nil {
		return nil, storeError(err)
	}
	return sub, nil
}
