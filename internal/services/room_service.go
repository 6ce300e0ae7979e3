package services

import (
	"context"
	"time"

	"serenestays/internal/models/db_models"
	"serenestays/internal/models/response_models"
	"serenestays/internal/repositories"
	"serenestays/pkg/utils"
)

type RoomServiceInterface interface {
	ListRooms(ctx context.Context) ([]db_models.Document, error)
	GetRoom(ctx context.Context, id string) (db_models.Document, error)
	AddReview(ctx context.Context, id string, review db_models.Document) (response_models.UpdateAck, error)
	SetAvailability(ctx context.Context, id string, availability interface{}) (response_models.UpdateAck, error)
}

type RoomService struct {
	rooms repositories.Collection
	now   func() time.Time
}

func NewRoomService(rooms repositories.Collection) RoomServiceInterface {
	return &RoomService{rooms: rooms, now: time.Now}
}

func (s *RoomService) ListRooms(ctx context.Context) ([]db_models.Document, error) {
	rooms, err := s.rooms.Find(ctx, nil, repositories.FindOptions{})
	if err != nil {
		return nil, storeError(err)
	}
	return rooms, nil
}

// GetRoom returns nil without error when no room has the id.
func (s *RoomService) GetRoom(ctx context.Context, id string) (db_models.Document, error) {
	room, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return room, nil
}

// AddReview stamps the review with the submission time and appends it to
// the room's reviews.
func (s *RoomService) AddReview(ctx context.Context, id string, review db_models.Document) (response_models.UpdateAck, error) {
	stamped := make(db_models.Document, len(review)+1)
	for k, v := range review {
		stamped[k] = v
	}
	stamped[db_models.FieldReviewDate] = utils.FormatISO(s.now())

	res, err := s.rooms.PushField(ctx, id, db_models.FieldReviews, stamped)
	if err != nil {
		return response_models.UpdateAck{}, storeError(err)
	}
	return updateAck(res), nil
}

func (s *RoomService) SetAvailability(ctx context.Context, id string, availability interface{}) (response_models.UpdateAck, error) {
	res, err := s.rooms.SetField(ctx, id, db_models.FieldAvailability, availability)
	if err != nil {
		return response_models.UpdateAck{}, storeError(err)
	}
	return updateAck(res), nil
}
