package services

import (
	"context"
	"strings"

	"serenestays/internal/models/db_models"
	"serenestays/internal/models/response_models"
	"serenestays/internal/repositories"
	"serenestays/pkg/utils"
)

type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, booking db_models.Document) (response_models.InsertAck, error)
	ListByEmail(ctx context.Context, email string) ([]db_models.Document, error)
	ListBookedDates(ctx context.Context, roomID string) ([]db_models.Document, error)
	UpdateBookedDate(ctx context.Context, id string, bookedDate interface{}) (response_models.UpdateAck, error)
	CancelBooking(ctx context.Context, id string) (response_models.DeleteAck, error)
}

type BookingService struct {
	bookings repositories.Collection
}

func NewBookingService(bookings repositories.Collection) BookingServiceInterface {
	return &BookingService{bookings: bookings}
}

// CreateBooking stores the booking as sent. Room and user references are
// not checked.
func (s *BookingService) CreateBooking(ctx context.Context, booking db_models.Document) (response_models.InsertAck, error) {
	res, err := s.bookings.InsertOne(ctx, booking)
	if err != nil {
		return response_models.InsertAck{}, storeError(err)
	}
	return insertAck(res), nil
}

// ListByEmail returns the bookings of one user, newest first.
func (s *BookingService) ListByEmail(ctx context.Context, email string) ([]db_models.Document, error) {
	if strings.TrimSpace(email) == "" {
		return nil, utils.ErrMissingEmail
	}

	bookings, err := s.bookings.Find(ctx,
		repositories.Filter{db_models.FieldEmail: email},
		repositories.FindOptions{Newest: true})
	if err != nil {
		return nil, storeError(err)
	}
	return bookings, nil
}

// ListBookedDates returns only the bookedDate of every booking of a room.
func (s *BookingService) ListBookedDates(ctx context.Context, roomID string) ([]db_models.Document, error) {
	if strings.TrimSpace(roomID) == "" {
		return nil, utils.ErrMissingRoomID
	}

	dates, err := s.bookings.Find(ctx,
		repositories.Filter{db_models.FieldRoomID: roomID},
		repositories.FindOptions{Projection: []string{db_models.FieldBookedDate}})
	if err != nil {
		return nil, storeError(err)
	}
	return dates, nil
}

func (s *BookingService) UpdateBookedDate(ctx context.Context, id string, bookedDate interface{}) (response_models.UpdateAck, error) {
	res, err := s.bookings.SetField(ctx, id, db_models.FieldBookedDate, bookedDate)
	if err != nil {
		return response_models.UpdateAck{}, storeError(err)
	}
	return updateAck(res), nil
}

func (s *BookingService) CancelBooking(ctx context.Context, id string) (response_models.DeleteAck, error) {
	res, err := s.bookings.DeleteOne(ctx, id)
	if err != nil {
		return response_models.DeleteAck{}, storeError(err)
	}
	return deleteAck(res), nil
}
