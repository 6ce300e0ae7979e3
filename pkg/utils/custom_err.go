package utils

import "errors"

var (
	ErrInvalidID      = errors.New("invalid document id")
	ErrInvalidPayload = errors.New("invalid request payload")
	ErrMissingEmail   = errors.New("email is required")
	ErrMissingRoomID  = errors.New("room id is required")
	ErrDatabaseError  = errors.New("database error")
	ErrUnauthorized   = errors.New("missing auth token")
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrForbidden      = errors.New("token does not own the requested resource")

	ErrPayloadTooLarge = errors.New("request body too large")
	ErrFieldNotArray   = errors.New("field is not an array")
)
