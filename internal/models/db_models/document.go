package db_models

// Document is a schemaless record as stored in a collection.
type Document map[string]interface{}

const FieldID = "_id"

// Collection names in the sereneStays database.
const (
	RoomsCollection         = "roomData"
	UsersCollection         = "usersData"
	BookingsCollection      = "bookingsData"
	SubscriptionsCollection = "subscribe"
)

// Well known document fields.
const (
	FieldEmail        = "email"
	FieldRoomID       = "roomId"
	FieldBookedDate   = "bookedDate"
	FieldAvailability = "Availability"
	FieldReviews      = "reviews"
	FieldReviewDate   = "currentDate"
)

// ID returns the document identifier as a string, or "" when unset.
func (d Document) ID() string {
	switch v := d[FieldID].(type) {
	case string:
		return v
	case interface{ Hex() string }:
		return v.Hex()
	default:
		return ""
	}
}
