package services

import (
	"errors"
	"fmt"

	"serenestays/internal/models/response_models"
	"serenestays/internal/repositories"
	"serenestays/pkg/utils"
)

// storeError translates repository failures into service sentinels.
func storeError(err error) error {
	if errors.Is(err, repositories.ErrInvalidID) {
		return fmt.Errorf("%w: %v", utils.ErrInvalidID, err)
	}
	if errors.Is(err, repositories.ErrNotArray) {
		return fmt.Errorf("%w: %v", utils.ErrFieldNotArray, err)
	}
	return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
}

func insertAck(res repositories.InsertResult) response_models.InsertAck {
	return response_models.InsertAck{Acknowledged: true, InsertedID: res.InsertedID}
}

func updateAck(res repositories.UpdateResult) response_models.UpdateAck {
	return response_models.UpdateAck{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}
}

func deleteAck(res repositories.DeleteResult) response_models.DeleteAck {
	return response_models.DeleteAck{Acknowledged: true, DeletedCount: res.DeletedCount}
}
