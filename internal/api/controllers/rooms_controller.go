package controllers

import (
	"github.com/gin-gonic/gin"
	"serenestays/internal/services"
	"serenestays/pkg/utils"
)

type RoomController struct {
	roomService services.RoomServiceInterface
}

func NewRoomController(roomService services.RoomServiceInterface) *RoomController {
	return &RoomController{
		roomService: roomService,
	}
}

// ListRooms godoc
// @Summary List rooms
// @Description Fetch every room, unfiltered
// @Tags Rooms
// @Produce json
// @Success 200 {array} db_models.Document
// @Router /rooms [get]
func (r *RoomController) ListRooms(c *gin.Context) {
	rooms, err := r.roomService.ListRooms(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondJSON(c, rooms)
}

// GetRoom godoc
// @Summary Get a room
// @Description Fetch one room by id; the body is null when no room matches
// @Tags Rooms
// @Produce json
// @Param id path string true "Room id"
// @Success 200 {object} db_models.Document
// @Failure 400 {object} utils.APIResponse
// @Router /rooms/{id} [get]
func (r *RoomController) GetRoom(c *gin.Context) {
	room, err := r.roomService.GetRoom(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondJSON(c, room)
}

// AddReview godoc
// @Summary Review a room
// @Description Append a timestamped review to the room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param id path string true "Room id"
// @Success 200 {object} response_models.UpdateAck
// @Failure 400 {object} utils.APIResponse
// @Router /rooms/{id} [post]
func (r *RoomController) AddReview(c *gin.Context) {
	review, err := bindDocument(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	ack, err := r.roomService.AddReview(c.Request.Context(), c.Param("id"), review)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondJSON(c, ack)
}

// SetAvailability godoc
// @Summary Set room availability
// @Description Overwrite the room's Availability with the request body
// @Tags Rooms
// @Accept json
// @Produce json
// @Param id path string true "Room id"
// @Success 200 {object} response_models.UpdateAck
// @Failure 400 {object} utils.APIResponse
// @Router /rooms/{id} [patch]
func (r *RoomController) SetAvailability(c *gin.Context) {
	availability, err := bindValue(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	ack, err := r.roomService.SetAvailability(c.Request.Context(), c.Param("id"), availability)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondJSON(c, ack)
}
