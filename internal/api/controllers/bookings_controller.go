package controllers

import (
	"github.com/gin-gonic/gin"
	"serenestays/internal/models/request_models"
	"serenestays/internal/services"
	"serenestays/pkg/utils"
)

type BookingController struct {
	bookingService services.BookingServiceInterface
}

func NewBookingController(bookingService services.BookingServiceInterface) *BookingController {
	return &BookingController{
		bookingService: bookingService,
	}
}

// CreateBooking godoc
// @Summary Create a booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Success 200 {object} response_models.InsertAck
// @Failure 400 {object} utils.APIResponse
// @Router /bookings [post]
func (b *BookingController) CreateBooking(c *gin.Context) {
	booking, err := bindDocument(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	ack, err := b.bookingService.CreateBooking(c.Request.Context(), booking)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondJSON(c, ack)
}

// ListMyBookings godoc
// @Summary List the caller's bookings
// @Description Newest first. The email must match the token's email claim.
// @Tags Bookings
// @Produce json
// @Param email query string true "Owner email"
// @Success 200 {array} db_models.Document
// @Failure 401 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /bookings [get]
func (b *BookingController) ListMyBookings(c *gin.Context) {
	bookings, err := b.bookingService.ListByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondJSON(c, bookings)
}

// ListBookedDates returns the bookedDate projection of a room's bookings.
func (b *BookingController) ListBookedDates(c *gin.Context) {
	dates, err := b.bookingService.ListBookedDates(c.Request.Context(), c.Query("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondJSON(c, dates)
}

func (b *BookingController) UpdateBookedDate(c *gin.Context) {
	var p request_models.IDParam
	if err := c.ShouldBindUri(&p); err != nil {
		utils.HandleServiceError(c, utils.ErrInvalidID)
		return
	}

	bookedDate, err := bindValue(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	ack, err := b.bookingService.UpdateBookedDate(c.Request.Context(), p.ID, bookedDate)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondJSON(c, ack)
}

func (b *BookingController) CancelBooking(c *gin.Context) {
	var p request_models.IDParam
	if err := c.ShouldBindUri(&p); err != nil {
		utils.HandleServiceError(c, utils.ErrInvalidID)
		return
	}

	ack, err := b.bookingService.CancelBooking(c.Request.Context(), p.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondJSON(c, ack)
}
