package controllers

import (
	"github.com/gin-gonic/gin"
	"serenestays/internal/services"
	"serenestays/pkg/utils"
)

type UserController struct {
	userService services.UserServiceInterface
}

func NewUserController(userService services.UserServiceInterface) *UserController {
	return &UserController{
		userService: userService,
	}
}

// CreateUser godoc
// @Summary Register a user
// @Description Store the signup profile as sent
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {object} response_models.InsertAck
// @Failure 400 {object} utils.APIResponse
// @Router /users [post]
func (u *UserController) CreateUser(c *gin.Context) {
	user, err := bindDocument(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	ack, err := u.userService.CreateUser(c.Request.Context(), user)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondJSON(c, ack)
}

// GetUser godoc
// @Summary Get a user by email
// @Tags Users
// @Produce json
// @Param email query string true "User email"
// @Success 200 {object} db_models.Document
// @Failure 400 {object} utils.APIResponse
// @Router /users [get]
func (u *UserController) GetUser(c *gin.Context) {
	user, err := u.userService.GetUserByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondJSON(c, user)
}
