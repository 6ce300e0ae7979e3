package controllers

import (
	"github.com/gin-gonic/gin"
	"serenestays/internal/services"
	"serenestays/pkg/utils"
)

type SubscriptionController struct {
	subscriptionService services.SubscriptionServiceInterface
}

func NewSubscriptionController(subscriptionService services.SubscriptionServiceInterface) *SubscriptionController {
	return &SubscriptionController{subscriptionService: subscriptionService}
}

func (s *SubscriptionController) Subscribe(c *gin.Context) {
	subscription, err := bindDocument(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	ack, err := s.subscriptionService.Subscribe(c.Request.Context(), subscription)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondJSON(c, ack)
}

func (s *SubscriptionController) GetSubscription(c *gin.Context) {
	sub, err := s.subscriptionService.GetSubscription(c.Request.Context(), c.Query("email"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondJSON(c, sub)
}
