package rest

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kadoinkus/chatbot-platform/pkg/utils"
	"github.com/Kadoinkus/chatbot-platform/usecase"
)

type HealthHandler struct {
	Service *usecase.HealthService
}

func InitRestHealth(app fiber.Router, service *usecase.HealthService) HealthHandler {
	handler := HealthHandler{Service: service}

	app.Get("/clients/:clientId/health", handler.GetSystemHealth)

	return handler
}

// GetSystemHealth returns overall system health status
func (h *HealthHandler) GetSystemHealth(c *fiber.Ctx) error {
	health, err := h.Service.GetSystemHealth(c.UserContext(), c.Params("clientId"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "System health retrieved",
		Results: health,
	})
}
