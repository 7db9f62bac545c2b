package rest

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kadoinkus/chatbot-platform/domains/analytics"
	"github.com/Kadoinkus/chatbot-platform/pkg/utils"
	"github.com/Kadoinkus/chatbot-platform/usecase"
)

type SessionHandler struct {
	Service *usecase.EnrichmentService
}

func InitRestSession(app fiber.Router, service *usecase.EnrichmentService) SessionHandler {
	handler := SessionHandler{Service: service}

	app.Post("/clients/:clientId/sessions", handler.IngestSession)
	app.Post("/sessions/:id/analyze", handler.AnalyzeSession)

	return handler
}

// IngestSession stores one finished session record
func (h *SessionHandler) IngestSession(c *fiber.Ctx) error {
	var session analytics.RawSession
	if err := c.BodyParser(&session); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.Service.IngestSession(c.UserContext(), c.Params("clientId"), &session); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(utils.ResponseData{
		Status:  201,
		Code:    "CREATED",
		Message: "Session stored",
		Results: session,
	})
}

// AnalyzeSession runs AI analysis over a session transcript
func (h *SessionHandler) AnalyzeSession(c *fiber.Ctx) error {
	var req struct {
		Transcript string `json:"transcript"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Transcript == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Transcript is required")
	}

	analysis, err := h.Service.AnalyzeSession(c.UserContext(), c.Params("id"), req.Transcript)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Session analyzed",
		Results: analysis,
	})
}
