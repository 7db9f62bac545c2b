package rest

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kadoinkus/chatbot-platform/domains/assistant"
	"github.com/Kadoinkus/chatbot-platform/pkg/utils"
	"github.com/Kadoinkus/chatbot-platform/usecase"
)

type AssistantHandler struct {
	Service *usecase.AssistantService
}

func InitRestAssistant(app fiber.Router, service *usecase.AssistantService) AssistantHandler {
	handler := AssistantHandler{Service: service}

	app.Get("/clients/:clientId/assistants", handler.GetAllAssistants)
	app.Post("/clients/:clientId/assistants", handler.CreateAssistant)
	app.Get("/assistants/:id", handler.GetAssistant)
	app.Put("/assistants/:id", handler.UpdateAssistant)
	app.Delete("/assistants/:id", handler.DeleteAssistant)
	app.Get("/clients/:clientId/workspaces", handler.GetWorkspaces)
	app.Post("/clients/:clientId/workspaces", handler.CreateWorkspace)

	return handler
}

func (h *AssistantHandler) GetAllAssistants(c *fiber.Ctx) error {
	assistants, err := h.Service.GetAllAssistants(c.UserContext(), c.Params("clientId"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Assistants retrieved",
		Results: assistants,
	})
}

func (h *AssistantHandler) CreateAssistant(c *fiber.Ctx) error {
	var req assistant.CreateAssistantRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	created, err := h.Service.CreateAssistant(c.UserContext(), c.Params("clientId"), req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(utils.ResponseData{
		Status:  201,
		Code:    "CREATED",
		Message: "Assistant created",
		Results: created,
	})
}

func (h *AssistantHandler) GetAssistant(c *fiber.Ctx) error {
	a, err := h.Service.GetAssistant(c.UserContext(), c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Assistant retrieved",
		Results: a,
	})
}

func (h *AssistantHandler) UpdateAssistant(c *fiber.Ctx) error {
	var req assistant.UpdateAssistantRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	updated, err := h.Service.UpdateAssistant(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Assistant updated",
		Results: updated,
	})
}

func (h *AssistantHandler) DeleteAssistant(c *fiber.Ctx) error {
	if err := h.Service.DeleteAssistant(c.UserContext(), c.Params("id")); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Assistant deleted",
	})
}

func (h *AssistantHandler) GetWorkspaces(c *fiber.Ctx) error {
	workspaces, err := h.Service.GetWorkspaces(c.UserContext(), c.Params("clientId"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Workspaces retrieved",
		Results: workspaces,
	})
}

func (h *AssistantHandler) CreateWorkspace(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
		Plan string `json:"plan,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	created, err := h.Service.CreateWorkspace(c.UserContext(), c.Params("clientId"), req.Name, req.Plan)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(utils.ResponseData{
		Status:  201,
		Code:    "CREATED",
		Message: "Workspace created",
		Results: created,
	})
}
