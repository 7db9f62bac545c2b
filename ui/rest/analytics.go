package rest

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Kadoinkus/chatbot-platform/domains/analytics"
	"github.com/Kadoinkus/chatbot-platform/pkg/utils"
	"github.com/Kadoinkus/chatbot-platform/usecase"
)

type AnalyticsHandler struct {
	Service *usecase.AnalyticsService
}

func InitRestAnalytics(app fiber.Router, service *usecase.AnalyticsService) AnalyticsHandler {
	handler := AnalyticsHandler{Service: service}

	app.Get("/clients/:clientId/analytics/dashboard", handler.GetDashboard)
	app.Get("/clients/:clientId/analytics/assistants/:id", handler.GetAssistantAnalytics)
	app.Get("/clients/:clientId/analytics/compare", handler.CompareAssistants)
	app.Get("/clients/:clientId/analytics/timeseries", handler.GetTimeSeries)
	app.Get("/clients/:clientId/analytics/stats", handler.GetConversationStats)

	return handler
}

// parseFilters reads the shared period/workspace/assistant scoping params.
func parseFilters(c *fiber.Ctx) analytics.SessionFilters {
	filters := analytics.SessionFilters{
		Period:    c.Query("period", analytics.Period30Days),
		Workspace: c.Query("workspace", analytics.ScopeAll),
	}
	if raw := c.Query("assistants"); raw != "" && raw != analytics.ScopeAll {
		filters.AssistantIDs = strings.Split(raw, ",")
	}
	return filters
}

// GetDashboard returns the aggregated KPIs for the client's assistant set
func (h *AnalyticsHandler) GetDashboard(c *fiber.Ctx) error {
	clientID := c.Params("clientId")

	dashboard, err := h.Service.GetDashboard(c.UserContext(), clientID, parseFilters(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Dashboard stats retrieved",
		Results: dashboard,
	})
}

// GetAssistantAnalytics returns one assistant's metrics and formula results
func (h *AnalyticsHandler) GetAssistantAnalytics(c *fiber.Ctx) error {
	clientID := c.Params("clientId")
	assistantID := c.Params("id")

	if assistantID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Assistant ID is required")
	}

	result, err := h.Service.GetAssistantAnalytics(c.UserContext(), clientID, assistantID, parseFilters(c))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Assistant analytics retrieved",
		Results: result,
	})
}

// CompareAssistants returns per-assistant rows plus the weighted rollup
func (h *AnalyticsHandler) CompareAssistants(c *fiber.Ctx) error {
	clientID := c.Params("clientId")
	filters := parseFilters(c)

	result, err := h.Service.CompareAssistants(c.UserContext(), clientID, filters.AssistantIDs, filters)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Comparison retrieved",
		Results: result,
	})
}

// GetTimeSeries returns the date-aligned series for one metric
func (h *AnalyticsHandler) GetTimeSeries(c *fiber.Ctx) error {
	clientID := c.Params("clientId")
	metric := c.Query("metric", analytics.SeriesSessions)

	points, err := h.Service.GetTimeSeries(c.UserContext(), clientID, metric, parseFilters(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Time series retrieved",
		Results: points,
	})
}

// GetConversationStats returns the canonical stats over every session in scope
func (h *AnalyticsHandler) GetConversationStats(c *fiber.Ctx) error {
	clientID := c.Params("clientId")

	stats, err := h.Service.GetConversationStats(c.UserContext(), clientID, parseFilters(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Conversation stats retrieved",
		Results: stats,
	})
}
