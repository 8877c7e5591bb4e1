package controller

import (
	"errors"

	"ats-assistant-be/internal/dto"
	"ats-assistant-be/internal/pkg/serverutils"
	"ats-assistant-be/internal/service"
	"ats-assistant-be/pkg/assistant"

	"github.com/gofiber/fiber/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	GetAllSessions(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	ClearSessions(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	GetSearchHistory(ctx *fiber.Ctx) error
	ClearSearchHistory(ctx *fiber.Ctx) error
}

type chatbotController struct {
	service service.IChatbotService
	stream  fiber.Handler
}

// NewChatbotController registers stream under /ws when it is not nil.
func NewChatbotController(service service.IChatbotService, stream fiber.Handler) IChatbotController {
	return &chatbotController{service: service, stream: stream}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chatbot/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("sessions", c.CreateSession)
	h.Get("sessions", c.GetAllSessions)
	h.Get("sessions/:id", c.GetSession)
	h.Delete("sessions/:id", c.DeleteSession)
	h.Delete("sessions", c.ClearSessions)
	h.Post("message", c.SendMessage)
	h.Get("search-history", c.GetSearchHistory)
	h.Delete("search-history", c.ClearSearchHistory)
	if c.stream != nil {
		h.Get("ws", c.stream)
	}
}

func (c *chatbotController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.service.CreateSession(ctx.UserContext(), serverutils.UserID(ctx))
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *chatbotController) GetAllSessions(ctx *fiber.Ctx) error {
	res, err := c.service.GetAllSessions(ctx.UserContext(), serverutils.UserID(ctx))
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all sessions", res))
}

func (c *chatbotController) GetSession(ctx *fiber.Ctx) error {
	res, err := c.service.GetSession(ctx.UserContext(), serverutils.UserID(ctx), ctx.Params("id"))
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get session", res))
}

func (c *chatbotController) DeleteSession(ctx *fiber.Ctx) error {
	if err := c.service.DeleteSession(ctx.UserContext(), serverutils.UserID(ctx), ctx.Params("id")); err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

func (c *chatbotController) ClearSessions(ctx *fiber.Ctx) error {
	if err := c.service.ClearSessions(ctx.UserContext(), serverutils.UserID(ctx)); err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear sessions", nil))
}

func (c *chatbotController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.UserContext(), serverutils.UserID(ctx), serverutils.Token(ctx), &req)
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *chatbotController) GetSearchHistory(ctx *fiber.Ctx) error {
	res, err := c.service.GetSearchHistory(ctx.UserContext(), serverutils.UserID(ctx))
	if err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get search history", res))
}

func (c *chatbotController) ClearSearchHistory(ctx *fiber.Ctx) error {
	if err := c.service.ClearSearchHistory(ctx.UserContext(), serverutils.UserID(ctx)); err != nil {
		return mapServiceError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear search history", nil))
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, assistant.ErrSessionNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDispatchInProgress):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrEmptyMessage):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}
