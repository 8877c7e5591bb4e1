package websocket

import (
	"context"
	"errors"
	"time"

	"ats-assistant-be/internal/dto"
	"ats-assistant-be/internal/pkg/logger"
	"ats-assistant-be/internal/pkg/serverutils"
	"ats-assistant-be/internal/service"
	"ats-assistant-be/pkg/assistant"
	"ats-assistant-be/pkg/jsonx"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ChatStream serves the chat over a WebSocket: each inbound message is
// answered with growing "typing" frames, then the final "message" frame.
type ChatStream struct {
	hub      *Hub
	service  service.IChatbotService
	interval time.Duration
	logger   logger.ILogger
}

func NewChatStream(hub *Hub, svc service.IChatbotService, interval time.Duration, log logger.ILogger) *ChatStream {
	return &ChatStream{hub: hub, service: svc, interval: interval, logger: log}
}

// Handler must run behind serverutils.JwtMiddleware.
func (s *ChatStream) Handler() fiber.Handler {
	upgrade := websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals(serverutils.LocalUserID).(string)
		token, _ := conn.Locals(serverutils.LocalToken).(string)
		s.ServeWs(conn, userID, token)
	})

	return func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		return upgrade(ctx)
	}
}

func (s *ChatStream) ServeWs(conn *websocket.Conn, userID, token string) {
	client := newClient(s.hub, conn, userID, token)
	s.hub.register <- client

	go client.writePump()
	client.readPump(s.handle)
}

func (s *ChatStream) handle(c *Client, data []byte) {
	ctx := context.Background()

	var in dto.WsInbound
	if err := jsonx.Unmarshal(data, &in); err != nil {
		s.sendFrame(ctx, c, dto.WsFrame{Type: dto.WsFrameError, Text: "Invalid message format"})
		return
	}

	res, err := s.service.SendMessage(ctx, c.UserID, c.Token, &dto.SendMessageRequest{
		SessionId: in.SessionId,
		Text:      in.Text,
	})
	if err != nil {
		s.sendFrame(ctx, c, dto.WsFrame{Type: dto.WsFrameError, Text: frameError(err)})
		return
	}

	err = assistant.Reveal(ctx, res.Reply.Text, s.interval, func(prefix string) error {
		return s.sendFrame(ctx, c, dto.WsFrame{Type: dto.WsFrameTyping, Text: prefix})
	})
	if err != nil {
		s.logger.Debug("ChatStream", "Typing stream stopped", map[string]interface{}{"user_id": c.UserID, "error": err.Error()})
	}

	frame, err := jsonx.Marshal(dto.WsFrame{Type: dto.WsFrameMessage, Message: res})
	if err != nil {
		return
	}
	s.hub.SendToUser(ctx, c.UserID, frame)
}

func (s *ChatStream) sendFrame(ctx context.Context, c *Client, frame dto.WsFrame) error {
	data, err := jsonx.Marshal(frame)
	if err != nil {
		return err
	}
	return c.send(ctx, data)
}

func frameError(err error) string {
	switch {
	case errors.Is(err, service.ErrDispatchInProgress):
		return "Please wait for the previous answer."
	case errors.Is(err, assistant.ErrSessionNotFound):
		return "This chat session no longer exists."
	case errors.Is(err, service.ErrEmptyMessage):
		return "Please type a message."
	default:
		return "Something went wrong. Please try again."
	}
}
