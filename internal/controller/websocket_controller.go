package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/benbeisheim/chessvibe-backend/internal/middleware"
	"github.com/benbeisheim/chessvibe-backend/internal/service"
	"github.com/benbeisheim/chessvibe-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals("wsGameID").(string)
	if gameID == "" {
		gameID = c.Params("gameId")
	}

	sub, err := wsc.gameService.RegisterConnection(gameID, c)
	if err != nil {
		log.Printf("Failed to register connection: %v", err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, sub.ID)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("read error: %v", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(sub, fmt.Sprintf("parse error: %v", err))
			continue
		}
		if err := wsc.handleMessage(gameID, sub, msg); err != nil {
			log.Printf("handle error: %v", err)
			wsc.sendError(sub, err.Error())
		}
	}
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(gameID string, sub *service.Subscriber, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return fmt.Errorf("invalid move payload: %w", err)
		}
		if err := middleware.Validate(move); err != nil {
			return fmt.Errorf("invalid move payload: %w", err)
		}
		verdict, state, err := wsc.gameService.HandleMove(gameID, move.PieceID, *move.File, *move.Rank)
		if err != nil {
			return err
		}
		reply, err := ws.NewMessage(ws.MessageTypeVerdict, MoveResponse{
			Verdict:  verdict,
			Feedback: verdict.Feedback(),
			State:    state,
		})
		if err != nil {
			return err
		}
		return sub.Send(reply)

	case ws.MessageTypeReset:
		// The new state reaches every subscriber, this one included.
		_, err := wsc.gameService.ResetGame(gameID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(sub *service.Subscriber, errorMsg string) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		return
	}
	if err := sub.Send(msg); err != nil {
		log.Printf("send error message: %v", err)
	}
}
