package controller

import (
	"errors"
	"log"

	"github.com/benbeisheim/chessvibe-backend/internal/middleware"
	"github.com/benbeisheim/chessvibe-backend/internal/model"
	"github.com/benbeisheim/chessvibe-backend/internal/service"
	"github.com/benbeisheim/chessvibe-backend/internal/ws"
	"github.com/gofiber/fiber/v2"
)

type CreateGameRequest struct {
	FEN string `json:"fen" validate:"omitempty,max=100"`
}

type MoveRequest = ws.MovePayload

// MoveResponse is returned for every proposal; a rejection is still a 200.
type MoveResponse struct {
	Verdict  model.Verdict  `json:"verdict"`
	Feedback model.Feedback `json:"feedback"`
	State    model.Snapshot `json:"state"`
}

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func errorStatus(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "game not found"})
	case errors.Is(err, service.ErrInvalidPosition):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	log.Printf("request %s %s failed: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	req := middleware.Body[CreateGameRequest](c)

	gameID, state, err := gc.gameService.CreateGame(req.FEN)
	if err != nil {
		return errorStatus(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"gameId": gameID,
		"state":  state,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	state, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorStatus(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) GetFEN(c *fiber.Ctx) error {
	fen, err := gc.gameService.GetFEN(c.Params("gameId"))
	if err != nil {
		return errorStatus(c, err)
	}
	return c.JSON(fiber.Map{"fen": fen})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	req := middleware.Body[MoveRequest](c)

	verdict, state, err := gc.gameService.HandleMove(c.Params("gameId"), req.PieceID, *req.File, *req.Rank)
	if err != nil {
		return errorStatus(c, err)
	}
	return c.JSON(MoveResponse{Verdict: verdict, Feedback: verdict.Feedback(), State: state})
}

func (gc *GameController) ResetGame(c *fiber.Ctx) error {
	state, err := gc.gameService.ResetGame(c.Params("gameId"))
	if err != nil {
		return errorStatus(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) LegalDestinations(c *fiber.Ctx) error {
	pieceID, err := c.ParamsInt("pieceId")
	if err != nil || pieceID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid piece id"})
	}
	squares, err := gc.gameService.LegalDestinations(c.Params("gameId"), pieceID)
	if err != nil {
		return errorStatus(c, err)
	}
	if squares == nil {
		squares = []model.Square{}
	}
	return c.JSON(fiber.Map{"destinations": squares})
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteGame(c.Params("gameId")); err != nil {
		return errorStatus(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (gc *GameController) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
