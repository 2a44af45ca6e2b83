package service

import (
	"github.com/benbeisheim/chessvibe-backend/internal/model"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateGame starts a standard game, or one from fen when it is non-empty.
func (gs *GameService) CreateGame(fen string) (string, model.Snapshot, error) {
	if fen == "" {
		id, snap := gs.gameManager.CreateGame()
		return id, snap, nil
	}
	return gs.gameManager.CreateGameFromFEN(fen)
}

func (gs *GameService) GetGameState(gameID string) (model.Snapshot, error) {
	return gs.gameManager.GetSnapshot(gameID)
}

func (gs *GameService) GetFEN(gameID string) (string, error) {
	return gs.gameManager.GetFEN(gameID)
}

func (gs *GameService) HandleMove(gameID string, pieceID int, file, rank int) (model.Verdict, model.Snapshot, error) {
	return gs.gameManager.ProposeMove(gameID, model.PieceID(pieceID), model.Square{File: file, Rank: rank})
}

func (gs *GameService) ResetGame(gameID string) (model.Snapshot, error) {
	return gs.gameManager.ResetGame(gameID)
}

func (gs *GameService) LegalDestinations(gameID string, pieceID int) ([]model.Square, error) {
	return gs.gameManager.LegalDestinations(gameID, model.PieceID(pieceID))
}

func (gs *GameService) DeleteGame(gameID string) error {
	return gs.gameManager.DeleteGame(gameID)
}

func (gs *GameService) RegisterConnection(gameID string, conn Conn) (*Subscriber, error) {
	return gs.gameManager.RegisterConnection(gameID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, subscriberID string) {
	gs.gameManager.UnregisterConnection(gameID, subscriberID)
}
