// service/game_manager.go
package service

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/benbeisheim/chessvibe-backend/internal/model"
	"github.com/benbeisheim/chessvibe-backend/internal/ws"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrInvalidPosition = errors.New("invalid position")
	ErrGameDeleted     = errors.New("game deleted")
)

// session pairs a game with the lock that serialises every call into it.
type session struct {
	mu          sync.Mutex
	game        *model.Game
	connections *GameConnections
}

type GameManager struct {
	games map[string]*session
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*session),
	}
}

func (gm *GameManager) generateID() string {
	for {
		id := uuid.New().String()
		if _, exists := gm.games[id]; !exists {
			return id
		}
	}
}

func (gm *GameManager) add(game *model.Game) (string, model.Snapshot) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	id := gm.generateID()
	gm.games[id] = &session{game: game, connections: NewGameConnections()}
	return id, game.Snapshot()
}

// CreateGame starts a game from the standard position.
func (gm *GameManager) CreateGame() (string, model.Snapshot) {
	return gm.add(model.NewGame())
}

// CreateGameFromFEN starts a game from an arbitrary position.
func (gm *GameManager) CreateGameFromFEN(fen string) (string, model.Snapshot, error) {
	game, err := model.NewGameFromFEN(fen)
	if err != nil {
		return "", model.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
	}
	id, snap := gm.add(game)
	return id, snap, nil
}

func (gm *GameManager) lookup(gameID string) (*session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	s, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%s: %w", gameID, ErrGameNotFound)
	}
	return s, nil
}

func (gm *GameManager) GetSnapshot(gameID string) (model.Snapshot, error) {
	s, err := gm.lookup(gameID)
	if err != nil {
		return model.Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Snapshot(), nil
}

func (gm *GameManager) GetFEN(gameID string) (string, error) {
	s, err := gm.lookup(gameID)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.FEN(), nil
}

// ProposeMove runs a proposal against the game and pushes the new state to
// subscribers when it is accepted. A rejection is a verdict, not an error.
func (gm *GameManager) ProposeMove(gameID string, pieceID model.PieceID, to model.Square) (model.Verdict, model.Snapshot, error) {
	s, err := gm.lookup(gameID)
	if err != nil {
		return model.Verdict{}, model.Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	verdict := s.game.Propose(pieceID, to)
	snap := s.game.Snapshot()
	if verdict.Accepted() {
		log.Printf("game %s: %s accepted, %s to move", gameID, verdict.Diff.Notation, snap.SideToMove)
		s.push(snap)
	}
	return verdict, snap, nil
}

func (gm *GameManager) ResetGame(gameID string) (model.Snapshot, error) {
	s, err := gm.lookup(gameID)
	if err != nil {
		return model.Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.game.Reset()
	log.Printf("game %s: reset", gameID)
	s.push(snap)
	return snap, nil
}

func (gm *GameManager) LegalDestinations(gameID string, pieceID model.PieceID) ([]model.Square, error) {
	s, err := gm.lookup(gameID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.LegalDestinations(pieceID), nil
}

// DeleteGame removes the game and disconnects its subscribers after telling
// them why.
func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	s, exists := gm.games[gameID]
	if !exists {
		gm.mu.Unlock()
		return fmt.Errorf("%s: %w", gameID, ErrGameNotFound)
	}
	delete(gm.games, gameID)
	gm.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: ErrGameDeleted.Error()})
	if err != nil {
		return err
	}
	s.connections.closeAll(msg)
	log.Printf("game %s: deleted", gameID)
	return nil
}

func (gm *GameManager) GameCount() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

// RegisterConnection subscribes conn to a game's state pushes and sends it the
// current state straight away.
func (gm *GameManager) RegisterConnection(gameID string, conn Conn) (*Subscriber, error) {
	s, err := gm.lookup(gameID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := s.connections.add(conn)
	log.Printf("game %s: registered subscriber %s", gameID, sub.ID)

	msg, err := ws.NewMessage(ws.MessageTypeGameState, s.game.Snapshot())
	if err != nil {
		s.connections.remove(sub.ID)
		return nil, err
	}
	if err := sub.Send(msg); err != nil {
		s.connections.remove(sub.ID)
		return nil, fmt.Errorf("send initial state: %w", err)
	}
	return sub, nil
}

func (gm *GameManager) UnregisterConnection(gameID string, subscriberID string) {
	s, err := gm.lookup(gameID)
	if err != nil {
		return
	}
	s.connections.remove(subscriberID)
	log.Printf("game %s: unregistered subscriber %s", gameID, subscriberID)
}

// push must be called with s.mu held so subscribers see states in commit order.
func (s *session) push(snap model.Snapshot) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, snap)
	if err != nil {
		log.Printf("marshal game state: %v", err)
		return
	}
	s.connections.broadcast(msg)
}
