package service

import (
	"log"
	"sync"
	"time"

	"github.com/benbeisheim/chessvibe-backend/internal/ws"
	"github.com/google/uuid"
)

// writeWait bounds a single write so a stalled client cannot hold its game's lock.
var writeWait = 5 * time.Second

// Conn is the part of a websocket connection the service writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Subscriber serialises writes to one connection; the websocket library does
// not allow concurrent writers.
type Subscriber struct {
	ID   string
	mu   sync.Mutex
	conn Conn
}

func (s *Subscriber) Send(msg ws.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteJSON(msg)
}

func (s *Subscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.Close(); err != nil {
		log.Printf("close subscriber %s: %v", s.ID, err)
	}
}

// The connections for a specific game
type GameConnections struct {
	subscribers map[string]*Subscriber
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		subscribers: make(map[string]*Subscriber),
	}
}

func (gc *GameConnections) add(conn Conn) *Subscriber {
	sub := &Subscriber{ID: uuid.New().String(), conn: conn}
	gc.mu.Lock()
	gc.subscribers[sub.ID] = sub
	gc.mu.Unlock()
	return sub
}

func (gc *GameConnections) remove(id string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	delete(gc.subscribers, id)
}

func (gc *GameConnections) Len() int {
	gc.mu.RLock()
	defer gc.mu.RUnlock()
	return len(gc.subscribers)
}

// broadcast sends msg to every subscriber and drops the ones whose write fails.
func (gc *GameConnections) broadcast(msg ws.Message) {
	gc.mu.RLock()
	active := make([]*Subscriber, 0, len(gc.subscribers))
	for _, sub := range gc.subscribers {
		active = append(active, sub)
	}
	gc.mu.RUnlock()

	for _, sub := range active {
		if err := sub.Send(msg); err != nil {
			log.Printf("dropping subscriber %s: %v", sub.ID, err)
			gc.remove(sub.ID)
			sub.close()
		}
	}
}

// closeAll sends msg to every subscriber, closes them and empties the set.
func (gc *GameConnections) closeAll(msg ws.Message) {
	gc.mu.Lock()
	subs := gc.subscribers
	gc.subscribers = make(map[string]*Subscriber)
	gc.mu.Unlock()

	for _, sub := range subs {
		if err := sub.Send(msg); err != nil {
			log.Printf("notify subscriber %s: %v", sub.ID, err)
		}
		sub.close()
	}
}
