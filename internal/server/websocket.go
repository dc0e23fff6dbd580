package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"tippy-tappy/internal/tipping"
)

// feedHub fans leaderboard updates out to connected viewers. Writes are
// serialised because a websocket connection allows one writer at a time.
type feedHub struct {
	mu      sync.Mutex
	writeMu sync.Mutex
	conns   map[*websocket.Conn]struct{}
}

func newFeedHub() *feedHub {
	return &feedHub{
		conns: make(map[*websocket.Conn]struct{}),
	}
}

func (h *feedHub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *feedHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
	_ = conn.Close()
}

func (h *feedHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *feedHub) Send(conn *websocket.Conn, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (h *feedHub) Broadcast(payload any) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	for _, conn := range conns {
		h.writeMu.Lock()
		err := conn.WriteMessage(websocket.TextMessage, data)
		h.writeMu.Unlock()
		if err != nil {
			h.Remove(conn)
		}
	}
}

var feedUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (s *Server) handleLeaderboardWebsocket(c *gin.Context) {
	var standings []tipping.Standing
	if !s.read(c, func(session *tipping.Session) error {
		var err error
		standings, err = session.Leaderboard()
		return err
	}) {
		return
	}
	conn, err := feedUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	s.log.Debug().Str("remote", c.Request.RemoteAddr).Msg("leaderboard feed connected")
	s.feed.Add(conn)
	if err := s.feed.Send(conn, leaderboardPayload(standings)); err != nil {
		s.feed.Remove(conn)
		return
	}
	go s.readFeed(conn)
}

func (s *Server) readFeed(conn *websocket.Conn) {
	defer s.feed.Remove(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.log.Debug().Err(err).Msg("leaderboard feed disconnected")
			return
		}
	}
}
