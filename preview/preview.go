// Package preview streams rendered frames to browser clients over
// websockets so an orb can be watched without hardware attached.
package preview

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/coreelectronics/glowbit-orb/geometry"
	"github.com/coreelectronics/glowbit-orb/palette"
)

const writeDeadline = 200 * time.Millisecond

// Server fans rendered frames out to any number of websocket viewers.
// Wire Broadcast to the sim driver's frame hook.
type Server struct {
	mu      sync.RWMutex
	geo     *geometry.Table
	driver  string
	fps     int
	log     zerolog.Logger
	start   time.Time
	frameID uint64
	clients map[*websocket.Conn]bool
}

func NewServer(g *geometry.Table, driverName string, fps int, log zerolog.Logger) *Server {
	return &Server{
		geo:     g,
		driver:  driverName,
		fps:     fps,
		log:     log,
		start:   time.Now(),
		clients: map[*websocket.Conn]bool{},
	}
}

// Routes registers the preview endpoints on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/frames", s.HandleFramesWS)
	mux.HandleFunc("/healthz", s.HandleHealth)
}

// HandleFramesWS upgrades the connection, sends the topology message and
// keeps the client subscribed until it disconnects.
func (s *Server) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	n := len(s.clients)
	s.mu.Unlock()
	s.log.Info().Str("remote", r.RemoteAddr).Int("clients", n).Msg("preview client connected")
	s.sendTopology(conn)

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
			s.log.Info().Str("remote", r.RemoteAddr).Msg("preview client gone")
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp := map[string]any{
		"frame_id":    s.frameID,
		"uptime_s":    time.Since(s.start).Seconds(),
		"pixel_count": s.geo.Total(),
		"fps":         s.fps,
		"driver":      s.driver,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// sendTopology tells a fresh client how to lay the strip out: ring counts
// outer to inner plus the status prefix.
func (s *Server) sendTopology(conn *websocket.Conn) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rings := make([]int, s.geo.NumRings())
	for i := range rings {
		rings[i], _ = s.geo.RingCount(i)
	}
	top := map[string]any{
		"rings":       rings,
		"status_leds": s.geo.StatusLEDs(),
		"driver":      s.driver,
		"fps":         s.fps,
	}
	b, _ := json.Marshal(top)
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

// Broadcast sends one frame to every connected client. Slow clients get a
// short write deadline and are dropped by their own read loop on failure.
func (s *Server) Broadcast(frame []palette.RGB) {
	s.mu.Lock()
	s.frameID++
	id := s.frameID
	clients := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()
	if len(clients) == 0 {
		return
	}

	rgb := make([]byte, len(frame)*3)
	for i, c := range frame {
		rgb[i*3+0] = c.R
		rgb[i*3+1] = c.G
		rgb[i*3+2] = c.B
	}
	type wire struct {
		T       int64  `json:"t"`
		FrameID uint64 `json:"frame_id"`
		RGB     []byte `json:"rgb"`
	}
	b, _ := json.Marshal(wire{T: time.Now().UnixNano(), FrameID: id, RGB: rgb})
	for _, c := range clients {
		c.SetWriteDeadline(time.Now().Add(writeDeadline))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			s.log.Debug().Err(err).Msg("write frame")
		}
	}
}
