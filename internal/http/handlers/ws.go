package handlers

import (
	"net/http"
	"sync"

	"golang.org/x/net/websocket"

	"github.com/postclinics/clinic-dashboard/pkg/logging"
)

// VersionSource exposes the store's current snapshot version.
type VersionSource interface {
	Version() uint64
}

// RefreshMessage is pushed to connected pages when server-side state
// changes. Kind is "appointments" (refetch events and KPIs) or "toasts".
type RefreshMessage struct {
	Kind    string `json:"kind"`
	Version uint64 `json:"version,omitempty"`
}

type wsPing struct {
	Type string `json:"type"`
}

// RefreshHub pushes refresh notifications over WebSocket so the calendar
// refetches after a mutation instead of polling.
type RefreshHub struct {
	store  VersionSource
	logger *logging.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewRefreshHub(store VersionSource, logger *logging.Logger) *RefreshHub {
	if logger == nil {
		logger = logging.Default()
	}
	return &RefreshHub{
		store:  store,
		logger: logger,
		conns:  make(map[*websocket.Conn]struct{}),
	}
}

// NotifyAppointments broadcasts the new store version. Wired to the
// store's change listener.
func (h *RefreshHub) NotifyAppointments() {
	h.broadcast(RefreshMessage{Kind: "appointments", Version: h.store.Version()})
}

// NotifyToasts broadcasts that the toast set changed. Wired to the toast
// center's change listener.
func (h *RefreshHub) NotifyToasts() {
	h.broadcast(RefreshMessage{Kind: "toasts"})
}

func (h *RefreshHub) broadcast(msg RefreshMessage) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := websocket.JSON.Send(c, msg); err != nil {
			h.logger.Debug("dropping dead refresh connection", "error", err)
			h.remove(c)
		}
	}
}

// HandleWebSocket upgrades to WebSocket and holds the connection open,
// answering pings, until the page goes away.
func (h *RefreshHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn)
	}).ServeHTTP(w, r)
}

func (h *RefreshHub) serveWS(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
	defer h.remove(conn)

	// Tell a freshly connected page where the store stands.
	_ = websocket.JSON.Send(conn, RefreshMessage{Kind: "appointments", Version: h.store.Version()})

	for {
		var msg wsPing
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("refresh connection closed", "error", err)
			return
		}
		if msg.Type == "ping" {
			_ = websocket.JSON.Send(conn, wsPing{Type: "pong"})
		}
	}
}

func (h *RefreshHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	_ = conn.Close()
}
