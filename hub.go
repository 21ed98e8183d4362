package main

import (
	"sync"

	"github.com/rs/zerolog/log"
)

const (
	maxConnsPerIP = 5
	maxTotalConns = 1000
)

// HubOptions carries everything a Hub needs from main
type HubOptions struct {
	Sessions     SessionOptions
	Tickets      *Tickets
	PublicURL    string
	MessageRate  float64
	MessageBurst int
}

// Hub manages all connected clients and routes them to sessions
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	sessions   *SessionManager
	tickets    *Tickets
	opts       HubOptions
	// Connection limiting (mutex-protected, accessed from HTTP handlers)
	connMu     sync.Mutex
	ipConns    map[string]int
	totalConns int
}

// NewHub creates a new Hub
func NewHub(opts HubOptions) *Hub {
	if opts.MessageRate <= 0 {
		opts.MessageRate = 50
	}
	if opts.MessageBurst <= 0 {
		opts.MessageBurst = 2 * int(opts.MessageRate)
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		sessions:   NewSessionManager(opts.Sessions),
		tickets:    opts.Tickets,
		opts:       opts,
		ipConns:    make(map[string]int),
	}
}

func (h *Hub) metrics() *Metrics { return h.opts.Sessions.Metrics }
func (h *Hub) analytics() *Analytics { return h.opts.Sessions.Analytics }
func (h *Hub) db() *DB { return h.opts.Sessions.DB }

func (h *Hub) CanAccept(ip string) bool {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	if h.totalConns >= maxTotalConns {
		return false
	}
	if h.ipConns[ip] >= maxConnsPerIP {
		return false
	}
	return true
}

func (h *Hub) TrackConnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]++
	h.totalConns++
	if m := h.metrics(); m != nil {
		m.clients.Inc()
	}
}

func (h *Hub) TrackDisconnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]--
	if h.ipConns[ip] <= 0 {
		delete(h.ipConns, ip)
	}
	h.totalConns--
	if m := h.metrics(); m != nil {
		m.clients.Dec()
	}
}

// Run processes register/unregister events until done is closed
func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			if sid := client.SessionID(); sid != "" {
				h.sessions.Leave(sid, client.id)
			}
			log.Debug().Str("client", client.id).Str("ip", client.remoteAddr).Msg("client gone")

		case <-done:
			return
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// TotalConns returns the tracked connection count
func (h *Hub) TotalConns() int {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	return h.totalConns
}

// SpectateURL is the link encoded in a session's QR code
func (h *Hub) SpectateURL(sid string) string {
	return h.opts.PublicURL + "/" + sid
}
