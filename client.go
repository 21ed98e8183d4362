package main

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufSize    = 256
	maxNameLen     = 30
)

type outMsg struct {
	binary bool
	data   []byte
}

// Client represents a WebSocket connection
type Client struct {
	id         string
	hub        *Hub
	conn       *websocket.Conn
	send       chan outMsg
	remoteAddr string
	limiter    *rate.Limiter

	mu        sync.Mutex
	sessionID string
}

// NewClient creates a new Client
func NewClient(hub *Hub, conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		id:         GenerateID(6),
		hub:        hub,
		conn:       conn,
		send:       make(chan outMsg, sendBufSize),
		remoteAddr: remoteAddr,
		limiter:    rate.NewLimiter(rate.Limit(hub.opts.MessageRate), hub.opts.MessageBurst),
	}
}

// SessionID returns the session the client is attached to, if any
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

func (c *Client) setSession(sid string) {
	c.mu.Lock()
	c.sessionID = sid
	c.mu.Unlock()
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		msgType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("client", c.id).Msg("ws read")
			}
			break
		}

		if !c.limiter.Allow() {
			log.Warn().Str("ip", c.remoteAddr).Str("client", c.id).Msg("rate limit exceeded, disconnecting")
			if m := c.hub.metrics(); m != nil {
				m.rateLimited.Inc()
			}
			c.hub.analytics().Track(EvtRateLimited, c.SessionID(), "")
			break
		}

		if msgType == websocket.BinaryMessage {
			c.handleBinaryInput(message)
		} else {
			c.handleMessage(message)
		}
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			kind := websocket.TextMessage
			if msg.binary {
				kind = websocket.BinaryMessage
			}
			if err := c.conn.WriteMessage(kind, msg.data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendJSON sends a JSON message to the client
func (c *Client) SendJSON(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msg("marshal")
		return
	}
	c.enqueue(outMsg{data: data})
}

// SendBinary sends pre-marshaled bytes as a binary WebSocket message
func (c *Client) SendBinary(data []byte) bool {
	return c.enqueue(outMsg{binary: true, data: data})
}

// enqueue never blocks: a slow client loses the message. Sends after the
// hub closed the channel are dropped.
func (c *Client) enqueue(m outMsg) (queued bool) {
	defer func() {
		if recover() != nil {
			queued = false
		}
	}()
	select {
	case c.send <- m:
		return true
	default:
		return false
	}
}

func (c *Client) sendError(msg string) {
	c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: msg}})
}

// handleMessage routes incoming messages (single-pass decode via InEnvelope)
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Debug().Err(err).Str("client", c.id).Msg("unmarshal")
		return
	}

	switch env.T {
	case MsgList:
		c.handleList()
	case MsgCreate:
		c.handleCreate(env.D)
	case MsgJoin:
		c.handleJoin(env.D)
	case MsgInput:
		c.handleInput(env.D)
	case MsgLeave:
		c.handleLeave()
	case MsgCheck:
		c.handleCheck(env.D)
	}
}

func (c *Client) handleList() {
	c.SendJSON(Envelope{T: MsgSessions, Data: c.hub.sessions.ListSessions()})
}

func (c *Client) handleCreate(data json.RawMessage) {
	var msg CreateMsg
	if len(data) > 0 {
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
	}
	sname := msg.SessionName
	if sname == "" {
		sname = "Horde"
	}
	if len(sname) > maxNameLen {
		sname = sname[:maxNameLen]
	}

	sess, err := c.hub.sessions.CreateSession(sname, msg.Seed)
	if err != nil {
		log.Warn().Err(err).Msg("create session")
		c.sendError("too many active sessions")
		return
	}
	ticket, err := c.hub.tickets.Issue(sess.ID)
	if err != nil {
		log.Error().Err(err).Str("session", sess.ID).Msg("issue ticket")
		c.sendError("internal error")
		return
	}
	c.SendJSON(Envelope{T: MsgCreated, Data: CreatedMsg{SID: sess.ID, Ticket: ticket, QR: "/qr/" + sess.ID}})
}

func (c *Client) handleJoin(data json.RawMessage) {
	var msg JoinMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}

	sess, err := c.hub.sessions.GetSession(msg.SessionID)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	if cur := c.SessionID(); cur != "" && cur != sess.ID {
		c.hub.sessions.Leave(cur, c.id)
	}

	role := RoleSpectator
	if msg.Ticket != "" {
		if err := c.hub.tickets.Verify(msg.Ticket, sess.ID); err != nil {
			log.Debug().Err(err).Str("client", c.id).Msg("ticket rejected, joining as spectator")
		} else {
			role = RolePilot
		}
	}

	// re-joining never demotes, a valid ticket may still promote
	if cur := sess.Game.RoleOf(c.id); cur == RolePilot || (cur != "" && role == cur) {
		c.sendJoined(sess, cur)
		return
	}

	if role == RolePilot {
		sess.Game.AttachPilot(c.id, c)
		c.hub.analytics().Track(EvtPilotJoin, sess.ID, "")
	} else {
		if err := sess.Game.AddSpectator(c.id, c); err != nil {
			c.sendError(err.Error())
			return
		}
		c.hub.analytics().Track(EvtSpectatorJoin, sess.ID, "")
	}
	c.sendJoined(sess, role)
}

func (c *Client) sendJoined(sess *Session, role string) {
	c.hub.sessions.MarkActive(sess.ID)
	c.setSession(sess.ID)

	c.SendJSON(Envelope{T: MsgJoined, Data: map[string]string{"sid": sess.ID, "role": role}})
	c.SendJSON(Envelope{T: MsgWelcome, Data: sess.Game.Welcome(role)})
}

// handleBinaryInput decodes a compact binary input message
func (c *Client) handleBinaryInput(msg []byte) {
	input, err := DecodeBinaryInput(msg)
	if err != nil {
		return
	}
	c.applyInput(input)
}

func (c *Client) handleInput(data json.RawMessage) {
	var input ClientInput
	if err := json.Unmarshal(data, &input); err != nil {
		return
	}
	c.applyInput(input)
}

func (c *Client) applyInput(input ClientInput) {
	sid := c.SessionID()
	if sid == "" {
		return
	}
	sess, err := c.hub.sessions.GetSession(sid)
	if err != nil {
		return
	}
	sess.Game.HandleInput(c.id, input)
}

func (c *Client) handleCheck(data json.RawMessage) {
	var msg CheckMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	sess, err := c.hub.sessions.GetSession(msg.SID)
	if errors.Is(err, ErrSessionNotFound) {
		c.SendJSON(Envelope{T: MsgChecked, Data: CheckedMsg{SID: msg.SID, Exists: false}})
		return
	}
	c.SendJSON(Envelope{T: MsgChecked, Data: CheckedMsg{
		SID:      msg.SID,
		Exists:   true,
		Name:     sess.Name,
		HasPilot: sess.Game.HasPilot(),
	}})
}

func (c *Client) handleLeave() {
	if sid := c.SessionID(); sid != "" {
		c.hub.sessions.Leave(sid, c.id)
		c.setSession("")
	}
}
