package main

import (
	"encoding/json"
	"fmt"

	"horde-server/sim"
)

// Client -> Server message types
const (
	MsgJoin   = "join"
	MsgLeave  = "leave"
	MsgInput  = "input"
	MsgCreate = "create" // create session
	MsgList   = "list"   // list sessions
	MsgCheck  = "check"  // check if session exists
)

// Server -> Client message types
const (
	MsgWelcome  = "welcome"
	MsgSessions = "sessions"
	MsgJoined   = "joined"
	MsgCreated  = "created" // session created, carries the pilot ticket
	MsgError    = "error"
	MsgChecked  = "checked"
	MsgEnded    = "ended" // session stopped, carries the run summary
)

// Binary input: [0x01, flags, cx_hi, cx_lo, cy_hi, cy_lo]
const (
	binaryInputTag = 0x01
	binaryInputLen = 6
)

// Binary input flag bits
const (
	FlagUp = 1 << iota
	FlagDown
	FlagLeft
	FlagRight
	FlagFire
	FlagCursor // cursor coordinates are valid
)

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages; json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// ClientInput is the held controls plus the cursor in world coords
type ClientInput struct {
	Up      bool    `json:"up"`
	Down    bool    `json:"down"`
	Left    bool    `json:"left"`
	Right   bool    `json:"right"`
	Fire    bool    `json:"fire"`
	HasAim  bool    `json:"aim"`
	CursorX float64 `json:"cx"`
	CursorY float64 `json:"cy"`
}

// TickInput converts the wire input to the simulation's per-tick input
func (in ClientInput) TickInput() (sim.Input, *sim.Vec2) {
	si := sim.Input{Up: in.Up, Down: in.Down, Left: in.Left, Right: in.Right, Fire: in.Fire}
	if !in.HasAim {
		return si, nil
	}
	c := sim.V(in.CursorX, in.CursorY)
	return si, &c
}

// DecodeBinaryInput parses the compact 6-byte input frame
func DecodeBinaryInput(msg []byte) (ClientInput, error) {
	if len(msg) != binaryInputLen || msg[0] != binaryInputTag {
		return ClientInput{}, fmt.Errorf("bad binary input frame (%d bytes)", len(msg))
	}
	flags := msg[1]
	return ClientInput{
		Up:      flags&FlagUp != 0,
		Down:    flags&FlagDown != 0,
		Left:    flags&FlagLeft != 0,
		Right:   flags&FlagRight != 0,
		Fire:    flags&FlagFire != 0,
		HasAim:  flags&FlagCursor != 0,
		CursorX: float64(int16(uint16(msg[2])<<8 | uint16(msg[3]))),
		CursorY: float64(int16(uint16(msg[4])<<8 | uint16(msg[5]))),
	}, nil
}

// JoinMsg is sent when a client wants to join a session. A valid ticket
// makes it the pilot.
type JoinMsg struct {
	SessionID string `json:"sid"`
	Ticket    string `json:"ticket,omitempty"`
}

// CreateMsg is sent when a client wants to create a session
type CreateMsg struct {
	SessionName string `json:"sname"`
	Seed        uint64 `json:"seed,omitempty"`
}

// CreatedMsg answers a create
type CreatedMsg struct {
	SID    string `json:"sid"`
	Ticket string `json:"ticket"`
	QR     string `json:"qr"` // spectate QR image path
}

// WelcomeMsg is sent after a successful join
type WelcomeMsg struct {
	SID         string            `json:"sid"`
	Role        string            `json:"role"`
	WorldWidth  float64           `json:"ww"`
	WorldHeight float64           `json:"wh"`
	Decorations []sim.EntityState `json:"deco"`
}

// SessionInfo is used in the session list
type SessionInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	HasPilot   bool   `json:"pilot"`
	Spectators int    `json:"spectators"`
	Enemies    int    `json:"enemies"`
	Uptime     string `json:"uptime"`
}

// RunSummary describes a finished or running session
type RunSummary struct {
	SessionID       string `json:"sid"`
	Name            string `json:"name"`
	Duration        string `json:"duration"`
	Ticks           uint64 `json:"ticks"`
	ShotsFired      int    `json:"shots"`
	EnemiesSpawned  int    `json:"spawned"`
	PeakEnemies     int    `json:"peak_enemies"`
	PeakProjectiles int    `json:"peak_projectiles"`
	Ended           string `json:"ended,omitempty"`
}

// ErrorMsg sends error to client
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// CheckMsg is sent by client to check if a session exists
type CheckMsg struct {
	SID string `json:"sid"`
}

// CheckedMsg is the response to a session check
type CheckedMsg struct {
	SID      string `json:"sid"`
	Exists   bool   `json:"exists"`
	Name     string `json:"name,omitempty"`
	HasPilot bool   `json:"pilot,omitempty"`
}
