package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const secretSettingKey = "ticket_secret"

var ErrInvalidTicket = errors.New("invalid ticket")

// TicketClaims are carried by a pilot ticket
type TicketClaims struct {
	SessionID string `json:"sid"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Tickets issues and checks the signed tokens that let a client steer a
// session's player. Anyone without one joins as a spectator.
type Tickets struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTickets creates a ticket issuer. An empty secret falls back to the one
// stored in db, generating and persisting it on first use.
func NewTickets(cfg TicketConfig, db *DB) *Tickets {
	secret := []byte(cfg.Secret)
	if len(secret) == 0 {
		secret = loadOrCreateSecret(db)
	}
	return &Tickets{secret: secret, ttl: cfg.TTL, now: time.Now}
}

// loadOrCreateSecret loads the signing secret from the database, or generates
// and persists a new one if none exists.
func loadOrCreateSecret(db *DB) []byte {
	if db != nil {
		if h := db.GetSetting(secretSettingKey); h != "" {
			if b, err := hex.DecodeString(h); err == nil && len(b) == 32 {
				return b
			}
		}
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic("failed to generate ticket secret: " + err.Error())
	}
	if db != nil {
		if err := db.SetSetting(secretSettingKey, hex.EncodeToString(secret)); err != nil {
			log.Warn().Err(err).Msg("could not persist ticket secret")
		}
	}
	return secret
}

// Issue signs a pilot ticket for the session
func (t *Tickets) Issue(sessionID string) (string, error) {
	now := t.now()
	claims := TicketClaims{
		SessionID: sessionID,
		Role:      RolePilot,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign ticket: %w", err)
	}
	return s, nil
}

// Verify checks that raw is a live pilot ticket for sessionID
func (t *Tickets) Verify(raw, sessionID string) error {
	var claims TicketClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}
	if claims.SessionID != sessionID || claims.Role != RolePilot {
		return fmt.Errorf("%w: wrong session or role", ErrInvalidTicket)
	}
	return nil
}
