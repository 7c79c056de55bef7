package verification

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"eventers-marketplace-client/codec"
	"eventers-marketplace-client/model"
)

// QueryParam carries the encoded payload in a verification URL.
const QueryParam = "data"

var ErrEmptyPayload = errors.New("verification: empty payload")

// Payload is what a ticket QR code carries. Timestamp is unix milliseconds.
type Payload struct {
	TicketID         string `json:"ticketId"`
	EventID          string `json:"eventId"`
	Code             string `json:"code"`
	UserID           string `json:"userId"`
	VerificationCode string `json:"verificationCode"`
	Timestamp        int64  `json:"timestamp"`
}

// NewPayload builds the payload for a held ticket with a fresh verification code.
func NewPayload(t model.Ticket, now time.Time) (Payload, error) {
	code, err := GenerateCode(4)
	if err != nil {
		return Payload{}, fmt.Errorf("newPayload: error generating code: %w", err)
	}
	return Payload{
		TicketID:         t.ID,
		EventID:          t.EventID,
		Code:             t.Code,
		UserID:           t.UserID,
		VerificationCode: code,
		Timestamp:        now.UnixMilli(),
	}, nil
}

func (p Payload) Request() model.VerifyTicketRequest {
	return model.VerifyTicketRequest{
		TicketID:         p.TicketID,
		EventID:          p.EventID,
		Code:             p.Code,
		UserID:           p.UserID,
		VerificationCode: p.VerificationCode,
	}
}

func (p Payload) IssuedAt() time.Time {
	return time.UnixMilli(p.Timestamp)
}

// GenerateCode returns n random bytes as upper-case hex.
func GenerateCode(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

// Encoder turns payloads into URL-safe strings. With a codec the payload is
// sealed; without one it is plain base64url JSON.
type Encoder struct {
	codec   *codec.Codec
	baseURL string
}

func NewEncoder(secret, baseURL string) (*Encoder, error) {
	e := &Encoder{baseURL: baseURL}
	if secret != "" {
		c, err := codec.New(secret)
		if err != nil {
			return nil, fmt.Errorf("newEncoder: %w", err)
		}
		e.codec = c
	}
	return e, nil
}

func (e *Encoder) Encode(p Payload) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode: error marshalling payload: %w", err)
	}
	if e.codec == nil {
		return base64.RawURLEncoding.EncodeToString(raw), nil
	}
	sealed, err := e.codec.Seal(raw)
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	return sealed, nil
}

func (e *Encoder) Decode(s string) (Payload, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Payload{}, ErrEmptyPayload
	}
	var raw []byte
	var err error
	if e.codec == nil {
		raw, err = base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	} else {
		raw, err = e.codec.Open(s)
	}
	if err != nil {
		return Payload{}, fmt.Errorf("decode: %w", err)
	}

	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, fmt.Errorf("decode: error unmarshalling payload: %w", err)
	}
	if p.TicketID == "" || p.EventID == "" || p.Code == "" {
		return Payload{}, fmt.Errorf("decode: payload is missing ticket fields")
	}
	return p, nil
}

// URL is the link encoded into a ticket QR code.
func (e *Encoder) URL(p Payload) (string, error) {
	data, err := e.Encode(p)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(e.baseURL)
	if err != nil {
		return "", fmt.Errorf("url: invalid base url %q: %w", e.baseURL, err)
	}
	q := u.Query()
	q.Set(QueryParam, data)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Parse accepts either a full verification URL or the bare encoded payload.
func (e *Encoder) Parse(s string) (Payload, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "://") || strings.Contains(s, "?") {
		u, err := url.Parse(s)
		if err != nil {
			return Payload{}, fmt.Errorf("parse: invalid url: %w", err)
		}
		return e.Decode(u.Query().Get(QueryParam))
	}
	return e.Decode(s)
}
