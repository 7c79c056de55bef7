package sandbox

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"eventers-marketplace-client/logger"

	"github.com/pquerna/otp/totp"
)

const otpMessage = "OTP to verify your email at eventers is: %s"

// Sender delivers OTP messages.
type Sender interface {
	Send(ctx context.Context, to, message string) error
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, to, message string) error {
	logger.Infof(ctx, "otp message to %s: %s", to, message)
	return nil
}

// Outbox keeps the last message per recipient.
type Outbox struct {
	mu   sync.Mutex
	last map[string]string
}

func NewOutbox() *Outbox {
	return &Outbox{last: make(map[string]string)}
}

func (o *Outbox) Send(_ context.Context, to, message string) error {
	o.mu.Lock()
	o.last[to] = message
	o.mu.Unlock()
	return nil
}

// LastOTP extracts the code from the latest message sent to.
func (o *Outbox) LastOTP(to string) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return strings.TrimPrefix(o.last[to], fmt.Sprintf(otpMessage, ""))
}

func otpKey(email string) string {
	return "otp:" + email
}

func (s *Service) sendOTP(ctx context.Context, email, secret string) error {
	code, err := totp.GenerateCode(secret, s.now().UTC())
	if err != nil {
		return fmt.Errorf("sendOTP: unable to generate otp: %w", err)
	}
	if err := s.sender.Send(ctx, email, fmt.Sprintf(otpMessage, code)); err != nil {
		return fmt.Errorf("sendOTP: unable to send otp to %s: %w", email, err)
	}
	if err := s.otps.Set(ctx, otpKey(email), []byte(code), otpTTL); err != nil {
		return fmt.Errorf("sendOTP: unable to store otp for %s: %w", email, err)
	}
	return nil
}
