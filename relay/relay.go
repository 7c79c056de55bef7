// Package relay delivers sandbox OTP messages through a Twilio style
// messaging endpoint: a form encoded POST authenticated with the account
// sid and token.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"eventers-marketplace-client/logger"
)

type Sender struct {
	AccountSID string
	AuthToken  string
	URL        string
	From       string
	HTTPClient *http.Client
}

func NewSender(accountSID, authToken, baseURL, from string) *Sender {
	return &Sender{
		AccountSID: accountSID,
		AuthToken:  authToken,
		URL:        fmt.Sprintf("%s/%s/Messages.json", strings.TrimSuffix(baseURL, "/"), accountSID),
		From:       from,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *Sender) Send(ctx context.Context, to, message string) error {
	v := url.Values{}
	v.Set("To", to)
	v.Set("From", s.From)
	v.Set("Body", message)

	sid, status, err := s.post(ctx, v)
	if err != nil {
		return fmt.Errorf("send: error relaying message: status code: %d: %w", status, err)
	}
	logger.Debugf(ctx, "relay: message %s queued for %s", sid, to)
	return nil
}

func (s *Sender) post(ctx context.Context, values url.Values) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, strings.NewReader(values.Encode()))
	if err != nil {
		return "", 0, err
	}
	req.SetBasicAuth(s.AccountSID, s.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := s.HTTPClient.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", res.StatusCode, fmt.Errorf("post: unexpected status %s", res.Status)
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", res.StatusCode, fmt.Errorf("post: error reading body: %w", err)
	}
	var data struct {
		SID string `json:"sid"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return "", res.StatusCode, fmt.Errorf("post: error unmarshalling response body: %w", err)
	}
	return data.SID, res.StatusCode, nil
}
