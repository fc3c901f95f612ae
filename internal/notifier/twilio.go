package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Notifier delivers a customer-facing message and returns the upstream
// delivery id. Callers treat failures as non-fatal: the reservation
// mutation has already been committed when Send runs.
type Notifier interface {
	Send(ctx context.Context, message string) (string, error)
}

var ErrBreakerOpen = fmt.Errorf("notifier: breaker open, send skipped")

// TwilioProvider sends SMS through the Twilio Messages API. The from/to pair
// is fixed at construction; credentials ride as HTTP basic auth.
type TwilioProvider struct {
	accountSID string
	authToken  string
	from       string
	to         string
	baseURL    string
	client     *http.Client
	br         *breaker
}

func NewTwilioProvider(accountSID, authToken, from, to, baseURL string, timeoutMs, failThreshold, openForMs int) *TwilioProvider {
	if timeoutMs <= 0 {
		timeoutMs = 3000
	}

	if failThreshold <= 0 {
		failThreshold = 3
	}

	if openForMs <= 0 {
		openForMs = 15000
	}

	if baseURL == "" {
		baseURL = "https://api.twilio.com"
	}

	return &TwilioProvider{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		to:         to,
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     &http.Client{Timeout: time.Duration(timeoutMs) * time.Millisecond},
		br:         newBreaker(failThreshold, time.Duration(openForMs)*time.Millisecond),
	}
}

var _ Notifier = (*TwilioProvider)(nil)

func (p *TwilioProvider) Send(ctx context.Context, message string) (string, error) {
	if !p.br.TryAcquire() {
		return "", ErrBreakerOpen
	}

	sid, err := p.post(ctx, message)
	if err != nil {
		p.br.OnFailure()
		return "", err
	}

	p.br.OnSuccess()

	return sid, nil
}

func (p *TwilioProvider) post(ctx context.Context, message string) (string, error) {
	form := url.Values{}
	form.Set("To", p.to)
	form.Set("From", p.from)
	form.Set("Body", message)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", p.baseURL, p.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(p.accountSID, p.authToken)

	res, err := p.client.Do(req)
	if err != nil {
		return "", err
	}

	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return "", fmt.Errorf("twilio: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var out struct {
		SID string `json:"sid"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("twilio: decode response: %w", err)
	}

	return out.SID, nil
}
