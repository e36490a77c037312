package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/umputun/newsdrop/pkg/dispatch"
	"github.com/umputun/newsdrop/pkg/domain"
)

// GatewayParams configures an HTTP messaging gateway
type GatewayParams struct {
	Channel domain.Channel // sms or whatsapp
	URL     string
	Token   string
	Sender  string
	RPS     float64
	Timeout time.Duration
}

// Gateway sends SMS or WhatsApp messages through a JSON http gateway.
// The request is {"channel","from","to","subject","text"} with bearer token auth,
// a response {"id": "..."} gives the message reference.
type Gateway struct {
	params  GatewayParams
	client  *http.Client
	limiter *rate.Limiter
}

// NewGateway makes a gateway adapter
func NewGateway(p GatewayParams) *Gateway {
	if p.RPS <= 0 {
		p.RPS = 10
	}
	if p.Timeout <= 0 {
		p.Timeout = 5 * time.Second
	}
	return &Gateway{
		params:  p,
		client:  &http.Client{Timeout: p.Timeout},
		limiter: rate.NewLimiter(rate.Limit(p.RPS), 1),
	}
}

type gatewayRequest struct {
	Channel string `json:"channel"`
	From    string `json:"from,omitempty"`
	To      string `json:"to"`
	Subject string `json:"subject,omitempty"`
	Text    string `json:"text"`
}

type gatewayResponse struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// Channel returns the configured channel
func (g *Gateway) Channel() domain.Channel { return g.params.Channel }

// Send posts the message to the gateway
func (g *Gateway) Send(ctx context.Context, msg dispatch.Message) (string, error) {
	if g.params.URL == "" {
		return "", fmt.Errorf("%s gateway url not set", g.params.Channel)
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%s rate limit: %w", g.params.Channel, err)
	}

	body, err := json.Marshal(gatewayRequest{Channel: string(g.params.Channel), From: g.params.Sender,
		To: msg.Destination, Subject: msg.Subject, Text: msg.Body})
	if err != nil {
		return "", fmt.Errorf("marshal gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.params.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.params.Token != "" {
		req.Header.Set("Authorization", "Bearer "+g.params.Token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	var gwResp gatewayResponse
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	_ = json.Unmarshal(respBody, &gwResp) // body is optional

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if gwResp.Error != "" {
			return "", fmt.Errorf("%s gateway error: %s, %s", g.params.Channel, resp.Status, gwResp.Error)
		}
		return "", fmt.Errorf("%s gateway error: %s", g.params.Channel, resp.Status)
	}
	return gwResp.ID, nil
}
