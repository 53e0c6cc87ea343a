package mailgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"minderbook/internal/config"

	"github.com/sony/gobreaker"
)

const (
	tokenURLFormat = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
	sendURLFormat  = "https://graph.microsoft.com/v1.0/users/%s/sendMail"
	graphScope     = "https://graph.microsoft.com/.default"

	requestTimeout = 10 * time.Second
)

// Client sends mail through the Graph send-as-app API using
// client-credential tokens. All calls go through a circuit breaker so a
// degraded mail tenant cannot stall booking mutations.
type Client struct {
	tenantID     string
	clientID     string
	clientSecret string
	sender       string

	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func New(cfg *config.Mail) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "MailGraph",
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &Client{
		tenantID:     cfg.TenantID,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		sender:       cfg.Sender,
		httpClient:   &http.Client{Timeout: requestTimeout},
		cb:           cb,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type sendMailRequest struct {
	Message         message `json:"message"`
	SaveToSentItems bool    `json:"saveToSentItems"`
}

type message struct {
	Subject      string      `json:"subject"`
	Body         mailBody    `json:"body"`
	ToRecipients []recipient `json:"toRecipients"`
}

type mailBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type recipient struct {
	EmailAddress emailAddress `json:"emailAddress"`
}

type emailAddress struct {
	Address string `json:"address"`
}

// Send submits one HTML email to a single recipient.
func (c *Client) Send(ctx context.Context, to, subject, htmlBody string) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		token, err := c.token(ctx)
		if err != nil {
			return nil, err
		}

		payload, err := json.Marshal(sendMailRequest{
			Message: message{
				Subject:      subject,
				Body:         mailBody{ContentType: "HTML", Content: htmlBody},
				ToRecipients: []recipient{{EmailAddress: emailAddress{Address: to}}},
			},
			SaveToSentItems: false,
		})
		if err != nil {
			return nil, err
		}

		sendURL := fmt.Sprintf(sendURLFormat, url.PathEscape(c.sender))
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendURL, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusAccepted {
			return nil, fmt.Errorf("sendMail returned status %d", resp.StatusCode)
		}

		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}

func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	data := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"grant_type":    {"client_credentials"},
		"scope":         {graphScope},
	}

	tokenURL := fmt.Sprintf(tokenURLFormat, url.PathEscape(c.tenantID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	if result.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned status %d without access_token", resp.StatusCode)
	}

	// Refresh one minute early to avoid using a token at its expiry edge.
	c.accessToken = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn)*time.Second - time.Minute)

	return c.accessToken, nil
}
