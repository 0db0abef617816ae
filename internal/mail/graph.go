package mail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/thehouseofcoaching/awl-scanner/internal/config"
)

// Attachment is a file to include with a message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is one outgoing mail.
type Message struct {
	To          string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// Sender dispatches one message to one recipient.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// GraphClient sends mail through the Microsoft Graph API using the OAuth2
// client-credentials flow. Token acquisition and refresh are handled by the
// oauth2 transport.
type GraphClient struct {
	httpc       *http.Client
	endpoint    string
	senderEmail string
	senderName  string
}

// NewGraphClient builds a Graph mail client from config. It fails fast when
// any of the Microsoft credentials are missing so the caller can run without
// mail support instead of failing on the first send.
func NewGraphClient(ctx context.Context, cfg *config.Config) (*GraphClient, error) {
	if cfg.MicrosoftClientID == "" || cfg.MicrosoftClientSecret == "" || cfg.MicrosoftTenantID == "" {
		return nil, errors.New("missing Microsoft Graph credentials")
	}
	if cfg.SenderEmail == "" {
		return nil, errors.New("SENDER_EMAIL environment variable not set")
	}

	creds := &clientcredentials.Config{
		ClientID:     cfg.MicrosoftClientID,
		ClientSecret: cfg.MicrosoftClientSecret,
		TokenURL:     "https://login.microsoftonline.com/" + cfg.MicrosoftTenantID + "/oauth2/v2.0/token",
		Scopes:       []string{"https://graph.microsoft.com/.default"},
	}

	httpc := creds.Client(ctx)
	httpc.Timeout = 30 * time.Second

	return &GraphClient{
		httpc:       httpc,
		endpoint:    "https://graph.microsoft.com/v1.0",
		senderEmail: cfg.SenderEmail,
		senderName:  cfg.SenderName,
	}, nil
}

type graphEmailAddress struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

type graphRecipient struct {
	EmailAddress graphEmailAddress `json:"emailAddress"`
}

type graphAttachment struct {
	ODataType    string `json:"@odata.type"`
	Name         string `json:"name"`
	ContentType  string `json:"contentType"`
	ContentBytes string `json:"contentBytes"`
}

type graphBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type graphMessage struct {
	Subject      string            `json:"subject"`
	Body         graphBody         `json:"body"`
	ToRecipients []graphRecipient  `json:"toRecipients"`
	From         graphRecipient    `json:"from"`
	Attachments  []graphAttachment `json:"attachments"`
}

type sendMailRequest struct {
	Message         graphMessage `json:"message"`
	SaveToSentItems bool         `json:"saveToSentItems"`
}

// Send posts the message to users/{sender}/sendMail. Graph answers 202 on
// success.
func (c *GraphClient) Send(ctx context.Context, msg Message) error {
	attachments := make([]graphAttachment, 0, len(msg.Attachments))
	for _, att := range msg.Attachments {
		contentType := att.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		attachments = append(attachments, graphAttachment{
			ODataType:    "#microsoft.graph.fileAttachment",
			Name:         att.Filename,
			ContentType:  contentType,
			ContentBytes: base64.StdEncoding.EncodeToString(att.Content),
		})
	}

	payload := sendMailRequest{
		Message: graphMessage{
			Subject: msg.Subject,
			Body: graphBody{
				ContentType: "HTML",
				Content:     msg.HTMLBody,
			},
			ToRecipients: []graphRecipient{
				{EmailAddress: graphEmailAddress{Address: msg.To}},
			},
			From: graphRecipient{
				EmailAddress: graphEmailAddress{Address: c.senderEmail, Name: c.senderName},
			},
			Attachments: attachments,
		},
		SaveToSentItems: true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal sendMail request: %w", err)
	}

	endpoint := c.endpoint + "/users/" + url.PathEscape(c.senderEmail) + "/sendMail"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create sendMail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call Graph API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		slog.Info("Email sent", "to", msg.To, "attachments", len(msg.Attachments))
		return nil
	}

	return c.graphError(resp)
}

func (c *GraphClient) graphError(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return errors.New("authentication failed, check Azure AD app permissions and credentials")
	case http.StatusForbidden:
		return errors.New("forbidden, ensure Mail.Send permission is granted and admin consent is given")
	case http.StatusNotFound:
		return fmt.Errorf("sender email %s not found, verify SENDER_EMAIL", c.senderEmail)
	}

	raw, _ := io.ReadAll(resp.Body)
	var graphErr struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &graphErr); err == nil && graphErr.Error.Message != "" {
		return fmt.Errorf("graph API returned status %d: %s", resp.StatusCode, graphErr.Error.Message)
	}
	return fmt.Errorf("graph API returned status %d: %s", resp.StatusCode, string(raw))
}
