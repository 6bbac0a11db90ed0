package whatsapp

import (
	"errors"
	"fmt"
	"log"

	"lms/models"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Provider payload limits
const (
	MaxHeaderLength      = 50
	MaxButtonLabelLength = 20
)

var (
	ErrHeaderTooLong      = errors.New("interactive message header exceeds 50 characters")
	ErrButtonLabelTooLong = errors.New("button label exceeds 20 characters")
	ErrMissingApiKey      = errors.New("whatsapp api key is required")
)

// DeliveryError is returned when the provider responds with a non-2xx status.
// The provider body is carried verbatim for the operator.
type DeliveryError struct {
	StatusCode int
	Body       string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("whatsapp delivery failed: status %d: %s", e.StatusCode, e.Body)
}

// Client sends messages through a WATI-style WhatsApp API. Credentials are
// supplied at construction, never read from ambient configuration. If db is
// non-nil every send attempt is recorded as a NotificationLog row.
type Client struct {
	http   *resty.Client
	apiKey string
	db     *gorm.DB
}

// New builds a Client for the given provider base URL and API key.
func New(baseURL, apiKey string, db *gorm.DB) *Client {
	return &Client{
		http:   resty.New().SetBaseURL(baseURL),
		apiKey: apiKey,
		db:     db,
	}
}

// SendSessionMessage posts a plain session text message to the given
// canonical phone number.
func (c *Client) SendSessionMessage(phone, text string) error {
	if c.apiKey == "" {
		return ErrMissingApiKey
	}

	resp, err := c.http.R().
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetBody(map[string]string{"messageText": text}).
		Post("/sendSessionMessage/" + phone)

	return c.finish(phone, models.NotificationSession, text, resp, err)
}

// SendInteractiveButtonsMessage posts a header/body/buttons message. Header
// and button label limits are validated before the call so an oversized
// payload never reaches the provider.
func (c *Client) SendInteractiveButtonsMessage(phone, header, body string, buttons []string) error {
	if c.apiKey == "" {
		return ErrMissingApiKey
	}
	if len(header) > MaxHeaderLength {
		return ErrHeaderTooLong
	}

	btns := make([]map[string]string, 0, len(buttons))
	for _, label := range buttons {
		if len(label) > MaxButtonLabelLength {
			return ErrButtonLabelTooLong
		}
		btns = append(btns, map[string]string{"text": label})
	}

	payload := map[string]interface{}{
		"header": map[string]string{
			"type": "Text",
			"text": header,
		},
		"body":    body,
		"buttons": btns,
	}

	resp, err := c.http.R().
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetQueryParam("whatsappNumber", phone).
		SetBody(payload).
		Post("/sendInteractiveButtonsMessage")

	return c.finish(phone, models.NotificationInteractive, body, resp, err)
}

// finish converts the provider response into the error contract and records
// the attempt.
func (c *Client) finish(phone, kind, body string, resp *resty.Response, err error) error {
	if err != nil {
		c.record(phone, kind, body, models.NotificationFailed, err.Error())
		return fmt.Errorf("whatsapp request failed: %w", err)
	}
	if resp.IsError() {
		c.record(phone, kind, body, models.NotificationFailed, resp.String())
		return &DeliveryError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	c.record(phone, kind, body, models.NotificationSent, "")
	return nil
}

func (c *Client) record(phone, kind, body, status, providerResp string) {
	if c.db == nil {
		return
	}

	if len(providerResp) > 512 {
		providerResp = providerResp[:512]
	}
	entry := models.NotificationLog{
		UUID:             uuid.NewString(),
		PhoneNumber:      phone,
		Kind:             kind,
		Status:           status,
		Body:             body,
		ProviderResponse: providerResp,
	}
	if err := c.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to record notification log for %s: %v", phone, err)
	}
}
