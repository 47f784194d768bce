// Package facebook sends server-side Purchase events to the Facebook
// Conversions API.
package facebook

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lapak-storefront/internal/domain"
	"lapak-storefront/pkg/logger"

	"github.com/goccy/go-json"
)

const defaultGraphURL = "https://graph.facebook.com"

// HashSHA256 returns a hex-encoded SHA256 hash of the normalized input string.
func HashSHA256(input string) string {
	if input == "" {
		return ""
	}
	normalized := strings.ToLower(strings.TrimSpace(input))
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

// CAPIClient handles server-side event tracking to Facebook Conversions API.
// A nil client is valid and sends nothing.
type CAPIClient struct {
	pixelID     string
	accessToken string
	apiVersion  string
	graphURL    string
	httpClient  *http.Client
	backoff     time.Duration
}

// NewCAPIClient returns nil when the pixel is not configured.
func NewCAPIClient(pixelID, accessToken, apiVersion string) *CAPIClient {
	if pixelID == "" || accessToken == "" {
		logger.Info().Msg("Facebook Pixel ID or Access Token not configured. CAPI disabled.")
		return nil
	}
	return &CAPIClient{
		pixelID:     pixelID,
		accessToken: accessToken,
		apiVersion:  apiVersion,
		graphURL:    defaultGraphURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		backoff:     time.Second,
	}
}

// UserData represents the user information for event matching
type UserData struct {
	Phone      string `json:"ph,omitempty"`          // SHA256 hashed phone
	FirstName  string `json:"fn,omitempty"`          // SHA256 hashed first name
	City       string `json:"ct,omitempty"`          // SHA256 hashed city
	State      string `json:"st,omitempty"`          // SHA256 hashed province
	Zip        string `json:"zp,omitempty"`          // SHA256 hashed postal code
	Country    string `json:"country,omitempty"`     // SHA256 hashed ISO country code
	ExternalID string `json:"external_id,omitempty"` // SHA256 hashed user id
}

// CustomData represents purchase-specific data
type CustomData struct {
	Currency   string        `json:"currency,omitempty"`
	Value      float64       `json:"value,omitempty"`
	ContentIDs []string      `json:"content_ids,omitempty"`
	Contents   []ContentItem `json:"contents,omitempty"`
	NumItems   int           `json:"num_items,omitempty"`
	OrderID    string        `json:"order_id,omitempty"`
}

// ContentItem represents individual product in the order
type ContentItem struct {
	ID       string  `json:"id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"item_price,omitempty"`
}

// Event represents a single CAPI event
type Event struct {
	EventName    string     `json:"event_name"`
	EventTime    int64      `json:"event_time"`
	ActionSource string     `json:"action_source"`
	UserData     UserData   `json:"user_data"`
	CustomData   CustomData `json:"custom_data,omitempty"`
	EventID      string     `json:"event_id,omitempty"` // For deduplication with browser events
}

// EventPayload is the request body for CAPI
type EventPayload struct {
	Data []Event `json:"data"`
}

// SendEvent sends a single event, retrying transport errors, 429 and 5xx up
// to three times.
func (c *CAPIClient) SendEvent(ctx context.Context, event Event) error {
	if c == nil {
		return nil
	}

	jsonData, err := json.Marshal(EventPayload{Data: []Event{event}})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/%s/events?access_token=%s",
		c.graphURL, c.apiVersion, c.pixelID, url.QueryEscape(c.accessToken))

	var lastErr error
	for i := 0; i < 3; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(i) * c.backoff):
			}
		}

		retry, err := c.post(ctx, endpoint, jsonData)
		if err == nil {
			logger.WithContext(ctx).Debug().Str("event", event.EventName).Msg("CAPI event sent")
			return nil
		}
		lastErr = err
		if !retry {
			break
		}
	}
	return lastErr
}

func (c *CAPIClient) post(ctx context.Context, endpoint string, body []byte) (retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, fmt.Errorf("CAPI request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return false, nil
	}
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	err = fmt.Errorf("CAPI error (status %d): %s", resp.StatusCode, string(msg))
	// 4xx other than 429 is a payload problem; retrying will not help.
	if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
		return false, err
	}
	return true, err
}

// PurchaseEvent builds the Purchase event for an order. PII is hashed.
func PurchaseEvent(order *domain.Order, buyer domain.Address, userID string) Event {
	items := make([]ContentItem, 0, len(order.Items))
	ids := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, ContentItem{ID: item.ProductID, Quantity: item.Quantity, Price: float64(item.Price)})
		ids = append(ids, item.ProductID)
	}
	return Event{
		EventName:    "Purchase",
		EventTime:    time.Now().Unix(),
		ActionSource: "website",
		UserData: UserData{
			Phone:      HashSHA256(normalizePhone(buyer.Phone)),
			FirstName:  HashSHA256(firstName(buyer.RecipientName)),
			City:       HashSHA256(buyer.City),
			State:      HashSHA256(buyer.Province),
			Zip:        HashSHA256(buyer.PostalCode),
			Country:    HashSHA256("id"),
			ExternalID: HashSHA256(userID),
		},
		CustomData: CustomData{
			Currency:   "IDR",
			Value:      float64(order.Total),
			OrderID:    order.ID,
			Contents:   items,
			NumItems:   len(items),
			ContentIDs: ids,
		},
		EventID: order.ID, // Use order ID for deduplication
	}
}

// TrackPurchase sends the Purchase event in the background so the checkout
// response is not held up.
func (c *CAPIClient) TrackPurchase(ctx context.Context, order *domain.Order, buyer domain.Address) {
	if c == nil || order == nil {
		return
	}
	userID := ""
	if s := domain.SessionFromContext(ctx); s != nil {
		userID = s.UserID
	}
	event := PurchaseEvent(order, buyer, userID)
	bg := context.WithoutCancel(ctx)
	go func() {
		if err := c.SendEvent(bg, event); err != nil {
			logger.WithContext(bg).Warn().Err(err).Str("order_id", order.ID).Msg("Failed to send Purchase event")
		}
	}()
}

// normalizePhone turns a local 08xx number into the 628xx form CAPI expects.
func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "0") {
		return "62" + digits[1:]
	}
	return digits
}

func firstName(full string) string {
	if fields := strings.Fields(full); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
