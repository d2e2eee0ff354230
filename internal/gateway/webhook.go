// internal/gateway/webhook.go
package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Event is a gateway-initiated notification about a transaction. The webhook
// path is as authoritative as the synchronous capture path; both funnel into
// the same idempotent settlement logic.
type Event struct {
	Type          string `json:"type"`
	TransactionID string `json:"transaction_id"`
}

// EventPaymentCompleted is the event type signalling that a transaction has
// been paid on the provider side.
const EventPaymentCompleted = "payment.completed"

// SignatureHeader carries the webhook signature on inbound requests.
const SignatureHeader = "X-Gateway-Signature"

// WebhookVerifier checks that a webhook payload really came from the
// provider. The concrete scheme is provider-specific; the interface lets a
// provider-specific verifier be swapped in.
type WebhookVerifier interface {
	Verify(body []byte, signature string) bool
}

// HMACVerifier verifies hex-encoded HMAC-SHA256 signatures over the raw
// request body with a shared secret.
type HMACVerifier struct {
	secret []byte
}

// NewHMACVerifier creates a verifier with the shared webhook secret.
func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

// Verify reports whether signature matches the body. An empty secret never
// verifies: an unconfigured webhook must reject everything rather than
// accept everything.
func (v *HMACVerifier) Verify(body []byte, signature string) bool {
	if len(v.secret) == 0 || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
