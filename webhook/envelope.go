package webhook

import (
	"time"

	"github.com/marcelsud/issue-webhooks/webhook/signature"
)

/* Envelope is the wire unit of one delivery attempt
 * Body is shared across attempts of the same event; Timestamp and
 * Signature are minted fresh for every attempt
 */
type Envelope struct {
	Timestamp int64
	Body      []byte
	Signature string
}

// Seal signs body for an attempt made at the given time
func Seal(secret string, at time.Time, body []byte) Envelope {
	ts := at.Unix()
	return Envelope{
		Timestamp: ts,
		Body:      body,
		Signature: signature.Sign([]byte(secret), ts, body),
	}
}

// Header returns the X-Signature header value
func (e Envelope) Header() string {
	return signature.Header{Timestamp: e.Timestamp, HMAC: e.Signature}.String()
}
