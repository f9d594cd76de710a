// Package auth signs REST requests and WebSocket subscription messages
// with the exchange's timestamped HMAC-SHA256 scheme.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/go-cryptoconnect/coinbasepro/log"
)

// Auth holds the decoded credentials used to sign every authenticated
// request or WebSocket message.
type Auth struct {
	APIKey     string
	Passphrase string
	secretKey  []byte
}

// New decodes secretKeyBase64 and constructs an Auth. It is fatal to
// misconfigure the secret: an adapter that cannot sign requests cannot
// do anything useful, so construction aborts the process immediately
// rather than surfacing the error deep inside a request path.
func New(apiKey, secretKeyBase64, passphrase string) *Auth {
	if secretKeyBase64 == "" {
		log.Logger().Fatal().Msg("auth: secret key is missing")
	}

	secretKey, err := base64.StdEncoding.DecodeString(secretKeyBase64)
	if err != nil {
		log.Logger().Fatal().Err(err).Msg("auth: secret key is not valid base64")
	}

	return &Auth{APIKey: apiKey, Passphrase: passphrase, secretKey: secretKey}
}

// Timestamp returns the current Unix timestamp as a string, the form
// expected both in request headers and in signed messages.
func (a *Auth) Timestamp() string {
	return strconv.FormatInt(time.Now().Unix(), 10)
}

// Sign computes the Base64-encoded HMAC-SHA256 signature over message.
func (a *Auth) Sign(message string) string {
	mac := hmac.New(sha256.New, a.secretKey)
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// RequestHeaders computes the CB-ACCESS-* headers for an authenticated
// REST request.
func (a *Auth) RequestHeaders(method, requestPath, body string) map[string]string {
	timestamp := a.Timestamp()
	message := fmt.Sprintf("%s%s%s%s", timestamp, method, requestPath, body)

	return map[string]string{
		"Content-Type":         "application/json",
		"CB-ACCESS-KEY":        a.APIKey,
		"CB-ACCESS-TIMESTAMP":  timestamp,
		"CB-ACCESS-SIGN":       a.Sign(message),
		"CB-ACCESS-PASSPHRASE": a.Passphrase,
	}
}

// SubscriptionSignature computes the signature and timestamp needed to
// authenticate a WebSocket "subscribe" message for the user channel.
func (a *Auth) SubscriptionSignature() (signature, timestamp string) {
	timestamp = a.Timestamp()
	message := fmt.Sprintf("%sGET/users/self/verify", timestamp)
	return a.Sign(message), timestamp
}
