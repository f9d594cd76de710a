// Package ws wraps the exchange's single WebSocket feed: a stream
// connector that owns the connection and a stream handler that
// decodes frames into domain events.
package ws

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/go-cryptoconnect/coinbasepro/log"
)

const (
	handshakeTimeout = 45 * time.Second
	keepaliveEvery   = 30 * time.Second
)

// FrameHandler receives every decoded text frame off the stream, in
// arrival order, on the connector's own goroutine.
type FrameHandler interface {
	OnMessage(frame []byte)
}

// Connector owns a single WebSocket connection to the exchange feed.
type Connector struct {
	url  string
	conn *websocket.Conn
}

// Connect dials url and starts a keepalive goroutine that sends a ping
// every 30 seconds, the first one 30 seconds after connecting.
func Connect(url string) (*Connector, error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: handshakeTimeout,
	}

	conn, _, err := dialer.Dial(url, http.Header{"User-Agent": []string{"go-cryptoconnect/coinbasepro"}})
	if err != nil {
		return nil, err
	}

	c := &Connector{url: url, conn: conn}
	go c.keepalive()

	return c, nil
}

func (c *Connector) keepalive() {
	ticker := time.NewTicker(keepaliveEvery)
	defer ticker.Stop()

	for range ticker.C {
		if err := c.conn.WriteMessage(websocket.PingMessage, []byte("keepalive")); err != nil {
			log.Logger().Error().Err(err).Msg("ws: keepalive ping failed")
			return
		}
	}
}

// StreamForever reads text frames until a read error occurs, handing
// each to handler synchronously on the calling goroutine. It returns
// the terminal read error.
func (c *Connector) StreamForever(handler FrameHandler) error {
	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			return err
		}
		handler.OnMessage(frame)
	}
}

type controlMessage struct {
	Type       string   `json:"type"`
	ProductIDs []string `json:"product_ids"`
	Channels   []string `json:"channels"`
	Timestamp  string   `json:"timestamp,omitempty"`
	Key        string   `json:"key,omitempty"`
	Signature  string   `json:"signature,omitempty"`
	Passphrase string   `json:"passphrase,omitempty"`
}

// authSigner computes the user-channel subscription signature. It is
// satisfied by *auth.Auth; declared narrow here so ws does not import
// auth just for this one call.
type authSigner interface {
	SubscriptionSignature() (signature, timestamp string)
}

// SubscribeProducts sends a subscribe control frame for productIDs on
// the level2, ticker and user channels. It is a no-op for an empty
// productIDs slice. auth may be nil; the frame then carries no
// timestamp, key or signature.
func (c *Connector) SubscribeProducts(productIDs []string, key string, a authSigner) error {
	if len(productIDs) == 0 {
		return nil
	}
	return c.send("subscribe", productIDs, key, a)
}

// UnsubscribeProducts sends an unsubscribe control frame. It is a
// no-op for an empty productIDs slice.
func (c *Connector) UnsubscribeProducts(productIDs []string, key string, a authSigner) error {
	if len(productIDs) == 0 {
		return nil
	}
	return c.send("unsubscribe", productIDs, key, a)
}

func (c *Connector) send(messageType string, productIDs []string, key string, a authSigner) error {
	msg := controlMessage{
		Type:       messageType,
		ProductIDs: productIDs,
		Channels:   []string{"level2", "ticker", "user"},
	}

	if a != nil {
		signature, timestamp := a.SubscriptionSignature()
		msg.Timestamp = timestamp
		msg.Key = key
		msg.Signature = signature
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	log.Logger().Debug().Str("message", string(payload)).Msg("ws: sending control frame")

	return c.conn.WriteMessage(websocket.TextMessage, payload)
}
