// Package stream_service is the client for the external real-time data socket.
package stream_service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/zsmartex/tradedesk/config"
)

var ErrNotConnected = errors.New("stream: not connected")

type Handler func(msg Message)

type action struct {
	Action string `json:"action"`
	Symbol string `json:"symbol"`
}

type Client struct {
	url     string
	handler Handler
	dialer  *websocket.Dialer
	logger  *logrus.Entry

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewClient(url string, handler Handler) *Client {
	return &Client{
		url:     url,
		handler: handler,
		dialer:  websocket.DefaultDialer,
		logger:  config.Logger.WithField("component", "stream"),
	}
}

func (c *Client) Connect(ctx context.Context) error {
	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("websocket dial failed: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.logger.WithField("url", c.url).Info("connected to data stream")

	return nil
}

func (c *Client) send(msg action) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNotConnected
	}

	return c.conn.WriteJSON(msg)
}

func (c *Client) Subscribe(symbol string) error {
	return c.send(action{Action: "subscribe", Symbol: symbol})
}

func (c *Client) Unsubscribe(symbol string) error {
	return c.send(action{Action: "unsubscribe", Symbol: symbol})
}

// Run reads frames until ctx is done or the connection fails, passing every
// decoded message to the handler. Frames that do not decode are logged and
// skipped. It returns nil when ctx ends the loop.
func (c *Client) Run(ctx context.Context) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return ErrNotConnected
	}

	stop := make(chan struct{})
	defer close(stop)

	go func() {
		select {
		case <-ctx.Done():
			c.Close()
		case <-stop:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("websocket read failed: %w", err)
		}

		msg, err := Decode(data)
		if err != nil {
			c.logger.WithError(err).Warn("dropping stream frame")
			continue
		}

		c.handler(msg)
	}
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	err := c.conn.Close()
	c.conn = nil

	return err
}
