package stream_service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zsmartex/tradedesk/types"
)

// SupportedVersion is the newest message schema this client understands.
const SupportedVersion = 1

var (
	ErrUnknownType        = errors.New("stream: unknown message type")
	ErrUnsupportedVersion = errors.New("stream: unsupported message version")
)

type MessageType = string

var (
	TypeTicker       MessageType = "ticker"
	TypeTrade        MessageType = "trade"
	TypeSubscribed   MessageType = "subscribed"
	TypeUnsubscribed MessageType = "unsubscribed"
	TypeError        MessageType = "error"
)

// Message is one of TickerMessage, TradeMessage, AckMessage or ErrorMessage.
type Message interface {
	Type() MessageType
	isMessage()
}

type TickerMessage struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Change24h decimal.Decimal `json:"change_24h"`
	Volume24h decimal.Decimal `json:"volume_24h"`
	At        time.Time       `json:"-"`
}

type TradeMessage struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
	Amount decimal.Decimal `json:"amount"`
	Side   types.OrderSide `json:"side"`
	At     time.Time       `json:"-"`
}

// AckMessage confirms a subscribe or unsubscribe action.
type AckMessage struct {
	Action MessageType `json:"-"`
	Symbol string      `json:"symbol"`
}

type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (TickerMessage) Type() MessageType { return TypeTicker }
func (TradeMessage) Type() MessageType  { return TypeTrade }
func (m AckMessage) Type() MessageType  { return m.Action }
func (ErrorMessage) Type() MessageType  { return TypeError }
func (TickerMessage) isMessage()        {}
func (TradeMessage) isMessage()         {}
func (AckMessage) isMessage()           {}
func (ErrorMessage) isMessage()         {}

type envelope struct {
	Type    MessageType `json:"type"`
	Version int         `json:"v"`
	TS      int64       `json:"ts"`
}

func timestamp(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}

	return time.UnixMilli(ms).UTC()
}

// Decode parses one frame from the data socket. Frames are flat JSON objects
// with a "type" discriminator, an optional schema version "v" and an optional
// millisecond timestamp "ts".
func Decode(data []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("stream: decode envelope: %w", err)
	}

	if env.Version > SupportedVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}

	switch env.Type {
	case TypeTicker:
		var m TickerMessage
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("stream: decode ticker: %w", err)
		}
		m.At = timestamp(env.TS)
		return m, nil
	case TypeTrade:
		var m TradeMessage
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("stream: decode trade: %w", err)
		}
		m.At = timestamp(env.TS)
		return m, nil
	case TypeSubscribed, TypeUnsubscribed:
		var m AckMessage
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("stream: decode ack: %w", err)
		}
		m.Action = env.Type
		return m, nil
	case TypeError:
		var m ErrorMessage
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("stream: decode error: %w", err)
		}
		return m, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
}
