package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"nhooyr.io/websocket"

	"github.com/sisuhud/sisu-hud/internal/model"
)

const (
	// Event subscribed to on the host
	WatchingEvent = "athlete/watching"

	writeWait   = 10 * time.Second
	dialTimeout = 30 * time.Second
	readLimit   = 1 << 20

	baseReconnectDelay = 5 * time.Second
	maxReconnectDelay  = time.Minute
)

// request is the host's RPC envelope
type request struct {
	Type string      `json:"type"`
	UID  string      `json:"uid"`
	Data requestData `json:"data"`
}

type requestData struct {
	Method string         `json:"method"`
	Arg    subscribeParam `json:"arg"`
}

type subscribeParam struct {
	Event string `json:"event"`
	SubID string `json:"subId"`
}

// envelope is any message the host sends back
type envelope struct {
	Type    string          `json:"type"`
	UID     string          `json:"uid"`
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// Client subscribes to the watched-athlete stream
type Client struct {
	url       string
	log       zerolog.Logger
	baseDelay time.Duration
	maxDelay  time.Duration
}

// NewClient creates a new websocket telemetry client
func NewClient(url string, log zerolog.Logger) *Client {
	return &Client{
		url:       url,
		log:       log.With().Str("component", "telemetry_client").Logger(),
		baseDelay: baseReconnectDelay,
		maxDelay:  maxReconnectDelay,
	}
}

// Run connects, subscribes and calls handle for every snapshot until ctx is
// cancelled. Dropped connections are retried with exponential backoff.
func (c *Client) Run(ctx context.Context, handle func(model.Snapshot)) error {
	delay := c.baseDelay
	for {
		err := c.session(ctx, handle)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			// the host closed cleanly; start over without backoff growth
			delay = c.baseDelay
		} else {
			c.log.Warn().Err(err).Dur("retry_in", delay).Msg("Telemetry connection lost")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		if err != nil {
			delay *= 2
			if delay > c.maxDelay {
				delay = c.maxDelay
			}
		}
	}
}

// session runs one connection until it fails or ctx is done
func (c *Client) session(ctx context.Context, handle func(model.Snapshot)) error {
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	c.log.Info().Str("url", c.url).Msg("Connecting to telemetry source")
	conn, _, err := websocket.Dial(dialCtx, c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to dial websocket: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "")
	conn.SetReadLimit(readLimit)

	subID := uuid.NewString()
	if err := c.subscribe(ctx, conn, subID); err != nil {
		return err
	}
	c.log.Info().Str("event", WatchingEvent).Str("sub_id", subID).Msg("Subscribed to telemetry")

	for {
		msgType, message, err := conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				c.log.Info().Int("status", int(status)).Msg("Telemetry source closed connection")
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		if msgType != websocket.MessageText {
			c.log.Debug().Int("type", int(msgType)).Msg("Ignoring non-text message")
			continue
		}

		snapshot, ok, err := decodeMessage(message, subID)
		if err != nil {
			c.log.Error().Err(err).Msg("Failed to handle telemetry message")
			continue
		}
		if ok {
			handle(snapshot)
		}
	}
}

func (c *Client) subscribe(ctx context.Context, conn *websocket.Conn, subID string) error {
	data, err := json.Marshal(request{
		Type: "request",
		UID:  uuid.NewString(),
		Data: requestData{
			Method: "subscribe",
			Arg:    subscribeParam{Event: WatchingEvent, SubID: subID},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal subscription message: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeWait)
	defer cancel()

	if err := conn.Write(writeCtx, websocket.MessageText, data); err != nil {
		return fmt.Errorf("failed to send subscription message: %w", err)
	}
	return nil
}

var errRejected = errors.New("host rejected request")

// decodeMessage extracts a snapshot from an event addressed to subID.
// Other well-formed messages are reported as not ok with no error.
func decodeMessage(message []byte, subID string) (model.Snapshot, bool, error) {
	var env envelope
	if err := json.Unmarshal(message, &env); err != nil {
		return model.Snapshot{}, false, fmt.Errorf("failed to parse envelope: %w", err)
	}

	switch env.Type {
	case "event":
		if env.UID != subID {
			return model.Snapshot{}, false, nil
		}
		var s model.Snapshot
		if err := json.Unmarshal(env.Data, &s); err != nil {
			return model.Snapshot{}, false, fmt.Errorf("failed to parse snapshot: %w", err)
		}
		return s, true, nil
	case "response":
		if !env.Success {
			return model.Snapshot{}, false, fmt.Errorf("%w: %s", errRejected, string(env.Data))
		}
		return model.Snapshot{}, false, nil
	default:
		return model.Snapshot{}, false, nil
	}
}
