package telemetry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"

	"github.com/sisuhud/sisu-hud/internal/model"
)

func TestDecodeMessage(t *testing.T) {
	t.Run("event for subscription", func(t *testing.T) {
		msg := `{"type":"event","uid":"sub-1","success":true,"data":{"athleteId":5,"state":{"power":250},"wBal":1000}}`
		s, ok, err := decodeMessage([]byte(msg), "sub-1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, int64(5), s.AthleteID)
		assert.Equal(t, model.Of(250), s.State.Power)
	})

	t.Run("event for other subscription", func(t *testing.T) {
		msg := `{"type":"event","uid":"sub-2","data":{}}`
		_, ok, err := decodeMessage([]byte(msg), "sub-1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("successful response", func(t *testing.T) {
		_, ok, err := decodeMessage([]byte(`{"type":"response","uid":"x","success":true}`), "sub-1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("rejected response", func(t *testing.T) {
		_, _, err := decodeMessage([]byte(`{"type":"response","uid":"x","success":false,"data":"nope"}`), "sub-1")
		assert.ErrorIs(t, err, errRejected)
	})

	t.Run("malformed", func(t *testing.T) {
		_, _, err := decodeMessage([]byte(`not json`), "sub-1")
		assert.Error(t, err)
	})

	t.Run("malformed snapshot", func(t *testing.T) {
		_, _, err := decodeMessage([]byte(`{"type":"event","uid":"sub-1","data":{"athleteId":"abc"}}`), "sub-1")
		assert.Error(t, err)
	})
}

func TestClient_SubscribesAndDelivers(t *testing.T) {
	subscribed := make(chan request, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "")

		ctx := r.Context()
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var req request
		if err := json.Unmarshal(data, &req); err != nil {
			return
		}
		subscribed <- req

		ack, _ := json.Marshal(envelope{Type: "response", UID: req.UID, Success: true})
		conn.Write(ctx, websocket.MessageText, ack)

		conn.Write(ctx, websocket.MessageText, []byte(`garbage`))

		event := `{"type":"event","uid":"` + req.Data.Arg.SubID + `","success":true,"data":{"athleteId":11,"athlete":{"weight":70},"state":{"power":210}}}`
		conn.Write(ctx, websocket.MessageText, []byte(event))

		// hold the connection until the client goes away
		conn.Read(ctx)
	}))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	client := NewClient(url, zerolog.Nop())
	client.baseDelay = 10 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got := make(chan model.Snapshot, 1)
	done := make(chan error, 1)
	go func() {
		done <- client.Run(ctx, func(s model.Snapshot) {
			select {
			case got <- s:
			default:
			}
		})
	}()

	select {
	case req := <-subscribed:
		assert.Equal(t, "request", req.Type)
		assert.Equal(t, "subscribe", req.Data.Method)
		assert.Equal(t, WatchingEvent, req.Data.Arg.Event)
		assert.NotEmpty(t, req.Data.Arg.SubID)
		assert.NotEqual(t, req.UID, req.Data.Arg.SubID)
	case <-ctx.Done():
		t.Fatal("client never subscribed")
	}

	select {
	case s := <-got:
		assert.Equal(t, int64(11), s.AthleteID)
		assert.Equal(t, model.Of(210), s.State.Power)
	case <-ctx.Done():
		t.Fatal("snapshot never delivered")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestClient_RetriesUntilCancelled(t *testing.T) {
	client := NewClient("ws://127.0.0.1:1/api/ws/events", zerolog.Nop())
	client.baseDelay = 5 * time.Millisecond
	client.maxDelay = 20 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := client.Run(ctx, func(model.Snapshot) {
		t.Error("no snapshot expected")
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
