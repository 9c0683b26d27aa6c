package testutil

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/dom/league-skinset-finder/internal/service"
	"github.com/dom/league-skinset-finder/internal/websocket"
	gorillaWS "github.com/gorilla/websocket"
)

// WSClient is a test WebSocket client
type WSClient struct {
	t        *testing.T
	conn     *gorillaWS.Conn
	messages chan *websocket.Message
	errors   chan error
	done     chan struct{}
	mu       sync.Mutex
}

// NewWSClient creates a new WebSocket test client
func NewWSClient(t *testing.T, url string) *WSClient {
	t.Helper()

	dialer := *gorillaWS.DefaultDialer
	dialer.HandshakeTimeout = 5 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to connect to websocket: %v", err)
	}

	client := &WSClient{
		t:        t,
		conn:     conn,
		messages: make(chan *websocket.Message, 100),
		errors:   make(chan error, 10),
		done:     make(chan struct{}),
	}

	go client.readPump()

	t.Cleanup(func() {
		client.Close()
	})

	return client
}

// readPump reads messages from the WebSocket connection
func (c *WSClient) readPump() {
	defer close(c.messages)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
			case c.errors <- err:
			}
			return
		}

		var msg websocket.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.errors <- err
			continue
		}

		select {
		case c.messages <- &msg:
		case <-c.done:
			return
		}
	}
}

// Close closes the WebSocket connection gracefully
func (c *WSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return
	default:
		close(c.done)
		c.conn.WriteMessage(gorillaWS.CloseMessage, gorillaWS.FormatCloseMessage(gorillaWS.CloseNormalClosure, ""))
		c.conn.Close()
	}
}

// Send sends a message with the given payload, which may be nil
func (c *WSClient) Send(msgType websocket.MessageType, payload interface{}) {
	c.t.Helper()

	msg := &websocket.Message{
		Type:      msgType,
		Timestamp: time.Now().UnixMilli(),
	}
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			c.t.Fatalf("failed to marshal payload: %v", err)
		}
		msg.Payload = payloadBytes
	}

	data, err := json.Marshal(msg)
	if err != nil {
		c.t.Fatalf("failed to marshal message: %v", err)
	}
	c.SendRaw(data)
}

// SendRaw writes data as a text frame without encoding it
func (c *WSClient) SendRaw(data []byte) {
	c.t.Helper()

	c.mu.Lock()
	err := c.conn.WriteMessage(gorillaWS.TextMessage, data)
	c.mu.Unlock()

	if err != nil {
		c.t.Fatalf("failed to send message: %v", err)
	}
}

func (c *WSClient) AddPlayer() {
	c.Send(websocket.MessageTypeAddPlayer, nil)
}

func (c *WSClient) RemovePlayer(index int) {
	c.Send(websocket.MessageTypeRemovePlayer, websocket.PlayerIndexPayload{Index: index})
}

func (c *WSClient) SetName(index int, name string) {
	c.Send(websocket.MessageTypeSetName, websocket.SetNamePayload{Index: index, Name: name})
}

func (c *WSClient) UpsertChampion(index int, champion string, lanes ...string) {
	c.Send(websocket.MessageTypeUpsertChampion, websocket.UpsertChampionPayload{
		Index:    index,
		Champion: champion,
		Lanes:    lanes,
	})
}

func (c *WSClient) ToggleLane(index int, champion, lane string) {
	c.Send(websocket.MessageTypeToggleLane, websocket.ToggleLanePayload{
		Index:    index,
		Champion: champion,
		Lane:     lane,
	})
}

func (c *WSClient) RemoveChampion(index int, champion string) {
	c.Send(websocket.MessageTypeRemoveChampion, websocket.ChampionPayload{Index: index, Champion: champion})
}

func (c *WSClient) ToggleSkinset(skinset string) {
	c.Send(websocket.MessageTypeToggleSkinset, websocket.SkinsetPayload{Skinset: skinset})
}

func (c *WSClient) LoadRoster(spec service.RosterSpec) {
	c.Send(websocket.MessageTypeLoadRoster, websocket.LoadRosterPayload{Roster: spec})
}

// ExpectMessage waits for a message of the specified type, skipping others
func (c *WSClient) ExpectMessage(msgType websocket.MessageType, timeout time.Duration) *websocket.Message {
	c.t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case msg := <-c.messages:
			if msg == nil {
				c.t.Fatalf("connection closed while waiting for %s", msgType)
			}
			if msg.Type == msgType {
				return msg
			}
		case err := <-c.errors:
			c.t.Fatalf("error while waiting for %s: %v", msgType, err)
		case <-deadline:
			c.t.Fatalf("timeout waiting for message type %s", msgType)
		}
	}
}

// ExpectStateSync waits for and decodes a STATE_SYNC message
func (c *WSClient) ExpectStateSync(timeout time.Duration) *websocket.StateSyncPayload {
	c.t.Helper()

	msg := c.ExpectMessage(websocket.MessageTypeStateSync, timeout)

	var payload websocket.StateSyncPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.t.Fatalf("failed to decode state sync payload: %v", err)
	}

	return &payload
}

// ExpectResults waits for and decodes a RESULTS message
func (c *WSClient) ExpectResults(timeout time.Duration) *service.ResolveResponse {
	c.t.Helper()

	msg := c.ExpectMessage(websocket.MessageTypeResults, timeout)

	var payload service.ResolveResponse
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.t.Fatalf("failed to decode results payload: %v", err)
	}

	return &payload
}

// ExpectSync waits for a STATE_SYNC and the RESULTS that follow it
func (c *WSClient) ExpectSync(timeout time.Duration) (*websocket.StateSyncPayload, *service.ResolveResponse) {
	c.t.Helper()

	state := c.ExpectStateSync(timeout)
	return state, c.ExpectResults(timeout)
}

// ExpectError waits for and decodes an ERROR message
func (c *WSClient) ExpectError(timeout time.Duration) *websocket.ErrorPayload {
	c.t.Helper()

	msg := c.ExpectMessage(websocket.MessageTypeError, timeout)

	var payload websocket.ErrorPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.t.Fatalf("failed to decode error payload: %v", err)
	}

	return &payload
}

// ExpectNoMessage verifies no messages are received within timeout
func (c *WSClient) ExpectNoMessage(timeout time.Duration) {
	c.t.Helper()

	select {
	case msg := <-c.messages:
		if msg != nil {
			c.t.Fatalf("unexpected message received: %s", msg.Type)
		}
	case <-time.After(timeout):
	}
}
