package websocket

import (
	"encoding/json"
	"time"

	"github.com/dom/league-skinset-finder/internal/service"
)

type MessageType string

const (
	// Client to Server
	MessageTypeAddPlayer      MessageType = "ADD_PLAYER"
	MessageTypeRemovePlayer   MessageType = "REMOVE_PLAYER"
	MessageTypeSetName        MessageType = "SET_NAME"
	MessageTypeUpsertChampion MessageType = "UPSERT_CHAMPION"
	MessageTypeToggleLane     MessageType = "TOGGLE_LANE"
	MessageTypeRemoveChampion MessageType = "REMOVE_CHAMPION"
	MessageTypeToggleSkinset  MessageType = "TOGGLE_SKINSET"
	MessageTypeExcludeAll     MessageType = "EXCLUDE_ALL"
	MessageTypeIncludeAll     MessageType = "INCLUDE_ALL"
	MessageTypeLoadRoster     MessageType = "LOAD_ROSTER"
	MessageTypeSyncState      MessageType = "SYNC_STATE"

	// Server to Client
	MessageTypeStateSync MessageType = "STATE_SYNC"
	MessageTypeResults   MessageType = "RESULTS"
	MessageTypeError     MessageType = "ERROR"
)

// Error codes sent in ERROR payloads
const (
	ErrCodeInvalidMessage    = "INVALID_MESSAGE"
	ErrCodeInvalidPayload    = "INVALID_PAYLOAD"
	ErrCodeUnknownMessage    = "UNKNOWN_MESSAGE"
	ErrCodeInvalidPlayer     = "INVALID_PLAYER"
	ErrCodeUnknownChampion   = "UNKNOWN_CHAMPION"
	ErrCodeUnknownSkinset    = "UNKNOWN_SKINSET"
	ErrCodeInvalidLane       = "INVALID_LANE"
	ErrCodeChampionNotChosen = "CHAMPION_NOT_SELECTED"
	ErrCodeInvalidRoster     = "INVALID_ROSTER"
	ErrCodeResolveFailed     = "RESOLVE_FAILED"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// Client to Server payloads

type PlayerIndexPayload struct {
	Index int `json:"index"`
}

type SetNamePayload struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type UpsertChampionPayload struct {
	Index    int      `json:"index"`
	Champion string   `json:"champion"`
	Lanes    []string `json:"lanes,omitempty"`
}

type ToggleLanePayload struct {
	Index    int    `json:"index"`
	Champion string `json:"champion"`
	Lane     string `json:"lane"`
}

type ChampionPayload struct {
	Index    int    `json:"index"`
	Champion string `json:"champion"`
}

type SkinsetPayload struct {
	Skinset string `json:"skinset"`
}

type LoadRosterPayload struct {
	Roster service.RosterSpec `json:"roster"`
}

// Server to Client payloads

type StateSyncPayload struct {
	SessionID   string             `json:"sessionId"`
	Roster      service.RosterSpec `json:"roster"`
	PlayerNames []string           `json:"playerNames"`
	CanAdd      bool               `json:"canAddPlayer"`
	CanRemove   bool               `json:"canRemovePlayer"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
