package ws

import (
	"encoding/json"
)

// Inbound message types.
const (
	MessageJoinAuction       = "join_auction"
	MessageLeaveAuction      = "leave_auction"
	MessageGetConnectedUsers = "get_connected_users"
)

// Outbound message types.
const (
	MessageAuctionEvent   = "auction_event"
	MessageConnectedUsers = "connected_users"
	MessageError          = "error"
)

type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type joinAuctionData struct {
	AuctionID string `json:"auction_id"`
}

type connectedUsersData struct {
	AuctionID string           `json:"auction_id"`
	Count     int              `json:"count"`
	Users     []ConnectionInfo `json:"users"`
}

type errorData struct {
	Message string `json:"message"`
}

// ParseMessage validates and parses an incoming message.
func ParseMessage(rawMessage []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(rawMessage, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func mustMarshalMessage(messageType string, data interface{}) []byte {
	payload, err := json.Marshal(data)
	if err != nil {
		// All outbound payloads are plain structs; this cannot fail at
		// runtime with well-formed code.
		panic(err)
	}
	out, err := json.Marshal(Message{Type: messageType, Data: payload})
	if err != nil {
		panic(err)
	}
	return out
}

func errorMessage(text string) []byte {
	return mustMarshalMessage(MessageError, errorData{Message: text})
}
