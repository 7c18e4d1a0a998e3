package ws

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/cricbid/cricbid-BE/internal/event"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Hub tracks which clients watch which auction and relays the broker's
// event stream to them. One room exists per auction with at least one
// watcher; the room's broker subscription lives exactly as long as the
// room. Independently of rooms, every open connection is registered by its
// connection id so presence can be rendered across the whole process.
type Hub struct {
	mu     sync.Mutex
	rooms  map[uuid.UUID]*room
	conns  map[uuid.UUID]*Client
	broker *event.Broker
}

type room struct {
	clients map[*Client]bool
	events  chan event.Event
}

// ConnectionInfo is one entry of the connection registry.
type ConnectionInfo struct {
	ConnID      uuid.UUID `json:"conn_id"`
	UserID      string    `json:"user_id,omitempty"`
	Role        string    `json:"role,omitempty"`
	ConnectedAt time.Time `json:"connected_at"`
}

func NewHub(broker *event.Broker) *Hub {
	return &Hub{
		rooms:  make(map[uuid.UUID]*room),
		conns:  make(map[uuid.UUID]*Client),
		broker: broker,
	}
}

// Register adds a connection to the registry. Joining a room registers
// implicitly; this exists for connections that have not joined one yet.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.conns[client.ID] = client
	h.mu.Unlock()
}

// Unregister removes a connection from the registry without closing it.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	delete(h.conns, client.ID)
	h.mu.Unlock()
}

// ListAll snapshots every registered connection, oldest first.
func (h *Hub) ListAll() []ConnectionInfo {
	h.mu.Lock()
	infos := make([]ConnectionInfo, 0, len(h.conns))
	for _, client := range h.conns {
		infos = append(infos, connectionInfo(client))
	}
	h.mu.Unlock()

	sortConnections(infos)
	return infos
}

// ListByRoom snapshots the connections watching one auction, oldest first.
func (h *Hub) ListByRoom(auctionID uuid.UUID) []ConnectionInfo {
	h.mu.Lock()
	var infos []ConnectionInfo
	if r, ok := h.rooms[auctionID]; ok {
		infos = make([]ConnectionInfo, 0, len(r.clients))
		for client := range r.clients {
			infos = append(infos, connectionInfo(client))
		}
	}
	h.mu.Unlock()

	sortConnections(infos)
	return infos
}

func connectionInfo(client *Client) ConnectionInfo {
	return ConnectionInfo{
		ConnID:      client.ID,
		UserID:      client.UserID,
		Role:        client.Role,
		ConnectedAt: client.ConnectedAt,
	}
}

func sortConnections(infos []ConnectionInfo) {
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].ConnectedAt.Equal(infos[j].ConnectedAt) {
			return infos[i].ConnID.String() < infos[j].ConnID.String()
		}
		return infos[i].ConnectedAt.Before(infos[j].ConnectedAt)
	})
}

// HandleMessage routes one inbound client message.
func (h *Hub) HandleMessage(client *Client, rawMessage []byte) {
	if !client.Limiter.Allow() {
		log.Warn().Str("user_id", client.UserID).Msg("websocket rate limit exceeded")
		client.trySend(errorMessage("rate limit exceeded"))
		return
	}

	msg, err := ParseMessage(rawMessage)
	if err != nil {
		client.trySend(errorMessage("invalid message format"))
		return
	}

	var data joinAuctionData
	if err = json.Unmarshal(msg.Data, &data); err != nil {
		client.trySend(errorMessage("invalid message data"))
		return
	}
	auctionID, err := uuid.Parse(data.AuctionID)
	if err != nil {
		client.trySend(errorMessage("invalid auction_id"))
		return
	}

	switch msg.Type {
	case MessageJoinAuction:
		h.Join(client, auctionID)
	case MessageLeaveAuction:
		h.Leave(client, auctionID)
	case MessageGetConnectedUsers:
		client.trySend(h.connectedUsersMessage(auctionID))
	default:
		client.trySend(errorMessage("unknown message type"))
	}
}

// Join adds a client to an auction room. A second connection from the same
// authenticated user replaces the first.
func (h *Hub) Join(client *Client, auctionID uuid.UUID) {
	var replaced *Client

	h.mu.Lock()
	h.conns[client.ID] = client
	r, ok := h.rooms[auctionID]
	if !ok {
		r = &room{
			clients: make(map[*Client]bool),
			events:  h.broker.Subscribe(event.Topic(auctionID)),
		}
		h.rooms[auctionID] = r
		go h.relay(auctionID, r.events)
	}

	if client.UserID != "" {
		for other := range r.clients {
			if other != client && other.UserID == client.UserID {
				replaced = other
				break
			}
		}
	}
	if replaced != nil {
		delete(r.clients, replaced)
	}
	r.clients[client] = true
	h.mu.Unlock()

	if replaced != nil {
		replaced.close()
		log.Info().Str("user_id", client.UserID).Msg("replaced existing websocket connection")
	}

	h.broadcastPresence(auctionID)
}

// Leave removes a client from an auction room.
func (h *Hub) Leave(client *Client, auctionID uuid.UUID) {
	h.mu.Lock()
	r, ok := h.rooms[auctionID]
	if ok {
		delete(r.clients, client)
		if len(r.clients) == 0 {
			h.closeRoom(auctionID, r)
		}
	}
	h.mu.Unlock()

	if ok {
		h.broadcastPresence(auctionID)
	}
}

// Disconnect removes a client from the registry and every room, then
// closes it.
func (h *Hub) Disconnect(client *Client) {
	var affected []uuid.UUID

	h.mu.Lock()
	delete(h.conns, client.ID)
	for auctionID, r := range h.rooms {
		if r.clients[client] {
			delete(r.clients, client)
			affected = append(affected, auctionID)
			if len(r.clients) == 0 {
				h.closeRoom(auctionID, r)
			}
		}
	}
	h.mu.Unlock()

	client.close()
	for _, auctionID := range affected {
		h.broadcastPresence(auctionID)
	}
}

// closeRoom tears down an empty room. Caller holds h.mu.
func (h *Hub) closeRoom(auctionID uuid.UUID, r *room) {
	delete(h.rooms, auctionID)
	h.broker.Unsubscribe(event.Topic(auctionID), r.events)
}

// relay pushes broker events for one auction into its room until the
// subscription closes.
func (h *Hub) relay(auctionID uuid.UUID, events chan event.Event) {
	for ev := range events {
		message := mustMarshalMessage(MessageAuctionEvent, ev)

		h.mu.Lock()
		r, ok := h.rooms[auctionID]
		if !ok {
			h.mu.Unlock()
			continue
		}
		clients := make([]*Client, 0, len(r.clients))
		for client := range r.clients {
			clients = append(clients, client)
		}
		h.mu.Unlock()

		for _, client := range clients {
			client.trySend(message)
		}
	}
}

// broadcastPresence sends the current watcher list to everyone in the room.
func (h *Hub) broadcastPresence(auctionID uuid.UUID) {
	message := h.connectedUsersMessage(auctionID)

	h.mu.Lock()
	r, ok := h.rooms[auctionID]
	if !ok {
		h.mu.Unlock()
		return
	}
	clients := make([]*Client, 0, len(r.clients))
	for client := range r.clients {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	for _, client := range clients {
		client.trySend(message)
	}
}

func (h *Hub) connectedUsersMessage(auctionID uuid.UUID) []byte {
	users := h.ListByRoom(auctionID)
	return mustMarshalMessage(MessageConnectedUsers, connectedUsersData{
		AuctionID: auctionID.String(),
		Count:     len(users),
		Users:     users,
	})
}
