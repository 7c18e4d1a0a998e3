package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cricbid/cricbid-BE/internal/event"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// newTestConn dials a throwaway websocket server and returns the client
// side. The server side is parked so the connection stays open for the
// duration of the test.
func newTestConn(t *testing.T) *websocket.Conn {
	t.Helper()

	hold := make(chan struct{})
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serverConn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		<-hold
		serverConn.Close()
	}))

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		close(hold)
		srv.Close()
	})

	return conn
}

func recvMessage(t *testing.T, client *Client) Message {
	t.Helper()

	select {
	case raw, ok := <-client.Send:
		require.True(t, ok, "send channel closed")
		var msg Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return Message{}
	}
}

func recvConnectedUsers(t *testing.T, client *Client) connectedUsersData {
	t.Helper()

	msg := recvMessage(t, client)
	require.Equal(t, MessageConnectedUsers, msg.Type)
	var data connectedUsersData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	return data
}

func namedUsers(data connectedUsersData) []string {
	var ids []string
	for _, u := range data.Users {
		if u.UserID != "" {
			ids = append(ids, u.UserID)
		}
	}
	return ids
}

func TestHubPresence(t *testing.T) {
	broker := event.NewBroker(nil)
	hub := NewHub(broker)
	auctionID := uuid.New()

	alice := NewClient(hub, newTestConn(t), "user-alice", "team_owner")
	hub.Join(alice, auctionID)

	data := recvConnectedUsers(t, alice)
	require.Equal(t, 1, data.Count)
	require.Equal(t, []string{"user-alice"}, namedUsers(data))
	require.Equal(t, "team_owner", data.Users[0].Role)
	require.Equal(t, alice.ID, data.Users[0].ConnID)
	require.False(t, data.Users[0].ConnectedAt.IsZero())

	// Anonymous viewers count toward the total but stay unnamed.
	anon := NewClient(hub, newTestConn(t), "", "")
	hub.Join(anon, auctionID)

	data = recvConnectedUsers(t, alice)
	require.Equal(t, 2, data.Count)
	require.Equal(t, []string{"user-alice"}, namedUsers(data))

	hub.Leave(anon, auctionID)
	data = recvConnectedUsers(t, alice)
	require.Equal(t, 1, data.Count)
}

func TestHubRegistry(t *testing.T) {
	broker := event.NewBroker(nil)
	hub := NewHub(broker)
	auctionA := uuid.New()
	auctionB := uuid.New()

	grace := NewClient(hub, newTestConn(t), "user-grace", "admin")
	hub.Join(grace, auctionA)

	heidi := NewClient(hub, newTestConn(t), "user-heidi", "viewer")
	hub.Join(heidi, auctionB)

	// A connection that never joined a room is still registered.
	lurker := NewClient(hub, newTestConn(t), "", "")
	hub.Register(lurker)

	all := hub.ListAll()
	require.Len(t, all, 3)
	byConn := make(map[uuid.UUID]ConnectionInfo)
	for _, info := range all {
		require.False(t, info.ConnectedAt.IsZero())
		byConn[info.ConnID] = info
	}
	require.Equal(t, "admin", byConn[grace.ID].Role)
	require.Equal(t, "user-heidi", byConn[heidi.ID].UserID)
	require.Contains(t, byConn, lurker.ID)

	roomA := hub.ListByRoom(auctionA)
	require.Len(t, roomA, 1)
	require.Equal(t, grace.ID, roomA[0].ConnID)
	require.Empty(t, hub.ListByRoom(uuid.New()))

	// Leaving a room keeps the connection registered; disconnecting
	// removes it.
	hub.Leave(heidi, auctionB)
	require.Len(t, hub.ListAll(), 3)

	hub.Disconnect(heidi)
	require.Len(t, hub.ListAll(), 2)

	hub.Unregister(lurker)
	require.Len(t, hub.ListAll(), 1)
}

func TestHubReplacesSameUserConnection(t *testing.T) {
	broker := event.NewBroker(nil)
	hub := NewHub(broker)
	auctionID := uuid.New()

	first := NewClient(hub, newTestConn(t), "user-bob", "team_owner")
	hub.Join(first, auctionID)
	recvConnectedUsers(t, first)

	second := NewClient(hub, newTestConn(t), "user-bob", "team_owner")
	hub.Join(second, auctionID)

	data := recvConnectedUsers(t, second)
	require.Equal(t, 1, data.Count)
	require.Equal(t, []string{"user-bob"}, namedUsers(data))

	// The first connection was closed by the replacement.
	require.Eventually(t, func() bool {
		select {
		case _, open := <-first.Send:
			return !open
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestHubRelaysBrokerEvents(t *testing.T) {
	broker := event.NewBroker(nil)
	hub := NewHub(broker)
	auctionID := uuid.New()

	client := NewClient(hub, newTestConn(t), "user-carol", "viewer")
	hub.Join(client, auctionID)
	recvConnectedUsers(t, client)

	broker.Publish(context.Background(), event.Event{
		Type:      event.TypeBidPlaced,
		AuctionID: auctionID,
		Seq:       7,
	})

	msg := recvMessage(t, client)
	require.Equal(t, MessageAuctionEvent, msg.Type)

	var ev event.Event
	require.NoError(t, json.Unmarshal(msg.Data, &ev))
	require.Equal(t, event.TypeBidPlaced, ev.Type)
	require.Equal(t, int64(7), ev.Seq)
}

func TestHubClosesRoomWhenEmpty(t *testing.T) {
	broker := event.NewBroker(nil)
	hub := NewHub(broker)
	auctionID := uuid.New()

	client := NewClient(hub, newTestConn(t), "user-dave", "viewer")
	hub.Join(client, auctionID)
	hub.Leave(client, auctionID)

	hub.mu.Lock()
	_, exists := hub.rooms[auctionID]
	hub.mu.Unlock()
	require.False(t, exists)

	// The broker subscription went with the room, so publishing is a no-op.
	broker.Publish(context.Background(), event.Event{Type: event.TypeBidPlaced, AuctionID: auctionID})
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
	broker := event.NewBroker(nil)
	hub := NewHub(broker)

	client := NewClient(hub, newTestConn(t), "user-eve", "viewer")
	hub.HandleMessage(client, []byte("not json"))

	msg := recvMessage(t, client)
	require.Equal(t, MessageError, msg.Type)
}

func TestHandleMessageJoin(t *testing.T) {
	broker := event.NewBroker(nil)
	hub := NewHub(broker)
	auctionID := uuid.New()

	client := NewClient(hub, newTestConn(t), "user-frank", "viewer")
	payload, err := json.Marshal(Message{
		Type: MessageJoinAuction,
		Data: json.RawMessage(`{"auction_id":"` + auctionID.String() + `"}`),
	})
	require.NoError(t, err)

	hub.HandleMessage(client, payload)

	data := recvConnectedUsers(t, client)
	require.Equal(t, 1, data.Count)
}
