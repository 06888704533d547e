package transport

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campblood/server/internal/game"
)

type inbound struct {
	conn game.Conn
	data []byte
}

// chanSink exposes sink callbacks as channels for synchronisation.
type chanSink struct {
	msgs   chan inbound
	closes chan game.Conn
}

func newChanSink() *chanSink {
	return &chanSink{
		msgs:   make(chan inbound, 8),
		closes: make(chan game.Conn, 8),
	}
}

func (s *chanSink) HandleMessage(c game.Conn, data []byte) {
	s.msgs <- inbound{conn: c, data: data}
}

func (s *chanSink) HandleClose(c game.Conn) {
	s.closes <- c
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return ws
}

func TestAcceptorRoundTrip(t *testing.T) {
	s := newChanSink()
	srv := httptest.NewServer(NewAcceptor(zap.NewNop(), s))
	defer srv.Close()

	ws := dial(t, srv)
	defer ws.Close()

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"t":"join","name":"Ana"}`)))

	var in inbound
	select {
	case in = <-s.msgs:
	case <-time.After(time.Second):
		t.Fatal("frame never reached the sink")
	}
	assert.JSONEq(t, `{"t":"join","name":"Ana"}`, string(in.data))

	require.NoError(t, in.conn.Send(map[string]string{"t": "joined", "id": "ABCD1234"}))
	_ = ws.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := ws.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"t":"joined","id":"ABCD1234"}`, string(data))
}

func TestClientCloseReportedOnce(t *testing.T) {
	s := newChanSink()
	srv := httptest.NewServer(NewAcceptor(zap.NewNop(), s))
	defer srv.Close()

	ws := dial(t, srv)
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"t":"join"}`)))
	var in inbound
	select {
	case in = <-s.msgs:
	case <-time.After(time.Second):
		t.Fatal("frame never reached the sink")
	}

	require.NoError(t, ws.Close())

	select {
	case closed := <-s.closes:
		assert.Same(t, in.conn, closed)
	case <-time.After(time.Second):
		t.Fatal("close never reached the sink")
	}
	select {
	case <-s.closes:
		t.Fatal("close reported twice")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSendAfterCloseDropped(t *testing.T) {
	s := newChanSink()
	srv := httptest.NewServer(NewAcceptor(zap.NewNop(), s))
	defer srv.Close()

	ws := dial(t, srv)
	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`{"t":"join"}`)))
	in := <-s.msgs

	require.NoError(t, ws.Close())
	<-s.closes

	// Fire-and-forget: no error even though nobody will read it.
	assert.NoError(t, in.conn.Send(map[string]string{"t": "chat"}))
}
