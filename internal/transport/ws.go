package transport

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Acceptor upgrades HTTP requests to websocket connections and hands each
// one to the sink with its pumps running.
type Acceptor struct {
	logger   *zap.Logger
	sink     sink
	upgrader websocket.Upgrader
}

// NewAcceptor creates an Acceptor feeding s.
//
// Precondition: logger and s must be non-nil.
func NewAcceptor(logger *zap.Logger, s sink) *Acceptor {
	return &Acceptor{
		logger: logger,
		sink:   s,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Clients connect from arbitrary origins (itch.io embeds and
			// local dev pages), so origin is not checked here.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and starts the connection's pumps. The
// write pump owns the socket for writes; the read pump reports the close.
func (a *Acceptor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.Warn("upgrade failed", zap.Error(err), zap.String("remote", r.RemoteAddr))
		return
	}

	c := newConn(uuid.NewString(), ws, a.logger)
	a.logger.Debug("connection accepted",
		zap.String("conn", c.ID()),
		zap.String("remote", r.RemoteAddr),
	)

	go c.writePump()
	go c.readPump(a.sink)
}
