package spectate

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"

	"github.com/tomz197/bombers/internal/loop/config"
	"github.com/tomz197/bombers/internal/loop/server"
)

const writeTimeout = 5 * time.Second

// SnapshotSource provides the latest world snapshot.
type SnapshotSource interface {
	GetSnapshot() *server.WorldSnapshot
}

// Handler upgrades the request to a websocket and streams frames at
// config.SpectatorFPS until the peer goes away. Spectators cannot send input;
// anything they send closes the connection.
func Handler(src SnapshotSource, logger *log.Logger) http.Handler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			logger.Warn("websocket accept failed", "remote", r.RemoteAddr, "err", err)
			return
		}
		defer conn.CloseNow()

		logger.Info("spectator connected", "remote", r.RemoteAddr)
		err = stream(conn.CloseRead(r.Context()), conn, src)
		switch {
		case err == nil, errors.Is(err, context.Canceled),
			websocket.CloseStatus(err) == websocket.StatusNormalClosure,
			websocket.CloseStatus(err) == websocket.StatusGoingAway:
			logger.Info("spectator left", "remote", r.RemoteAddr)
		default:
			logger.Warn("spectator stream ended", "remote", r.RemoteAddr, "err", err)
		}
	})
}

// stream writes a frame whenever the snapshot tick moves on.
func stream(ctx context.Context, conn *websocket.Conn, src SnapshotSource) error {
	ticker := time.NewTicker(config.SpectatorFrameTime)
	defer ticker.Stop()

	sent := false
	var lastTick uint64
	for {
		if snap := src.GetSnapshot(); snap != nil && (!sent || snap.Tick != lastTick) {
			data, err := Encode(FromSnapshot(snap))
			if err != nil {
				return err
			}
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err = conn.Write(wctx, websocket.MessageBinary, data)
			cancel()
			if err != nil {
				return err
			}
			sent, lastTick = true, snap.Tick
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
