package view

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// Serve runs one viewer over conn until the peer goes away or ctx is done.
// Every event that changes the image is answered with a binary frame followed by a json Status,
// a pointer move with the Status alone.
// Unknown events are logged and skipped.
func Serve(ctx context.Context, conn *websocket.Conn, v *Viewer) error {
	for {
		var ev Event
		if err := wsjson.Read(ctx, conn, &ev); err != nil {
			if isClosed(err) {
				return nil
			}
			return fmt.Errorf("read event: %w", err)
		}

		changed, err := v.Apply(ev)
		if err != nil {
			log.Printf("skipping event: %v", err)
			continue
		}
		if !changed && ev.Kind != KindMove {
			continue
		}

		if changed {
			if err := conn.Write(ctx, websocket.MessageBinary, EncodeFrame(v.Buffer())); err != nil {
				return fmt.Errorf("write frame: %w", err)
			}
		}
		if err := wsjson.Write(ctx, conn, v.Status()); err != nil {
			return fmt.Errorf("write status: %w", err)
		}
	}
}

func isClosed(err error) bool {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	}
	return errors.Is(err, context.Canceled)
}
