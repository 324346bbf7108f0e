// Package client watches an invasion streamed by the simulation server.
package client

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/invasion/model"
)

var ErrNoFinal = errors.New("server closed before the final report")

// Watch prints every frame of one session to out and returns the final
// report. Cancelling ctx asks the server to stop; Watch then still waits for
// the final report.
func Watch(ctx context.Context, url string, out io.Writer) (*model.Final, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %s %s", err, resp.Status, strings.TrimSpace(string(body)))
		}
		return nil, err
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			if err := sendStop(conn); err != nil {
				log.Warnf("Watch cant send stop %v", err)
			}
		case <-done:
		}
	}()

	var final *model.Final
	for {
		_, r, err := conn.NextReader()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				if final == nil {
					return nil, ErrNoFinal
				}
				return final, nil
			}
			return final, err
		}
		mes := model.ServerMessage{}
		if err := gob.NewDecoder(r).Decode(&mes); err != nil {
			return final, err
		}
		printMessage(out, mes)
		if len(mes.Final) > 0 {
			f := mes.Final[0]
			final = &f
		}
	}
}

func sendStop(conn *websocket.Conn) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(model.ClientMessage{Stop: true}); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.BinaryMessage, buf.Bytes())
}

func printMessage(out io.Writer, mes model.ServerMessage) {
	for _, s := range mes.Setup {
		fmt.Fprintf(out, "session %s: %d aliens land on %s (%d cities, %d days)\n",
			s.Session, len(s.Aliens), s.Map, len(s.Cities), s.Days)
	}
	for _, d := range mes.Days {
		for _, name := range d.Trapped {
			fmt.Fprintf(out, "day %d: %s is trapped\n", d.Day, name)
		}
		for _, x := range d.Destroyed {
			fmt.Fprintf(out, "day %d: %s has been destroyed by %s\n", d.Day, x.City, strings.Join(x.Aliens, ", "))
		}
	}
	for _, f := range mes.Final {
		s := f.Summary
		fmt.Fprintf(out, "%s after %d days: %d cities left, %d destroyed, %d dead, %d trapped, %d roaming\n",
			f.Reason, s.Days, s.Cities, s.Destroyed, s.Dead, s.Trapped, s.Survivors())
		io.WriteString(out, f.Map)
	}
}
