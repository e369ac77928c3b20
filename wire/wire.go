// Package wire defines the KOOK gateway signaling format: the JSON frame
// envelope carried over the WebSocket, the signal kinds, and the payloads of
// the lifecycle signals. Both the session loop and its tests build frames
// from these definitions.
package wire

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Signal kinds, the "s" field of every frame.
const (
	SigEvent     = 0 // server → client, carries sn
	SigHello     = 1 // server → client, handshake result
	SigPing      = 2 // client → server, heartbeat with last seen sn
	SigPong      = 3 // server → client, heartbeat reply
	SigResume    = 4 // client → server, unused (full reconnect instead)
	SigReconnect = 5 // server → client, connection is stale, reconnect
	SigResumeAck = 6 // server → client, never observed in practice
)

// Hello status codes, the "code" field of a SigHello payload.
const (
	HelloOK             = 0
	HelloTokenInvalid   = 40101
	HelloTokenVerifyErr = 40102
	HelloSessionExpired = 40103
)

var ErrNotObject = errors.New("wire: frame is not a JSON object")

// Frame is one decoded JSON unit received over the WebSocket.
type Frame struct {
	Signal int             `json:"s"`
	Data   json.RawMessage `json:"d,omitempty"`
	SN     int64           `json:"sn,omitempty"`
}

// HelloBody is the payload of a SigHello frame.
type HelloBody struct {
	Code      int    `json:"code"`
	SessionID string `json:"session_id"`
}

// Parse decodes one raw WebSocket message into a Frame.
func Parse(data []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		// A non-object payload (array, bare scalar) lands here too.
		return nil, fmt.Errorf("%w: %v", ErrNotObject, err)
	}
	return &f, nil
}

// Hello parses the payload of a SigHello frame.
func (f *Frame) Hello() (*HelloBody, error) {
	var h HelloBody
	if err := json.Unmarshal(f.Data, &h); err != nil {
		return nil, fmt.Errorf("wire: bad hello payload: %w", err)
	}
	return &h, nil
}

// Heartbeat encodes the client heartbeat frame carrying the latest seen sn.
func Heartbeat(sn int64) []byte {
	b, _ := json.Marshal(struct {
		Signal int   `json:"s"`
		SN     int64 `json:"sn"`
	}{Signal: SigPing, SN: sn})
	return b
}
