package kook

import (
	"errors"
	"fmt"
)

// ErrReconnect asks the session loop to drop the current connection, clear
// local sequence state and dial a fresh gateway. Raised for Hello code 40103
// and for server ReconnectRequest signals.
var ErrReconnect = errors.New("server requested reconnect")

// TokenError is fatal: the token was rejected during the gateway handshake.
// The session loop stops retrying when it sees one.
type TokenError struct {
	Code    int
	Message string
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("token rejected: code=%d %s", e.Code, e.Message)
}
