package entity

import "time"

// Session sesión opaca emitida tras autenticar; el id viaja en una cookie HTTP-only.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
}
