package models

// -----------------------------------------------------------------------------
// Live feed messages
// -----------------------------------------------------------------------------

// MLiveUpdate carries one widget table to websocket subscribers.
type MLiveUpdate struct {
	Type      string `json:"type"` // "INITIAL" or "UPDATE"
	Widget    string `json:"widget"`
	Rows      []MRow `json:"rows"`
	Timestamp int64  `json:"timestamp"`
}

// -----------------------------------------------------------------------------
// SubscribeCommand for client messages
// -----------------------------------------------------------------------------

type MSubscribeCommand struct {
	Command string   `json:"command"`
	Widgets []string `json:"widgets"`
}
