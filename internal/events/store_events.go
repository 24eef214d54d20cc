package events

import "time"

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
	ActionLinked  Action = "linked"
	ActionLoaded  Action = "loaded"
)

// ChangeEvent публикуется стором после каждой успешной мутации кеша.
type ChangeEvent struct {
	Entity  string    `json:"entity"`
	Action  Action    `json:"action"`
	ID      string    `json:"id,omitempty"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

// Name - например "supplier.created".
func (e ChangeEvent) Name() string {
	return e.Entity + "." + string(e.Action)
}
