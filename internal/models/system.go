package models

import "time"

// SystemEvent is one domain event (trip, user, payment, ...) from the
// system logs endpoint.
type SystemEvent struct {
	Type          string    `json:"type"`
	EntityID      int64     `json:"entity_id"`
	Description   string    `json:"description"`
	PrimaryUser   string    `json:"primary_user"`
	SecondaryUser *string   `json:"secondary_user,omitempty"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
}

// SystemLogPage is the paginated envelope returned by the system logs endpoint.
type SystemLogPage struct {
	Data       []SystemEvent `json:"data"`
	Pagination Pagination    `json:"pagination"`
}
