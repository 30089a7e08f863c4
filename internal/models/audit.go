package models

import (
	"encoding/json"
	"time"
)

// AuditEntry is one administrative action as the platform API reports it.
// Metadata is an opaque payload; logwatch never interprets it.
type AuditEntry struct {
	ID         int64           `json:"id"`
	AdminID    int64           `json:"admin_id"`
	AdminName  string          `json:"admin_name"`
	AdminEmail string          `json:"admin_email"`
	Action     string          `json:"action"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	IPAddress  string          `json:"ip_address"`
	CreatedAt  time.Time       `json:"created_at"`
}

// AuditLogPage is the paginated envelope returned by the audit logs endpoint.
type AuditLogPage struct {
	Data       []AuditEntry `json:"data"`
	Pagination Pagination   `json:"pagination"`
}
