package types

// Identity is the signed-in caller, acquired once per request and passed
// explicitly into every owner-scoped operation.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

func (id Identity) IsZero() bool {
	return id.UserID == ""
}
