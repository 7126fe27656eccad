package models

// Identity describes the already-authenticated caller. Authentication itself
// happens upstream; the engine only uses the identity for sandbox binding
// and uploader attribution.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"display_name"`
	Admin    bool   `json:"admin"`
}
