package types

// ------------------------------
// Response Types
// ------------------------------

// Token is the credential exchange response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AdminExists reports whether an administrator account exists.
type AdminExists struct {
	AdminExists bool `json:"admin_exists"`
}

// UnreadCount wraps the unread notification count.
type UnreadCount struct {
	Count int `json:"count"`
}

// SearchHit is one global search result.
type SearchHit struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
}

// SearchResults groups global search hits by resource.
type SearchResults struct {
	Boards   []SearchHit `json:"boards"`
	Cards    []SearchHit `json:"cards"`
	Contacts []SearchHit `json:"contacts"`
	Comments []SearchHit `json:"comments"`
}

// Download is an opaque binary payload handed back for save-as handling.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Ack wraps plain {"message": "..."} acknowledgements.
type Ack struct {
	Message string `json:"message,omitempty"`
}
