// Package friends covers the social surface of the marketplace API: friend
// requests, the friends list, user search, and public profiles.
package friends

// Friend statuses reported by user search, relative to the current user.
const (
	StatusFriend          = "friend"
	StatusRequestSent     = "request_sent"
	StatusRequestReceived = "request_received"
	StatusNotFriend       = "not_friend"
)

// UserRef is the compact user embedded in friend request listings.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// SentRequest is a friend request the current user has sent.
type SentRequest struct {
	ID        string  `json:"id"`
	Recipient UserRef `json:"recipient"`
	Status    string  `json:"status"`
}

// ReceivedRequest is a pending friend request addressed to the current user.
type ReceivedRequest struct {
	ID     string  `json:"id"`
	Sender UserRef `json:"sender"`
	Status string  `json:"status"`
}

// Friend is one entry of the friends list.
type Friend struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// SearchResult is one user search hit, annotated with the friendship state
// between that user and the searcher.
type SearchResult struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FriendStatus string `json:"friend_status"`
}

// PublicProfile is the portion of a profile visible to other users.
type PublicProfile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Gender   string `json:"gender,omitempty"`
}
