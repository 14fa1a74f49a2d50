package model

import "time"

// Account is a user as known to the identity provider.
type Account struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Image     *string   `db:"image" json:"image"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// AccountSummary is the author block attached to videos and comments.
type AccountSummary struct {
	ID     string  `db:"id" json:"id"`
	Name   string  `db:"name" json:"name"`
	Image  *string `db:"image" json:"image"`
	Handle string  `json:"handle"`
}

// AccountListItem is an account in suggestion and search lists.
type AccountListItem struct {
	AccountSummary
	FollowerCount int `db:"follower_count" json:"followerCount"`
}

// ProfileVideo is the grid entry on a profile page.
type ProfileVideo struct {
	ID        string    `db:"id" json:"id"`
	CoverURL  string    `db:"cover_url" json:"coverURL"`
	Caption   string    `db:"caption" json:"caption"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Profile is the account page payload.
type Profile struct {
	AccountSummary
	FollowerCount  int            `json:"followerCount"`
	FollowingCount int            `json:"followingCount"`
	FollowedByMe   bool           `json:"followedByMe"`
	Videos         []ProfileVideo `json:"videos"`
}

// Identity holds the verified claims the identity provider issued.
type Identity struct {
	Subject string
	Name    string
	Picture *string
}

const SuggestedAccountsLimit = 20

var (
	ErrAccountNotFound     = newError(KindNotFound, "account not found")
	ErrInvalidIdentity     = newError(KindUnauthorized, "identity has no subject")
	ErrViewerNotRegistered = newError(KindUnauthorized, "viewer has no account")
)
