package model

// ToggleFollowRequest is the body of POST /follows/toggle. IsFollowed is the desired state.
type ToggleFollowRequest struct {
	FollowingID string `json:"followingId"`
	IsFollowed  bool   `json:"isFollowed"`
}

// FollowCounts holds both sides of an account's follow graph.
type FollowCounts struct {
	Followers int `db:"followers"`
	Following int `db:"following"`
}

var (
	ErrAlreadyFollowing  = newError(KindConflict, "already following this account")
	ErrNotFollowing      = newError(KindNotFound, "not following this account")
	ErrCannotFollowSelf  = newError(KindInvalidArgument, "cannot follow yourself")
	ErrFollowingRequired = newError(KindInvalidArgument, "followingId is required")
)
