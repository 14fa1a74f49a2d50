package model

// ToggleLikeRequest is the body of POST /likes/toggle. IsLiked is the desired state.
type ToggleLikeRequest struct {
	VideoID string `json:"videoId"`
	IsLiked bool   `json:"isLiked"`
}

// Ack is the response of a successful mutation.
type Ack struct {
	Message string `json:"message"`
}

func OK() *Ack { return &Ack{Message: "OK"} }

var (
	ErrAlreadyLiked       = newError(KindConflict, "video already liked")
	ErrNotLiked           = newError(KindNotFound, "video not liked")
	ErrCannotLikeOwnVideo = newError(KindInvalidArgument, "cannot like your own video")
)
