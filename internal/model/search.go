package model

// SearchResult is the body of GET /search.
type SearchResult struct {
	Accounts []AccountListItem `json:"accounts"`
	Videos   []SearchVideo     `json:"videos"`
}

// SearchVideo is a matched video with its author.
type SearchVideo struct {
	Video
	Author AccountSummary `json:"author"`
}

const SearchLimit = 20

var ErrQueryRequired = newError(KindInvalidArgument, "search query is required")
