// Package repotest provides an in-memory implementation of the repository
// interfaces with the same ordering and constraint behaviour as Postgres.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"toptop/internal/model"
	"toptop/internal/repository"
)

type likeKey struct{ userID, videoID string }
type followKey struct{ followerID, followingID string }

// Store holds all tables. Calls counts repository method invocations by name.
type Store struct {
	mu       sync.Mutex
	seq      int64
	Now      func() time.Time
	accounts map[string]model.Account
	videos   []model.Video
	likes    map[likeKey]time.Time
	follows  map[followKey]time.Time
	comments []model.Comment
	calls    map[string]int
}

func NewStore() *Store {
	return &Store{
		Now:      time.Now,
		accounts: make(map[string]model.Account),
		likes:    make(map[likeKey]time.Time),
		follows:  make(map[followKey]time.Time),
		calls:    make(map[string]int),
	}
}

func (s *Store) Accounts() repository.AccountRepository { return accountRepo{s} }
func (s *Store) Videos() repository.VideoRepository     { return videoRepo{s} }
func (s *Store) Likes() repository.LikeRepository       { return likeRepo{s} }
func (s *Store) Follows() repository.FollowRepository   { return followRepo{s} }
func (s *Store) Comments() repository.CommentRepository { return commentRepo{s} }

// Calls returns how many times the named method ran, e.g. "Likes.CheckLikes".
func (s *Store) Calls(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

// AddAccount seeds an account.
func (s *Store) AddAccount(id, name string) model.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := model.Account{ID: id, Name: name, CreatedAt: s.Now()}
	s.accounts[id] = a
	return a
}

// AddVideo seeds a video owned by userID created at the given time.
func (s *Store) AddVideo(id, userID string, createdAt time.Time) model.Video {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	v := model.Video{
		ID:          id,
		UserID:      userID,
		Caption:     "video " + id,
		VideoURL:    "https://cdn.example.com/videos/" + id + ".mp4",
		CoverURL:    "https://cdn.example.com/covers/" + id + ".jpg",
		VideoWidth:  720,
		VideoHeight: 1280,
		CreatedAt:   createdAt,
		Seq:         s.seq,
	}
	s.videos = append(s.videos, v)
	return v
}

func (s *Store) record(name string) {
	s.calls[name]++
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// LikeRows and FollowRows report the raw row counts.
func (s *Store) LikeRows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.likes)
}

func (s *Store) FollowRows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.follows)
}

func (s *Store) CommentRows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.comments)
}

func newestFirst(aTime, bTime time.Time, aSeq, bSeq int64) bool {
	if !aTime.Equal(bTime) {
		return aTime.After(bTime)
	}
	return aSeq > bSeq
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (s *Store) summary(id string) model.AccountSummary {
	a := s.accounts[id]
	return model.AccountSummary{ID: a.ID, Name: a.Name, Image: a.Image}
}

func (s *Store) followerCount(id string) int {
	n := 0
	for k := range s.follows {
		if k.followingID == id {
			n++
		}
	}
	return n
}

// accounts

type accountRepo struct{ s *Store }

func (r accountRepo) Upsert(_ context.Context, id, name string, image *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Accounts.Upsert")
	a, ok := r.s.accounts[id]
	if !ok {
		a = model.Account{ID: id, CreatedAt: r.s.Now()}
	}
	a.Name, a.Image = name, image
	r.s.accounts[id] = a
	return nil
}

func (r accountRepo) GetByID(_ context.Context, id string) (*model.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Accounts.GetByID")
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return &a, nil
}

func (r accountRepo) Exists(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Accounts.Exists")
	_, ok := r.s.accounts[id]
	return ok, nil
}

func (r accountRepo) GetSummaries(_ context.Context, ids []string) (map[string]model.AccountSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Accounts.GetSummaries")
	out := make(map[string]model.AccountSummary, len(ids))
	for _, id := range ids {
		if _, ok := r.s.accounts[id]; ok {
			out[id] = r.s.summary(id)
		}
	}
	return out, nil
}

func (r accountRepo) list(match func(model.Account) bool, limit int) []model.AccountListItem {
	accounts := make([]model.Account, 0, len(r.s.accounts))
	for _, a := range r.s.accounts {
		if match(a) {
			accounts = append(accounts, a)
		}
	}
	sort.Slice(accounts, func(i, j int) bool {
		if !accounts[i].CreatedAt.Equal(accounts[j].CreatedAt) {
			return accounts[i].CreatedAt.After(accounts[j].CreatedAt)
		}
		return accounts[i].ID < accounts[j].ID
	})
	if len(accounts) > limit {
		accounts = accounts[:limit]
	}
	items := make([]model.AccountListItem, 0, len(accounts))
	for _, a := range accounts {
		items = append(items, model.AccountListItem{
			AccountSummary: r.s.summary(a.ID),
			FollowerCount:  r.s.followerCount(a.ID),
		})
	}
	return items
}

func (r accountRepo) Suggested(_ context.Context, excludeID *string, limit int) ([]model.AccountListItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Accounts.Suggested")
	return r.list(func(a model.Account) bool {
		return excludeID == nil || a.ID != *excludeID
	}, limit), nil
}

func (r accountRepo) Search(_ context.Context, q string, limit int) ([]model.AccountListItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Accounts.Search")
	return r.list(func(a model.Account) bool { return containsFold(a.Name, q) }, limit), nil
}

// videos

type videoRepo struct{ s *Store }

func (r videoRepo) Create(_ context.Context, v *model.Video) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Videos.Create")
	if _, ok := r.s.accounts[v.UserID]; !ok {
		return model.ErrViewerNotRegistered
	}
	v.Seq = r.s.nextSeq()
	v.CreatedAt = r.s.Now()
	r.s.videos = append(r.s.videos, *v)
	return nil
}

func (r videoRepo) find(id string) (model.Video, bool) {
	for _, v := range r.s.videos {
		if v.ID == id {
			return v, true
		}
	}
	return model.Video{}, false
}

func (r videoRepo) GetByID(_ context.Context, id string) (*model.Video, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Videos.GetByID")
	v, ok := r.find(id)
	if !ok {
		return nil, model.ErrVideoNotFound
	}
	return &v, nil
}

func (r videoRepo) Exists(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Videos.Exists")
	_, ok := r.find(id)
	return ok, nil
}

func (r videoRepo) sorted(match func(model.Video) bool) []model.Video {
	out := make([]model.Video, 0, len(r.s.videos))
	for _, v := range r.s.videos {
		if match(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].Seq, out[j].Seq)
	})
	return out
}

func (r videoRepo) ListPage(_ context.Context, scope model.Scope, viewerID *string, offset, limit int) ([]model.Video, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Videos.ListPage")

	var match func(model.Video) bool
	switch scope {
	case model.ScopeAll:
		match = func(model.Video) bool { return true }
	case model.ScopeFollowing:
		if viewerID == nil {
			return nil, model.ErrUnauthorized
		}
		match = func(v model.Video) bool {
			_, ok := r.s.follows[followKey{*viewerID, v.UserID}]
			return ok
		}
	default:
		return nil, model.ErrInvalidScope
	}

	all := r.sorted(match)
	if offset >= len(all) {
		return []model.Video{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return append([]model.Video{}, all[offset:end]...), nil
}

func (r videoRepo) ListByUser(_ context.Context, userID string) ([]model.ProfileVideo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Videos.ListByUser")
	out := []model.ProfileVideo{}
	for _, v := range r.sorted(func(v model.Video) bool { return v.UserID == userID }) {
		out = append(out, model.ProfileVideo{ID: v.ID, CoverURL: v.CoverURL, Caption: v.Caption, CreatedAt: v.CreatedAt})
	}
	return out, nil
}

func (r videoRepo) Search(_ context.Context, q string, limit int) ([]model.SearchVideo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Videos.Search")
	out := []model.SearchVideo{}
	for _, v := range r.sorted(func(v model.Video) bool { return containsFold(v.Caption, q) }) {
		if len(out) == limit {
			break
		}
		out = append(out, model.SearchVideo{Video: v, Author: r.s.summary(v.UserID)})
	}
	return out, nil
}

// likes

type likeRepo struct{ s *Store }

func (r likeRepo) Create(_ context.Context, userID, videoID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Likes.Create")
	if _, ok := (videoRepo{r.s}).find(videoID); !ok {
		return model.ErrVideoNotFound
	}
	if _, ok := r.s.accounts[userID]; !ok {
		return model.ErrViewerNotRegistered
	}
	k := likeKey{userID, videoID}
	if _, ok := r.s.likes[k]; ok {
		return model.ErrAlreadyLiked
	}
	r.s.likes[k] = r.s.Now()
	return nil
}

func (r likeRepo) Delete(_ context.Context, userID, videoID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Likes.Delete")
	k := likeKey{userID, videoID}
	if _, ok := r.s.likes[k]; !ok {
		return model.ErrNotLiked
	}
	delete(r.s.likes, k)
	return nil
}

func (r likeRepo) CheckLikes(_ context.Context, userID string, videoIDs []string) (map[string]bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Likes.CheckLikes")
	out := make(map[string]bool)
	for _, id := range videoIDs {
		if _, ok := r.s.likes[likeKey{userID, id}]; ok {
			out[id] = true
		}
	}
	return out, nil
}

func (r likeRepo) CountByVideos(_ context.Context, videoIDs []string) (map[string]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Likes.CountByVideos")
	want := make(map[string]bool, len(videoIDs))
	for _, id := range videoIDs {
		want[id] = true
	}
	out := make(map[string]int)
	for k := range r.s.likes {
		if want[k.videoID] {
			out[k.videoID]++
		}
	}
	return out, nil
}

// follows

type followRepo struct{ s *Store }

func (r followRepo) Create(_ context.Context, followerID, followingID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Follows.Create")
	if followerID == followingID {
		return model.ErrCannotFollowSelf
	}
	if _, ok := r.s.accounts[followerID]; !ok {
		return model.ErrViewerNotRegistered
	}
	if _, ok := r.s.accounts[followingID]; !ok {
		return model.ErrAccountNotFound
	}
	k := followKey{followerID, followingID}
	if _, ok := r.s.follows[k]; ok {
		return model.ErrAlreadyFollowing
	}
	r.s.follows[k] = r.s.Now()
	return nil
}

func (r followRepo) Delete(_ context.Context, followerID, followingID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Follows.Delete")
	k := followKey{followerID, followingID}
	if _, ok := r.s.follows[k]; !ok {
		return model.ErrNotFollowing
	}
	delete(r.s.follows, k)
	return nil
}

func (r followRepo) CheckFollows(_ context.Context, followerID string, followingIDs []string) (map[string]bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Follows.CheckFollows")
	out := make(map[string]bool)
	for _, id := range followingIDs {
		if _, ok := r.s.follows[followKey{followerID, id}]; ok {
			out[id] = true
		}
	}
	return out, nil
}

func (r followRepo) Counts(_ context.Context, accountID string) (*model.FollowCounts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Follows.Counts")
	var c model.FollowCounts
	for k := range r.s.follows {
		if k.followingID == accountID {
			c.Followers++
		}
		if k.followerID == accountID {
			c.Following++
		}
	}
	return &c, nil
}

// comments

type commentRepo struct{ s *Store }

func (r commentRepo) Create(_ context.Context, c *model.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Comments.Create")
	if _, ok := (videoRepo{r.s}).find(c.VideoID); !ok {
		return model.ErrVideoNotFound
	}
	if _, ok := r.s.accounts[c.UserID]; !ok {
		return model.ErrViewerNotRegistered
	}
	c.Seq = r.s.nextSeq()
	c.CreatedAt = r.s.Now()
	r.s.comments = append(r.s.comments, *c)
	return nil
}

func (r commentRepo) ListByVideo(_ context.Context, videoID string) ([]model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Comments.ListByVideo")
	out := []model.Comment{}
	for _, c := range r.s.comments {
		if c.VideoID == videoID {
			c.Author = r.s.summary(c.UserID)
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return newestFirst(out[i].CreatedAt, out[j].CreatedAt, out[i].Seq, out[j].Seq)
	})
	return out, nil
}

func (r commentRepo) CountByVideos(_ context.Context, videoIDs []string) (map[string]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.record("Comments.CountByVideos")
	want := make(map[string]bool, len(videoIDs))
	for _, id := range videoIDs {
		want[id] = true
	}
	out := make(map[string]int)
	for _, c := range r.s.comments {
		if want[c.VideoID] {
			out[c.VideoID]++
		}
	}
	return out, nil
}
