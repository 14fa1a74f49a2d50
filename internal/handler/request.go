package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"toptop/internal/httputil"
	"toptop/internal/model"
)

const maxJSONBody = 1 << 20 // 1MB is plenty for JSON

// decodeJSON reads the body into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return false
	}
	return true
}

// parseCursor reads ?cursor=. Absent means the first page.
func parseCursor(r *http.Request) (*int, error) {
	raw := r.URL.Query().Get("cursor")
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, model.ErrInvalidCursor
	}
	return &n, nil
}
