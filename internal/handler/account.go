package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"toptop/internal/httputil"
	"toptop/internal/service"
	"toptop/internal/transport/http/middleware"
)

type AccountHandler struct {
	accountService *service.AccountService
	searchService  *service.SearchService
}

func NewAccountHandler(accountService *service.AccountService, searchService *service.SearchService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		searchService:  searchService,
	}
}

// GetProfile handles GET /accounts/{id}
func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.accountService.GetProfile(r.Context(), chi.URLParam(r, "id"), middleware.Viewer(r.Context()))
	if err != nil {
		httputil.WriteDomainError(w, "AccountHandler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// Suggested handles GET /accounts/suggested
func (h *AccountHandler) Suggested(w http.ResponseWriter, r *http.Request) {
	items, err := h.accountService.Suggested(r.Context(), middleware.Viewer(r.Context()))
	if err != nil {
		httputil.WriteDomainError(w, "AccountHandler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"accounts": items})
}

// Search handles GET /search?q=
func (h *AccountHandler) Search(w http.ResponseWriter, r *http.Request) {
	result, err := h.searchService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httputil.WriteDomainError(w, "AccountHandler", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}
