package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"linksaver/internal/auth"
	"linksaver/internal/bookmark"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookmarkHandler struct {
	Svc *bookmark.Service
	Log *zap.Logger
}

func (h *BookmarkHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	tag := strings.TrimSpace(r.URL.Query().Get("tag"))

	rows, err := h.Svc.List(r.Context(), uid, tag)
	if err != nil {
		h.Log.Error("list bookmarks failed", zap.Uint64("user_id", uid), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch bookmarks")
		return
	}
	if rows == nil {
		rows = []bookmark.Bookmark{}
	}
	writeJSON(w, http.StatusOK, rows)
}

type createBookmarkReq struct {
	URL  string   `json:"url"`
	Tags []string `json:"tags"`
}

func (h *BookmarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req createBookmarkReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeError(w, http.StatusBadRequest, "URL is required")
		return
	}

	b, err := h.Svc.Create(r.Context(), uid, req.URL, req.Tags)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, b)
	case errors.Is(err, bookmark.ErrDuplicate):
		writeError(w, http.StatusConflict, "Bookmark already exists")
	default:
		h.Log.Error("create bookmark failed", zap.Uint64("user_id", uid), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create bookmark")
	}
}

func (h *BookmarkHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b, err := h.Svc.Get(r.Context(), uid, id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, b)
	case errors.Is(err, bookmark.ErrNotFound):
		writeError(w, http.StatusNotFound, "Bookmark not found")
	default:
		h.Log.Error("get bookmark failed", zap.Uint64("user_id", uid), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch bookmark")
	}
}

type updateBookmarkReq struct {
	Tags  *[]string `json:"tags"`
	Order *int      `json:"order"`
}

func (h *BookmarkHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateBookmarkReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	b, err := h.Svc.Update(r.Context(), uid, id, req.Tags, req.Order)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, b)
	case errors.Is(err, bookmark.ErrNotFound):
		writeError(w, http.StatusNotFound, "Bookmark not found")
	default:
		h.Log.Error("update bookmark failed", zap.Uint64("user_id", uid), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to update bookmark")
	}
}

func (h *BookmarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.Svc.Delete(r.Context(), uid, id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Bookmark deleted successfully"})
	case errors.Is(err, bookmark.ErrNotFound):
		writeError(w, http.StatusNotFound, "Bookmark not found")
	default:
		h.Log.Error("delete bookmark failed", zap.Uint64("user_id", uid), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to delete bookmark")
	}
}

type reorderReq struct {
	BookmarkIDs *[]uint64 `json:"bookmarkIds"`
}

func (h *BookmarkHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req reorderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BookmarkIDs == nil {
		writeError(w, http.StatusBadRequest, "bookmarkIds must be an array")
		return
	}

	updated, err := h.Svc.Reorder(r.Context(), uid, *req.BookmarkIDs)
	if err != nil {
		h.Log.Error("reorder bookmarks failed", zap.Uint64("user_id", uid), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to reorder bookmarks")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Bookmarks reordered successfully",
		"updated": updated,
	})
}

func pathID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}
