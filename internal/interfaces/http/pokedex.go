package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"pokedex/internal/domain/pokemon"
)

type PokedexHandler struct {
	sessions *SessionStore
	tmpl     *template.Template
	logger   *zap.Logger
}

func NewPokedexHandler(sessions *SessionStore, tmpl *template.Template, logger *zap.Logger) *PokedexHandler {
	return &PokedexHandler{
		sessions: sessions,
		tmpl:     tmpl,
		logger:   logger,
	}
}

// Response DTOs

type ListPokemonResponse struct {
	Offset int               `json:"offset"`
	State  pokemon.LoadState `json:"state"`
	Total  int               `json:"total"`
	Cards  []pokemon.Card    `json:"cards"`
}

type pageData struct {
	Search  string
	Cards   []pokemon.Card
	Loading bool
}

// HandleIndex renders the full page. The first visit of a session loads the
// page at offset 0 before rendering.
func (h *PokedexHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	session := h.sessions.ForRequest(w, r)
	if err := session.EnsureLoaded(context.WithoutCancel(r.Context())); err != nil {
		h.logger.Warn("initial page load failed", zap.Error(err))
	}

	h.render(w, "index", h.pageData(session.Snapshot(), searchTerm(r)))
}

// HandleCards renders only the card grid, filtered by the q parameter.
func (h *PokedexHandler) HandleCards(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.ForRequest(w, r)
	h.render(w, "cards", h.pageData(session.Snapshot(), searchTerm(r)))
}

// HandleLoadMore advances the session by one page. Load failures are only
// logged; the caller sees the unchanged collection.
func (h *PokedexHandler) HandleLoadMore(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.ForRequest(w, r)

	// The load outlives the request: a disconnecting client does not abort it.
	err := session.LoadMore(context.WithoutCancel(r.Context()))
	switch {
	case errors.Is(err, pokemon.ErrLoadInProgress):
		http.Error(w, "A page load is already in progress", http.StatusConflict)
		return
	case err != nil:
		h.logger.Warn("load more failed", zap.Error(err))
	}

	if wantsJSON(r) {
		h.writeListing(w, session.Snapshot(), "")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleListPokemon returns the session's cards as JSON, filtered by q.
func (h *PokedexHandler) HandleListPokemon(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.ForRequest(w, r)
	if err := session.EnsureLoaded(context.WithoutCancel(r.Context())); err != nil {
		h.logger.Warn("initial page load failed", zap.Error(err))
	}

	h.writeListing(w, session.Snapshot(), searchTerm(r))
}

// HandleHealth returns a simple health check response.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (h *PokedexHandler) pageData(snap pokemon.Snapshot, term string) pageData {
	return pageData{
		Search:  term,
		Cards:   pokemon.BuildViews(snap.Collection.Filter(term)),
		Loading: snap.State == pokemon.Loading,
	}
}

func (h *PokedexHandler) render(w http.ResponseWriter, name string, data pageData) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("template execution failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (h *PokedexHandler) writeListing(w http.ResponseWriter, snap pokemon.Snapshot, term string) {
	response := ListPokemonResponse{
		Offset: snap.Cursor.Offset(),
		State:  snap.State,
		Total:  snap.Collection.Len(),
		Cards:  pokemon.BuildViews(snap.Collection.Filter(term)),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode listing", zap.Error(err))
	}
}

func searchTerm(r *http.Request) string {
	return r.URL.Query().Get("q")
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
