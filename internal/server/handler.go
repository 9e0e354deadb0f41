package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/qtje/comic/internal/model"
	"github.com/qtje/comic/internal/service"
)

type handler struct {
	resolver *service.Resolver
	pages    *service.PageService
	links    *service.LinkService
	aliases  *service.AliasService
	editor   *service.EditorService
	forum    *service.ForumService
	feed     *service.FeedService
}

func (h *handler) getFeed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"feed": h.feed.Recent()})
}

func (h *handler) getPage(w http.ResponseWriter, r *http.Request) {
	at, pinned, err := parseAt(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	page, err := h.resolver.ResolveView(r.Context(), mux.Vars(r)["key"], at, pinned)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *handler) renderPage(w http.ResponseWriter, r *http.Request) {
	at, _, err := parseAt(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rendered, err := h.resolver.Render(r.Context(), mux.Vars(r)["key"], at)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rendered)
}

func (h *handler) listPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.pages.ListPages(r.Context(), r.URL.Query().Get("owner"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"pages": pages})
}

func (h *handler) createPage(w http.ResponseWriter, r *http.Request) {
	var in service.PageInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	page, err := h.pages.CreatePage(r.Context(), in, account(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, page)
}

func (h *handler) updatePage(w http.ResponseWriter, r *http.Request) {
	var in service.PageInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	page, err := h.pages.UpdatePage(r.Context(), mux.Vars(r)["key"], in, account(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

type linkRequest struct {
	FromKey     string `json:"from_key"`
	ToKey       string `json:"to_key"`
	Kind        string `json:"kind"`
	OwnerHK     uint   `json:"owner_hk"`
	Reciprocate bool   `json:"reciprocate"`
}

func (h *handler) createLink(w http.ResponseWriter, r *http.Request) {
	var in linkRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	link, err := h.links.CreateLink(r.Context(), in.FromKey, in.ToKey, in.Kind, in.OwnerHK, account(r), in.Reciprocate)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, link)
}

func (h *handler) removeLink(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed link id"})
		return
	}

	if err := h.links.RemoveLink(r.Context(), uint(id), account(r)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *handler) listAliases(w http.ResponseWriter, r *http.Request) {
	aliases, err := h.aliases.ListAliases(r.Context(), r.URL.Query().Get("owner"))
	if err != nil {
		writeError(w, err)
		return
	}

	keys := make([]string, 0, len(aliases))
	for _, alias := range aliases {
		keys = append(keys, alias.SearchKey())
	}

	writeJSON(w, http.StatusOK, map[string]any{"aliases": aliases, "search_keys": keys})
}

func (h *handler) createAlias(w http.ResponseWriter, r *http.Request) {
	var in struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	alias, err := h.aliases.CreateAlias(r.Context(), in.DisplayName, account(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, alias)
}

func (h *handler) renameAlias(w http.ResponseWriter, r *http.Request) {
	hk, err := strconv.ParseUint(mux.Vars(r)["hk"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed alias hk"})
		return
	}

	var in struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	alias, err := h.aliases.RenameAlias(r.Context(), uint(hk), in.DisplayName, account(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, alias)
}

func (h *handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.editor.ListTemplates(r.Context(), r.URL.Query().Get("owner"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": templates})
}

func (h *handler) saveTemplate(w http.ResponseWriter, r *http.Request) {
	var tpl model.PageTemplate
	if err := json.NewDecoder(r.Body).Decode(&tpl); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	if err := h.editor.SaveTemplate(r.Context(), &tpl, account(r)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tpl)
}

func (h *handler) listThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := h.editor.ListThemes(r.Context(), r.URL.Query().Get("owner"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"themes": themes})
}

func (h *handler) saveTheme(w http.ResponseWriter, r *http.Request) {
	var theme model.PageTheme
	if err := json.NewDecoder(r.Body).Decode(&theme); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	if err := h.editor.SaveTheme(r.Context(), &theme, account(r)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, theme)
}

func (h *handler) listArcs(w http.ResponseWriter, r *http.Request) {
	arcs, err := h.editor.ListArcs(r.Context(), r.URL.Query().Get("owner"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"arcs": arcs})
}

func (h *handler) saveArc(w http.ResponseWriter, r *http.Request) {
	var arc model.ComicArc
	if err := json.NewDecoder(r.Body).Decode(&arc); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	if err := h.editor.SaveArc(r.Context(), &arc, account(r)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, arc)
}

func (h *handler) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.forum.ListPosts(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
}

func (h *handler) createPost(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}

	post, err := h.forum.CreatePost(r.Context(), mux.Vars(r)["key"], in.Text)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}
