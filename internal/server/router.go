package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

func newRouter(h *handler) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestTimeMiddleware, accountMiddleware)

	v1 := router.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/feed", h.getFeed).Methods(http.MethodGet)

	v1.HandleFunc("/pages", h.listPages).Methods(http.MethodGet)
	v1.HandleFunc("/pages", h.createPage).Methods(http.MethodPost)
	v1.HandleFunc("/pages/{key}", h.getPage).Methods(http.MethodGet)
	v1.HandleFunc("/pages/{key}", h.updatePage).Methods(http.MethodPut)
	v1.HandleFunc("/pages/{key}/render", h.renderPage).Methods(http.MethodGet)
	v1.HandleFunc("/pages/{key}/posts", h.listPosts).Methods(http.MethodGet)
	v1.HandleFunc("/pages/{key}/posts", h.createPost).Methods(http.MethodPost)

	v1.HandleFunc("/links", h.createLink).Methods(http.MethodPost)
	v1.HandleFunc("/links/{id}", h.removeLink).Methods(http.MethodDelete)

	v1.HandleFunc("/aliases", h.listAliases).Methods(http.MethodGet)
	v1.HandleFunc("/aliases", h.createAlias).Methods(http.MethodPost)
	v1.HandleFunc("/aliases/{hk}", h.renameAlias).Methods(http.MethodPut)

	v1.HandleFunc("/templates", h.listTemplates).Methods(http.MethodGet)
	v1.HandleFunc("/templates", h.saveTemplate).Methods(http.MethodPost)
	v1.HandleFunc("/themes", h.listThemes).Methods(http.MethodGet)
	v1.HandleFunc("/themes", h.saveTheme).Methods(http.MethodPost)
	v1.HandleFunc("/arcs", h.listArcs).Methods(http.MethodGet)
	v1.HandleFunc("/arcs", h.saveArc).Methods(http.MethodPost)

	return router
}
