package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"ibraflix/internal/models"
	"ibraflix/internal/services"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// API serves the catalog and watchlist as JSON.
type API struct {
	media  *services.MediaService
	logger *logrus.Logger
}

func NewAPI(media *services.MediaService, logger *logrus.Logger) *API {
	return &API{media: media, logger: logger}
}

type watchlistState struct {
	ID          int  `json:"id"`
	InWatchlist bool `json:"in_watchlist"`
	Count       int  `json:"count"`
}

func (a *API) Register(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/dashboard", a.Dashboard).Methods(http.MethodGet)
	api.HandleFunc("/browse", a.Browse).Methods(http.MethodGet)
	api.HandleFunc("/search", a.Search).Methods(http.MethodGet)
	api.HandleFunc("/genres", a.Genres).Methods(http.MethodGet)
	api.HandleFunc("/profile", a.Profile).Methods(http.MethodGet)
	api.HandleFunc("/{kind:movie|tv}/{id:[0-9]+}", a.Details).Methods(http.MethodGet)

	api.HandleFunc("/watchlist", a.ListWatchlist).Methods(http.MethodGet)
	api.HandleFunc("/watchlist", a.AddToWatchlist).Methods(http.MethodPost)
	api.HandleFunc("/watchlist", a.ClearWatchlist).Methods(http.MethodDelete)
	api.HandleFunc("/watchlist/count", a.WatchlistCount).Methods(http.MethodGet)
	api.HandleFunc("/watchlist/{id:[0-9]+}", a.WatchlistContains).Methods(http.MethodGet)
	api.HandleFunc("/watchlist/{id:[0-9]+}", a.RemoveFromWatchlist).Methods(http.MethodDelete)
}

func (a *API) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.media.Dashboard(r.Context()))
}

func (a *API) Browse(w http.ResponseWriter, r *http.Request) {
	filters, page, err := services.ParseBrowseFilters(r.URL.Query().Get)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := a.media.Browse(r.Context(), filters, page)
	if err != nil {
		a.logger.WithError(err).Error("Browse failed")
		writeError(w, http.StatusBadGateway, "catalog unavailable")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (a *API) Search(w http.ResponseWriter, r *http.Request) {
	results := a.media.Search(r.Context(), r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (a *API) Genres(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.media.Genres().All(r.Context()))
}

func (a *API) Profile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.media.Profile())
}

func (a *API) Details(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	kind, err := models.ParseKind(vars["kind"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := strconv.Atoi(vars["id"])
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid media id")
		return
	}

	details, err := a.media.Details(r.Context(), kind, id)
	if err != nil {
		var apiErr *services.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			writeError(w, http.StatusNotFound, "title not found")
			return
		}
		a.logger.WithError(err).Error("Details failed")
		writeError(w, http.StatusBadGateway, "catalog unavailable")
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (a *API) ListWatchlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.media.Watchlist().Items())
}

// AddToWatchlist inserts the posted media item, tagging it with its media
// type when the body leaves it out. The response reports the resulting state;
// a failed save shows up as in_watchlist false.
func (a *API) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	var item models.MediaItem
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid media item")
		return
	}
	if item.ID <= 0 {
		writeError(w, http.StatusBadRequest, "media item needs a positive id")
		return
	}

	if item.MediaType == "" {
		item.MediaType = item.Kind()
	}

	store := a.media.Watchlist()
	store.Insert(r.Context(), item)
	writeJSON(w, http.StatusOK, watchlistState{ID: item.ID, InWatchlist: store.Contains(item.ID), Count: store.Count()})
}

func (a *API) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid media id")
		return
	}

	store := a.media.Watchlist()
	store.Remove(r.Context(), id)
	writeJSON(w, http.StatusOK, watchlistState{ID: id, InWatchlist: store.Contains(id), Count: store.Count()})
}

func (a *API) ClearWatchlist(w http.ResponseWriter, r *http.Request) {
	store := a.media.Watchlist()
	store.Clear(r.Context())
	writeJSON(w, http.StatusOK, map[string]int{"count": store.Count()})
}

func (a *API) WatchlistCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"count": a.media.Watchlist().Count()})
}

func (a *API) WatchlistContains(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid media id")
		return
	}
	store := a.media.Watchlist()
	writeJSON(w, http.StatusOK, watchlistState{ID: id, InWatchlist: store.Contains(id), Count: store.Count()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
