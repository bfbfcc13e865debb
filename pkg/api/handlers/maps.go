package handlers

import (
	"net/http"

	"github.com/cbodonnell/wayfarer/pkg/log"
	"github.com/cbodonnell/wayfarer/pkg/repositories"
	"github.com/cbodonnell/wayfarer/pkg/resources"
	"github.com/gorilla/mux"
)

func HandleGetMap(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		m, err := repository.GetMap(r.Context(), name)
		if err != nil {
			if repositories.IsNotFound(err) {
				http.Error(w, "Map not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get map %s: %v", name, err)
			http.Error(w, "Failed to get map", http.StatusInternalServerError)
			return
		}
		writeJSON(w, m)
	}
}

func HandleListMaps(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maps, err := repository.ListMaps(r.Context())
		if err != nil {
			log.Error("failed to list maps: %v", err)
			http.Error(w, "Failed to list maps", http.StatusInternalServerError)
			return
		}
		writeJSON(w, maps)
	}
}

func HandleResources(preloader *resources.Preloader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if preloader == nil {
			writeJSON(w, []resources.EntryStatus{})
			return
		}
		writeJSON(w, preloader.Status())
	}
}
