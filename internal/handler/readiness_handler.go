package handler

import (
	"net/http"

	"github.com/Lutefd/itinerary-sorter/internal/commons"
)

func HandlerReadiness(w http.ResponseWriter, r *http.Request) {
	commons.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func HandlerRoot(w http.ResponseWriter, r *http.Request) {
	commons.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Hello, itinerary sorter!"})
}
