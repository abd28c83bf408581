package http

import (
	"net/http"

	"link-rotator/internal/updaters"
)

type updateURLsHandler struct {
	updateService updaters.UpdateService
}

func NewUpdateURLsHandler(updateService updaters.UpdateService) AppHttpHandler {
	return &updateURLsHandler{
		updateService: updateService,
	}
}

// Handle processes /api/update-urls for every method so the service can
// answer non-POST requests with 405 before looking at credentials. The
// recorded origin is the connection peer; proxy headers are not trusted here.
func (h *updateURLsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	result, err := h.updateService.UpdateURLs(r.Context(), updaters.UpdateRequest{
		Method:     r.Method,
		Token:      bearerToken(r),
		RemoteAddr: remoteHost(r.RemoteAddr),
		Body:       r.Body,
	})
	if err != nil {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
		}
		return err
	}

	writeJSON(w, http.StatusOK, result)
	return nil
}
