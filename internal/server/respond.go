package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/qtje/comic/internal/model"
	"github.com/qtje/comic/internal/service"
)

// timestamp layouts accepted on the `at` query parameter. Naive and
// date-only values are taken as UTC.
var atLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseAt reads the optional point-in-time parameter. Absence means "now";
// the pinned flag tells the caller whether the instant was explicit and
// therefore cacheable.
func parseAt(r *http.Request) (at time.Time, pinned bool, err error) {
	raw := r.URL.Query().Get("at")
	if raw == "" {
		return time.Now().UTC(), false, nil
	}

	for _, layout := range atLayouts {
		if t, perr := time.Parse(layout, raw); perr == nil {
			return t.UTC(), true, nil
		}
	}

	return time.Time{}, false, errors.New("malformed timestamp, expected ISO-8601")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrMalformedPageKey),
		errors.Is(err, service.ErrInvalidLinkKind):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, model.ErrPageKeysExhausted):
		// hard operational failure, not user-correctable
		logrus.Errorf("page keys exhausted")
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}
