package middleware

import (
	"encoding/json"
	"net/http"
)

type errorTrigger struct {
	ShowError string `json:"showError"`
}

// writeError answers with plain text. htmx callers also receive an HX-Trigger
// event and a no-op swap so the current fragment stays in place.
func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	if IsHTMX(r.Context()) {
		if b, err := json.Marshal(errorTrigger{ShowError: msg}); err == nil {
			w.Header().Set("HX-Trigger", string(b))
		}
		w.Header().Set("HX-Reswap", "none")
	}
	http.Error(w, msg, code)
}
