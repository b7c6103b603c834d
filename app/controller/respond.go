package controller

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"catalog-studio/apperr"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("❌ Failed to encode response")
	}
}

// writeError maps a typed error onto its HTTP status and a one-message
// JSON body.
func writeError(w http.ResponseWriter, err error) {
	code := apperr.CodeOf(err)
	message := err.Error()
	if typed := apperr.As(err); typed != nil {
		message = typed.Message()
	}
	log.Error().Err(err).Str("code", string(code)).Msg("❌ Request failed")
	writeJSON(w, apperr.HTTPStatus(code), map[string]any{
		"error": map[string]string{
			"code":    string(code),
			"message": message,
		},
	})
}
