package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mcdev12/minigolf/go/internal/validate"
	"github.com/rs/zerolog/log"
)

// maxBodyBytes bounds request bodies; every payload here is a handful of fields.
const maxBodyBytes = 1 << 16

// ErrorBody is the JSON shape of every error response
type ErrorBody struct {
	Error    string   `json:"error"`
	Messages []string `json:"messages,omitempty"`
}

// WriteJSON writes v as JSON with the given status
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write JSON response")
	}
}

// WriteError writes err as an ErrorBody. Validation errors carry their field messages.
func WriteError(w http.ResponseWriter, status int, err error) {
	body := ErrorBody{Error: err.Error()}
	var vErr *validate.Error
	if errors.As(err, &vErr) {
		body.Messages = vErr.Messages
	}
	WriteJSON(w, status, body)
}

// DecodeJSON reads a JSON request body into v and validates it
func DecodeJSON(r *http.Request, v any) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return &validate.Error{Messages: []string{"request body is required"}}
		}
		return &validate.Error{Messages: []string{fmt.Sprintf("invalid JSON body: %v", err)}}
	}
	return validate.Struct(v)
}
