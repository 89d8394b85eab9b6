package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// MaxBodyBytes caps request bodies decoded by DecodeJSON
const MaxBodyBytes = 1 << 20

// ErrBadBody is returned by DecodeJSON for unreadable or oversized bodies
var ErrBadBody = errors.New("invalid request body")

// Envelope is the shape of every API response
type Envelope struct {
	Status  int    `json:"status"`
	Results any    `json:"results,omitempty"`
	Errors  string `json:"errors,omitempty"`
}

// WriteJSON writes v as JSON with the given status code
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteResults writes a 200 envelope carrying results
func WriteResults(w http.ResponseWriter, results any) {
	WriteJSON(w, http.StatusOK, Envelope{Status: http.StatusOK, Results: results})
}

// WriteError writes an error envelope. The status field mirrors the HTTP code.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Status: status, Errors: message})
}

// RespondError maps err onto the envelope. Errors matching one of clientErrs
// are the caller's fault and are reported with their message as 400; anything
// else is logged and answered with a generic 500.
func RespondError(w http.ResponseWriter, r *http.Request, err error, clientErrs ...error) {
	for _, target := range clientErrs {
		if errors.Is(err, target) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	zerolog.Ctx(r.Context()).Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")
	WriteError(w, http.StatusInternalServerError, "internal server error")
}

// DecodeJSON reads a JSON body into dst. Unknown fields are ignored.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrBadBody)
		}
		return fmt.Errorf("%w: %v", ErrBadBody, err)
	}
	return nil
}
