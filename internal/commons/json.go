package commons

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Lutefd/itinerary-sorter/internal/logger"
)

var (
	ErrMalformedJSON = errors.New("malformed JSON")
	ErrInvalidShape  = errors.New("invalid field type")
)

type errorResponse struct {
	Error string `json:"error"`
}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	if code > 499 {
		logger.Errorf("responding with %d error: %s", code, msg)
	}
	RespondWithJSON(w, code, errorResponse{
		Error: msg,
	})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	dat, err := json.Marshal(payload)
	if err != nil {
		logger.Errorf("error marshalling JSON: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(code)
	w.Write(dat)
}

// DecodeJSONBody decodes a single JSON document from the request body into
// dst. Syntax problems are reported as ErrMalformedJSON and values of the
// wrong type as ErrInvalidShape.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	dec := json.NewDecoder(r.Body)

	err := dec.Decode(dst)
	if err == nil {
		if dec.More() {
			return fmt.Errorf("%w: trailing data after JSON document", ErrMalformedJSON)
		}
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &typeErr):
		return fmt.Errorf("%w: %s must be %s", ErrInvalidShape, typeErr.Field, typeErr.Type)
	case errors.As(err, &maxErr):
		return fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedJSON, maxErr.Limit)
	case errors.Is(err, io.EOF):
		return fmt.Errorf("%w: empty body", ErrMalformedJSON)
	default:
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
}
