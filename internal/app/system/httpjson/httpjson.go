// Package httpjson reads and writes JSON request and response bodies.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// MaxBodyBytes caps JSON request bodies.
const MaxBodyBytes = 64 << 10

// ErrTrailingData is returned by Decode when the body holds more than one
// JSON value.
var ErrTrailingData = errors.New("unexpected data after JSON value")

// detail is the error body shape: {"detail": "..."}.
type detail struct {
	Detail string `json:"detail"`
}

// Write encodes v as the response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"detail": msg} with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, detail{Detail: msg})
}

// Decode reads exactly one JSON value from the request body into v. Bodies
// over MaxBodyBytes fail with an error satisfying IsTooLarge.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	var extra json.RawMessage
	switch err := dec.Decode(&extra); {
	case err == io.EOF:
		return nil
	case IsTooLarge(err):
		return err
	default:
		return ErrTrailingData
	}
}

// IsTooLarge reports whether err came from exceeding MaxBodyBytes.
func IsTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
