// Package response writes the JSON bodies of the catalog API.
package response // import "github.com/jebrand/jebman/internal/http/response"

import (
	"encoding/json"
	"net/http"

	"github.com/jebrand/jebman/internal/log"
	"go.uber.org/zap"
)

const contentTypeHeader = `application/json`

// OK creates a new JSON response with a 200 status code.
func OK(w http.ResponseWriter, r *http.Request, body interface{}) {
	writeJSON(w, http.StatusOK, toJSON(body))
}

// Created sends a created response to the client.
func Created(w http.ResponseWriter, r *http.Request, body interface{}) {
	writeJSON(w, http.StatusCreated, toJSON(body))
}

// NoContent sends a no content response to the client.
func NoContent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNoContent, nil)
}

// ServerError sends an internal error to the client.
func ServerError(w http.ResponseWriter, r *http.Request, err error) {
	log.Error(http.StatusText(http.StatusInternalServerError),
		zap.Error(err),
		zap.String("request.method", r.Method),
		zap.String("request.uri", r.RequestURI),
	)
	writeJSON(w, http.StatusInternalServerError, toJSONError(err))
}

// BadRequest sends a bad request error to the client.
func BadRequest(w http.ResponseWriter, r *http.Request, err error) {
	log.Warn(http.StatusText(http.StatusBadRequest),
		zap.Any("error", err),
		zap.String("request.method", r.Method),
		zap.String("request.uri", r.RequestURI),
	)
	writeJSON(w, http.StatusBadRequest, toJSONError(err))
}

// NotFound sends a resource not found error to the client.
func NotFound(w http.ResponseWriter, r *http.Request, err error) {
	writeJSON(w, http.StatusNotFound, toJSONError(err))
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", contentTypeHeader)
	w.WriteHeader(status)
	if body != nil {
		w.Write(body)
	}
}

func toJSONError(err error) []byte {
	type errorMsg struct {
		ErrorMessage string `json:"error_message"`
	}
	return toJSON(errorMsg{ErrorMessage: err.Error()})
}

func toJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error("Unable to marshal JSON response", zap.Any("error", err))
		return []byte("")
	}
	return b
}
