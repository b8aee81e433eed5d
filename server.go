// server.go
package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// Server is the HTTP front door for the pipeline. Per-source failures are
// part of a normal 200 response; only caller mistakes and true crashes map
// to error statuses — distinguishing "the pipeline broke" from "every data
// source happened to fail" is a first-class goal.
type Server struct {
	pipeline *Pipeline
}

// NewServer creates a server around a built pipeline.
func NewServer(pipeline *Pipeline) *Server {
	return &Server{pipeline: pipeline}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/report", s.handleReport)
	return recoverPanics(mux)
}

type reportParams struct {
	Topics []string `json:"topics"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var params reportParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	topics, err := NewTopicSet(params.Topics)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result, err := s.pipeline.Execute(r.Context(), topics)
	if err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			writeError(w, http.StatusUnprocessableEntity, validationErr.Message)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("✗ encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// recoverPanics converts a crash during orchestration into a 500 instead of
// killing the server.
func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("✗ panic serving %s: %v", r.URL.Path, rec)
				writeError(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
