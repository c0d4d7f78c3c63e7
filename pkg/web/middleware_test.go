package web

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RequestIDInjector(t *testing.T) {
	t.Run("generates a request id when none is present", func(t *testing.T) {
		// given
		var gotID string
		var gotOK bool
		handler := RequestIDInjector(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID, gotOK = GetRequestID(r.Context())
		}))

		// when
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		// then
		assert.True(t, gotOK, "request id should be stored in the context")
		assert.NotEmpty(t, gotID)
	})

	t.Run("reuses an upstream chi request id", func(t *testing.T) {
		// given
		var gotID string
		handler := middleware.RequestID(RequestIDInjector(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID, _ = GetRequestID(r.Context())
		})))

		// when
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		// then
		assert.NotEmpty(t, gotID)
	})
}

func Test_StructuredLogger_LogsInjectedRequestID(t *testing.T) {
	// given
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	var injectedID string
	handler := RequestIDInjector(StructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		injectedID, _ = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})))

	// when
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products", nil))

	// then
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, injectedID, entry["request_id"], "the completion log should carry the injected request id")
	assert.Equal(t, "/products", entry["path"])
}

func Test_Recoverer(t *testing.T) {
	// given
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := Recoverer(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()

	// when
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	// then
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
