package httpserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func TestLoggingMiddleware(t *testing.T) {
	logger := zaptest.NewLogger(t)

	middleware := LoggingMiddleware(logger)

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	errorHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	// Test successful request
	t.Run("successful request", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/things", nil)

		middleware(okHandler).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", rec.Code)
		}
		if rec.Body.String() != "ok" {
			t.Errorf("Expected body 'ok', got %q", rec.Body.String())
		}
	})

	// Test failed request
	t.Run("failed request", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/things", nil)

		middleware(errorHandler).ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", rec.Code)
		}
	})

	// Handlers that never call WriteHeader should log 200
	t.Run("implicit status", func(t *testing.T) {
		rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
		okHandler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.status != http.StatusOK {
			t.Errorf("Expected recorded status 200, got %d", rec.status)
		}
	})
}

func TestStatusRecorderFlush(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}

	// httptest.ResponseRecorder implements http.Flusher; Flush must not
	// panic and must reach the wrapped writer.
	rec.Flush()

	underlying := rec.ResponseWriter.(*httptest.ResponseRecorder)
	if !underlying.Flushed {
		t.Error("Expected Flush to reach the underlying writer")
	}
}

func TestServerBuilder(t *testing.T) {
	logger := zaptest.NewLogger(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	})

	t.Run("requires handler", func(t *testing.T) {
		if _, err := New(WithPort(18321), WithLogger(logger)); err == nil {
			t.Error("Expected an error when no handler is set")
		}
	})

	t.Run("rejects invalid port", func(t *testing.T) {
		if _, err := New(WithPort(0), WithHandler(handler)); err == nil {
			t.Error("Expected an error for port 0")
		}
	})

	t.Run("serves requests", func(t *testing.T) {
		server, err := New(
			WithPort(18321),
			WithLogger(logger),
			WithHandler(handler),
			WithLogging(true),
		)
		if err != nil {
			t.Fatalf("Failed to create server: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				t.Logf("Server shutdown error: %v", err)
			}
		}()

		server.Start()

		// Give server time to start
		time.Sleep(100 * time.Millisecond)

		resp, err := http.Get("http://localhost:18321")
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("Failed to read response: %v", err)
		}
		if string(body) != "hello" {
			t.Errorf("Expected 'hello', got %q", string(body))
		}
	})
}
