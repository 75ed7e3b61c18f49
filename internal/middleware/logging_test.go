// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// captureLogs swaps the default slog logger for one writing to a buffer.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		htmx      bool
		status    int
		body      string
		wantLevel string
		wantAttrs []string
	}{
		{
			name:      "catalog fragment",
			target:    "/productos?q=choc",
			htmx:      true,
			status:    http.StatusOK,
			body:      "<ul></ul>",
			wantLevel: "level=INFO",
			wantAttrs: []string{"path=/productos", `query="q=choc"`, "status=200", "bytes=9", "htmx=true"},
		},
		{
			name:      "missing product",
			target:    "/productos/nada",
			status:    http.StatusNotFound,
			wantLevel: "level=WARN",
			wantAttrs: []string{"status=404", "htmx=false"},
		},
		{
			name:      "server error",
			target:    "/api/products/search",
			status:    http.StatusInternalServerError,
			wantLevel: "level=ERROR",
			wantAttrs: []string{"status=500"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.htmx {
				req.Header.Set("HX-Request", "true")
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.status {
				t.Fatalf("status: got %d, want %d", rr.Code, tt.status)
			}
			line := buf.String()
			if !strings.Contains(line, tt.wantLevel) {
				t.Errorf("log %q missing %q", line, tt.wantLevel)
			}
			for _, attr := range tt.wantAttrs {
				if !strings.Contains(line, attr) {
					t.Errorf("log %q missing %q", line, attr)
				}
			}
		})
	}
}

func TestResponseWriter(t *testing.T) {
	t.Run("WriteHeader only captures first call", func(t *testing.T) {
		rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}

		rw.WriteHeader(http.StatusNotFound)
		rw.WriteHeader(http.StatusInternalServerError)

		if rw.statusCode != http.StatusNotFound {
			t.Errorf("statusCode: got %d, want 404", rw.statusCode)
		}
	})

	t.Run("Write sets default 200 and counts bytes", func(t *testing.T) {
		rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}

		rw.Write([]byte("hola"))
		rw.Write([]byte(" mundo"))

		if rw.statusCode != http.StatusOK {
			t.Errorf("statusCode: got %d, want 200", rw.statusCode)
		}
		if rw.bytes != 10 {
			t.Errorf("bytes: got %d, want 10", rw.bytes)
		}
	})

	t.Run("Write does not override explicit WriteHeader", func(t *testing.T) {
		rw := &responseWriter{ResponseWriter: httptest.NewRecorder(), statusCode: http.StatusOK}

		rw.WriteHeader(http.StatusCreated)
		rw.Write([]byte("created"))

		if rw.statusCode != http.StatusCreated {
			t.Errorf("statusCode: got %d, want 201", rw.statusCode)
		}
	})
}
