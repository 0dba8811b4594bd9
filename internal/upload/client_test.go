package upload

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"booking-console/internal/model"
)

func TestSendMultipart(t *testing.T) {
	var gotField, gotFilename, gotContents string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		for field, headers := range r.MultipartForm.File {
			gotField = field
			gotFilename = headers[0].Filename
			f, _ := headers[0].Open()
			b, _ := io.ReadAll(f)
			gotContents = string(b)
		}
		w.Write([]byte(`{"id":"r1","file_url":"http://files/r1.pdf"}`))
	}))
	defer srv.Close()

	when := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	c := New(srv.URL, WithClock(func() time.Time { return when }))

	rep, err := c.Send(context.Background(), "report.pdf", strings.NewReader("pdf-bytes"))
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotField != "file" {
		t.Errorf("form field: got %q", gotField)
	}
	if gotFilename != "report.pdf" {
		t.Errorf("filename: got %q", gotFilename)
	}
	if gotContents != "pdf-bytes" {
		t.Errorf("contents: got %q", gotContents)
	}
	if rep.ID != "r1" || rep.FileURL != "http://files/r1.pdf" {
		t.Errorf("report: %+v", rep)
	}
	if rep.Filename != "report.pdf" {
		t.Errorf("local filename: got %q", rep.Filename)
	}
	if !rep.UploadedAt.Equal(when) {
		t.Errorf("uploaded at: got %v", rep.UploadedAt)
	}
}

func TestSendResponseVariants(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantURL  string
		madeUpID bool
	}{
		{"url instead of file_url", `{"url":"http://files/x"}`, "http://files/x", true},
		{"file_url wins over url", `{"id":"r2","file_url":"http://a","url":"http://b"}`, "http://a", false},
		{"empty body", ``, "", true},
		{"junk body", `not json`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			rep, err := New(srv.URL).Send(context.Background(), "f.txt", strings.NewReader("x"))
			if err != nil {
				t.Fatalf("send: %v", err)
			}
			if rep.FileURL != tt.wantURL {
				t.Errorf("file url: got %q, want %q", rep.FileURL, tt.wantURL)
			}
			if rep.ID == "" {
				t.Error("id must never be empty")
			}
			if tt.madeUpID && rep.ID == "r2" {
				t.Error("expected a generated id")
			}
		})
	}
}

func TestSendRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Send(context.Background(), "f.txt", strings.NewReader("x")); err == nil {
		t.Fatal("expected error on non-2xx")
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("file-bytes"))
	}))
	defer srv.Close()

	c := New("http://unused")
	b, err := c.Fetch(context.Background(), model.Report{ID: "r1", Filename: "f", FileURL: srv.URL})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if string(b) != "file-bytes" {
		t.Errorf("contents: got %q", b)
	}

	// no url stored
	if _, err := c.Fetch(context.Background(), model.Report{ID: "r2"}); err == nil {
		t.Error("expected error for report without url")
	}
}
