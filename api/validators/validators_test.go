package validators

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/stallcraft/backend/pkg/errors"
)

func TestDecodeJSONBody(t *testing.T) {
	type payload struct {
		Title   string `json:"title" validate:"required"`
		Summary string `json:"summary"`
	}

	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"daily draw"}`))
		var dest payload
		if err := DecodeJSONBody(req, &dest); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if dest.Title != "daily draw" {
			t.Fatalf("title = %q", dest.Title)
		}
	})

	t.Run("missing required field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"summary":"x"}`))
		var dest payload
		err := DecodeJSONBody(req, &dest)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
		details, ok := typed.Details().(map[string]string)
		if !ok || details["title"] != "is required" {
			t.Fatalf("unexpected details: %v", typed.Details())
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"x","bogus":1}`))
		var dest payload
		if err := DecodeJSONBody(req, &dest); err == nil {
			t.Fatal("expected error for unknown field")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		var dest payload
		if err := DecodeJSONBody(req, &dest); err == nil {
			t.Fatal("expected error for malformed json")
		}
	})
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?page=3&limit=abc&huge=9999", nil)

	if got, err := ParseQueryInt(req, "page", 1, 1, 100); err != nil || got != 3 {
		t.Fatalf("page = %d, err = %v", got, err)
	}
	if got, err := ParseQueryInt(req, "missing", 7, 1, 100); err != nil || got != 7 {
		t.Fatalf("default = %d, err = %v", got, err)
	}
	if _, err := ParseQueryInt(req, "limit", 1, 1, 100); err == nil {
		t.Fatal("expected error for non-numeric value")
	}
	if _, err := ParseQueryInt(req, "huge", 1, 1, 100); err == nil {
		t.Fatal("expected error for out-of-range value")
	}
}

func TestParseUploadedFile(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "card.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("png-bytes")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	upload, err := ParseUploadedFile(req, "file", 1<<20)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defer upload.Content.Close()

	if upload.Filename != "card.png" {
		t.Fatalf("filename = %q", upload.Filename)
	}
	if upload.Size != int64(len("png-bytes")) {
		t.Fatalf("size = %d", upload.Size)
	}
}

func TestParseUploadedFileMissingField(t *testing.T) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	writer.WriteField("note", "no file here")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	_, err := ParseUploadedFile(req, "file", 1<<20)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
