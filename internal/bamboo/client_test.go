// ABOUTME: Tests for the BambooHR API client
// ABOUTME: Covers auth headers, body decoding, multipart uploads, and error classification

package bamboo

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{
		CompanyDomain: "acme",
		APIKey:        "test-key",
		BaseURL:       srv.URL,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNew_RequiredFields(t *testing.T) {
	if _, err := New(Config{APIKey: "k"}); err == nil {
		t.Error("New() expected error for missing company domain, got nil")
	}
	if _, err := New(Config{CompanyDomain: "acme"}); err == nil {
		t.Error("New() expected error for missing API key, got nil")
	}
}

func TestNew_DerivesBaseURL(t *testing.T) {
	c, err := New(Config{CompanyDomain: "acme", APIKey: "k"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	want := "https://api.bamboohr.com/api/gateway.php/acme/v1"
	if c.BaseURL() != want {
		t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), want)
	}
	if c.CompanyDomain() != "acme" {
		t.Errorf("CompanyDomain() = %q, want %q", c.CompanyDomain(), "acme")
	}
}

func TestGet_BasicAuthAndAcceptHeaders(t *testing.T) {
	var gotAuth, gotAccept string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{"ok":true}`))
	})

	if _, err := c.Get(context.Background(), "/employees/directory", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("test-key:x"))
	if gotAuth != wantAuth {
		t.Errorf("Authorization = %q, want %q", gotAuth, wantAuth)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want %q", gotAccept, "application/json")
	}
}

func TestGet_DecodesJSON(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"employees":[{"id":"1"},{"id":"2"}]}`))
	})

	result, err := c.Get(context.Background(), "/employees/directory", nil)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	m, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("result type = %T, want map[string]any", result)
	}
	employees, ok := m["employees"].([]any)
	if !ok || len(employees) != 2 {
		t.Errorf("employees = %v, want 2-element array", m["employees"])
	}
}

func TestGet_NonJSONBodyReturnedAsString(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("id,name\n1,Alice\n"))
	})

	result, err := c.Get(context.Background(), "/reports/1", url.Values{"format": {"CSV"}})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	s, ok := result.(string)
	if !ok {
		t.Fatalf("result type = %T, want string", result)
	}
	if s != "id,name\n1,Alice\n" {
		t.Errorf("result = %q", s)
	}
}

func TestGet_EmptyBodyDecodesToNil(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	result, err := c.Get(context.Background(), "/thing", nil)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if result != nil {
		t.Errorf("result = %v, want nil", result)
	}
}

func TestGet_NilAndEmptyQueryWireIdentical(t *testing.T) {
	var urls []string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		urls = append(urls, r.URL.String())
		w.Write([]byte(`{}`))
	})

	if _, err := c.Get(context.Background(), "/employees/1", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if _, err := c.Get(context.Background(), "/employees/1", url.Values{}); err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if len(urls) != 2 || urls[0] != urls[1] {
		t.Errorf("requests differ: %v", urls)
	}
	if urls[0] != "/employees/1" {
		t.Errorf("request URL = %q, want no query string", urls[0])
	}
}

func TestPost_SendsJSONBodyAndQuery(t *testing.T) {
	var gotBody []byte
	var gotQuery, gotContentType string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotQuery = r.URL.RawQuery
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"id":"42"}`))
	})

	result, err := c.Post(context.Background(), "/reports/custom",
		map[string]any{"title": "Headcount"}, url.Values{"format": {"JSON"}})
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	if string(gotBody) != `{"title":"Headcount"}` {
		t.Errorf("body = %s", gotBody)
	}
	if gotQuery != "format=JSON" {
		t.Errorf("query = %q, want %q", gotQuery, "format=JSON")
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if m, ok := result.(map[string]any); !ok || m["id"] != "42" {
		t.Errorf("result = %v", result)
	}
}

func TestGetXML_AcceptHeaderAndOpaqueBody(t *testing.T) {
	var gotAccept string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`<directory><employee id="1"/></directory>`))
	})

	body, err := c.GetXML(context.Background(), "/employees/directory", nil)
	if err != nil {
		t.Fatalf("GetXML() error = %v", err)
	}
	if gotAccept != "application/xml" {
		t.Errorf("Accept = %q, want %q", gotAccept, "application/xml")
	}
	if body != `<directory><employee id="1"/></directory>` {
		t.Errorf("body = %q", body)
	}
}

func TestUploadFile_MultipartParts(t *testing.T) {
	var gotFileName, gotShare string
	var gotFile []byte
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parsing multipart form: %v", err)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("reading file part: %v", err)
			return
		}
		defer file.Close()
		gotFileName = header.Filename
		gotFile, _ = io.ReadAll(file)
		gotShare = r.FormValue("share")
		w.Write([]byte(`{"id":"99"}`))
	})

	result, err := c.UploadFile(context.Background(), "/employees/1/files/2",
		[]byte("contents"), "resume.pdf", true)
	if err != nil {
		t.Fatalf("UploadFile() error = %v", err)
	}

	if gotFileName != "resume.pdf" {
		t.Errorf("filename = %q, want %q", gotFileName, "resume.pdf")
	}
	if string(gotFile) != "contents" {
		t.Errorf("file = %q, want %q", gotFile, "contents")
	}
	if gotShare != "true" {
		t.Errorf("share = %q, want %q", gotShare, "true")
	}
	if m, ok := result.(map[string]any); !ok || m["id"] != "99" {
		t.Errorf("result = %v", result)
	}
}

func TestDownloadFile_RawBytes(t *testing.T) {
	payload := []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0xFF}
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(payload)
	})

	data, err := c.DownloadFile(context.Background(), "/employees/1/files/2", nil)
	if err != nil {
		t.Fatalf("DownloadFile() error = %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("data length = %d, want %d", len(data), len(payload))
	}
}

func TestDo_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close() // guaranteed-dead address

	c, err := New(Config{
		CompanyDomain: "acme",
		APIKey:        "k",
		BaseURL:       addr,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = c.Get(context.Background(), "/employees/1", nil)
	if !IsCategory(err, CategoryNetwork) {
		t.Errorf("error = %v, want network category", err)
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantCategory Category
		wantMessage  string
	}{
		{
			name:         "400 with message",
			status:       400,
			body:         `{"message":"start date is invalid"}`,
			wantCategory: CategoryBadRequest,
			wantMessage:  "Bad Request: start date is invalid",
		},
		{
			name:         "400 without message",
			status:       400,
			body:         "",
			wantCategory: CategoryBadRequest,
			wantMessage:  "Bad Request: invalid request parameters",
		},
		{
			name:         "401 ignores body",
			status:       401,
			body:         `{"message":"nope"}`,
			wantCategory: CategoryUnauthorized,
			wantMessage:  "Unauthorized: invalid API key or company domain",
		},
		{
			name:         "403",
			status:       403,
			body:         "",
			wantCategory: CategoryForbidden,
			wantMessage:  "Forbidden: insufficient permissions",
		},
		{
			name:         "404 with message",
			status:       404,
			body:         `{"message":"employee 9 does not exist"}`,
			wantCategory: CategoryNotFound,
			wantMessage:  "Not Found: employee 9 does not exist",
		},
		{
			name:         "429",
			status:       429,
			body:         "",
			wantCategory: CategoryRateLimited,
			wantMessage:  "Rate Limit Exceeded: too many requests",
		},
		{
			name:         "500",
			status:       500,
			body:         `{"message":"boom"}`,
			wantCategory: CategoryUpstreamError,
			wantMessage:  "Internal Server Error: BambooHR service error",
		},
		{
			name:         "unknown status without message",
			status:       503,
			body:         "",
			wantCategory: CategoryUnknownStatus,
			wantMessage:  "unexpected status 503",
		},
		{
			name:         "unknown status with non-JSON body",
			status:       418,
			body:         "short and stout",
			wantCategory: CategoryUnknownStatus,
			wantMessage:  "unexpected status 418",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.body != "" {
					w.Write([]byte(tt.body))
				}
			})

			_, err := c.Get(context.Background(), "/whatever", nil)
			if err == nil {
				t.Fatal("Get() expected error, got nil")
			}
			if !IsCategory(err, tt.wantCategory) {
				t.Errorf("category mismatch: error = %v", err)
			}
			if err.Error() != tt.wantMessage {
				t.Errorf("message = %q, want %q", err.Error(), tt.wantMessage)
			}
		})
	}
}

func TestErrorDetails(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"bad fields","errors":[{"field":"hireDate"}]}`))
	})

	_, err := c.Get(context.Background(), "/employees", nil)
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != 400 {
		t.Errorf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
	if len(apiErr.Details) != 1 {
		t.Errorf("Details = %v, want one entry", apiErr.Details)
	}
}
