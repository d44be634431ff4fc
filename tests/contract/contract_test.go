// Package contract validates a running server's responses against the OpenAPI document.
package contract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"

	"github.com/gtmountains/newsletter/api"
)

// getBaseURL returns the server under test.
func getBaseURL() string {
	if baseURL := os.Getenv("API_BASE_URL"); baseURL != "" {
		return baseURL
	}
	return "http://localhost:8000"
}

// loadDocument loads and validates the OpenAPI document.
func loadDocument(t *testing.T) (*openapi3.T, routers.Router) {
	t.Helper()

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		t.Fatalf("Failed to load OpenAPI document: %v", err)
	}

	if err := doc.Validate(context.Background()); err != nil {
		t.Fatalf("OpenAPI document validation failed: %v", err)
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		t.Fatalf("Failed to create router from document: %v", err)
	}

	return doc, router
}

// TestEndpointsExist validates that documented endpoints respond.
func TestEndpointsExist(t *testing.T) {
	doc, _ := loadDocument(t)
	baseURL := getBaseURL()

	client := &http.Client{Timeout: 10 * time.Second}

	endpoints := []struct {
		path   string
		method string
	}{
		{"/", "GET"},
		{"/health", "GET"},
		{"/readyz", "GET"},
		{"/docs", "GET"},
		{"/api/subscribers", "GET"},
	}

	for _, ep := range endpoints {
		t.Run(fmt.Sprintf("%s_%s", ep.method, ep.path), func(t *testing.T) {
			if doc.Paths.Find(ep.path) == nil {
				t.Errorf("Path %s not found in document", ep.path)
			}

			req, err := http.NewRequest(ep.method, baseURL+ep.path, nil)
			if err != nil {
				t.Fatalf("Failed to create request: %v", err)
			}

			resp, err := client.Do(req)
			if err != nil {
				t.Skipf("Server not available: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusNotFound {
				t.Errorf("Endpoint %s %s returned 404 - not implemented", ep.method, ep.path)
			}
		})
	}
}

// TestErrorResponseSchema validates error responses carry detail and code.
func TestErrorResponseSchema(t *testing.T) {
	baseURL := getBaseURL()
	client := &http.Client{Timeout: 10 * time.Second}

	errorCases := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{"InvalidEmail", "POST", "/api/subscribe", `{"email":"not-an-email"}`, 400},
		{"MalformedJSON", "POST", "/api/subscribe", `{"email":`, 400},
		{"InvalidPagination", "GET", "/api/subscribers?skip=-1", "", 400},
		{"NotFound", "GET", "/does-not-exist", "", 404},
	}

	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			var body io.Reader
			if tc.body != "" {
				body = strings.NewReader(tc.body)
			}

			req, err := http.NewRequest(tc.method, baseURL+tc.path, body)
			if err != nil {
				t.Fatalf("Failed to create request: %v", err)
			}
			if tc.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}

			resp, err := client.Do(req)
			if err != nil {
				t.Skipf("Server not available: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, resp.StatusCode)
			}

			validateErrorResponse(t, resp)
		})
	}
}

// validateErrorResponse checks that error responses have required fields.
func validateErrorResponse(t *testing.T, resp *http.Response) {
	t.Helper()

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		t.Errorf("Error response Content-Type should be application/json, got: %s", contentType)
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	var errorResp struct {
		Detail string `json:"detail"`
		Code   string `json:"code"`
	}

	if err := json.Unmarshal(body, &errorResp); err != nil {
		t.Errorf("Failed to parse error response as JSON: %v\nBody: %s", err, string(body))
		return
	}

	if errorResp.Detail == "" {
		t.Errorf("Error response missing 'detail' field. Body: %s", string(body))
	}
	if errorResp.Code == "" {
		t.Errorf("Error response missing 'code' field. Body: %s", string(body))
	}
}

// TestResponsesMatchDocument validates live responses against the document schemas.
func TestResponsesMatchDocument(t *testing.T) {
	doc, router := loadDocument(t)
	baseURL := getBaseURL()

	client := &http.Client{Timeout: 10 * time.Second}

	paths := []string{"/", "/health", "/readyz", "/api/subscribers?limit=5"}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			req, _ := http.NewRequest("GET", baseURL+path, nil)

			resp, err := client.Do(req)
			if err != nil {
				t.Skipf("Server not available: %v", err)
			}
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)

			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				t.Fatalf("Could not find route in document: %v", err)
			}

			input := &openapi3filter.ResponseValidationInput{
				RequestValidationInput: &openapi3filter.RequestValidationInput{
					Request:    req,
					PathParams: pathParams,
					Route:      route,
				},
				Status: resp.StatusCode,
				Header: resp.Header,
				Body:   io.NopCloser(bytes.NewReader(body)),
			}

			if err := openapi3filter.ValidateResponse(context.Background(), input); err != nil {
				t.Errorf("Response validation failed: %v", err)
			}
		})
	}

	t.Logf("Document version: %s", doc.Info.Version)
}
