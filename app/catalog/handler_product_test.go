package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Tests: GET /api/products/{id} ---

func TestHandleGet(t *testing.T) {
	testCases := []struct {
		name               string
		path               string
		mockRepoSetup      func() *MockProductRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCall      func(t *testing.T, repo *MockProductRepo)
	}{
		{
			name: "Success",
			path: "/api/products/3",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: sampleProducts()}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp map[string]any
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, float64(3), resp["id"])
				assert.Equal(t, "COFFEEMUG-1000", resp["sku"])
				assert.Equal(t, "Coffee Mug - Express", resp["name"])
				assert.Equal(t, 18.99, resp["unitPrice"])
				assert.Equal(t, true, resp["active"])
				assert.Equal(t, float64(75), resp["unitsInStock"])
				assert.Equal(t, float64(2), resp["categoryId"])

				links, ok := resp["_links"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, map[string]any{"href": "/api/products/3"}, links["self"])
			},
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, uint(3), repo.lastCalledID)
			},
		},
		{
			name: "Product not found",
			path: "/api/products/42",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: sampleProducts()}
			},
			expectedStatusCode: http.StatusNotFound,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
				assert.Equal(t, "record not found", errResp["error"])
			},
		},
		{
			name: "Non-numeric id",
			path: "/api/products/abc",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: sampleProducts()}
			},
			expectedStatusCode: http.StatusNotFound,
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Zero(t, repo.lastCalledID)
			},
		},
		{
			name: "Repository error",
			path: "/api/products/1",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Err: errors.New("db down")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
				assert.Equal(t, "failed to get products", errResp["error"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			router := newTestRouter(t, mockRepo, http.MethodPost, http.MethodPut, http.MethodDelete)
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			rec := httptest.NewRecorder()

			// Act
			router.ServeHTTP(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, mockRepo)
			}
		})
	}
}

// --- Tests: disabled verbs ---

func TestDisabledMethods(t *testing.T) {
	testCases := []struct {
		name          string
		method        string
		path          string
		body          string
		expectedAllow string
	}{
		{
			name:          "POST on collection",
			method:        http.MethodPost,
			path:          "/api/products",
			body:          `{"sku":"NEW-1","categoryId":1}`,
			expectedAllow: "GET",
		},
		{
			name:          "PUT on item",
			method:        http.MethodPut,
			path:          "/api/products/1",
			body:          `{"sku":"NEW-1","categoryId":1}`,
			expectedAllow: "GET, PATCH",
		},
		{
			name:          "DELETE on item",
			method:        http.MethodDelete,
			path:          "/api/products/1",
			expectedAllow: "GET, PATCH",
		},
		{
			name:          "DELETE on unknown item",
			method:        http.MethodDelete,
			path:          "/api/products/999",
			expectedAllow: "GET, PATCH",
		},
		{
			name:          "POST on search",
			method:        http.MethodPost,
			path:          "/api/products/search/findByCategoryId?id=1",
			expectedAllow: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := &MockProductRepo{SourceProducts: sampleProducts()}
			router := newTestRouter(t, mockRepo, http.MethodPost, http.MethodPut, http.MethodDelete)
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			// Act
			router.ServeHTTP(rec, req)

			// Assert
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Zero(t, mockRepo.mutations, "repository must not be touched")
			if tc.expectedAllow != "" {
				assert.Equal(t, tc.expectedAllow, rec.Header().Get("Allow"))
			}
		})
	}
}

func TestEnabledPatch(t *testing.T) {
	// PATCH is left enabled here, so the request reaches the repository.
	mockRepo := &MockProductRepo{SourceProducts: sampleProducts()}
	router := newTestRouter(t, mockRepo, http.MethodPost, http.MethodPut, http.MethodDelete)
	req := httptest.NewRequest(http.MethodPatch, "/api/products/1", strings.NewReader(`{"unitsInStock":5}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, mockRepo.mutations)
	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, float64(5), resp["unitsInStock"])
	assert.Equal(t, "BOOK-TECH-1000", resp["sku"])
}
