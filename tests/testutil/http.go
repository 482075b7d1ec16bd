package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope is the decoded form of the standard API response
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	} `json:"error"`
	Meta *struct {
		Total      int64 `json:"total"`
		Page       int   `json:"page"`
		PageSize   int   `json:"page_size"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`
}

// HTTPTestCase is one GET request against a handler and its expectations
type HTTPTestCase struct {
	Name           string
	Path           string
	Headers        map[string]string
	ExpectedStatus int
	Validate       func(t *testing.T, env Envelope)
}

// RunHTTPTestCases runs each case as a subtest against h
func RunHTTPTestCases(t *testing.T, h http.Handler, cases []HTTPTestCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.Path, nil)
			for k, v := range tc.Headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if tc.ExpectedStatus != 0 {
				assert.Equal(t, tc.ExpectedStatus, w.Code, "Unexpected status code")
			}
			if tc.Validate != nil {
				tc.Validate(t, DecodeEnvelope(t, w))
			}
		})
	}
}

// Get performs a GET request against h
func Get(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// DecodeEnvelope parses the response body as the standard envelope
func DecodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "Failed to parse JSON response")
	return env
}

// DataAs decodes the envelope's data field into T
func DataAs[T any](t *testing.T, env Envelope) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out), "Failed to parse response data")
	return out
}

// AssertSuccessResponse asserts the envelope reports success.
func AssertSuccessResponse(t *testing.T, env Envelope) {
	t.Helper()

	assert.True(t, env.Success, "Expected success to be true")
	assert.Nil(t, env.Error, "Expected no error")
}

// AssertErrorResponse asserts the envelope carries expectedCode.
func AssertErrorResponse(t *testing.T, env Envelope, expectedCode string) {
	t.Helper()

	assert.False(t, env.Success, "Expected success to be false")
	require.NotNil(t, env.Error, "Expected error object in response")
	assert.Equal(t, expectedCode, env.Error.Code, "Unexpected error code")
}
