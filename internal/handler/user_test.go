package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ReferralBot_Go/internal/domain"
)

func postJSON(t *testing.T, h http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleGetOrCreateUser(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockEngine)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success - New User",
			requestBody: map[string]interface{}{
				"external_id": "1001",
				"username":    "alice",
			},
			setupMock: func(m *MockEngine) {
				m.On("GetOrCreateUser", mock.Anything, "1001", mock.MatchedBy(func(p domain.Profile) bool {
					return p.Username != nil && *p.Username == "alice" && p.FirstName == nil && p.LastName == nil
				})).Return(&domain.User{ExternalID: "1001", Username: "alice", ReferralCode: "AB12CD"}, true, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"referral_code":"AB12CD"`,
		},
		{
			name:        "Success - Existing User",
			requestBody: map[string]interface{}{"external_id": "1001"},
			setupMock: func(m *MockEngine) {
				m.On("GetOrCreateUser", mock.Anything, "1001", domain.Profile{}).
					Return(&domain.User{ExternalID: "1001", ReferralCode: "AB12CD", Coins: 10}, false, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"created":false`,
		},
		{
			name:           "Invalid Request - Missing External ID",
			requestBody:    map[string]interface{}{"username": "alice"},
			setupMock:      func(m *MockEngine) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"external_id":"This field is required"`,
		},
		{
			name:           "Invalid Request - Malformed JSON",
			requestBody:    `{"external_id":`,
			setupMock:      func(m *MockEngine) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:           "Invalid Request - Unknown Field",
			requestBody:    map[string]interface{}{"external_id": "1001", "coins": 100},
			setupMock:      func(m *MockEngine) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:        "Service Error - Database Unavailable",
			requestBody: map[string]interface{}{"external_id": "1001"},
			setupMock: func(m *MockEngine) {
				m.On("GetOrCreateUser", mock.Anything, "1001", domain.Profile{}).
					Return(nil, false, fmt.Errorf("%w: dial tcp: connection refused", domain.ErrDBUnavailable))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `"kind":"db_unavailable"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &MockEngine{}
			tt.setupMock(m)

			rec := postJSON(t, HandleGetOrCreateUser(m), "/api/v1/users", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			m.AssertExpectations(t)
		})
	}
}

func TestHandleGetOrCreateUser_DoesNotLeakCause(t *testing.T) {
	m := &MockEngine{}
	m.On("GetOrCreateUser", mock.Anything, "1001", domain.Profile{}).
		Return(nil, false, fmt.Errorf("%w: dial tcp 10.0.0.5:5432: connection refused", domain.ErrDBUnavailable))

	rec := postJSON(t, HandleGetOrCreateUser(m), "/api/v1/users", map[string]string{"external_id": "1001"})

	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	assert.Equal(t, ErrMsgUnavailableError, decodeError(t, rec).Error)
}

func TestHandleGetUserView(t *testing.T) {
	newRouter := func(m *MockEngine) http.Handler {
		r := chi.NewRouter()
		r.Get("/api/v1/users/{externalID}", HandleGetUserView(m))
		return r
	}

	t.Run("Success", func(t *testing.T) {
		m := &MockEngine{}
		view := &domain.UserView{
			User:         domain.User{ExternalID: "1001", ReferralCode: "AB12CD", Coins: 5000, TotalCoins: 5000, Level: 1},
			ReferralLink: "https://t.me/referral_bot?start=AB12CD",
			Friends: []domain.Friend{
				{ExternalID: "2002", Coins: 5000, TotalCoins: 5000, Level: 1},
			},
		}
		m.On("GetUserView", mock.Anything, "1001").Return(view, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/1001", nil)
		rec := httptest.NewRecorder()
		newRouter(m).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got domain.UserView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "AB12CD", got.ReferralCode)
		assert.Equal(t, "https://t.me/referral_bot?start=AB12CD", got.ReferralLink)
		require.Len(t, got.Friends, 1)
		assert.Equal(t, "2002", got.Friends[0].ExternalID)
		m.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		m := &MockEngine{}
		m.On("GetUserView", mock.Anything, "404").Return(nil, domain.ErrUserNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/404", nil)
		rec := httptest.NewRecorder()
		newRouter(m).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		resp := decodeError(t, rec)
		assert.Equal(t, ErrMsgUserNotFoundError, resp.Error)
		assert.Equal(t, domain.KindNotFound, resp.Kind)
	})

	t.Run("Missing Path Param", func(t *testing.T) {
		m := &MockEngine{}

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/", nil)
		rec := httptest.NewRecorder()
		HandleGetUserView(m).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		m.AssertNotCalled(t, "GetUserView", mock.Anything, mock.Anything)
	})
}
