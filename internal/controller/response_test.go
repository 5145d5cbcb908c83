package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace_api/internal/api/dto"
	"marketplace_api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
	SetupValidator()
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"conflict", service.ErrStoreExists, http.StatusConflict, "User already has an associated store"},
		{"forbidden", service.ErrStoreForbidden, http.StatusForbidden, "Not authorized to edit this store"},
		{"not found", service.ErrNoStore, http.StatusNotFound, "User has no store to update"},
		{"upstream keeps public message", &service.Error{Kind: service.KindUpstream, Msg: "Image upload failed", Err: errors.New("s3: 503")}, http.StatusBadGateway, "Image upload failed"},
		{"validation", &service.ValidationError{Messages: []string{"a", "b"}}, http.StatusBadRequest, "a"},
		{"unknown", errors.New("pq: connection refused"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			var body MessageBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body.Message)
			assert.NotContains(t, w.Body.String(), "pq:")
		})
	}
}

func bindJSON(t *testing.T, body string, obj any) error {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	err := c.ShouldBindJSON(obj)
	require.Error(t, err)
	return bindError(err, obj)
}

func TestBindError_CustomMessages(t *testing.T) {
	var req dto.StoreCompanyRequest
	err := bindJSON(t, `{"company_address":{"city":"Leeds"}}`, &req)

	var ve *service.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.ElementsMatch(t, []string{
		"Company name is required",
		"Company address line 1 is required",
		"Company postcode is required",
		"Company country is required",
	}, ve.Messages)
}

func TestBindError_FallbackTranslation(t *testing.T) {
	var req struct {
		Nickname string `json:"nickname" binding:"required"`
	}
	err := bindJSON(t, `{}`, &req)

	var ve *service.ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Messages, 1)
	assert.Equal(t, "nickname is a required field", ve.Messages[0])
}

func TestBindError_MalformedBody(t *testing.T) {
	var req dto.LoginRequest
	err := bindJSON(t, `{"email":`, &req)

	var ve *service.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"Invalid request body"}, ve.Messages)
}
