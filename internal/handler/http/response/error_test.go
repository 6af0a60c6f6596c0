package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleError_Kinds(t *testing.T) {
	cases := []struct {
		kind   apperror.Kind
		status int
	}{
		{apperror.KindValidation, http.StatusUnprocessableEntity},
		{apperror.KindStateConflict, http.StatusConflict},
		{apperror.KindPolicyDenied, http.StatusForbidden},
		{apperror.KindNotFound, http.StatusNotFound},
		{apperror.KindUnauthenticated, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		err := fmt.Errorf("wrapped: %w", apperror.New(tc.kind, "SOME_CODE", "some message"))
		rec := httptest.NewRecorder()
		HandleError(rec, err)

		assert.Equal(t, tc.status, rec.Code)
		resp := decodeBody(t, rec)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "SOME_CODE", resp.Error.Code)
		assert.Equal(t, "some message", resp.Error.Message)
	}
}

func TestHandleError_ValidationErrors(t *testing.T) {
	var errs validator.ValidationErrors
	errs.Add("reason", validator.CheckReason(""))

	rec := httptest.NewRecorder()
	HandleError(rec, errs.Err())

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "reason")
}

func TestHandleError_Unknown(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", decodeBody(t, rec).Error.Code)
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, "Clocked in", map[string]string{"id": "1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	resp := decodeBody(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Clocked in", resp.Message)
}
