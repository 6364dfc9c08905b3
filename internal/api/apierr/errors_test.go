package apierr

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/seedroom/internal/model"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{&model.ValidationError{Field: "name", Message: "Name cannot be empty."}, http.StatusBadRequest, CodeValidationFailed},
		{model.ErrPlayerNotFound, http.StatusNotFound, CodePlayerNotFound},
		{model.ErrRoomNotFound, http.StatusNotFound, CodeRoomNotFound},
		{model.ErrRoomExists, http.StatusConflict, CodeRoomExists},
		{model.ErrCapacityExceeded, http.StatusServiceUnavailable, CodeCapacityExceeded},
		{fmt.Errorf("generate seed: %w", model.ErrSeedUnavailable), http.StatusBadGateway, CodeSeedUnavailable},
		{model.ErrNotCreator, http.StatusForbidden, CodeNotCreator},
		{model.ErrNotInRoom, http.StatusConflict, CodeNotInRoom},
		{NewUnauthorizedError(), http.StatusUnauthorized, CodeUnauthorized},
		{NewInvalidRequestError("bad"), http.StatusBadRequest, CodeInvalidRequest},
		{fmt.Errorf("disk on fire"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, Status(tt.err))

			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)
			assert.Equal(t, tt.status, rr.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestValidationErrorCarriesField(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, fmt.Errorf("wrapped: %w", &model.ValidationError{Field: "goal", Message: "Selected goal does not exist"}))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "goal", resp.Error.Field)
	assert.Equal(t, "Selected goal does not exist", resp.Error.Message)
}
