package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorEnvelope(t *testing.T) {
	cases := []struct {
		status  int
		message string
	}{
		{http.StatusBadRequest, "Bad request"},
		{http.StatusNotFound, "Resource not found"},
		{http.StatusMethodNotAllowed, "Method not allowed"},
		{http.StatusUnprocessableEntity, "request cant be processed"},
		{http.StatusInternalServerError, "Internal server error"},
		{http.StatusPreconditionFailed, "Precondition failed"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		RespondError(rec, tc.status)

		assert.Equal(t, tc.status, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, tc.status, body.Error)
		assert.Equal(t, tc.message, body.Message)
	}
}

func TestUnknownStatusFallsBackToInternal(t *testing.T) {
	assert.Equal(t, MsgInternalServerError, MessageFor(http.StatusTeapot))
}
