package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alexanderramin/worklog/internal/auth"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/report"
	"github.com/alexanderramin/worklog/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("x: %w", auth.ErrUnauthorized), http.StatusUnauthorized},
		{fmt.Errorf("x: %w", errForbidden), http.StatusForbidden},
		{fmt.Errorf("x: %w", repository.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("x: %w", repository.ErrDuplicateDay), http.StatusConflict},
		{&domain.ValidationError{Field: "end_time", Reason: "must be after start_time"}, http.StatusUnprocessableEntity},
		{&report.RenderError{Day: time.Now(), Err: errors.New("boom")}, http.StatusInternalServerError},
		{errors.New("disk gone"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, Ok([]float64{1.5}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, strconv.Itoa(rec.Body.Len()), rec.Header().Get("Content-Length"))
	assert.JSONEq(t, `{"code":2000,"type":"success","message":"ok","result":[1.5]}`, rec.Body.String())
}

func TestWriteJSON_UnencodableValue(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, Ok([]float64{math.Inf(1)}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var out Result[any]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, ResultError, out.Code)
	assert.Equal(t, "Internal Server Error", out.Message)
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Internal Server Error", publicMessage(500, errors.New("sql: connection refused")))
	assert.Equal(t, "not found", publicMessage(404, repository.ErrNotFound))
}
