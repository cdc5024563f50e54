package dispatch_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mover-dashboard/dispatch"
	appErrors "github.com/mover-dashboard/dispatch/internal/errors"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), dispatch.EINTERNAL},
		{"coded", dispatch.Errorf(dispatch.EINVALID, "bad"), dispatch.EINVALID},
		{"wrapped op", dispatch.OpError("op", dispatch.Errorf(dispatch.ENOTFOUND, "nope")), dispatch.ENOTFOUND},
		{"with code", dispatch.ErrorWithCode(errors.New("x"), dispatch.ECONFLICT), dispatch.ECONFLICT},
		{"repository not found", dispatch.OpError("op", appErrors.NotFound(nil, "truck", "t1")), dispatch.ENOTFOUND},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dispatch.ErrorCode(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "bad", dispatch.ErrorMessage(dispatch.OpError("op", dispatch.Errorf(dispatch.EINVALID, "bad"))))
	assert.Equal(t, dispatch.DefaultErrorMessage, dispatch.ErrorMessage(errors.New("boom")))
	assert.Equal(t, `job "j9" not found`, dispatch.ErrorMessage(appErrors.NotFound(nil, "job", "j9")))
}

func TestErrorString(t *testing.T) {
	err := dispatch.OpError("DispatchUseCase.UpdateJob", dispatch.Errorf(dispatch.ENOTFOUND, "job not found"))
	assert.Equal(t, "DispatchUseCase.UpdateJob: <not_found> job not found", err.Error())
}

func TestErrCodeToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, dispatch.ErrCodeToHTTPStatus(dispatch.Errorf(dispatch.EINVALID, "")))
	assert.Equal(t, http.StatusNotFound, dispatch.ErrCodeToHTTPStatus(dispatch.Errorf(dispatch.ENOTFOUND, "")))
	assert.Equal(t, http.StatusConflict, dispatch.ErrCodeToHTTPStatus(dispatch.Errorf(dispatch.ECONFLICT, "")))
	assert.Equal(t, http.StatusInternalServerError, dispatch.ErrCodeToHTTPStatus(errors.New("boom")))
}
