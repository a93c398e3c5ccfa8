package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormattedConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		code   Code
		msg    string
		status int
	}{
		{"not found", NotFoundf("song %q", "Bertha"), CodeNotFound, `song "Bertha"`, http.StatusNotFound},
		{"validation", Validationf("read tags from %s", "/x/y.flac"), CodeValidation, "read tags from /x/y.flac", http.StatusBadRequest},
		{"unavailable", Unavailablef("open audio file %s", "/x/y.flac"), CodeUnavailable, "open audio file /x/y.flac", http.StatusServiceUnavailable},
		{"internal", Internalf("scan %d folders", 3), CodeInternal, "scan 3 folders", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.msg, tt.err.Message)
			assert.Equal(t, tt.status, tt.err.HTTPStatus())
		})
	}
}

func TestWithCausePreservesChain(t *testing.T) {
	cause := fmt.Errorf("disk gone")
	err := Unavailablef("open audio file %s", "/a.flac").WithCause(cause)

	assert.ErrorIs(t, err, cause)

	var domainErr *Error
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, CodeUnavailable, domainErr.Code)
}
