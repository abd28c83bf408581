package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"link-rotator/internal/shared/svcerrors"

	"github.com/klauspost/compress/gzhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppResponseWriter(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	appWriter := newAppResponseWriter(rr, 1)

	assert.NotNil(t, appWriter)
	assert.Nil(t, appWriter.svcError)
	assert.Equal(t, "", appWriter.ErrorCode())
	assert.Equal(t, "", appWriter.RedirectTarget())
}

func TestAppResponseWriter_SetServiceError_And_ErrorCode(t *testing.T) {
	t.Parallel()

	appWriter := newAppResponseWriter(httptest.NewRecorder(), 1)

	svcErr := svcerrors.NewRateLimitedError("TEST_1300", "slow down")
	appWriter.SetServiceError(svcErr)
	assert.Equal(t, "TEST_1300", appWriter.ErrorCode())

	appWriter.SetServiceError(nil)
	assert.Equal(t, "", appWriter.ErrorCode())
}

func TestAppResponseWriter_RedirectTarget(t *testing.T) {
	t.Parallel()

	appWriter := newAppResponseWriter(httptest.NewRecorder(), 1)
	appWriter.SetRedirectTarget("https://example.com")
	assert.Equal(t, "https://example.com", appWriter.RedirectTarget())
}

func TestStatusOf(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	assert.Equal(t, http.StatusOK, statusOf(rr))

	appWriter := newAppResponseWriter(httptest.NewRecorder(), 1)
	assert.Equal(t, http.StatusOK, statusOf(appWriter))

	appWriter.WriteHeader(http.StatusFound)
	assert.Equal(t, http.StatusFound, statusOf(appWriter))
}

func TestAppWriterOf_UnwrapsGzipWriter(t *testing.T) {
	t.Parallel()

	appWriter := newAppResponseWriter(httptest.NewRecorder(), 1)

	var found *appResponseWriter
	handler := gzhttp.GzipHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		found, ok = appWriterOf(w)
		assert.True(t, ok)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	handler.ServeHTTP(appWriter, req)

	require.NotNil(t, found)
	assert.Same(t, appWriter, found)

	_, ok := appWriterOf(httptest.NewRecorder())
	assert.False(t, ok)
}
