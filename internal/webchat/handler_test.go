package webchat

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestHandleScript(t *testing.T) {
	h := NewHandler("https://webchat.botframework.com/embed/azure-tech-facts-bot?s=secret", zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	h.HandleScript(rec, httptest.NewRequest(http.MethodGet, "/webchat.js", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/javascript; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	// The js template func escapes '=' as \u003D, which the browser decodes back.
	assert.Contains(t, body, `src='https://webchat.botframework.com/embed/azure-tech-facts-bot?s\u003Dsecret'`)
	assert.Contains(t, body, "botDiv.style.height === '500px' ? '38px' : '500px'")
	assert.Contains(t, body, "#botTitleBar")
}

func TestHandleScript_EscapesEmbedURL(t *testing.T) {
	h := NewHandler("https://example.com/'><script>alert(1)</script>", zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	h.HandleScript(rec, httptest.NewRequest(http.MethodGet, "/webchat.js", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<script>")
}

func TestHandleScript_NotConfigured(t *testing.T) {
	h := NewHandler("", zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	h.HandleScript(rec, httptest.NewRequest(http.MethodGet, "/webchat.js", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
