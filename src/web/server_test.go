package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"seraph.si/v2/bfhl-form/src/form"
)

const okBody = `{"numbers":["1","2"],"alphabets":["a","b"],"highest_lowercase_alphabet":["b"]}`

type harness struct {
	srv    *Server
	calls  *atomic.Int32
	cookie *http.Cookie
}

func newHarness(t *testing.T, status int, body string) *harness {
	t.Helper()
	var calls atomic.Int32
	collab := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(collab.Close)

	client := form.NewClient(collab.URL+"/bfhl", form.WithHTTPClient(collab.Client()))
	return &harness{srv: New(client, zap.NewNop(), 16), calls: &calls}
}

func (h *harness) do(t *testing.T, method, path string, values url.Values) (int, string) {
	t.Helper()
	var body io.Reader
	if values != nil {
		body = strings.NewReader(values.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if values != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if h.cookie != nil {
		req.AddCookie(h.cookie)
	}

	resp, err := h.srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			h.cookie = c
		}
	}
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestIndex(t *testing.T) {
	h := newHarness(t, http.StatusOK, okBody)

	status, page := h.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, page, `placeholder="Enter JSON input"`)
	assert.NotContains(t, page, "Select fields to display")
	require.NotNil(t, h.cookie)
	assert.Equal(t, 1, h.srv.sessions.len())

	// the same cookie keeps the same session
	h.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, 1, h.srv.sessions.len())
}

func TestHealthz(t *testing.T) {
	h := newHarness(t, http.StatusOK, okBody)
	status, body := h.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestSubmit_InvalidJSON(t *testing.T) {
	h := newHarness(t, http.StatusOK, okBody)

	status, page := h.do(t, http.MethodPost, "/submit", url.Values{"input": {"<script>"}})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, page, form.MsgInvalidJSON)
	assert.Contains(t, page, "&lt;script&gt;")
	assert.NotContains(t, page, "<script>")
	assert.Zero(t, h.calls.Load())
}

func TestSubmit_ThenSelectFields(t *testing.T) {
	h := newHarness(t, http.StatusOK, okBody)

	_, page := h.do(t, http.MethodPost, "/submit", url.Values{"input": {`{"data":["a","1"]}`}})
	assert.Contains(t, page, "Select fields to display")
	assert.NotContains(t, page, "<strong>Numbers:</strong>")
	assert.EqualValues(t, 1, h.calls.Load())

	status, page := h.do(t, http.MethodPost, "/fields", url.Values{"fields": {"numbers"}})
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, page, "<strong>Numbers:</strong> 1, 2")
	assert.NotContains(t, page, "<strong>Alphabets:</strong>")

	_, page = h.do(t, http.MethodPost, "/fields", url.Values{"fields": {"alphabets"}})
	assert.Contains(t, page, "<strong>Alphabets:</strong> a, b")
	assert.Contains(t, page, "<strong>Highest Lowercase Alphabet:</strong> b")
	assert.NotContains(t, page, "<strong>Numbers:</strong>")

	assert.EqualValues(t, 1, h.calls.Load(), "changing fields must not resubmit")
}

func TestSubmit_SelectionPersistsAcrossSubmissions(t *testing.T) {
	h := newHarness(t, http.StatusOK, okBody)

	h.do(t, http.MethodPost, "/fields", url.Values{"fields": {"numbers"}})
	_, page := h.do(t, http.MethodPost, "/submit", url.Values{"input": {`{"data":[]}`}})
	assert.Contains(t, page, "<strong>Numbers:</strong> 1, 2")
}

func TestSubmit_ServerError(t *testing.T) {
	h := newHarness(t, http.StatusInternalServerError, "boom")

	_, page := h.do(t, http.MethodPost, "/submit", url.Values{"input": {`{"data":[]}`}})
	assert.Contains(t, page, "Server error: 500 Internal Server Error")
	assert.NotContains(t, page, "Select fields to display")
}

func TestSubmit_Busy(t *testing.T) {
	h := newHarness(t, http.StatusOK, okBody)
	h.do(t, http.MethodGet, "/", nil)

	sess, ok := h.srv.sessions.get(h.cookie.Value)
	require.True(t, ok)
	sess.mu.Lock()
	sess.state.Pending = true
	sess.mu.Unlock()

	status, page := h.do(t, http.MethodPost, "/submit", url.Values{"input": {`{}`}})
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, page, noticeBusy)
	assert.Zero(t, h.calls.Load())
}

func TestIndex_ShowsPending(t *testing.T) {
	h := newHarness(t, http.StatusOK, okBody)
	_, page := h.do(t, http.MethodGet, "/", nil)
	assert.NotContains(t, page, noticePending)

	sess, ok := h.srv.sessions.get(h.cookie.Value)
	require.True(t, ok)
	sess.mu.Lock()
	sess.state.Pending = true
	sess.mu.Unlock()

	status, page := h.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, page, noticePending)
	assert.Zero(t, h.calls.Load())
}

func TestFields_UnknownToken(t *testing.T) {
	h := newHarness(t, http.StatusOK, okBody)
	status, _ := h.do(t, http.MethodPost, "/fields", url.Values{"fields": {"numbers", "symbols"}})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSessionStore_Evicts(t *testing.T) {
	store := newSessionStore(2)
	first, _ := store.create()
	store.create()
	store.create()

	assert.Equal(t, 2, store.len())
	_, ok := store.get(first)
	assert.False(t, ok)
}
