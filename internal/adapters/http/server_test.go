package http_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/aretw0/formwise/internal/adapters/http"
	"github.com/aretw0/formwise/internal/runtime"
	"github.com/aretw0/formwise/pkg/adapters/memory"
	"github.com/aretw0/formwise/pkg/domain"
	"github.com/aretw0/formwise/pkg/dsl"
	"github.com/aretw0/formwise/pkg/observability"
	"github.com/aretw0/formwise/pkg/session"
)

func wizardForm(t *testing.T) *domain.Form {
	t.Helper()
	b := dsl.NewForm("licence").Title("Apply for a licence")
	b.Step("applicant-details").
		Title("Your details").
		Text("full_name", "What is your full name?").Required().
		Radio("applying_for_other", "Are you applying for someone else?", "Yes", "No").Required()
	b.Step("other-applicant").
		Title("Their details").
		Text("other_name", "What is their full name?").Required()
	b.Step("summary").Title("Check your answers")
	b.Rule("summary").When("applicant-details", "applying_for_other", "No")

	form, err := b.Build()
	require.NoError(t, err)
	return form
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	src, err := memory.NewSource(wizardForm(t))
	require.NoError(t, err)
	engine := runtime.NewEngine(src, session.NewManager(memory.NewStore()))

	srv := httptest.NewServer(httpAdapter.NewHandler(engine))
	t.Cleanup(srv.Close)
	return srv
}

// client returns an HTTP client with a cookie jar and redirects off,
// so tests can assert on the 303s themselves.
func client(t *testing.T) *http.Client {
	t.Helper()
	jar := newCookieJar()
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// cookieJar is a minimal single-host jar.
type cookieJar struct {
	cookies []*http.Cookie
}

func newCookieJar() *cookieJar { return &cookieJar{} }

func (j *cookieJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.cookies = append(j.cookies, cookies...)
}

func (j *cookieJar) Cookies(u *url.URL) []*http.Cookie {
	return j.cookies
}

func postForm(t *testing.T, c *http.Client, target string, form url.Values) *http.Response {
	t.Helper()
	resp, err := c.Post(target, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	return resp
}

func decodeView(t *testing.T, resp *http.Response) *domain.StepView {
	t.Helper()
	defer resp.Body.Close()
	var view domain.StepView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	return &view
}

func TestServer_Healthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Metrics(t *testing.T) {
	src, err := memory.NewSource(wizardForm(t))
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	engine := runtime.NewEngine(src, session.NewManager(memory.NewStore()),
		runtime.WithMetrics(observability.NewMetrics(registry)))
	srv := httptest.NewServer(httpAdapter.NewHandler(engine,
		httpAdapter.WithMetricsGatherer(registry)))
	t.Cleanup(srv.Close)

	c := client(t)
	resp, err := c.Get(srv.URL + "/forms/licence/steps/1")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	// The scrape must expose the engine collectors, not just the
	// default process metrics.
	assert.Contains(t, string(body), `formwise_step_renders_total{form="licence"} 1`)
}

func TestServer_ShowStepMintsSessionCookie(t *testing.T) {
	srv := newTestServer(t)
	c := client(t)

	resp, err := c.Get(srv.URL + "/forms/licence/steps/1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var sessionCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == httpAdapter.SessionCookie {
			sessionCookie = cookie
		}
	}
	require.NotNil(t, sessionCookie, "expected a session cookie to be set")
	assert.True(t, sessionCookie.HttpOnly)

	view := decodeView(t, resp)
	assert.Equal(t, "licence", view.FormID)
	assert.Equal(t, 1, view.StepNumber)
	assert.Equal(t, 3, view.StepCount)
}

func TestServer_SubmitRedirectsToNextStep(t *testing.T) {
	srv := newTestServer(t)
	c := client(t)

	// Seed the session.
	resp, err := c.Get(srv.URL + "/forms/licence/steps/1")
	require.NoError(t, err)
	resp.Body.Close()

	resp = postForm(t, c, srv.URL+"/forms/licence/steps/1", url.Values{
		"full_name":          {"Ada Lovelace"},
		"applying_for_other": {"Yes"},
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/forms/licence/steps/2", resp.Header.Get("Location"))
}

func TestServer_RuleRedirectSkipsStep(t *testing.T) {
	srv := newTestServer(t)
	c := client(t)

	resp, err := c.Get(srv.URL + "/forms/licence/steps/1")
	require.NoError(t, err)
	resp.Body.Close()

	resp = postForm(t, c, srv.URL+"/forms/licence/steps/1", url.Values{
		"full_name":          {"Ada Lovelace"},
		"applying_for_other": {"No"},
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/forms/licence/steps/3", resp.Header.Get("Location"))
}

func TestServer_ValidationFailureRendersErrors(t *testing.T) {
	srv := newTestServer(t)
	c := client(t)

	resp, err := c.Get(srv.URL + "/forms/licence/steps/1")
	require.NoError(t, err)
	resp.Body.Close()

	resp = postForm(t, c, srv.URL+"/forms/licence/steps/1", url.Values{
		"applying_for_other": {"Yes"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	view := decodeView(t, resp)
	require.NotNil(t, view.Errors)
	assert.Contains(t, view.Errors.Errors, "full_name")
	// The submitted input comes back so nothing the user typed is lost.
	assert.Equal(t, "Yes", view.Values["applying_for_other"])
}

func TestServer_FullWalkthroughToSuccess(t *testing.T) {
	srv := newTestServer(t)
	c := client(t)

	resp, err := c.Get(srv.URL + "/forms/licence/steps/1")
	require.NoError(t, err)
	resp.Body.Close()

	steps := []struct {
		n    int
		form url.Values
	}{
		{1, url.Values{"full_name": {"Ada Lovelace"}, "applying_for_other": {"Yes"}}},
		{2, url.Values{"other_name": {"Charles Babbage"}}},
		{3, url.Values{"action": {domain.ActionSubmit}}},
	}

	var location string
	for _, step := range steps {
		resp := postForm(t, c, fmt.Sprintf("%s/forms/licence/steps/%d", srv.URL, step.n), step.form)
		resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode, "step %d", step.n)
		location = resp.Header.Get("Location")
	}
	assert.Equal(t, "/forms/licence/success", location)

	resp, err = c.Get(srv.URL + "/forms/licence/success")
	require.NoError(t, err)
	defer resp.Body.Close()

	var summary domain.Values
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, "Ada Lovelace", summary["full_name"])
	assert.Equal(t, "Charles Babbage", summary["other-applicant.other_name"])
}

func TestServer_ErrorStatuses(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path string
		want int
	}{
		{"/forms/licence/steps/99", http.StatusBadRequest},
		{"/forms/licence/steps/abc", http.StatusBadRequest},
		{"/forms/ghost/steps/1", http.StatusNotFound},
	}

	for _, tt := range tests {
		resp, err := http.Get(srv.URL + tt.path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, tt.want, resp.StatusCode, tt.path)
	}
}

// stubRenderer proves the renderer port is honored.
type stubRenderer struct{}

func (stubRenderer) Render(templateID string, data any) ([]byte, error) {
	return []byte("<html>" + templateID + "</html>"), nil
}

func TestServer_CustomRenderer(t *testing.T) {
	src, err := memory.NewSource(wizardForm(t))
	require.NoError(t, err)
	engine := runtime.NewEngine(src, session.NewManager(memory.NewStore()))

	srv := httptest.NewServer(httpAdapter.NewHandler(engine, httpAdapter.WithRenderer(stubRenderer{})))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/forms/licence/steps/1")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
}
