package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/seedroom/internal/factory"
	"github.com/mcoot/seedroom/internal/web"
)

// webTestServer provides a test server for web interface testing.
// Each instance acts as one browser with its own cookies.
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()
	return newWebTestServerWithConfig(t, factory.TestConfig())
}

func newWebTestServerWithConfig(t *testing.T, cfg factory.Config) *webTestServer {
	t.Helper()

	app := factory.NewTestAppWithConfig(cfg)
	router := web.NewRouter(web.RouterConfig{
		Logger:     cfg.Logger,
		Clock:      app.Clock,
		Identities: app.Identities,
		Rooms:      app.Rooms,
		StaticDir:  "", // No static files in tests
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// newBrowser returns a client for the same server with an empty cookie jar
func (ts *webTestServer) newBrowser() *webTestServer {
	cp := *ts
	cp.cookies = newCookieJar()
	return &cp
}

// request makes an HTTP request and returns the response.
// Form posts carry the CSRF token from the jar unless one is already set.
func (ts *webTestServer) request(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		if _, ok := form["_csrf_token"]; !ok {
			if c, ok := ts.cookies.cookies["csrf"]; ok {
				form.Set("_csrf_token", c.Value)
			}
		}
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	// Add cookies from jar
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	// Extract Set-Cookie headers into jar
	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil)
}

// post makes a POST request with form data
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return ts.request(http.MethodPost, path, form)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			// Cookie being deleted
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}

// session returns the session cookie value, or empty
func (j *cookieJar) session() string {
	if c, ok := j.cookies["session"]; ok {
		return c.Value
	}
	return ""
}

// Helper functions for common test operations

// setName visits the home page and submits a name
func (ts *webTestServer) setName(name string) {
	ts.t.Helper()
	ts.get("/")
	rr := ts.post("/name", url.Values{"name": {name}})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after choosing a name")
	require.NotEmpty(ts.t, ts.cookies.session(), "Expected session cookie to be set")
}

// createRoom submits the default settings and returns the new room id
func (ts *webTestServer) createRoom() string {
	ts.t.Helper()
	ts.get("/create")
	rr := ts.post("/create", defaultSettings())
	require.Equal(ts.t, http.StatusSeeOther, rr.Code, "Expected redirect after room creation")

	location := rr.Header().Get("Location")
	parts := strings.Split(location, "/room/")
	require.Len(ts.t, parts, 2, "Expected location to contain /room/{id}")
	return parts[1]
}

func defaultSettings() url.Values {
	return url.Values{
		"difficulty": {"normal"},
		"goal":       {"ganon"},
		"logic":      {"NoGlitches"},
		"mode":       {"open"},
		"variation":  {"none"},
		"weapons":    {"randomized"},
		"lang":       {"en"},
	}
}

// followRedirect follows a redirect and returns the response
func (ts *webTestServer) followRedirect(rr *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	ts.t.Helper()
	location := rr.Header().Get("Location")
	require.NotEmpty(ts.t, location, "Expected Location header for redirect")
	return ts.get(location)
}

// Assertion helpers

// assertContainsElement asserts that the document contains an element matching the selector
func assertContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
	}
}

// assertNotContainsElement asserts that the document does not contain an element matching the selector
func assertNotContainsElement(t *testing.T, doc *goquery.Document, selector string) {
	t.Helper()
	if doc.Find(selector).Length() > 0 {
		t.Errorf("Expected NOT to find element matching %q, but found %d", selector, doc.Find(selector).Length())
	}
}

// assertContainsText asserts that the element matching the selector contains the text
func assertContainsText(t *testing.T, doc *goquery.Document, selector, text string) {
	t.Helper()
	el := doc.Find(selector)
	if el.Length() == 0 {
		t.Errorf("Expected to find element matching %q, but none found", selector)
		return
	}
	if !strings.Contains(el.Text(), text) {
		t.Errorf("Expected element %q to contain %q, but got %q", selector, text, el.Text())
	}
}
