package testutil

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"cloze/internal/formserver"
)

// Response is a captured HTTP response.
type Response struct {
	Status      int
	ContentType string
	Body        string
}

// HTTPGet sends a GET request and returns the captured response.
func HTTPGet(t testing.TB, target string) Response {
	t.Helper()
	return doRequest(t, http.MethodGet, target, nil)
}

// HTTPSubmitAnswers posts answers to the form submit endpoint in blank order.
func HTTPSubmitAnswers(t testing.TB, baseURL string, answers ...string) Response {
	t.Helper()
	values := url.Values{}
	for i, answer := range answers {
		values.Set(formserver.FieldName(i), answer)
	}
	return doRequest(t, http.MethodPost, baseURL+"/submit", values)
}

// doRequest executes an HTTP request with an optional form payload.
func doRequest(t testing.TB, method, target string, form url.Values) Response {
	t.Helper()
	ctx := Context(t, 2*time.Second)
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Close = true
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("http request: %v", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(data),
	}
}
