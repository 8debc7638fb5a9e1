package formserver_test

import (
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cloze/internal/formserver"
	"cloze/internal/testutil"
	"cloze/internal/trial"
)

// recorder collects delivered results.
type recorder struct {
	mu      sync.Mutex
	results []trial.Result
}

func (r *recorder) Finish(result trial.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}

// startForm starts a form server for text with answer checking enabled.
func startForm(t *testing.T, text string, check bool) (*testutil.ServerInstance, *recorder) {
	t.Helper()
	rec := &recorder{}
	cfg := trial.DefaultConfig(text)
	cfg.CheckAnswers = check
	srv := testutil.StartFormServer(t, formserver.Config{Trial: cfg, Finisher: rec})
	return srv, rec
}

// TestFormRendersInputs verifies one named input per blank and the button label.
func TestFormRendersInputs(t *testing.T) {
	srv, _ := startForm(t, "A %b% and %c/d% <x>.", false)
	resp := testutil.HTTPGet(t, srv.BaseURL+"/")
	if resp.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Status)
	}
	for _, want := range []string{`name="blank-0"`, `name="blank-1"`, `>OK</button>`, `&lt;x&gt;.`, ` autofocus`} {
		if !strings.Contains(resp.Body, want) {
			t.Fatalf("expected %q in body:\n%s", want, resp.Body)
		}
	}
	if strings.Count(resp.Body, "<input") != 2 {
		t.Fatalf("expected 2 inputs:\n%s", resp.Body)
	}
}

// TestFormServesStylesheet verifies embedded assets are served.
func TestFormServesStylesheet(t *testing.T) {
	srv, _ := startForm(t, "%a%", false)
	resp := testutil.HTTPGet(t, srv.BaseURL+"/assets/form.css")
	if resp.Status != http.StatusOK || !strings.Contains(resp.Body, ".flagged") {
		t.Fatalf("unexpected stylesheet response %d", resp.Status)
	}
}

// TestSubmitCorrectAnswers verifies a passing submit returns the result JSON.
func TestSubmitCorrectAnswers(t *testing.T) {
	srv, rec := startForm(t, "This is a %cloze% text.", true)
	resp := testutil.HTTPSubmitAnswers(t, srv.BaseURL, " cloze ")
	if resp.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Status, resp.Body)
	}
	if resp.Body != `{"response":["cloze"]}` || resp.ContentType != "application/json" {
		t.Fatalf("unexpected result %q (%s)", resp.Body, resp.ContentType)
	}
	if rec.count() != 1 {
		t.Fatalf("expected one delivery, got %d", rec.count())
	}
	select {
	case <-srv.Handler.Done():
	default:
		t.Fatalf("expected done channel to be closed")
	}
	if got := testutil.HTTPGet(t, srv.BaseURL+"/result"); got.Body != resp.Body {
		t.Fatalf("expected stored result, got %q", got.Body)
	}
}

// TestSubmitMistakeFlagsField verifies a rejected submit re-renders with flags.
func TestSubmitMistakeFlagsField(t *testing.T) {
	srv, rec := startForm(t, "%a/b% then %c%", true)
	resp := testutil.HTTPSubmitAnswers(t, srv.BaseURL, "a", "x")
	if resp.Status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Status)
	}
	if !strings.Contains(resp.Body, `id="blank-1" name="blank-1" value="x" class="flagged"`) {
		t.Fatalf("expected flagged second field:\n%s", resp.Body)
	}
	if strings.Contains(resp.Body, `value="a" class="flagged"`) {
		t.Fatalf("expected first field to stay unflagged")
	}
	if !strings.Contains(resp.Body, formserver.DefaultMistakeMessage) {
		t.Fatalf("expected mistake message")
	}
	if rec.count() != 0 {
		t.Fatalf("expected no delivery")
	}
	if got := testutil.HTTPGet(t, srv.BaseURL+"/result"); got.Status != http.StatusNotFound {
		t.Fatalf("expected 404 before finish, got %d", got.Status)
	}

	retry := testutil.HTTPSubmitAnswers(t, srv.BaseURL, "b", "c")
	if retry.Status != http.StatusOK {
		t.Fatalf("expected 200 on retry, got %d", retry.Status)
	}
	if diff := cmp.Diff([]trial.Result{{Response: []string{"b", "c"}}}, rec.results); diff != "" {
		t.Fatalf("delivery mismatch (-want +got):\n%s", diff)
	}
}

// TestSubmitAfterFinish verifies a second submit is refused.
func TestSubmitAfterFinish(t *testing.T) {
	srv, rec := startForm(t, "%a%", false)
	if resp := testutil.HTTPSubmitAnswers(t, srv.BaseURL, "z"); resp.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Status)
	}
	if resp := testutil.HTTPSubmitAnswers(t, srv.BaseURL, "a"); resp.Status != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Status)
	}
	if rec.count() != 1 {
		t.Fatalf("expected exactly one delivery, got %d", rec.count())
	}
}

// TestSubmitCompletenessGate verifies empty answers are rejected when blanks are disallowed.
func TestSubmitCompletenessGate(t *testing.T) {
	rec := &recorder{}
	cfg := trial.DefaultConfig("%% and %%")
	cfg.AllowBlanks = false
	srv := testutil.StartFormServer(t, formserver.Config{Trial: cfg, Finisher: rec, MistakeMessage: "Fill every gap."})
	resp := testutil.HTTPSubmitAnswers(t, srv.BaseURL, "one")
	if resp.Status != http.StatusUnprocessableEntity || !strings.Contains(resp.Body, "Fill every gap.") {
		t.Fatalf("expected rejection with custom message, got %d", resp.Status)
	}
	if strings.Contains(resp.Body, "flagged") {
		t.Fatalf("completeness failures must not flag fields")
	}
}

// TestMethodNotAllowed verifies wrong methods are refused.
func TestMethodNotAllowed(t *testing.T) {
	srv, _ := startForm(t, "%a%", false)
	if resp := testutil.HTTPGet(t, srv.BaseURL+"/submit"); resp.Status != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.Status)
	}
	if resp := testutil.HTTPGet(t, srv.BaseURL+"/missing"); resp.Status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Status)
	}
}

// TestNewHandlerRequiresFinisher verifies the finisher is mandatory.
func TestNewHandlerRequiresFinisher(t *testing.T) {
	if _, err := formserver.NewHandler(formserver.Config{Trial: trial.DefaultConfig("%a%")}); err != trial.ErrNoFinisher {
		t.Fatalf("expected ErrNoFinisher, got %v", err)
	}
}
