package formserver

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"cloze/internal/cloze"
	"cloze/internal/trial"
)

// DefaultMistakeMessage is shown after a rejected submit.
const DefaultMistakeMessage = "Some answers are missing or incorrect. Please check the highlighted fields."

// FieldName returns the form field name of a blank.
func FieldName(id int) string {
	return fmt.Sprintf("blank-%d", id)
}

// Handler serves one cloze trial as an HTML form.
type Handler struct {
	mux      *http.ServeMux
	tmpl     *template.Template
	assets   AssetResolver
	title    string
	message  string
	logger   *zap.Logger
	done     chan struct{}
	doneOnce sync.Once

	mu      sync.Mutex
	trial   *trial.Trial
	mistake bool
}

// NewHandler builds the HTTP handler for a single trial.
func NewHandler(cfg Config) (*Handler, error) {
	if cfg.Finisher == nil {
		return nil, trial.ErrNoFinisher
	}
	tmpl, err := loadFormTemplate()
	if err != nil {
		return nil, err
	}
	assetsFS, err := embeddedAssetsFS()
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		mux:     http.NewServeMux(),
		tmpl:    tmpl,
		assets:  newAssetResolver(cfg.AssetsBaseURL),
		title:   cfg.Title,
		message: cfg.MistakeMessage,
		logger:  logger,
		done:    make(chan struct{}),
	}
	if h.title == "" {
		h.title = "Cloze"
	}
	if h.message == "" {
		h.message = DefaultMistakeMessage
	}

	trialCfg := cfg.Trial
	userMistake := trialCfg.Mistake
	trialCfg.Mistake = func() {
		h.mistake = true
		if userMistake != nil {
			userMistake()
		}
	}
	h.trial, err = trial.New(trialCfg, trial.Options{Finisher: cfg.Finisher, Logger: logger})
	if err != nil {
		return nil, err
	}

	h.mux.HandleFunc("/", h.serveForm)
	h.mux.HandleFunc("/submit", h.serveSubmit)
	h.mux.HandleFunc("/result", h.serveResult)
	h.mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(assetsFS))))
	return h, nil
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Done is closed once the trial has finished.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}

// serveForm renders the current form state.
func (h *Handler) serveForm(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.render(w, http.StatusOK)
}

// serveSubmit reads the posted answers and submits them to the trial.
func (h *Handler) serveSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.trial.Finished() {
		http.Error(w, "trial already finished", http.StatusConflict)
		return
	}
	for _, field := range h.trial.Fields() {
		if err := h.trial.SetValue(field.ID, r.PostFormValue(FieldName(field.ID))); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	h.mistake = false
	outcome, err := h.trial.Submit()
	if err != nil {
		if errors.Is(err, trial.ErrFinished) {
			http.Error(w, "trial already finished", http.StatusConflict)
			return
		}
		h.logger.Error("submit failed", zap.Error(err))
		http.Error(w, "could not record response", http.StatusInternalServerError)
		return
	}
	if !outcome.Finished {
		h.render(w, http.StatusUnprocessableEntity)
		return
	}
	h.doneOnce.Do(func() { close(h.done) })
	h.writeResult(w)
}

// serveResult returns the delivered result once the trial finished.
func (h *Handler) serveResult(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.trial.Finished() {
		http.Error(w, "trial not finished", http.StatusNotFound)
		return
	}
	h.writeResult(w)
}

// writeResult encodes the delivered result as JSON. Callers hold mu.
func (h *Handler) writeResult(w http.ResponseWriter) {
	result, _ := h.trial.Result()
	payload, err := trial.EncodeResult(result, h.trial.Template().Blanks())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

type formPart struct {
	Blank     bool
	Text      string
	Name      string
	Value     string
	Flagged   bool
	Autofocus bool
}

type formView struct {
	Title          string
	StyleURL       string
	Parts          []formPart
	Button         string
	Finished       bool
	Mistake        bool
	MistakeMessage string
}

// render writes the form page with status. Callers hold mu.
func (h *Handler) render(w http.ResponseWriter, status int) {
	fields := h.trial.Fields()
	focus := h.trial.Focus()
	view := formView{
		Title:          h.title,
		StyleURL:       h.assets.URL(styleName),
		Button:         h.trial.Button(),
		Finished:       h.trial.Finished(),
		Mistake:        h.mistake,
		MistakeMessage: h.message,
	}
	for _, segment := range h.trial.Segments() {
		if segment.Kind == cloze.SegmentText {
			view.Parts = append(view.Parts, formPart{Text: segment.Text})
			continue
		}
		field := fields[segment.Blank]
		view.Parts = append(view.Parts, formPart{
			Blank:     true,
			Name:      FieldName(field.ID),
			Value:     field.Value,
			Flagged:   field.Flagged,
			Autofocus: field.ID == focus,
		})
	}
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, formTemplateName, view); err != nil {
		h.logger.Error("render form", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
