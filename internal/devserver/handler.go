package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mondai-quiz/mondai/internal/api"
)

// maxBodySize bounds a submitted result.
const maxBodySize = 1 << 20

// Handler serves the aggregation API.
type Handler struct {
	store Store
	sets  fs.FS
	log   logrus.FieldLogger
	now   func() time.Time
	newID func() string
}

// Option configures a Handler.
type Option func(*Handler)

// WithSets serves fsys under /sets/.
func WithSets(fsys fs.FS) Option {
	return func(h *Handler) { h.sets = fsys }
}

// WithLogger sets the base logger. Each request logs through a child
// entry carrying its request id.
func WithLogger(l logrus.FieldLogger) Option {
	return func(h *Handler) { h.log = l }
}

// WithClock overrides the time source used for receivedAt.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// WithIDs overrides the result id generator.
func WithIDs(newID func() string) Option {
	return func(h *Handler) { h.newID = newID }
}

func NewHandler(store Store, opts ...Option) *Handler {
	silent := logrus.New()
	silent.SetOutput(io.Discard)
	h := &Handler{
		store: store,
		log:   silent,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes builds the router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/results", h.SubmitResult)
		r.Get("/results/{id}", h.GetResult)
		r.Get("/sets/{setId}/stats", h.GetStats)
	})

	if h.sets != nil {
		r.Handle("/sets/*", http.StripPrefix("/sets/", http.FileServer(http.FS(h.sets))))
	}
	return r
}

type ctxKey struct{}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := h.now()
		entry := h.log.WithField("request_id", middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), ctxKey{}, entry)))

		entry.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"latency_ms": h.now().Sub(start).Milliseconds(),
		}).Info("request")
	})
}

func (h *Handler) logFrom(ctx context.Context) logrus.FieldLogger {
	if l, ok := ctx.Value(ctxKey{}).(logrus.FieldLogger); ok {
		return l
	}
	return h.log
}

// SubmitResult stores a result and answers with the set version's
// updated per-question averages.
func (h *Handler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	log := h.logFrom(r.Context())

	var payload api.ResultPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&payload); err != nil {
		log.WithError(err).Warn("invalid result body")
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validatePayload(payload); err != nil {
		log.WithError(err).Warn("rejected result")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := api.StoredResult{
		ID:            h.newID(),
		ResultPayload: payload,
		ReceivedAt:    h.now().UTC().Format("2006-01-02T15:04:05.000Z"),
	}
	if err := h.store.Save(r.Context(), res); err != nil {
		log.WithError(err).WithField("set_id", payload.SetID).Error("save result")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	stats, err := h.store.Stats(r.Context(), payload.SetID, payload.SetVersion)
	if err != nil {
		log.WithError(err).WithField("set_id", payload.SetID).Error("load stats")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	log.WithFields(logrus.Fields{
		"result_id":   res.ID,
		"set_id":      payload.SetID,
		"set_version": payload.SetVersion,
		"answers":     len(payload.Answers),
	}).Info("result stored")

	writeJSON(w, http.StatusCreated, api.SubmitResponse{
		ID:            res.ID,
		QuestionStats: stats.QuestionStats,
	})
}

func (h *Handler) GetResult(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	res, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "result not found")
			return
		}
		h.logFrom(r.Context()).WithError(err).WithField("result_id", id).Error("get result")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	setID := chi.URLParam(r, "setId")
	version, err := strconv.Atoi(r.URL.Query().Get("version"))
	if err != nil || version < 1 {
		writeError(w, http.StatusBadRequest, "version must be a positive integer")
		return
	}

	stats, err := h.store.Stats(r.Context(), setID, version)
	if err != nil {
		h.logFrom(r.Context()).WithError(err).WithField("set_id", setID).Error("get stats")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func validatePayload(p api.ResultPayload) error {
	switch {
	case strings.TrimSpace(p.ClientID) == "":
		return errors.New("clientId is required")
	case strings.TrimSpace(p.SetID) == "":
		return errors.New("setId is required")
	case p.SetVersion < 1:
		return errors.New("setVersion must be at least 1")
	case len(p.Answers) == 0:
		return errors.New("answers must not be empty")
	}
	for i, a := range p.Answers {
		if a.QuestionID == "" {
			return fmt.Errorf("answers[%d].questionId is required", i)
		}
		if a.ElapsedMs < 0 {
			return fmt.Errorf("answers[%d].elapsedMs must not be negative", i)
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
