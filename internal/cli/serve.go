package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/skyline/pkg/buildinfo"
	"github.com/matzehuels/skyline/pkg/deadline"
	"github.com/matzehuels/skyline/pkg/errors"
	"github.com/matzehuels/skyline/pkg/observability"
	"github.com/matzehuels/skyline/pkg/pipeline"
	"github.com/matzehuels/skyline/pkg/render/chart"
)

const (
	defaultAddr     = ":8080"
	shutdownTimeout = 5 * time.Second
)

// serveCommand creates the command that serves charts over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr         string
		dataDir      string
		registry     string
		variantsFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve charts over HTTP",
		Long: `Serve charts over HTTP.

Routes:
  GET /charts/{term}/{assignment}?data=<file>&format=svg|png|pdf|json&variant=<name>
  GET /deadlines
  GET /variants
  GET /healthz

The data parameter is a path relative to --data-dir.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadRegistry(registry)
			if err != nil {
				return err
			}
			variants, err := c.loadVariants(variantsFile)
			if err != nil {
				return err
			}
			s := &server{
				logger:   c.Logger,
				runner:   c.newRunner(),
				dataDir:  dataDir,
				registry: table,
				variants: chart.DefaultVariants().Merge(variants),
			}
			return s.listen(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&dataDir, "data-dir", ".", "directory data paths are resolved against")
	cmd.Flags().StringVar(&registry, "registry", "", "registry file merged over the built-in table (.json or .toml)")
	cmd.Flags().StringVar(&variantsFile, "variants", "", "TOML file with user variants")

	return cmd
}

// server answers chart requests. Each request runs its own pipeline; the
// registry and variants are read-only after startup.
type server struct {
	logger   *log.Logger
	runner   *pipeline.Runner
	dataDir  string
	registry deadline.Table
	variants chart.Variants
}

// routes builds the router.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.withRequestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/deadlines", instrument("/deadlines", s.handleDeadlines))
	r.Get("/variants", instrument("/variants", s.handleVariants))
	r.Get("/charts/{term}/{assignment}", instrument("/charts/{term}/{assignment}", s.handleChart))
	return r
}

// listen serves until ctx is cancelled, then shuts down gracefully.
func (s *server) listen(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	printInfo("Listening on %s", StyleValue.Render(addr))

	select {
	case err := <-errc:
		return errors.Wrap(errors.ErrCodeInternal, err, "listen %s", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "shutdown")
	}
	return nil
}

// withRequestLogger attaches a request-scoped logger to the context and
// names the build in the Server header.
func (s *server) withRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", buildinfo.Product())
		next.ServeHTTP(w, r.WithContext(withLogger(r.Context(), requestLogger(s.logger, r))))
	})
}

// instrument reports requests on route to the HTTP hooks.
func instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, route)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		h(ww, r)

		hooks.OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))
		loggerFromContext(r.Context()).Debug("request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"duration", time.Since(start))
	}
}

func (s *server) handleDeadlines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry)
}

func (s *server) handleVariants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.variants)
}

func (s *server) handleChart(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r.Context())
	opts, err := s.chartOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Logger = logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		logger.Warn("chart failed", "term", opts.Term, "assignment", opts.Assignment, "err", err)
		writeError(w, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Run-ID", result.ID.String())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// chartOptions builds pipeline options from the route and query.
func (s *server) chartOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	data := q.Get("data")
	if err := errors.ValidatePath(data); err != nil {
		return pipeline.Options{}, err
	}

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}

	opts := pipeline.Options{
		Data:       filepath.Join(s.dataDir, filepath.FromSlash(data)),
		Term:       chi.URLParam(r, "term"),
		Assignment: chi.URLParam(r, "assignment"),
		Variant:    q.Get("variant"),
		Formats:    []string{format},
		Title:      q.Get("title"),
		Deadlines:  s.registry,
		Variants:   s.variants,
	}
	if v := q.Get("grace_days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "grace_days must be an integer")
		}
		opts.GraceDays = &n
	}
	opts.NoWindow = q.Get("window") == "off"
	return opts, nil
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrCodeFileNotFound), errors.Is(err, errors.ErrCodeDeadlineNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeMalformedRecord), errors.Is(err, errors.ErrCodeEmptyDataset):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidVariant,
		errors.ErrCodeInvalidPath, errors.ErrCodeInvalidKey:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

type errorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorBody{
		Code:  string(errors.GetCode(err)),
		Error: errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
