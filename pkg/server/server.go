// Package server exposes the labeling engines over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/klog/v2"

	"github.com/borsosbarna/graph-labeling/pkg/api/v1alpha1"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling"
	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
	"github.com/borsosbarna/graph-labeling/pkg/graphio"
)

// MaxRunTime caps the maxTime a request may ask for.
const MaxRunTime = 60 * time.Second

// Request limits. A run allocates one label per vertex for every GA
// individual or SA trajectory before its time budget starts, so the limits
// bound memory where MaxRunTime cannot.
const (
	DefaultMaxBodyBytes = 1 << 20
	DefaultMaxVertices  = 2000
	// DefaultMaxLabels caps individuals (or trajectories) times vertices.
	DefaultMaxLabels = 1 << 22
)

// historySamples bounds the history returned with a GA response.
const historySamples = 100

// Server routes labeling requests to the engines.
type Server struct {
	router       *gin.Engine
	maxRunTime   time.Duration
	maxBodyBytes int64
	maxVertices  int
	maxLabels    int
	logger       klog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithMaxRunTime overrides MaxRunTime.
func WithMaxRunTime(d time.Duration) Option {
	return func(s *Server) { s.maxRunTime = d }
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) { s.maxBodyBytes = n }
}

// WithMaxVertices overrides DefaultMaxVertices.
func WithMaxVertices(n int) Option {
	return func(s *Server) { s.maxVertices = n }
}

// WithMaxLabels overrides DefaultMaxLabels.
func WithMaxLabels(n int) Option {
	return func(s *Server) { s.maxLabels = n }
}

// New builds the router.
func New(ctx context.Context, opts ...Option) *Server {
	s := &Server{
		router:       gin.New(),
		maxRunTime:   MaxRunTime,
		maxBodyBytes: DefaultMaxBodyBytes,
		maxVertices:  DefaultMaxVertices,
		maxLabels:    DefaultMaxLabels,
		logger:       klog.FromContext(ctx).WithValues("component", "server"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.Use(gin.Recovery(), s.logRequests())
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	api := s.router.Group("/api", s.limitBody())
	api.POST("/GA", s.handleGenetic)
	api.POST("/SA", s.handleAnnealing)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.maxRunTime+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.V(2).Info("Handled request", "method", c.Request.Method, "path", c.Request.URL.Path,
			"status", c.Writer.Status(), "duration", time.Since(start))
	}
}

func (s *Server) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodyBytes)
		c.Next()
	}
}

// bind decodes the request body into req and aborts on failure.
func bind(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		abort(c, http.StatusRequestEntityTooLarge, CodeInvalidInput,
			fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit))
		return false
	}
	abort(c, http.StatusBadRequest, CodeInvalidConfig, err)
	return false
}

func (s *Server) handleGenetic(c *gin.Context) {
	var req GeneticRequest
	if !bind(c, &req) {
		return
	}
	maxTime, err := s.runTime(req.MaxTime)
	if err != nil {
		abort(c, http.StatusBadRequest, CodeInvalidConfig, err)
		return
	}
	args := &v1alpha1.LabelingArgs{
		Engine:   v1alpha1.EngineGenetic,
		H:        *req.H,
		K:        *req.K,
		MaxLabel: req.MaxLabel,
		MaxTime:  metav1.Duration{Duration: maxTime},
		Seed:     seedOf(req.Seed),
		Genetic: &v1alpha1.GeneticArgs{
			Islands:        req.Islands,
			IslandSize:     req.IslandSize,
			MutationChance: *req.MutationChance,
			Elites:         *req.Elites,
			MaxGenerations: req.MaxGenerations,
			WarmStart:      req.WarmStart,
		},
	}
	s.run(c, args, req.FileContent, graphio.FormatBackbone)
}

func (s *Server) handleAnnealing(c *gin.Context) {
	var req AnnealingRequest
	if !bind(c, &req) {
		return
	}
	maxTime, err := s.runTime(req.MaxTime)
	if err != nil {
		abort(c, http.StatusBadRequest, CodeInvalidConfig, err)
		return
	}
	format := graphio.FormatPlain
	if req.MaxLabel > 0 {
		format = graphio.FormatBackbone
	}
	args := &v1alpha1.LabelingArgs{
		Engine:   v1alpha1.EngineAnnealing,
		H:        *req.H,
		K:        *req.K,
		MaxLabel: req.MaxLabel,
		MaxTime:  metav1.Duration{Duration: maxTime},
		Seed:     seedOf(req.Seed),
		Annealing: &v1alpha1.AnnealingArgs{
			Temperature:   req.Temperature,
			CoolingFactor: req.CoolingFactor,
			MaxIterations: req.MaxIterations,
			CoolingFloor:  req.CoolingFloor,
			Restarts:      req.Restarts,
		},
	}
	s.run(c, args, req.FileContent, format)
}

func (s *Server) runTime(seconds int) (time.Duration, error) {
	d := time.Duration(seconds) * time.Second
	if d > s.maxRunTime {
		return 0, fmt.Errorf("maxTime must be at most %v, got %v", s.maxRunTime, d)
	}
	return d, nil
}

func (s *Server) run(c *gin.Context, args *v1alpha1.LabelingArgs, content string, format graphio.Format) {
	ctx := klog.NewContext(c.Request.Context(), s.logger)

	g, err := graphio.ParseString(content, format, graphio.WithMaxVertices(s.maxVertices))
	if err != nil {
		abort(c, http.StatusBadRequest, CodeInvalidInput, err)
		return
	}

	v1alpha1.Default(args)
	if err := s.checkWorkload(args, g.VertexCount()); err != nil {
		abort(c, http.StatusBadRequest, CodeInvalidConfig, err)
		return
	}
	l, err := labeling.New(ctx, args, g)
	if err != nil {
		abort(c, http.StatusBadRequest, errorCode(err), err)
		return
	}
	result, err := l.Run(ctx)
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		abort(c, http.StatusServiceUnavailable, CodeCanceled, err)
		return
	case err != nil:
		abort(c, statusOf(err), errorCode(err), err)
		return
	}
	c.JSON(http.StatusOK, toResponse(result))
}

// checkWorkload rejects runs whose search state would hold more than
// maxLabels labels.
func (s *Server) checkWorkload(args *v1alpha1.LabelingArgs, vertices int) error {
	switch {
	case args.Genetic != nil:
		if exceeds(s.maxLabels, args.Genetic.Islands, args.Genetic.IslandSize, vertices) {
			return fmt.Errorf("populationsCount*populationSize*vertices must be at most %d", s.maxLabels)
		}
	case args.Annealing != nil:
		if exceeds(s.maxLabels, max(args.Annealing.Restarts, 1), vertices) {
			return fmt.Errorf("restarts*vertices must be at most %d", s.maxLabels)
		}
	}
	return nil
}

// exceeds reports whether the product of the positive factors is above
// limit, without overflowing.
func exceeds(limit int, factors ...int) bool {
	for _, f := range factors {
		if f > limit {
			return true
		}
		limit /= max(f, 1)
	}
	return false
}

func toResponse(r *labeling.Result) *Response {
	resp := &Response{
		Time:                r.Elapsed.Seconds(),
		Iterations:          r.Steps,
		Solution:            formatLabels(r.Best.Labels),
		IsCorrect:           r.Best.Correct,
		ConflictingVertexes: r.Best.ConflictCount,
		ChromaticNumber:     r.Best.ChromaticNumber,
		Fitness:             r.Best.Fitness,
	}
	switch r.Engine {
	case v1alpha1.EngineGenetic:
		resp.History = r.SampledHistory(historySamples)
	case v1alpha1.EngineAnnealing:
		temperature := r.Temperature
		resp.Temperature = &temperature
	}
	if r.Warning != nil {
		resp.Warnings = []string{r.Warning.Error()}
	}
	return resp
}

func formatLabels(labels []int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, " ")
}

func seedOf(seed *uint64) uint64 {
	if seed == nil {
		return labeling.RandomSeed()
	}
	return *seed
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, framework.ErrInputFormat):
		return CodeInvalidInput
	case errors.Is(err, framework.ErrConfig):
		return CodeInvalidConfig
	}
	return CodeInternal
}

func statusOf(err error) int {
	if errorCode(err) == CodeInternal {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

func abort(c *gin.Context, status int, code string, err error) {
	c.AbortWithStatusJSON(status, ErrorResponse{ErrorMsg: err.Error(), Code: code})
}
