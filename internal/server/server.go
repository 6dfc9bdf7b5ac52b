package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"cigate/internal/app"
	"cigate/internal/system"
	"cigate/internal/tools"
	appver "cigate/internal/version"
)

// Server exposes the runner over HTTP. Runs are serialised: a request that
// arrives while another run is in progress waits for it to finish.
type Server struct {
	Addr    string
	Session app.Session
	// NewRunner overrides runner construction; nil uses Session.Runner.
	NewRunner func() *tools.Runner

	mu   sync.Mutex
	last *tools.Report
}

type runRequest struct {
	Tools []string  `json:"tools"`
	Paths *[]string `json:"paths"` // null means configured defaults
	Fix   bool      `json:"fix"`
}

type toolInfo struct {
	Tool        string `json:"tool"`
	Stage       string `json:"stage"`
	Description string `json:"description"`
	Critical    bool   `json:"critical"`
	CanFix      bool   `json:"can_fix"`
}

func (s *Server) runner() *tools.Runner {
	if s.NewRunner != nil {
		return s.NewRunner()
	}
	return s.Session.Runner(false)
}

// Handler builds the gin engine serving the API.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(requestLogger())
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": appver.AppVersion})
	})
	api.GET("/tools", s.toolsHandler)
	api.POST("/run", s.runHandler)
	api.GET("/report/last", s.lastHandler)
	api.GET("/report/last/:tool", s.lastToolHandler)
	return r
}

func (s *Server) toolsHandler(c *gin.Context) {
	cfgs := tools.ForProfile(s.Session.Profile)
	if c.Query("all") == "1" {
		cfgs = tools.All()
	}
	out := make([]toolInfo, 0, len(cfgs))
	for _, cfg := range cfgs {
		out = append(out, toolInfo{
			Tool:        string(cfg.ID),
			Stage:       cfg.Stage.String(),
			Description: cfg.Description,
			Critical:    cfg.Critical,
			CanFix:      cfg.CanFix,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) runHandler(c *gin.Context) {
	var req runRequest
	// an empty body, chunked or not, runs the configured defaults
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var requested []string
	if req.Paths != nil {
		requested = append([]string{}, (*req.Paths)...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	paths := s.Session.TargetPaths(requested)
	rep := s.runner().RunAll(c.Request.Context(), paths, req.Fix, req.Tools...)
	s.last = &rep
	system.Logger.Info("run finished", "status", rep.Summary.OverallStatus, "tools", rep.Summary.TotalToolsRun)

	code := http.StatusOK
	if !rep.Passed() {
		code = http.StatusUnprocessableEntity
	}
	c.JSON(code, rep)
}

func (s *Server) lastHandler(c *gin.Context) {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()
	if last == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no run yet"})
		return
	}
	c.JSON(http.StatusOK, last)
}

func (s *Server) lastToolHandler(c *gin.Context) {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()
	if last == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no run yet"})
		return
	}
	res, ok := last.Result(c.Param("tool"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "tool not in last run"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		system.Logger.Debug("http", "method", c.Request.Method, "path", c.Request.URL.Path,
			"status", c.Writer.Status(), "dur", time.Since(start).Round(time.Millisecond))
	}
}

// Start serves until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.Addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	system.Logger.Info("server listening", "addr", s.Addr)
	return srv.ListenAndServe()
}
