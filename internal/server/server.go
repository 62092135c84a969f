// internal/server/server.go
// Package server exposes the dashboard over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mwiater/salarydash/internal/charts"
	"github.com/mwiater/salarydash/internal/dashboard"
	"github.com/mwiater/salarydash/internal/logging"
	"github.com/mwiater/salarydash/internal/render"
	"github.com/mwiater/salarydash/internal/report"
	"github.com/mwiater/salarydash/internal/salary"
)

const shutdownTimeout = 5 * time.Second

type handler struct {
	dash *dashboard.Dashboard
}

// NewRouter wires every dashboard route onto a gin engine.
func NewRouter(dash *dashboard.Dashboard) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	h := &handler{dash: dash}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/", h.page)

	api := r.Group("/api/v1")
	{
		api.GET("/options", h.options)
		api.GET("/summary", h.summary)
		api.GET("/figures", h.figures)
		api.GET("/figures/country.png", h.countryPNG)
		api.GET("/figures/comparison.png", h.comparisonPNG)
	}
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logging.LogRequest(c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func selection(c *gin.Context) dashboard.Selection {
	return dashboard.Selection{
		Country:       c.Query("country"),
		Qualification: c.Query("qualification"),
		Measure:       c.Query("measure"),
	}
}

// fail maps lookup errors to 400 and everything else to 500.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, salary.ErrUnknownCategory) {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (h *handler) options(c *gin.Context) {
	c.JSON(http.StatusOK, h.dash.Options())
}

func (h *handler) summary(c *gin.Context) {
	rows, err := h.dash.Summary(c.Request.Context(), c.Query("measure"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows, "count": len(rows)})
}

func (h *handler) figures(c *gin.Context) {
	figs, err := h.dash.Handle(c.Request.Context(), selection(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, figs)
}

func (h *handler) countryPNG(c *gin.Context) {
	h.png(c, func(f dashboard.Figures) charts.Figure { return f.Country })
}

func (h *handler) comparisonPNG(c *gin.Context) {
	h.png(c, func(f dashboard.Figures) charts.Figure { return f.Comparison })
}

func (h *handler) png(c *gin.Context, pick func(dashboard.Figures) charts.Figure) {
	figs, err := h.dash.Handle(c.Request.Context(), selection(c))
	if err != nil {
		fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := render.PNG(&buf, pick(figs)); err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *handler) page(c *gin.Context) {
	figs, err := h.dash.Handle(c.Request.Context(), selection(c))
	if err != nil {
		fail(c, err)
		return
	}
	html, err := report.Generate(figs, h.dash.Options())
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// Run serves the dashboard on addr until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, addr string, dash *dashboard.Dashboard) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(dash),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.LogEvent("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logging.LogEvent("server shutting down")
	return srv.Shutdown(shutdownCtx)
}
