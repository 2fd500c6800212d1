package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nguyentantai21042004/caption-qa/internal/logger"
)

func (s *implServer) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	api := r.Group("/api/sessions")
	api.GET("/:id/ws", s.handleWebSocket)

	timed := api.Group("", s.withTimeout())
	timed.POST("", s.createSession)
	timed.PUT("/:id", s.resubmitSession)
	timed.DELETE("/:id", s.deleteSession)
	timed.POST("/:id/summary", s.summarize)
	timed.GET("/:id/summary/plan", s.summaryPlan)
	timed.POST("/:id/questions", s.ask)
	timed.GET("/:id/questions", s.listQuestions)

	return r
}

func (s *implServer) Handler() http.Handler {
	return s.engine
}

func (s *implServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "HTTP server listening on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info(ctx, "Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// requestLogger tags each request with an id and logs its outcome.
func (s *implServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := logger.WithFields(c.Request.Context(), "request_id", uuid.NewString())
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		s.logger.Info(ctx, "%s %s -> %d (%s)", c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}

func (s *implServer) withTimeout() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), s.timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
