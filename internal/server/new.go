package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nguyentantai21042004/caption-qa/internal/config"
	"github.com/nguyentantai21042004/caption-qa/internal/logger"
	"github.com/nguyentantai21042004/caption-qa/internal/models"
	"github.com/nguyentantai21042004/caption-qa/internal/session"
)

type implServer struct {
	sessions      session.Service
	addr          string
	timeout       time.Duration
	defaultFormat models.OutputFormat
	logger        logger.Logger
	engine        *gin.Engine
}

// New creates a Server. defaultFormat applies to summary requests that name none.
func New(svc session.Service, cfg config.ServerConfig, defaultFormat models.OutputFormat, log logger.Logger) Server {
	s := &implServer{
		sessions:      svc,
		addr:          cfg.Addr,
		timeout:       cfg.RequestTimeout,
		defaultFormat: defaultFormat,
		logger:        log,
	}
	s.engine = s.routes()
	return s
}
