package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/garaevmir/NanoServices/internal/dto"
)

const healthCheckTimeout = 2 * time.Second

// OpsHandler serves the /health and /metrics endpoints of a gRPC service process
type OpsHandler struct {
	checks []HealthCheck
	router *gin.Engine
	log    *zap.Logger
}

func NewOpsHandler(log *zap.Logger, checks ...HealthCheck) *OpsHandler {
	h := &OpsHandler{
		checks: checks,
		router: gin.New(),
		log:    log,
	}

	h.router.Use(gin.Recovery())
	h.router.GET("/health", h.healthCheck)
	h.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return h
}

func (h *OpsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// healthCheck runs every dependency check; any failure turns the response into 503
func (h *OpsHandler) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	code := http.StatusOK

	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			h.log.Warn("Health check failed", zap.String("check", check.Name), zap.Error(err))
			resp.Checks[check.Name] = err.Error()
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[check.Name] = "ok"
	}

	c.JSON(code, resp)
}
