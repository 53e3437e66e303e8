package server

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/campus-dev/campus/internal/sysinfo"
)

// SystemStatus combines host metrics with the running version
type SystemStatus struct {
	Version string          `json:"version"`
	Metrics sysinfo.Metrics `json:"metrics"`
}

// @Summary System status
// @Description Host metrics for the platform operator (admin only)
// @Tags system
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SystemStatus
// @Router /api/system [get]
func (s *Server) getSystemStatus(c *gin.Context) {
	metrics, err := sysinfo.GetMetrics(filepath.Dir(s.config.Database.URL))
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to collect system metrics")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to collect system metrics"})
		return
	}

	c.JSON(http.StatusOK, SystemStatus{
		Version: s.version,
		Metrics: metrics,
	})
}
