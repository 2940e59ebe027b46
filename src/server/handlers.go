package server

import (
	"errors"
	"net/http"
	"os"

	"widget-backend/src/helpers"
	"widget-backend/src/models"
	"widget-backend/src/service"
	"widget-backend/src/utils"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// Discovery
// -----------------------------------------------------------------------------

func (s *Server) getRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"Info": banner})
}

// -----------------------------------------------------------------------------

func (s *Server) getWidgets(c *gin.Context) {
	c.JSON(http.StatusOK, s.Registry.All())
}

// -----------------------------------------------------------------------------

func (s *Server) getTemplates(c *gin.Context) {
	data, err := os.ReadFile(s.Config.TemplatesPath)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// -----------------------------------------------------------------------------

func (s *Server) getHealth(c *gin.Context) {
	var latest int64
	s.stateMutex.RLock()
	for _, snap := range s.snapshots {
		if snap.Timestamp > latest {
			latest = snap.Timestamp
		}
	}
	s.stateMutex.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"connections":   s.connections.Load(),
		"latest_update": latest,
	})
}

// -----------------------------------------------------------------------------
// Widget Data
// -----------------------------------------------------------------------------

func (s *Server) getOSSCompanyStats(c *gin.Context) {
	tickers := utils.ParseIdentifiers(c.Query("tickers"), s.Config.Defaults.Tickers)
	rows, err := s.Service.OSSCompanyStats(c.Request.Context(), tickers)
	s.table(c, rows, err)
}

// -----------------------------------------------------------------------------

func (s *Server) getGitHubStats(c *gin.Context) {
	repos := utils.ParseIdentifiers(c.Query("repos"), s.Config.Defaults.Repositories)
	rows, err := s.Service.GitHubStats(c.Request.Context(), repos)
	s.table(c, rows, err)
}

// -----------------------------------------------------------------------------

func (s *Server) getGitHubTrending(c *gin.Context) {
	days, err := service.ParseTimePeriod(c.Query("time_period"))
	if err != nil {
		s.fail(c, err)
		return
	}
	rows, err := s.Service.Trending(c.Request.Context(), days, c.Query("language"))
	s.table(c, rows, err)
}

// -----------------------------------------------------------------------------

func (s *Server) getGitHubStarHistory(c *gin.Context) {
	repos := utils.ParseIdentifiers(c.Query("repos"), s.Config.Defaults.StarHistory)
	md, err := s.Service.StarHistory(c.Request.Context(), repos, c.Query("chart_type"), c.Query("theme"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, md)
}

// -----------------------------------------------------------------------------
// Responses
// -----------------------------------------------------------------------------

func (s *Server) table(c *gin.Context, rows []models.MRow, err error) {
	if err != nil {
		s.fail(c, err)
		return
	}
	if rows == nil {
		rows = []models.MRow{}
	}
	c.JSON(http.StatusOK, rows)
}

// -----------------------------------------------------------------------------

// fail answers 400 for rejected input and 500 for everything else.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var vErr *helpers.ValidationError
	if errors.As(err, &vErr) {
		status = http.StatusBadRequest
	} else {
		s.Logger.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
