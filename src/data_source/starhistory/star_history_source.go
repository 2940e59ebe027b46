package starhistory

import (
	"context"
	"fmt"
	"strings"

	"widget-backend/src/interfaces"
	"widget-backend/src/logger"
	"widget-backend/src/models"
)

const defaultContentType = "image/svg+xml"

// StarHistorySource calls the star-history.com renderer, which needs no
// credentials and answers with an SVG chart.
type StarHistorySource struct {
	Config  models.MProviderConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewStarHistorySource(cfg models.MProviderConfig, netMgr interfaces.INetworkManager, log *logger.Logger) *StarHistorySource {
	return &StarHistorySource{
		Config:  cfg,
		Network: netMgr,
		Logger:  log,
	}
}

// -----------------------------------------------------------------------------

// StarHistory renders repos as one chart. Errors from a non-2xx answer are
// *helpers.UpstreamStatusError.
func (s *StarHistorySource) StarHistory(ctx context.Context, repos []string, chartType, theme string) (*models.MChartImage, error) {
	params := map[string]string{
		"repos": strings.Join(repos, ","),
		"type":  chartType,
	}
	if theme != "" {
		params["theme"] = theme
	}

	resp, err := s.Network.Get(ctx, strings.TrimRight(s.Config.BaseURL, "/")+"/svg", params, nil)
	if err != nil {
		return nil, fmt.Errorf("star history: %w", err)
	}

	contentType := resp.ContentType
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		contentType = defaultContentType
	}

	s.Logger.Debug("Rendered star history for %d repositories (%d bytes)", len(repos), len(resp.Body))
	return &models.MChartImage{ContentType: contentType, Data: resp.Body}, nil
}
