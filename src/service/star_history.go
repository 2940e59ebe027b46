package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"slices"
	"strings"

	"widget-backend/src/helpers"
	"widget-backend/src/utils"
	"widget-backend/src/widgets"
)

const (
	defaultTheme     = "light"
	starHistoryTitle = "## GitHub Star History"
)

// ValidateStarHistory checks the caller input and fills defaults. It runs
// before any outbound call.
func (s *WidgetService) ValidateStarHistory(repos []string, chartType, theme string) ([]string, string, string, error) {
	if len(repos) == 0 {
		repos = append([]string(nil), s.Defaults.StarHistory...)
	}
	if len(repos) > utils.MaxStarHistoryRepos {
		return nil, "", "", helpers.NewValidationError("at most %d repositories can be charted, got %d",
			utils.MaxStarHistoryRepos, len(repos))
	}

	if chartType == "" {
		chartType = widgets.ChartTypes[0]
	}
	if !slices.Contains(widgets.ChartTypes, chartType) {
		return nil, "", "", helpers.NewValidationError("chart_type must be one of %s, got %q",
			strings.Join(widgets.ChartTypes, ", "), chartType)
	}

	if theme == "" {
		theme = defaultTheme
	}
	return repos, chartType, theme, nil
}

// -----------------------------------------------------------------------------

// StarHistory renders the chart as a markdown document with the image inlined
// as a data URI. An upstream refusal is reported inside the markdown; only
// validation and transport failures are returned as errors.
func (s *WidgetService) StarHistory(ctx context.Context, repos []string, chartType, theme string) (string, error) {
	repos, chartType, theme, err := s.ValidateStarHistory(repos, chartType, theme)
	if err != nil {
		return "", err
	}

	img, err := s.Charts.StarHistory(ctx, repos, chartType, theme)
	if err != nil {
		var statusErr *helpers.UpstreamStatusError
		if errors.As(err, &statusErr) {
			s.Logger.Warning("Star history rejected for %s: %v", strings.Join(repos, ","), err)
			return fmt.Sprintf("%s\n\nFailed to fetch star history: %s\n", starHistoryTitle, statusErr.Error()), nil
		}
		return "", err
	}

	encoded := base64.StdEncoding.EncodeToString(img.Data)
	return fmt.Sprintf("%s\n\n%s\n\n![Star History Chart](data:%s;base64,%s)\n",
		starHistoryTitle, strings.Join(repos, ", "), img.ContentType, encoded), nil
}
