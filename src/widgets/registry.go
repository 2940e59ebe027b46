// Package widgets holds the static dashboard metadata: one descriptor per
// endpoint, built once at startup and read-only afterwards.
package widgets

import (
	"fmt"
	"strings"

	"widget-backend/src/models"
	"widget-backend/src/utils"
)

// Widget ids, which are also the route names.
const (
	OSSCompanyStats   = "oss-company-stats"
	GitHubStats       = "github-stats"
	GitHubTrending    = "github-trending"
	GitHubStarHistory = "github-star-history"
)

// Column names shared by the descriptors and the row mappers.
const (
	ColTicker      = "Ticker"
	ColName        = "Name"
	ColChange1W    = "Price Chg % (1W)"
	ColMarketCap   = "Market Cap [B]"
	ColRevenue     = "Total Revenues (LTM) [M]"
	ColChange1D    = "1-Day %"
	ColReturn1Y    = "Total Return (1Y)"
	ColReturn3Y    = "Total Return (3Y)"
	ColEVToSales   = "EV/Sales (LTM)"
	ColRepository  = "Repository"
	ColStars       = "Stars"
	ColForks       = "Forks"
	ColOpenIssues  = "Open Issues"
	ColLastUpdate  = "Last Update"
	ColDescription = "Description"
	ColURL         = "URL"
)

// Chart types accepted by the star history renderer.
var ChartTypes = []string{"Date", "Timeline"}

// -----------------------------------------------------------------------------

// Registry maps widget ids to descriptors.
type Registry struct {
	widgets map[string]models.MWidget
	order   []string
}

// -----------------------------------------------------------------------------

// NewRegistry builds the descriptors. Parameter defaults come from cfg and
// equitySource names the financial provider shown on the equity panel.
func NewRegistry(cfg *models.MConfig, equitySource string) *Registry {
	r := &Registry{widgets: make(map[string]models.MWidget)}

	r.add(OSSCompanyStats, models.MWidget{
		Name:        "OSS Company Stats",
		Description: "Shows OSS companies stats",
		Category:    "Equities",
		Type:        "table",
		GridData:    models.MGridData{W: 40, H: 15},
		Source:      equitySource,
		Params: []models.MWidgetParam{{
			ParamName:   "tickers",
			Value:       strings.Join(cfg.Defaults.Tickers, ","),
			Label:       "Tickers",
			Description: "Comma separated ticker symbols",
			Type:        "text",
		}},
		Data: table(
			textCol(ColTicker, "Ticker"),
			textCol(ColName, "Name"),
			signedCol(ColChange1W, "1W Change"),
			textCol(ColMarketCap, "Market Cap [B]"),
			textCol(ColRevenue, "Revenue (LTM) [M]"),
			signedCol(ColChange1D, "1D Change"),
			signedCol(ColReturn1Y, "1Y Return"),
			signedCol(ColReturn3Y, "3Y Return"),
			textCol(ColEVToSales, "EV/Sales"),
		),
	})

	r.add(GitHubStats, models.MWidget{
		Name:        "GitHub Repository Stats",
		Description: "Shows GitHub repository statistics",
		Category:    "Open Source",
		Type:        "table",
		GridData:    models.MGridData{W: 40, H: 15},
		Source:      "GitHub",
		Params: []models.MWidgetParam{{
			ParamName:   "repos",
			Value:       strings.Join(cfg.Defaults.Repositories, ","),
			Label:       "Repositories",
			Description: "Comma separated owner/repo names",
			Type:        "text",
		}},
		Data: table(
			textCol(ColRepository, "Repository"),
			numberCol(ColStars, "Stars"),
			numberCol(ColForks, "Forks"),
			numberCol(ColOpenIssues, "Open Issues"),
			textCol(ColLastUpdate, "Last Update"),
		),
	})

	r.add(GitHubTrending, models.MWidget{
		Name:        "GitHub Trending Repositories",
		Description: "Most starred repositories created in the last days",
		Category:    "Open Source",
		Type:        "table",
		GridData:    models.MGridData{W: 40, H: 15},
		Source:      "GitHub",
		Params: []models.MWidgetParam{
			{
				ParamName:   "time_period",
				Value:       utils.DefaultTrendingDays,
				Label:       "Days",
				Description: "Only repositories created in this many days",
				Type:        "number",
			},
			{
				ParamName:   "language",
				Value:       "",
				Label:       "Language",
				Description: "Optional programming language filter",
				Type:        "text",
			},
		},
		Data: table(
			textCol(ColRepository, "Repository"),
			numberCol(ColStars, "Stars"),
			textCol(ColDescription, "Description"),
			textCol(ColURL, "URL"),
		),
	})

	chartOptions := make([]models.MParamOption, 0, len(ChartTypes))
	for _, c := range ChartTypes {
		chartOptions = append(chartOptions, models.MParamOption{Label: c, Value: c})
	}
	r.add(GitHubStarHistory, models.MWidget{
		Name:        "GitHub Star History",
		Description: fmt.Sprintf("Star history chart of up to %d repositories", utils.MaxStarHistoryRepos),
		Category:    "Open Source",
		Type:        "markdown",
		GridData:    models.MGridData{W: 20, H: 12},
		Source:      "star-history.com",
		Params: []models.MWidgetParam{
			{
				ParamName:   "repos",
				Value:       strings.Join(cfg.Defaults.StarHistory, ","),
				Label:       "Repositories",
				Description: fmt.Sprintf("Comma separated owner/repo names (max %d)", utils.MaxStarHistoryRepos),
				Type:        "text",
			},
			{
				ParamName: "chart_type",
				Value:     ChartTypes[0],
				Label:     "Chart Type",
				Type:      "text",
				Options:   chartOptions,
			},
			{
				ParamName: "theme",
				Value:     "light",
				Label:     "Theme",
				Type:      "text",
				Options: []models.MParamOption{
					{Label: "Light", Value: "light"},
					{Label: "Dark", Value: "dark"},
				},
			},
		},
	})

	return r
}

// -----------------------------------------------------------------------------

func (r *Registry) add(id string, w models.MWidget) {
	w.Endpoint = id
	if _, exists := r.widgets[id]; !exists {
		r.order = append(r.order, id)
	}
	r.widgets[id] = w
}

// -----------------------------------------------------------------------------

// Get returns the descriptor of id.
func (r *Registry) Get(id string) (models.MWidget, bool) {
	w, ok := r.widgets[id]
	return w, ok
}

// IDs lists widget ids in registration order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// All returns a copy of the registry keyed by widget id.
func (r *Registry) All() map[string]models.MWidget {
	out := make(map[string]models.MWidget, len(r.widgets))
	for id, w := range r.widgets {
		out[id] = w
	}
	return out
}

// -----------------------------------------------------------------------------

func table(cols ...models.MColumnDef) *models.MWidgetData {
	return &models.MWidgetData{Table: &models.MTableData{ShowAll: true, ColumnDefs: cols}}
}

func textCol(field, header string) models.MColumnDef {
	return models.MColumnDef{Field: field, HeaderName: header, CellDataType: "text"}
}

func numberCol(field, header string) models.MColumnDef {
	return models.MColumnDef{Field: field, HeaderName: header, CellDataType: "number"}
}

func signedCol(field, header string) models.MColumnDef {
	return models.MColumnDef{Field: field, HeaderName: header, CellDataType: "number", RenderFn: "greenRed"}
}
