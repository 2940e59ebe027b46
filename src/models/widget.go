package models

// -----------------------------------------------------------------------------
// Widget descriptor (dashboard panel metadata)
// -----------------------------------------------------------------------------

type MWidget struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Type        string         `json:"type"` // "table" or "markdown"
	Endpoint    string         `json:"endpoint"`
	GridData    MGridData      `json:"gridData"`
	Source      string         `json:"source,omitempty"`
	Params      []MWidgetParam `json:"params,omitempty"`
	Data        *MWidgetData   `json:"data,omitempty"`
}

type MGridData struct {
	W int `json:"w"`
	H int `json:"h"`
}

type MWidgetParam struct {
	ParamName   string         `json:"paramName"`
	Value       interface{}    `json:"value"`
	Label       string         `json:"label"`
	Description string         `json:"description,omitempty"`
	Type        string         `json:"type"` // "text", "number", "endpoint"...
	Options     []MParamOption `json:"options,omitempty"`
}

type MParamOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type MWidgetData struct {
	Table *MTableData `json:"table,omitempty"`
}

type MTableData struct {
	ShowAll    bool         `json:"showAll"`
	ColumnDefs []MColumnDef `json:"columnsDefs"`
}

type MColumnDef struct {
	Field        string `json:"field"`
	HeaderName   string `json:"headerName"`
	CellDataType string `json:"cellDataType"`
	RenderFn     string `json:"renderFn,omitempty"` // "greenRed" colors by sign
}
