package dto

// Render payload vocabulary. Pages describe what to draw (cards, charts,
// tables); the SPA front end decides how to draw it.

const (
	SectionChart  = "chart"
	SectionTable  = "table"
	SectionNotes  = "notes"
	SectionNotice = "notice"
)

const (
	ChartLine      = "line"
	ChartBar       = "bar"
	ChartPie       = "pie"
	ChartScatter   = "scatter"
	ChartHistogram = "histogram"
)

type PageResponse struct {
	Page     string `json:"page" example:"overview"`
	Title    string `json:"title" example:"Overview"`
	Subtitle string `json:"subtitle,omitempty" example:"Key metrics at a glance"`
	Stamp    string `json:"stamp,omitempty" example:"20250114_093000"`
	LoadedAt string `json:"loaded_at,omitempty" example:"2025-01-14T09:35:12Z"`
	Cards    []Card `json:"cards,omitempty"`
	Tabs     []Tab  `json:"tabs,omitempty"`
}

type Card struct {
	Label string `json:"label" example:"Total Questions"`
	Value string `json:"value" example:"1,284"`
	Hint  string `json:"hint,omitempty" example:"87.5% of traces"`
}

type Tab struct {
	Name     string    `json:"name" example:"Cost Analysis"`
	Sections []Section `json:"sections"`
}

type Section struct {
	Title  string     `json:"title,omitempty" example:"Weekly Cost"`
	Kind   string     `json:"kind" example:"chart"`
	Chart  *Chart     `json:"chart,omitempty"`
	Table  *TableData `json:"table,omitempty"`
	Notes  []string   `json:"notes,omitempty"`
	Notice *Notice    `json:"notice,omitempty"`
}

type Chart struct {
	Type    string   `json:"type" example:"bar"`
	XLabel  string   `json:"x_label,omitempty" example:"Week"`
	YLabel  string   `json:"y_label,omitempty" example:"Cost ($)"`
	Series  []Series `json:"series"`
	Markers []Marker `json:"markers,omitempty"`
}

type Series struct {
	Name   string    `json:"name,omitempty" example:"Questions"`
	Labels []string  `json:"labels,omitempty"`
	Values []float64 `json:"values,omitempty"`
	Points []Point   `json:"points,omitempty"`
}

type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty" example:"2025-W03"`
}

type Marker struct {
	Label string  `json:"label" example:"P95"`
	Value float64 `json:"value" example:"2.41"`
}

type TableData struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type Notice struct {
	Level   string `json:"level" example:"info"`
	Message string `json:"message" example:"Latency data is not available in this upload."`
}

// ChartSection, TableSection, NotesSection and NoticeSection are the
// constructors pages use so the section kind always matches its content.

func ChartSection(title string, chart *Chart) Section {
	return Section{Title: title, Kind: SectionChart, Chart: chart}
}

func TableSection(title string, table *TableData) Section {
	return Section{Title: title, Kind: SectionTable, Table: table}
}

func NotesSection(title string, notes ...string) Section {
	return Section{Title: title, Kind: SectionNotes, Notes: notes}
}

func NoticeSection(level, message string) Section {
	return Section{Kind: SectionNotice, Notice: &Notice{Level: level, Message: message}}
}
