package dto

type MetaResponse struct {
	Title   string     `json:"title" example:"Question Insights"`
	Icon    string     `json:"icon,omitempty" example:"https://example.org/icon.svg"`
	Theme   string     `json:"theme" example:"light"`
	Version string     `json:"version" example:"2.0.0"`
	Pages   []PageInfo `json:"pages"`
}

type PageInfo struct {
	ID    string `json:"id" example:"overview"`
	Title string `json:"title" example:"Overview"`
	Path  string `json:"path" example:"/v1/pages/overview"`
}

type RefreshResponse struct {
	Stamp     string `json:"stamp" example:"20250114_093000"`
	Rows      int    `json:"rows" example:"1284"`
	Datasets  int    `json:"datasets" example:"4"`
	LoadedAt  string `json:"loaded_at" example:"2025-01-14T09:35:12Z"`
	FromCache bool   `json:"from_cache" example:"false"`
}
