package dto

type QuestionRow struct {
	TraceID     string   `json:"trace_id" example:"tr_8f3a12"`
	Input       string   `json:"input" example:"How do I enroll in PathwayConnect?"`
	Timestamp   string   `json:"timestamp,omitempty" example:"2025-01-13T10:00:00Z"`
	Topic       string   `json:"topic" example:"Enrollment"`
	Cost        *float64 `json:"cost,omitempty" example:"0.0012"`
	Latency     *float64 `json:"latency,omitempty" example:"1.42"`
	Tags        []string `json:"tags,omitempty"`
	HasFeedback bool     `json:"has_feedback"`
	SessionID   string   `json:"session_id,omitempty" example:"sess_91ac"`
	UserID      string   `json:"user_id,omitempty" example:"user_4b2f"`
}

type QuestionsResponse struct {
	Page      string        `json:"page" example:"questions"`
	Title     string        `json:"title" example:"Questions Table"`
	Stamp     string        `json:"stamp,omitempty" example:"20250114_093000"`
	Total     int           `json:"total" example:"1284"`
	Limit     int           `json:"limit" example:"50"`
	Offset    int           `json:"offset" example:"0"`
	Topics    []string      `json:"topics"`
	Questions []QuestionRow `json:"questions"`
}
