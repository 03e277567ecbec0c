package api

// AnswerPayload is the wire form of a recorded answer.
type AnswerPayload struct {
	QuestionID string `json:"questionId"`
	Entered    string `json:"entered"`
	IsCorrect  bool   `json:"isCorrect"`
	ElapsedMs  int64  `json:"elapsedMs"`
}

// MetaPayload carries client context.
type MetaPayload struct {
	Timezone string `json:"timezone"`
}

// ResultPayload is the body of POST /api/results.
type ResultPayload struct {
	ClientID   string          `json:"clientId"`
	SetID      string          `json:"setId"`
	SetVersion int             `json:"setVersion"`
	StartedAt  string          `json:"startedAt"`
	FinishedAt string          `json:"finishedAt"`
	Answers    []AnswerPayload `json:"answers"`
	Meta       MetaPayload     `json:"meta"`
}

// QuestionStat is the population average for one question.
type QuestionStat struct {
	QuestionID   string  `json:"questionId"`
	AvgElapsedMs float64 `json:"avgElapsedMs"`
	Samples      int     `json:"samples"`
}

// SubmitResponse is returned by POST /api/results.
type SubmitResponse struct {
	ID            string         `json:"id,omitempty"`
	QuestionStats []QuestionStat `json:"questionStats,omitempty"`
}

// StoredResult is a previously submitted result as returned by
// GET /api/results/:id.
type StoredResult struct {
	ID string `json:"id"`
	ResultPayload
	ReceivedAt string `json:"receivedAt,omitempty"`
}

// SetStats is the aggregate for one set version, returned by
// GET /api/sets/:setId/stats.
type SetStats struct {
	SetID         string         `json:"setId"`
	Version       int            `json:"version"`
	Submissions   int            `json:"submissions"`
	QuestionStats []QuestionStat `json:"questionStats"`
}
