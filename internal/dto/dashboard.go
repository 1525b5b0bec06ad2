package dto

// DashboardSummary splits a count or a revenue total by session status.
type DashboardSummary struct {
	Realizados float64 `json:"realizados"`
	Pendentes  float64 `json:"pendentes"`
}
