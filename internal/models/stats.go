package models

type DashboardStats struct {
	TotalRequests     int `json:"total_requests"`
	PendingRequests   int `json:"pending_requests"`
	AssignedRequests  int `json:"assigned_requests"`
	CompletedRequests int `json:"completed_requests"`
	CancelledRequests int `json:"cancelled_requests"`
}
