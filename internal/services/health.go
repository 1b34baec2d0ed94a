package services

import "context"

// HealthService implements the health service
type HealthService struct {
	service string
}

// NewHealthService creates a new health service
func NewHealthService(service string) *HealthService {
	return &HealthService{service: service}
}

// HealthResult is the health check response
type HealthResult struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Check implements the health check method
func (s *HealthService) Check(ctx context.Context) *HealthResult {
	return &HealthResult{
		Status:  "healthy",
		Service: s.service,
	}
}
