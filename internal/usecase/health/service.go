package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the service answers with reduced presentation.
	Degraded Status = "degraded"
	// Unhealthy indicates the catalog is not loaded.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	catalog CatalogPinger
	images  ImageChecker
}

// New creates a Service. images can be nil.
func New(catalog CatalogPinger, images ImageChecker) *Service {
	return &Service{catalog: catalog, images: images}
}

// Check runs health checks against all components. A missing catalog makes
// the service unhealthy; missing images only degrade it.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.catalog.Ping(ctx); err != nil {
		checks["catalog"] = CheckError
		status = Unhealthy
	} else {
		checks["catalog"] = CheckOK
	}

	if s.images != nil {
		if err := s.images.CheckImages(ctx); err != nil {
			checks["images"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["images"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
