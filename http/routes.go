package http

import "net/http"

type Handlers struct {
	Loan       *LoanHandler
	Term       *TermRecommendationHandler
	Simulation *SimulationHandler
	Health     *HealthHandler
}

// APIRoutes is the route table of the public API.
func APIRoutes(h Handlers) []Route {
	return []Route{
		{Method: http.MethodGet, Pattern: "/health", Handler: h.Health.Health},
		{Method: http.MethodPost, Pattern: "/loan/simulate", Handler: h.Simulation.Simulate, Limited: true},
		{Method: http.MethodGet, Pattern: "/loan/simulations/{id}", Handler: h.Simulation.GetSimulation},
		{Method: http.MethodPost, Pattern: "/loan/risk", Handler: h.Simulation.AssessRisk, Limited: true},
		{Method: http.MethodPost, Pattern: "/loan/calculate", Handler: h.Loan.CalculateLoan, Limited: true},
		{Method: http.MethodPost, Pattern: "/loan/recommend-term", Handler: h.Term.RecommendTerm, Limited: true},
	}
}
