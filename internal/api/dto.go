package api

import "github.com/rgehrsitz/patrimoine/internal/domain"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HouseholdDTO is the household file without its scenarios.
type HouseholdDTO struct {
	Household domain.Household         `json:"household"`
	Assets    []domain.Asset           `json:"assets"`
	Defaults  domain.GlobalAssumptions `json:"global_assumptions"`
}

// ScenarioDTO lists one configured scenario.
type ScenarioDTO struct {
	Name   string   `json:"name"`
	Adults []string `json:"overridden_adults,omitempty"`
}

// ProjectionResponse wraps a yearly projection.
type ProjectionResponse struct {
	Scenario  string                        `json:"scenario"`
	StartYear int                           `json:"start_year"`
	Years     []domain.HouseholdPensionYear `json:"years"`
}

// CompareRequest runs Base against built-in templates acting on Adult.
type CompareRequest struct {
	Base      string   `json:"base"`
	Adult     string   `json:"adult"`
	Templates []string `json:"templates"`
}

// TransformRequest applies transform specs such as
// "postpone_retirement:adult=Paul,months=12" to Base.
type TransformRequest struct {
	Base       string   `json:"base"`
	Name       string   `json:"name,omitempty"`
	Transforms []string `json:"transforms"`
}
