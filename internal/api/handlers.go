package api

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/patrimoine/internal/calculation"
	"github.com/rgehrsitz/patrimoine/internal/compare"
	"github.com/rgehrsitz/patrimoine/internal/domain"
	"github.com/rgehrsitz/patrimoine/internal/transform"
)

// Handler holds all dependencies for HTTP handlers. The configuration is
// read-only once the server starts.
type Handler struct {
	Config     *domain.Configuration
	Engine     *calculation.CalculationEngine
	Comparer   *compare.CompareEngine
	Transforms *transform.TransformRegistry
}

// NewHandler creates a handler over a loaded configuration.
func NewHandler(config *domain.Configuration, engine *calculation.CalculationEngine) *Handler {
	return &Handler{
		Config:     config,
		Engine:     engine,
		Comparer:   compare.NewCompareEngine(engine),
		Transforms: transform.NewTransformRegistry(),
	}
}

var errScenarioNotFound = errors.New("scenario not found")

// scenario resolves the ?scenario= parameter. An empty name selects no
// override at all.
func (h *Handler) scenario(r *http.Request) (*domain.Scenario, error) {
	name := r.URL.Query().Get("scenario")
	if name == "" {
		return nil, nil
	}
	s, ok := h.Config.FindScenario(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errScenarioNotFound, name)
	}
	return s, nil
}

func (h *Handler) GetHousehold(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HouseholdDTO{
		Household: h.Config.Household,
		Assets:    h.Config.Assets,
		Defaults:  h.Config.GlobalAssumptions,
	})
}

func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(h.Config.Scenarios))
	for i, s := range h.Config.Scenarios {
		dtos[i] = ScenarioDTO{Name: s.Name}
		for name := range s.Adults {
			dtos[i].Adults = append(dtos[i].Adults, name)
		}
		sort.Strings(dtos[i].Adults)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetScenario(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s, ok := h.Config.FindScenario(name)
	if !ok {
		writeError(w, http.StatusNotFound, "Scenario not found", fmt.Errorf("%s", name))
		return
	}
	summary, err := h.Engine.RunScenario(r.Context(), h.Config, s)
	if err != nil {
		writeError(w, statusFor(err), "Failed to run scenario", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) GetPension(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	s, err := h.scenario(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Scenario not found", err)
		return
	}
	adult := chi.URLParam(r, "adult")
	household := s.Apply(&h.Config.Household)
	if _, ok := household.Adult(adult); !ok {
		writeError(w, http.StatusNotFound, "Adult not found", fmt.Errorf("%s", adult))
		return
	}
	row, err := h.Engine.PensionsFor(household, adult, year)
	if err != nil {
		writeError(w, statusFor(err), "Failed to compute pension", err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (h *Handler) GetProjection(w http.ResponseWriter, r *http.Request) {
	s, err := h.scenario(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Scenario not found", err)
		return
	}
	start := h.Config.GlobalAssumptions.StartYear
	years := h.Config.GlobalAssumptions.ProjectionYears
	if v := r.URL.Query().Get("start"); v != "" {
		if start, err = strconv.Atoi(v); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start year", err)
			return
		}
	}
	if v := r.URL.Query().Get("years"); v != "" {
		if years, err = strconv.Atoi(v); err != nil || years < 1 || years > 50 {
			writeError(w, http.StatusBadRequest, "Invalid number of years", fmt.Errorf("years must be between 1 and 50, got %q", v))
			return
		}
	}

	rows, err := h.Engine.ProjectHousehold(r.Context(), s.Apply(&h.Config.Household), start, years)
	if err != nil {
		writeError(w, statusFor(err), "Failed to project household", err)
		return
	}
	name := "baseline"
	if s != nil {
		name = s.Name
	}
	writeJSON(w, http.StatusOK, ProjectionResponse{Scenario: name, StartYear: start, Years: rows})
}

// GetSuccession processes the death of one adult over the configured assets.
// ?age= models the death at that age instead of the configured one.
func (h *Handler) GetSuccession(w http.ResponseWriter, r *http.Request) {
	s, err := h.scenario(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Scenario not found", err)
		return
	}
	if s == nil {
		s = &domain.Scenario{Name: "baseline"}
	}
	adult := chi.URLParam(r, "adult")
	if _, ok := h.Config.Household.Adult(adult); !ok {
		writeError(w, http.StatusNotFound, "Adult not found", fmt.Errorf("%s", adult))
		return
	}

	if v := r.URL.Query().Get("age"); v != "" {
		age, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid age", err)
			return
		}
		s, err = transform.ApplyTransforms(s, &h.Config.Household, []transform.ScenarioTransform{
			&transform.SetAgeOfDeath{Adult: adult, Age: age},
		})
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid age", err)
			return
		}
	}

	household := s.Apply(&h.Config.Household)
	if a, _ := household.Adult(adult); a.AgeOfDeath <= 0 {
		writeError(w, http.StatusUnprocessableEntity, "No modelled age of death", fmt.Errorf("pass ?age= to model the death of %s", adult))
		return
	}

	_, result, err := h.Engine.Succession(household, h.Config.Assets, adult)
	if err != nil {
		writeError(w, statusFor(err), "Failed to process succession", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Base == "" || req.Adult == "" {
		writeError(w, http.StatusBadRequest, "base and adult are required", nil)
		return
	}

	set, err := h.Comparer.Compare(r.Context(), h.Config, compare.CompareOptions{
		BaseScenarioName: req.Base,
		Templates:        req.Templates,
		AdultName:        req.Adult,
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Comparison failed", err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (h *Handler) Transform(w http.ResponseWriter, r *http.Request) {
	var req TransformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	base, ok := h.Config.FindScenario(req.Base)
	if !ok {
		writeError(w, http.StatusNotFound, "Scenario not found", fmt.Errorf("%s", req.Base))
		return
	}

	transforms := make([]transform.ScenarioTransform, 0, len(req.Transforms))
	for _, spec := range req.Transforms {
		t, err := h.Transforms.ParseTransformSpec(spec)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid transform", err)
			return
		}
		transforms = append(transforms, t)
	}

	modified, err := transform.ApplyTransforms(base, &h.Config.Household, transforms)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Transform failed", err)
		return
	}
	modified.Name = req.Name
	if modified.Name == "" {
		modified.Name = base.Name + "_custom"
	}

	summary, err := h.Engine.RunScenario(r.Context(), h.Config, modified)
	if err != nil {
		writeError(w, statusFor(err), "Failed to run scenario", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// statusFor maps engine errors to HTTP statuses: inputs the engine cannot
// work with are 422, anything else is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingFiscalOption),
		errors.Is(err, domain.ErrNoHeir),
		errors.Is(err, domain.ErrInvalidOwnership),
		errors.Is(err, domain.ErrInvalidClause),
		errors.Is(err, domain.ErrGridSliceNotFound),
		errors.Is(err, domain.ErrImpossibleToCompute):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errScenarioNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
