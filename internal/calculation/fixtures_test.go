package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/patrimoine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func date(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 0, 0, 0, 0, time.UTC) }

func timePtr(t time.Time) *time.Time { return &t }

func assertDecimal(t *testing.T, want, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	if got.Sub(want).Abs().GreaterThan(d(0.0001)) {
		require.Failf(t, "decimal mismatch", "want %s, got %s %v", want, got, msgAndArgs)
	}
}

func testRules(t *testing.T) *domain.RegulatoryConfig {
	t.Helper()
	before := []float64{1, 0.99, 0.98, 0.97, 0.96, 0.9575, 0.955, 0.9525, 0.95, 0.9425, 0.935,
		0.9275, 0.92, 0.9125, 0.905, 0.8975, 0.89, 0.8825, 0.875, 0.8675, 0.86}
	beforeGrid := make([]domain.QuarterCoefficientEntry, len(before))
	for i, c := range before {
		beforeGrid[i] = domain.QuarterCoefficientEntry{MissingQuarters: i, Coefficient: d(c)}
	}

	rc := &domain.RegulatoryConfig{
		GeneralRegime: domain.GeneralRegimeRules{
			ReferenceDurations: []domain.ReferenceDurationEntry{
				{BirthYear: 1955, RequiredQuarters: 166, FullRateAge: 67},
				{BirthYear: 1958, RequiredQuarters: 167, FullRateAge: 67},
				{BirthYear: 1961, RequiredQuarters: 168, FullRateAge: 67},
				{BirthYear: 1964, RequiredQuarters: 169, FullRateAge: 68},
			},
			UnemploymentCredits: []domain.UnemploymentCreditEntry{
				{FromAge: 0, MaxQuarters: 4},
				{FromAge: 55, MaxQuarters: 20},
			},
			MaxRate:               d(50),
			DecoteRatePerQuarter:  d(0.625),
			SurcoteRatePerQuarter: d(1.25),
			MaxDiscountQuarters:   20,
			ChildBonusMinChildren: 3,
			ChildBonusPercent:     d(10),
		},
		PointsRegime: domain.PointsRegimeRules{
			MinimumClaimAge: 57,
			PointValue:      d(1.4159),
			BeforeFullRate:  beforeGrid,
			AfterFullRate: []domain.DeferralEntry{
				{DelayYears: 0, Coefficient: d(1), WindowYears: 0},
				{DelayYears: 1, Coefficient: d(1.10), WindowYears: 3},
				{DelayYears: 2, Coefficient: d(1.20), WindowYears: 3},
				{DelayYears: 3, Coefficient: d(1), WindowYears: 0},
			},
			CutoffAge:              67,
			OneChildCoefficient:    d(1.05),
			TwoChildrenCoefficient: d(1.10),
		},
		Demembrement: domain.DemembrementGrid{
			{FromAge: 0, UsufructFraction: d(0.9)},
			{FromAge: 21, UsufructFraction: d(0.8)},
			{FromAge: 31, UsufructFraction: d(0.7)},
			{FromAge: 41, UsufructFraction: d(0.6)},
			{FromAge: 51, UsufructFraction: d(0.5)},
			{FromAge: 61, UsufructFraction: d(0.4)},
			{FromAge: 71, UsufructFraction: d(0.3)},
			{FromAge: 81, UsufructFraction: d(0.2)},
			{FromAge: 91, UsufructFraction: d(0.1)},
		},
		SocialLevies: domain.SocialLevyRules{CSG: d(8.3), CRDS: d(0.5), CASA: d(0.3)},
		Inheritance: domain.InheritanceRules{
			ChildAllowance: d(100000),
			ChildGrid: domain.RateGrid{
				{Floor: d(0), Rate: d(0.05)},
				{Floor: d(8072), Rate: d(0.10)},
				{Floor: d(12109), Rate: d(0.15)},
				{Floor: d(15932), Rate: d(0.20)},
				{Floor: d(552324), Rate: d(0.30)},
				{Floor: d(902838), Rate: d(0.40)},
				{Floor: d(1805677), Rate: d(0.45)},
			},
			OtherAllowance:         d(1594),
			OtherRate:              d(0.60),
			LifeInsuranceAllowance: d(152500),
			LifeInsuranceGrid: domain.RateGrid{
				{Floor: d(0), Rate: d(0.20)},
				{Floor: d(700000), Rate: d(0.3125)},
			},
		},
		PensionDevaluationRate: d(1),
	}
	require.NoError(t, rc.Initialize())
	return rc
}

// paul has an incomplete career and liquidates before the full-rate age.
func paul() domain.Adult {
	return domain.Adult{
		PersonCore:          domain.PersonCore{Name: "Paul", BirthDate: date(1964, time.May, 10), AgeOfDeath: 80},
		DateOfRetirement:    date(2027, time.January, 1),
		DateOfPensionLiquid: date(2028, time.June, 1),
		GeneralSituation:    domain.GeneralRegimeSituation{AsOfYear: 2023, AcquiredQuarters: 150, AverageAnnualWage: d(40000)},
		PointsSituation:     domain.PointsRegimeSituation{AsOfYear: 2023, PointsBalance: 10000, PointsPerYear: 120},
		FiscalOption:        domain.FullUsufruct,
	}
}

// marie reached the reference duration before the projection starts.
func marie() domain.Adult {
	return domain.Adult{
		PersonCore:          domain.PersonCore{Name: "Marie", BirthDate: date(1960, time.March, 15)},
		DateOfRetirement:    date(2021, time.January, 1),
		DateOfPensionLiquid: date(2022, time.January, 1),
		GeneralSituation:    domain.GeneralRegimeSituation{AsOfYear: 2020, AcquiredQuarters: 170, AverageAnnualWage: d(30000)},
		PointsSituation:     domain.PointsRegimeSituation{AsOfYear: 2020, PointsBalance: 8000, PointsPerYear: 100},
		FiscalOption:        domain.FullUsufruct,
	}
}

func testHousehold() *domain.Household {
	return &domain.Household{
		Adults: []domain.Adult{paul(), marie()},
		Children: []domain.Child{
			{PersonCore: domain.PersonCore{Name: "Lea", BirthDate: date(1995, time.January, 1)}, AgeOfIndependence: 25},
			{PersonCore: domain.PersonCore{Name: "Tom", BirthDate: date(1998, time.January, 1)}, AgeOfIndependence: 25},
		},
	}
}
