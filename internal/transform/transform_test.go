package transform

import (
	"errors"
	"testing"
	"time"

	"github.com/rgehrsitz/patrimoine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func createTestHousehold() *domain.Household {
	return &domain.Household{
		Adults: []domain.Adult{
			{
				PersonCore:          domain.PersonCore{Name: "Paul", BirthDate: date(1964, time.May, 10)},
				DateOfRetirement:    date(2027, time.January, 1),
				DateOfPensionLiquid: date(2028, time.June, 1),
				FiscalOption:        domain.FullUsufruct,
			},
			{
				PersonCore:          domain.PersonCore{Name: "Marie", BirthDate: date(1966, time.September, 2)},
				DateOfRetirement:    date(2030, time.January, 1),
				DateOfPensionLiquid: date(2030, time.January, 1),
			},
		},
	}
}

func createTestScenario() *domain.Scenario {
	return &domain.Scenario{Name: "Test Scenario"}
}

func TestApplyTransforms_NilScenario(t *testing.T) {
	_, err := ApplyTransforms(nil, createTestHousehold(), []ScenarioTransform{&PostponeRetirement{Adult: "Paul", Months: 12}})
	assert.Error(t, err)

	_, err = ApplyTransforms(createTestScenario(), nil, nil)
	assert.Error(t, err)
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := createTestScenario()

	result, err := ApplyTransforms(base, createTestHousehold(), nil)
	require.NoError(t, err)
	assert.NotSame(t, base, result, "Should return a copy")
	assert.Equal(t, base.Name, result.Name)
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	_, err := ApplyTransforms(createTestScenario(), createTestHousehold(), []ScenarioTransform{
		&PostponeRetirement{Adult: "Paul", Months: 12},
		nil,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transform at index 1 is nil")
}

func TestApplyTransforms_ValidationFailure(t *testing.T) {
	_, err := ApplyTransforms(createTestScenario(), createTestHousehold(), []ScenarioTransform{
		&PostponeRetirement{Adult: "Nobody", Months: 12},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postpone_retirement validation failed")

	var te *TransformError
	assert.True(t, errors.As(err, &te))
}

func TestApplyTransforms_Chaining(t *testing.T) {
	h := createTestHousehold()
	base := createTestScenario()

	result, err := ApplyTransforms(base, h, []ScenarioTransform{
		&PostponeRetirement{Adult: "Paul", Months: 12},
		&PostponeRetirement{Adult: "Paul", Months: 6},
		&SetAgeOfDeath{Adult: "Marie", Age: 88},
	})
	require.NoError(t, err)

	applied := result.Apply(h)
	paul, _ := applied.Adult("Paul")
	assert.Equal(t, date(2028, time.July, 1), paul.DateOfRetirement, "Second postponement starts from the first")
	marie, _ := applied.Adult("Marie")
	assert.Equal(t, 88, marie.AgeOfDeath)

	assert.Empty(t, base.Adults, "Base scenario must be left untouched")
	assert.True(t, h.Adults[0].DateOfRetirement.Equal(date(2027, time.January, 1)), "Household must be left untouched")
}

func TestPostponeRetirement(t *testing.T) {
	h := createTestHousehold()

	tests := []struct {
		name            string
		transform       *PostponeRetirement
		wantRetirement  time.Time
		wantLiquidation time.Time
	}{
		{
			name:            "liquidation after new retirement stays",
			transform:       &PostponeRetirement{Adult: "Paul", Months: 6},
			wantRetirement:  date(2027, time.July, 1),
			wantLiquidation: date(2028, time.June, 1),
		},
		{
			name:            "liquidation before new retirement moves along",
			transform:       &PostponeRetirement{Adult: "Paul", Months: 24},
			wantRetirement:  date(2029, time.January, 1),
			wantLiquidation: date(2030, time.June, 1),
		},
		{
			name:            "keep liquidation",
			transform:       &PostponeRetirement{Adult: "Paul", Months: 24, KeepLiquidation: true},
			wantRetirement:  date(2029, time.January, 1),
			wantLiquidation: date(2028, time.June, 1),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.transform.Validate(createTestScenario(), h))
			result, err := tt.transform.Apply(createTestScenario(), h)
			require.NoError(t, err)
			paul, _ := result.Apply(h).Adult("Paul")
			assert.Equal(t, tt.wantRetirement, paul.DateOfRetirement)
			assert.Equal(t, tt.wantLiquidation, paul.DateOfPensionLiquid)
		})
	}
}

func TestPostponeRetirement_Validate(t *testing.T) {
	h := createTestHousehold()
	base := createTestScenario()

	assert.Error(t, (&PostponeRetirement{Adult: "", Months: 12}).Validate(base, h))
	assert.Error(t, (&PostponeRetirement{Adult: "Paul", Months: -1}).Validate(base, h))
	assert.Error(t, (&PostponeRetirement{Adult: "Paul", Months: 12}).Validate(nil, h))

	h.Adults[0].DateOfRetirement = time.Time{}
	err := (&PostponeRetirement{Adult: "Paul", Months: 12}).Validate(base, h)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no retirement date")
}

func TestSetRetirementDateAndUnemploymentEnd(t *testing.T) {
	h := createTestHousehold()
	base := createTestScenario()

	result, err := ApplyTransforms(base, h, []ScenarioTransform{
		&SetRetirementDate{Adult: "Marie", Date: date(2029, time.March, 1)},
		&SetUnemploymentEnd{Adult: "Marie", Date: date(2031, time.March, 1)},
	})
	require.NoError(t, err)
	marie, _ := result.Apply(h).Adult("Marie")
	assert.Equal(t, date(2029, time.March, 1), marie.DateOfRetirement)
	require.NotNil(t, marie.DateOfEndOfUnemployAlloc)
	assert.Equal(t, date(2031, time.March, 1), *marie.DateOfEndOfUnemployAlloc)

	err = (&SetUnemploymentEnd{Adult: "Marie", Date: date(2028, time.January, 1)}).Validate(base, h)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "allowance cannot end before retirement")

	assert.Error(t, (&SetRetirementDate{Adult: "Marie", Date: date(1950, time.January, 1)}).Validate(base, h))
	assert.Error(t, (&SetRetirementDate{Adult: "Marie"}).Validate(base, h))
}

func TestLiquidationTransforms(t *testing.T) {
	h := createTestHousehold()
	base := createTestScenario()

	result, err := ApplyTransforms(base, h, []ScenarioTransform{
		&SetLiquidationDate{Adult: "Paul", Date: date(2031, time.May, 1)},
		&PostponeLiquidation{Adult: "Paul", Months: 12},
	})
	require.NoError(t, err)
	paul, _ := result.Apply(h).Adult("Paul")
	assert.Equal(t, date(2032, time.May, 1), paul.DateOfPensionLiquid)

	h.Adults[1].DateOfPensionLiquid = time.Time{}
	err = (&PostponeLiquidation{Adult: "Marie", Months: 12}).Validate(base, h)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no liquidation date")
}

func TestSetAgeOfDeath_Validate(t *testing.T) {
	h := createTestHousehold()
	base := createTestScenario()

	assert.NoError(t, (&SetAgeOfDeath{Adult: "Paul", Age: 85}).Validate(base, h))
	assert.Error(t, (&SetAgeOfDeath{Adult: "Paul", Age: 0}).Validate(base, h))
	assert.Error(t, (&SetAgeOfDeath{Adult: "Paul", Age: 130}).Validate(base, h))
}

func TestSetFiscalOption(t *testing.T) {
	h := createTestHousehold()
	base := createTestScenario()

	tr := &SetFiscalOption{Adult: "Paul", Option: domain.DisposableQuota}
	require.NoError(t, tr.Validate(base, h))
	result, err := tr.Apply(base, h)
	require.NoError(t, err)
	paul, _ := result.Apply(h).Adult("Paul")
	assert.Equal(t, domain.DisposableQuota, paul.FiscalOption)

	err = (&SetFiscalOption{Adult: "Paul", Option: "half"}).Validate(base, h)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown fiscal option")
}

func TestTransformError(t *testing.T) {
	err := NewTransformError("test_transform", "validate", "something went wrong", nil)
	assert.Equal(t, "transform test_transform (validate): something went wrong", err.Error())

	inner := errors.New("inner")
	err = NewTransformError("test_transform", "apply", "failed", inner)
	assert.Equal(t, "transform test_transform (apply): failed: inner", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestNameAndDescription(t *testing.T) {
	tests := []struct {
		transform ScenarioTransform
		name      string
		desc      string
	}{
		{&PostponeRetirement{Adult: "Paul", Months: 12}, "postpone_retirement", "Postpone Paul's retirement by 12 months"},
		{&SetRetirementDate{Adult: "Paul", Date: date(2028, time.January, 1)}, "set_retirement_date", "Set Paul's retirement date to 2028-01-01"},
		{&SetUnemploymentEnd{Adult: "Paul", Date: date(2029, time.January, 1)}, "set_unemployment_end", "End Paul's unemployment allowance on 2029-01-01"},
		{&SetLiquidationDate{Adult: "Paul", Date: date(2030, time.January, 1)}, "set_liquidation_date", "Liquidate Paul's pensions on 2030-01-01"},
		{&PostponeLiquidation{Adult: "Paul", Months: 6}, "postpone_liquidation", "Postpone Paul's pension liquidation by 6 months"},
		{&SetAgeOfDeath{Adult: "Paul", Age: 85}, "set_age_of_death", "Model Paul's death at age 85"},
		{&SetFiscalOption{Adult: "Paul", Option: domain.FullUsufruct}, "set_fiscal_option", "Have Paul take the full_usufruct option as surviving spouse"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.transform.Name())
		assert.Equal(t, tt.desc, tt.transform.Description())
	}
}
