package transform

import (
	"testing"
	"time"

	"github.com/rgehrsitz/patrimoine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformRegistry_List(t *testing.T) {
	names := NewTransformRegistry().List()
	assert.Equal(t, []string{
		"postpone_liquidation",
		"postpone_retirement",
		"set_age_of_death",
		"set_fiscal_option",
		"set_liquidation_date",
		"set_retirement_date",
		"set_unemployment_end",
	}, names)
}

func TestTransformRegistry_Create_UnknownTransform(t *testing.T) {
	_, err := NewTransformRegistry().Create("delay_ss", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transform: delay_ss")
}

func TestTransformRegistry_Register(t *testing.T) {
	r := NewTransformRegistry()
	r.Register("noop", func(map[string]string) (ScenarioTransform, error) {
		return &SetAgeOfDeath{Adult: "Paul", Age: 90}, nil
	})
	tr, err := r.Create("noop", nil)
	require.NoError(t, err)
	assert.Equal(t, "set_age_of_death", tr.Name())
}

func TestParseTransformSpec(t *testing.T) {
	r := NewTransformRegistry()

	tests := []struct {
		spec string
		want ScenarioTransform
	}{
		{"postpone_retirement:adult=Paul,months=12", &PostponeRetirement{Adult: "Paul", Months: 12}},
		{"postpone_retirement: adult = Paul , months = 6 , keep_liquidation = yes", &PostponeRetirement{Adult: "Paul", Months: 6, KeepLiquidation: true}},
		{"set_retirement_date:adult=Marie,date=2029-03-01", &SetRetirementDate{Adult: "Marie", Date: date(2029, time.March, 1)}},
		{"set_unemployment_end:adult=Marie,date=2031-06-30", &SetUnemploymentEnd{Adult: "Marie", Date: date(2031, time.June, 30)}},
		{"set_liquidation_date:adult=Paul,date=2031-05-01", &SetLiquidationDate{Adult: "Paul", Date: date(2031, time.May, 1)}},
		{"postpone_liquidation:adult=Paul,months=24", &PostponeLiquidation{Adult: "Paul", Months: 24}},
		{"set_age_of_death:adult=Paul,age=82", &SetAgeOfDeath{Adult: "Paul", Age: 82}},
		{"set_fiscal_option:adult=Marie,option=disposable_quota", &SetFiscalOption{Adult: "Marie", Option: domain.DisposableQuota}},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := r.ParseTransformSpec(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTransformSpec_Errors(t *testing.T) {
	r := NewTransformRegistry()

	tests := []struct {
		spec    string
		wantErr string
	}{
		{"postpone_retirement", "invalid transform spec format"},
		{"postpone_retirement:adult", "invalid parameter format"},
		{"postpone_retirement:months=12", "requires 'adult' parameter"},
		{"postpone_retirement:adult=Paul", "requires 'months' parameter"},
		{"postpone_retirement:adult=Paul,months=twelve", "invalid months value"},
		{"set_liquidation_date:adult=Paul,date=01/05/2031", "invalid date format"},
		{"set_fiscal_option:adult=Paul", "requires 'option' parameter"},
		{"unknown:adult=Paul", "unknown transform"},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			_, err := r.ParseTransformSpec(tt.spec)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
