package calculation

import (
	"testing"

	"github.com/rgehrsitz/patrimoine/internal/succession"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocialLevies(t *testing.T) {
	levies := NewSocialLevies(testRules(t).SocialLevies)
	assertDecimal(t, d(910), levies.Levies(d(10000)))
	assertDecimal(t, d(9090), levies.Net(d(10000)))
	assert.True(t, levies.Net(d(0)).IsZero())
}

func TestInheritanceDuty(t *testing.T) {
	calc := NewInheritanceDutyCalculator(testRules(t).Inheritance)

	tests := []struct {
		name          string
		relation      succession.Relation
		inherited     float64
		lifeInsurance float64
		wantDuty      float64
		wantLI        float64
	}{
		{"spouse is exempt", succession.RelationSpouse, 500000, 300000, 0, 0},
		{"child below allowance", succession.RelationChild, 80000, 0, 0, 0},
		{"child across brackets", succession.RelationChild, 150000, 0, 8194.35, 0},
		{"other heir flat rate", succession.RelationOther, 11594, 0, 6000, 0},
		{"life insurance above allowance", succession.RelationChild, 0, 200000, 0, 9500},
		{"life insurance below allowance", succession.RelationOther, 0, 100000, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			duty, li, err := calc.Duty(tt.relation, d(tt.inherited), d(tt.lifeInsurance))
			require.NoError(t, err)
			assertDecimal(t, d(tt.wantDuty), duty)
			assertDecimal(t, d(tt.wantLI), li)
		})
	}
}
