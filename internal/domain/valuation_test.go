package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDemembrementGrid() DemembrementGrid {
	return DemembrementGrid{
		{FromAge: 0, UsufructFraction: d(0.9)},
		{FromAge: 21, UsufructFraction: d(0.8)},
		{FromAge: 31, UsufructFraction: d(0.7)},
		{FromAge: 41, UsufructFraction: d(0.6)},
		{FromAge: 51, UsufructFraction: d(0.5)},
		{FromAge: 61, UsufructFraction: d(0.4)},
		{FromAge: 71, UsufructFraction: d(0.3)},
		{FromAge: 81, UsufructFraction: d(0.2)},
		{FromAge: 91, UsufructFraction: d(0.1)},
	}
}

func TestDemembrementSplit(t *testing.T) {
	g := testDemembrementGrid()
	require.NoError(t, g.Validate())

	tests := []struct {
		age            int
		usufruct, bare float64
	}{
		{1, 90, 10},
		{20, 90, 10},
		{21, 80, 20},
		{30, 80, 20},
		{31, 70, 30},
		{40, 70, 30},
		{41, 60, 40},
		{50, 60, 40},
		{51, 50, 50},
		{60, 50, 50},
		{61, 40, 60},
		{70, 40, 60},
		{71, 30, 70},
		{80, 30, 70},
		{81, 20, 80},
		{90, 20, 80},
		{91, 10, 90},
		{95, 10, 90},
	}
	for _, tt := range tests {
		u, b, err := g.Split(d(100), tt.age)
		require.NoError(t, err)
		assert.True(t, u.Equal(d(tt.usufruct)), "age %d usufruct %s", tt.age, u)
		assert.True(t, b.Equal(d(tt.bare)), "age %d bare %s", tt.age, b)
	}
}

func TestDemembrementSplitSumsExactly(t *testing.T) {
	g := testDemembrementGrid()
	total := d(123456.789)
	for age := 1; age < 110; age += 7 {
		u, b, err := g.Split(total, age)
		require.NoError(t, err)
		assert.True(t, u.Add(b).Equal(total), "age %d", age)
	}
}

func TestDemembrementOutOfBounds(t *testing.T) {
	g := testDemembrementGrid()
	_, _, err := g.Split(d(100), 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = DemembrementGrid{{FromAge: 18, UsufructFraction: d(0.8)}}.UsufructFraction(10)
	assert.ErrorIs(t, err, ErrGridSliceNotFound)
}

func TestDemembrementValidate(t *testing.T) {
	assert.Error(t, DemembrementGrid{}.Validate())
	assert.ErrorIs(t, DemembrementGrid{{FromAge: 40, UsufructFraction: d(0.6)}, {FromAge: 20, UsufructFraction: d(0.8)}}.Validate(), ErrUnsortedGrid)
	assert.Error(t, DemembrementGrid{{FromAge: 0, UsufructFraction: d(1.2)}}.Validate())
}

func fixedAges(ages map[string]int) AgeLookup {
	return AgeLookupFunc(func(name string, _ int) (int, bool) {
		a, ok := ages[name]
		return a, ok
	})
}

func TestOwnedValue(t *testing.T) {
	v := Valuator{Grid: testDemembrementGrid(), Ages: fixedAges(map[string]int{"S": 65, "A": 30, "B": 28})}
	dismembered := NewDismemberedOwnership(Owners{{"S", d(100)}}, Owners{{"A", d(50)}, {"B", d(50)}})
	full := NewFullOwnership(Owner{"A", d(25)}, Owner{"B", d(75)})

	tests := []struct {
		name   string
		o      Ownership
		owner  string
		method EvaluationMethod
		want   float64
	}{
		{"full owner share", full, "B", Patrimoine, 300000},
		{"absent owner", full, "S", Patrimoine, 0},
		{"usufructuary by age", dismembered, "S", LegalSuccession, 160000},
		{"bare owner by age", dismembered, "A", LegalSuccession, 120000},
		{"usufructuary for wealth tax", dismembered, "S", IFI, 400000},
		{"bare owner for wealth tax", dismembered, "A", ISF, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.OwnedValue(tt.o, tt.owner, d(400000), tt.method, 2030)
			require.NoError(t, err)
			assert.True(t, got.Equal(d(tt.want)), "got %s", got)
		})
	}
}

func TestOwnedValuesSumToTotal(t *testing.T) {
	v := Valuator{Grid: testDemembrementGrid(), Ages: fixedAges(map[string]int{"S": 65, "T": 45})}
	o := NewDismemberedOwnership(Owners{{"S", d(60)}, {"T", d(40)}}, Owners{{"A", d(70)}, {"S", d(30)}})

	values, err := v.OwnedValues(o, d(250000), Patrimoine, 2030)
	require.NoError(t, err)
	assert.Len(t, values, 3)
	sum := d(0)
	for _, val := range values {
		sum = sum.Add(val)
	}
	assert.True(t, sum.Equal(d(250000)), "got %s", sum)
}

func TestOwnedValueUnknownUsufructuary(t *testing.T) {
	v := Valuator{Grid: testDemembrementGrid(), Ages: fixedAges(nil)}
	o := NewDismemberedOwnership(Owners{{"S", d(100)}}, Owners{{"A", d(100)}})
	_, err := v.OwnedValue(o, "A", d(100), LegalSuccession, 2030)
	assert.ErrorIs(t, err, ErrImpossibleToCompute)
}
