package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeKey(t *testing.T) {
	tests := []struct {
		in     string
		want   TypeKey
		wantOK bool
	}{
		{in: "HEV", want: TypeHEV, wantOK: true},
		{in: " PHEV ", want: TypePHEV, wantOK: true},
		{in: "BEV", want: TypeBEV, wantOK: true},
		{in: "FCEV", want: TypeFCEV, wantOK: true},
		{in: "bev", want: TypeKey("bev"), wantOK: false},
		{in: "", want: TypeKey(""), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTypeKey(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestMonthlyTypeTotals(t *testing.T) {
	var m MonthlyTypeTotals
	m.Add(TypeHEV, 10)
	m.Add(TypeHEV, 5)
	m.Add(TypeBEV, 7)
	m.Add(TypeKey("DIESEL"), 100)

	assert.Equal(t, 15, m.Get(TypeHEV))
	assert.Equal(t, 0, m.Get(TypePHEV))
	assert.Equal(t, 7, m.Get(TypeBEV))
	assert.Equal(t, 0, m.Get(TypeKey("DIESEL")))
	assert.Equal(t, 22, m.Sum())
}

func TestVehicleSalesMap(t *testing.T) {
	m := NewVehicleSalesMap(2)
	m.Set("Toyota Prius", VehicleSales{Make: "Toyota", Model: "Prius", Type: TypeHEV, Sales: 3})
	m.Set("Nissan Leaf", VehicleSales{Make: "Nissan", Model: "Leaf", Type: TypeBEV, Sales: 4})
	m.Set("Toyota Prius", VehicleSales{Make: "Toyota", Model: "Prius", Type: TypeHEV, Sales: 9})

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []VehicleKey{"Toyota Prius", "Nissan Leaf"}, m.Keys())
	assert.Equal(t, 9, m.Sales("Toyota Prius"))
	assert.Equal(t, 0, m.Sales("Honda Clarity"))

	_, ok := m.Get("Honda Clarity")
	assert.False(t, ok)

	keys := m.Keys()
	keys[0] = "mutated"
	assert.Equal(t, VehicleKey("Toyota Prius"), m.Keys()[0])
}

func TestVehicleSalesMap_ZeroValue(t *testing.T) {
	var m VehicleSalesMap
	m.Set("A X", VehicleSales{Sales: 1})
	assert.Equal(t, 1, m.Len())
}

func TestDatasetHelpers(t *testing.T) {
	jan := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := jan.AddDate(0, 1, 0)

	month := func(date time.Time, prius, leaf int) MonthlyVehicleSales {
		m := NewVehicleSalesMap(2)
		m.Set("Toyota Prius", VehicleSales{Make: "Toyota", Model: "Prius", Type: TypeHEV, Sales: prius})
		m.Set("Nissan Leaf", VehicleSales{Make: "Nissan", Model: "Leaf", Type: TypeBEV, Sales: leaf})
		return MonthlyVehicleSales{Date: date, Sales: m}
	}

	ds := &Dataset{
		Types: []MonthlyTypeTotals{
			{Date: jan, HEV: 1, BEV: 2},
			{Date: feb, HEV: 3, BEV: 4},
		},
		Vehicles: []MonthlyVehicleSales{month(jan, 1, 2), month(feb, 3, 4)},
		Lineup: []Vehicle{
			{Key: "Toyota Prius", Make: "Toyota", Model: "Prius", Type: TypeHEV, Column: 1},
			{Key: "Nissan Leaf", Make: "Nissan", Model: "Leaf", Type: TypeBEV, Column: 2},
		},
	}

	assert.Equal(t, 2, ds.Months())
	assert.Equal(t, []time.Time{jan, feb}, ds.Dates())
	assert.Equal(t, []VehicleKey{"Nissan Leaf"}, ds.VehiclesOfType(TypeBEV))
	assert.Empty(t, ds.VehiclesOfType(TypeFCEV))
	assert.True(t, ds.HasType(TypeHEV))
	assert.False(t, ds.HasType(TypePHEV))
	assert.Equal(t, 4, ds.VehicleTotal("Toyota Prius"))
	assert.Equal(t, 6, ds.TypeTotal(TypeBEV))

	v, ok := ds.Vehicle("Nissan Leaf")
	require.True(t, ok)
	assert.Equal(t, 2, v.Column)
}
