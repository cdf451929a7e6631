package model

import "time"

// VehicleKey identifies a vehicle column: make + " " + model.
type VehicleKey string

// NewVehicleKey builds the key for a make and model.
func NewVehicleKey(vehicleMake, vehicleModel string) VehicleKey {
	return VehicleKey(vehicleMake + " " + vehicleModel)
}

// Vehicle describes one data column of the sales sheet.
type Vehicle struct {
	Key    VehicleKey
	Make   string
	Model  string
	Type   TypeKey
	Column int
}

// VehicleSales is one vehicle's sales for one month.
type VehicleSales struct {
	Make  string
	Model string
	Type  TypeKey
	Sales int
}

// MonthlyTypeTotals holds one month's sales summed per powertrain type.
type MonthlyTypeTotals struct {
	Date  time.Time
	Label string
	HEV   int
	PHEV  int
	BEV   int
	FCEV  int
}

// Get returns the total for a type; unknown types read as zero.
func (m MonthlyTypeTotals) Get(t TypeKey) int {
	switch t {
	case TypeHEV:
		return m.HEV
	case TypePHEV:
		return m.PHEV
	case TypeBEV:
		return m.BEV
	case TypeFCEV:
		return m.FCEV
	default:
		return 0
	}
}

// Set replaces the total for a type. Unknown types are ignored.
func (m *MonthlyTypeTotals) Set(t TypeKey, v int) {
	switch t {
	case TypeHEV:
		m.HEV = v
	case TypePHEV:
		m.PHEV = v
	case TypeBEV:
		m.BEV = v
	case TypeFCEV:
		m.FCEV = v
	}
}

// Add accumulates sales into a type's total.
func (m *MonthlyTypeTotals) Add(t TypeKey, v int) {
	m.Set(t, m.Get(t)+v)
}

// Sum returns the combined total of all four types.
func (m MonthlyTypeTotals) Sum() int {
	return m.HEV + m.PHEV + m.BEV + m.FCEV
}

// VehicleSalesMap is an insertion-ordered mapping from vehicle key to sales.
// Keys are unique: setting an existing key replaces its value in place.
type VehicleSalesMap struct {
	entries map[VehicleKey]VehicleSales
	keys    []VehicleKey
}

// NewVehicleSalesMap creates an empty map with room for n vehicles.
func NewVehicleSalesMap(n int) VehicleSalesMap {
	return VehicleSalesMap{
		entries: make(map[VehicleKey]VehicleSales, n),
		keys:    make([]VehicleKey, 0, n),
	}
}

// Set stores sales for a key, keeping the key's first position.
func (m *VehicleSalesMap) Set(key VehicleKey, sales VehicleSales) {
	if m.entries == nil {
		m.entries = make(map[VehicleKey]VehicleSales)
	}
	if _, exists := m.entries[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = sales
}

// Get looks up a vehicle's sales.
func (m VehicleSalesMap) Get(key VehicleKey) (VehicleSales, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Sales returns a vehicle's unit sales, zero when the key is absent.
func (m VehicleSalesMap) Sales(key VehicleKey) int {
	return m.entries[key].Sales
}

// Keys returns the keys in insertion order.
func (m VehicleSalesMap) Keys() []VehicleKey {
	out := make([]VehicleKey, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of vehicles.
func (m VehicleSalesMap) Len() int {
	return len(m.keys)
}

// MonthlyVehicleSales holds one month's sales per vehicle.
type MonthlyVehicleSales struct {
	Date  time.Time
	Label string
	Sales VehicleSalesMap
}
