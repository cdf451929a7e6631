package model

import "time"

// Dataset bundles the two aggregates derived from one sales sheet.
// It is built once at load time and treated as read-only afterwards.
type Dataset struct {
	Types    []MonthlyTypeTotals
	Vehicles []MonthlyVehicleSales
	Lineup   []Vehicle
}

// Months returns the number of monthly records.
func (d *Dataset) Months() int {
	return len(d.Types)
}

// Dates returns the month of every record in source order.
func (d *Dataset) Dates() []time.Time {
	dates := make([]time.Time, len(d.Types))
	for i, m := range d.Types {
		dates[i] = m.Date
	}
	return dates
}

// Vehicle looks up a lineup entry by key.
func (d *Dataset) Vehicle(key VehicleKey) (Vehicle, bool) {
	for _, v := range d.Lineup {
		if v.Key == key {
			return v, true
		}
	}
	return Vehicle{}, false
}

// VehiclesOfType returns the keys of a type's vehicles in column order.
func (d *Dataset) VehiclesOfType(t TypeKey) []VehicleKey {
	var keys []VehicleKey
	for _, v := range d.Lineup {
		if v.Type == t {
			keys = append(keys, v.Key)
		}
	}
	return keys
}

// HasType reports whether any vehicle in the lineup belongs to t.
func (d *Dataset) HasType(t TypeKey) bool {
	for _, v := range d.Lineup {
		if v.Type == t {
			return true
		}
	}
	return false
}

// VehicleTotal sums a vehicle's sales over all months.
func (d *Dataset) VehicleTotal(key VehicleKey) int {
	total := 0
	for _, m := range d.Vehicles {
		total += m.Sales.Sales(key)
	}
	return total
}

// TypeTotal sums a type's sales over all months.
func (d *Dataset) TypeTotal(t TypeKey) int {
	total := 0
	for _, m := range d.Types {
		total += m.Get(t)
	}
	return total
}
