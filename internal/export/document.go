package export

import (
	"github.com/Veraticus/drivetrain/internal/model"
)

// Document is the structured form written as JSON and YAML.
type Document struct {
	Types    []TypeMonth    `json:"types" yaml:"types"`
	Vehicles []VehicleMonth `json:"vehicles" yaml:"vehicles"`
	Lineup   []LineupEntry  `json:"lineup" yaml:"lineup"`
}

// TypeMonth is one month of type totals.
type TypeMonth struct {
	Month string `json:"month" yaml:"month"`
	HEV   int    `json:"hev" yaml:"hev"`
	PHEV  int    `json:"phev" yaml:"phev"`
	BEV   int    `json:"bev" yaml:"bev"`
	FCEV  int    `json:"fcev" yaml:"fcev"`
	Total int    `json:"total" yaml:"total"`
}

// VehicleMonth is one month of per-vehicle sales.
type VehicleMonth struct {
	Sales map[string]int `json:"sales" yaml:"sales"`
	Month string         `json:"month" yaml:"month"`
}

// LineupEntry describes one vehicle column.
type LineupEntry struct {
	Vehicle string `json:"vehicle" yaml:"vehicle"`
	Make    string `json:"make" yaml:"make"`
	Model   string `json:"model" yaml:"model"`
	Type    string `json:"type" yaml:"type"`
	Total   int    `json:"total" yaml:"total"`
}

// NewDocument converts a dataset to its document form.
func NewDocument(ds *model.Dataset) Document {
	doc := Document{
		Types:    make([]TypeMonth, 0, len(ds.Types)),
		Vehicles: make([]VehicleMonth, 0, len(ds.Vehicles)),
		Lineup:   make([]LineupEntry, 0, len(ds.Lineup)),
	}

	for _, m := range ds.Types {
		doc.Types = append(doc.Types, TypeMonth{
			Month: monthLabel(m.Label, m),
			HEV:   m.HEV,
			PHEV:  m.PHEV,
			BEV:   m.BEV,
			FCEV:  m.FCEV,
			Total: m.Sum(),
		})
	}

	for i, m := range ds.Vehicles {
		label := m.Label
		if label == "" && i < len(ds.Types) {
			label = monthLabel("", ds.Types[i])
		}
		sales := make(map[string]int, len(ds.Lineup))
		for _, v := range ds.Lineup {
			sales[string(v.Key)] = m.Sales.Sales(v.Key)
		}
		doc.Vehicles = append(doc.Vehicles, VehicleMonth{Month: label, Sales: sales})
	}

	for _, v := range ds.Lineup {
		doc.Lineup = append(doc.Lineup, LineupEntry{
			Vehicle: string(v.Key),
			Make:    v.Make,
			Model:   v.Model,
			Type:    string(v.Type),
			Total:   ds.VehicleTotal(v.Key),
		})
	}

	return doc
}
