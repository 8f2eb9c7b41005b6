package models

// TargetRequest задает цель механизма: либо по имени положения, либо числом в указанных единицах.
type TargetRequest struct {
	State string   `json:"state,omitempty"` // "L1", "OPEN"
	Value *float64 `json:"value,omitempty"`
	Unit  string   `json:"unit,omitempty"` // "inches", "degrees"; пусто - обороты привода
}

// OpenLoopRequest задает скважность разомкнутого управления.
type OpenLoopRequest struct {
	Level *float64 `json:"level" binding:"required"`
}

// VoltageRequest задает напряжение на приводе.
type VoltageRequest struct {
	Volts *float64 `json:"volts" binding:"required"`
}
