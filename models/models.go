package models

import "time"

// None - явное обозначение отсутствующего значения в телеметрии.
// Отсутствие никогда не выводится как ноль или пустая строка.
const None = "none"

// MechanismTelemetry содержит проекцию состояния механизма за один цикл опроса
type MechanismTelemetry struct {
	Name              string  `json:"name"`
	ActuatorID        int     `json:"actuator_id"`
	Unit              string  `json:"unit"`
	PositionRotations float64 `json:"position_rotations"`
	Position          float64 `json:"position"`
	PositionState     string  `json:"position_state"`
	TargetRotations   string  `json:"target_rotations"`
	Target            string  `json:"target"`
	TargetState       string  `json:"target_state"`
	DistanceToTarget  string  `json:"distance_to_target"`
	AtTarget          string  `json:"at_target"`
	ControlMode       string  `json:"control_mode"`
	Connected         bool    `json:"connected"`
	TemperatureC      float64 `json:"temperature_c"`
	CriticalFaults    bool    `json:"critical_faults"`
}

// AlertState содержит информацию об одном активном оповещении
type AlertState struct {
	Key  string `json:"key"`
	Type string `json:"type"`
	Text string `json:"text"`
}

// Snapshot содержит полную сводку по всем механизмам за один цикл.
type Snapshot struct {
	RunID      string               `json:"run_id"`
	Sequence   uint64               `json:"sequence"`
	Timestamp  time.Time            `json:"timestamp"`
	Mechanisms []MechanismTelemetry `json:"mechanisms"`
	Alerts     []AlertState         `json:"alerts"`
}

// Mechanism ищет телеметрию механизма по имени.
func (s *Snapshot) Mechanism(name string) (MechanismTelemetry, bool) {
	for _, m := range s.Mechanisms {
		if m.Name == name {
			return m, true
		}
	}
	return MechanismTelemetry{}, false
}
