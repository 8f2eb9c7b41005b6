package models

import (
	"time"

	telemetry "github.com/iwtcode/mechanismAdapter/models"
)

// MechanismsResponse содержит последнюю сводку по всем механизмам.
type MechanismsResponse struct {
	RunID      string                         `json:"run_id"`
	Sequence   uint64                         `json:"sequence"`
	Timestamp  time.Time                      `json:"timestamp"`
	Mechanisms []telemetry.MechanismTelemetry `json:"mechanisms"`
}

// AlertsResponse содержит активные оповещения.
type AlertsResponse struct {
	Alerts []telemetry.AlertState `json:"alerts"`
}

// MessageResponse - стандартный ответ об успешной операции.
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
