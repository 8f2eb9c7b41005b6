package usecases

import (
	"fmt"

	"github.com/iwtcode/mechanismAdapter/internal/domain/models"
	"github.com/iwtcode/mechanismAdapter/internal/interfaces"
	telemetry "github.com/iwtcode/mechanismAdapter/models"
	apperrors "github.com/iwtcode/mechanismAdapter/pkg/errors"
)

type Usecase struct {
	mechanismSvc interfaces.MechanismService
}

func NewUsecase(mechanismSvc interfaces.MechanismService) interfaces.Usecases {
	return &Usecase{
		mechanismSvc: mechanismSvc,
	}
}

func (u *Usecase) latest() (*telemetry.Snapshot, error) {
	snapshot, ok := u.mechanismSvc.Latest()
	if !ok {
		return nil, apperrors.ErrNoSnapshot
	}
	return snapshot, nil
}

func (u *Usecase) GetMechanisms() (*models.MechanismsResponse, error) {
	snapshot, err := u.latest()
	if err != nil {
		return nil, err
	}
	return &models.MechanismsResponse{
		RunID:      snapshot.RunID,
		Sequence:   snapshot.Sequence,
		Timestamp:  snapshot.Timestamp,
		Mechanisms: snapshot.Mechanisms,
	}, nil
}

func (u *Usecase) GetMechanism(name string) (*telemetry.MechanismTelemetry, error) {
	snapshot, err := u.latest()
	if err != nil {
		return nil, err
	}
	m, ok := snapshot.Mechanism(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrMechanismNotFound, name)
	}
	return &m, nil
}

func (u *Usecase) GetAlerts() (*models.AlertsResponse, error) {
	snapshot, err := u.latest()
	if err != nil {
		return nil, err
	}
	alerts := snapshot.Alerts
	if alerts == nil {
		alerts = []telemetry.AlertState{}
	}
	return &models.AlertsResponse{Alerts: alerts}, nil
}

func (u *Usecase) SetTarget(name string, req models.TargetRequest) error {
	return u.mechanismSvc.SetTarget(name, req)
}

func (u *Usecase) SetOpenLoop(name string, req models.OpenLoopRequest) error {
	if req.Level == nil {
		return fmt.Errorf("%w: level is required", apperrors.ErrInvalidRequest)
	}
	return u.mechanismSvc.SetOpenLoop(name, *req.Level)
}

func (u *Usecase) SetVoltage(name string, req models.VoltageRequest) error {
	if req.Volts == nil {
		return fmt.Errorf("%w: volts is required", apperrors.ErrInvalidRequest)
	}
	return u.mechanismSvc.SetVoltage(name, *req.Volts)
}

func (u *Usecase) StopMechanism(name string) error {
	return u.mechanismSvc.Stop(name)
}

func (u *Usecase) StopAll() error {
	return u.mechanismSvc.StopAll()
}
