package mechanism_service

import (
	"fmt"

	"github.com/iwtcode/mechanismAdapter/control"
	"github.com/iwtcode/mechanismAdapter/internal/domain/models"
	apperrors "github.com/iwtcode/mechanismAdapter/pkg/errors"
	"github.com/iwtcode/mechanismAdapter/units"
)

type controller interface {
	HasState(name units.StateName) bool
	SetTargetByName(name units.StateName) error
	SetTargetValue(value float64, unit string) error
	SetOpenLoop(level float64) error
	SetVoltage(volts float64) error
	Stop() error
}

// adapter снимает параметр семейства, чтобы механизмы разных семейств
// можно было вызывать по имени.
type adapter[F units.Family] struct {
	*control.Mechanism[F]
}

func (a adapter[F]) HasState(name units.StateName) bool {
	_, ok := a.Spec().States.Lookup(name)
	return ok
}

func (a adapter[F]) SetTargetValue(value float64, unit string) error {
	conv, ok := a.Conversion(unit)
	if !ok {
		return fmt.Errorf("%w: %s has no unit %q", apperrors.ErrUnknownUnit, a.Name(), unit)
	}
	target := units.FromUnits[F](value, conv)
	return a.SetTarget(&target)
}

func (s *mechanismService) registerControllers() {
	s.controllers = map[string]controller{
		s.client.Hoist().Name(): adapter[units.Hoist]{s.client.Hoist()},
		s.client.Lever().Name(): adapter[units.Lever]{s.client.Lever()},
		s.client.Clamp().Name(): adapter[units.Clamp]{s.client.Clamp()},
	}
	s.names = []string{s.client.Hoist().Name(), s.client.Lever().Name(), s.client.Clamp().Name()}
}

func (s *mechanismService) controller(name string) (controller, error) {
	c, ok := s.controllers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrMechanismNotFound, name)
	}
	return c, nil
}

// Names возвращает имена механизмов в порядке объявления.
func (s *mechanismService) Names() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

func (s *mechanismService) SetTarget(name string, req models.TargetRequest) error {
	c, err := s.controller(name)
	if err != nil {
		return err
	}

	switch {
	case req.State != "" && req.Value != nil:
		return fmt.Errorf("%w: state and value are mutually exclusive", apperrors.ErrInvalidRequest)
	case req.State != "":
		state := units.StateName(req.State)
		if !c.HasState(state) {
			return fmt.Errorf("%w: %s has no state %q", apperrors.ErrUnknownState, name, req.State)
		}
		s.logger.Info("Setting target by state", "mechanism", name, "state", req.State)
		return c.SetTargetByName(state)
	case req.Value != nil:
		s.logger.Info("Setting target by value", "mechanism", name, "value", *req.Value, "unit", req.Unit)
		return c.SetTargetValue(*req.Value, req.Unit)
	default:
		return fmt.Errorf("%w: either state or value is required", apperrors.ErrInvalidRequest)
	}
}

func (s *mechanismService) SetOpenLoop(name string, level float64) error {
	c, err := s.controller(name)
	if err != nil {
		return err
	}
	return c.SetOpenLoop(level)
}

func (s *mechanismService) SetVoltage(name string, volts float64) error {
	c, err := s.controller(name)
	if err != nil {
		return err
	}
	return c.SetVoltage(volts)
}

func (s *mechanismService) Stop(name string) error {
	c, err := s.controller(name)
	if err != nil {
		return err
	}
	return c.Stop()
}

func (s *mechanismService) StopAll() error {
	s.logger.Info("Stopping all mechanisms")
	return s.client.StopAll()
}
