package actuator

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// SimulatorConfig задает кинематику упрощенной модели привода.
type SimulatorConfig struct {
	ID             int
	FreeSpeedRPS   float64 // обороты в секунду при полной мощности
	NominalVoltage float64
	ResponseHz     float64 // скорость сходимости к цели в режиме позиции
	TemperatureC   float64
}

// DefaultSimulatorConfig возвращает параметры типичного бесщеточного привода.
func DefaultSimulatorConfig(id int) SimulatorConfig {
	return SimulatorConfig{
		ID:             id,
		FreeSpeedRPS:   100,
		NominalVoltage: 12,
		ResponseHz:     8,
		TemperatureC:   25,
	}
}

// Simulator - программная модель привода. Безопасна для конкурентного доступа.
type Simulator struct {
	mu        sync.Mutex
	cfg       SimulatorConfig
	position  float64
	mode      Mode
	value     float64
	connected bool
	faults    bool
	tempC     float64
	failNext  int
	failAll   bool
	commands  int
}

var (
	_ Driver       = (*Simulator)(nil)
	_ StatusReader = (*Simulator)(nil)
)

// NewSimulator создает привод в нулевой позиции в режиме простоя.
func NewSimulator(cfg SimulatorConfig) *Simulator {
	if cfg.NominalVoltage == 0 {
		cfg.NominalVoltage = 12
	}
	return &Simulator{
		cfg:       cfg,
		mode:      ModeIdle,
		connected: true,
		tempC:     cfg.TemperatureC,
	}
}

func (s *Simulator) ReadPosition() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

func (s *Simulator) CommandPosition(rotations float64) error {
	return s.accept(ModePosition, rotations)
}

func (s *Simulator) CommandOpenLoop(level float64) error {
	return s.accept(ModeOpenLoop, level)
}

func (s *Simulator) CommandVoltage(volts float64) error {
	return s.accept(ModeVoltage, volts)
}

func (s *Simulator) CommandStop() error {
	return s.accept(ModeIdle, 0)
}

func (s *Simulator) accept(mode Mode, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.commands++
	if !s.connected {
		return fmt.Errorf("actuator %d: %w: not connected", s.cfg.ID, ErrRejected)
	}
	if s.failAll || s.failNext > 0 {
		if s.failNext > 0 {
			s.failNext--
		}
		return fmt.Errorf("actuator %d: %w: %s", s.cfg.ID, ErrRejected, mode)
	}
	s.mode = mode
	s.value = value
	return nil
}

// Step продвигает модель на dt.
func (s *Simulator) Step(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sec := dt.Seconds()
	if sec <= 0 {
		return
	}

	switch s.mode {
	case ModePosition:
		maxStep := s.cfg.FreeSpeedRPS * sec
		delta := (s.value - s.position) * math.Min(1, s.cfg.ResponseHz*sec)
		s.position += math.Max(-maxStep, math.Min(maxStep, delta))
	case ModeOpenLoop:
		s.position += s.value * s.cfg.FreeSpeedRPS * sec
	case ModeVoltage:
		s.position += s.value / s.cfg.NominalVoltage * s.cfg.FreeSpeedRPS * sec
	}
}

// Status возвращает диагностику привода.
func (s *Simulator) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{Connected: s.connected, TemperatureC: s.tempC, CriticalFaults: s.faults}
}

// LastCommand возвращает последний принятый режим и его аргумент.
func (s *Simulator) LastCommand() (Mode, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode, s.value
}

// CommandCount - число команд, полученных драйвером, включая отклоненные.
func (s *Simulator) CommandCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commands
}

// SetPosition принудительно выставляет позицию (например, после концевика).
func (s *Simulator) SetPosition(rotations float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position = rotations
}

func (s *Simulator) SetConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = connected
}

func (s *Simulator) SetTemperature(celsius float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tempC = celsius
}

func (s *Simulator) SetCriticalFaults(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = active
}

// FailCommands заставляет драйвер отклонить следующие n команд.
func (s *Simulator) FailCommands(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = n
}

// FailAllCommands включает или выключает постоянный отказ.
func (s *Simulator) FailAllCommands(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAll = fail
}
