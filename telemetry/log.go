package telemetry

import (
	"context"

	"github.com/iwtcode/mechanismAdapter/models"
	"github.com/sirupsen/logrus"
)

// LogPublisher пишет каждый механизм снимка отдельной записью журнала.
type LogPublisher struct {
	log logrus.FieldLogger
}

func NewLogPublisher(logger logrus.FieldLogger) *LogPublisher {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogPublisher{log: logger}
}

func (p *LogPublisher) Publish(_ context.Context, snapshot *models.Snapshot) error {
	if snapshot == nil {
		return ErrNilSnapshot
	}

	for _, m := range snapshot.Mechanisms {
		p.log.WithFields(logrus.Fields{
			"run_id":    snapshot.RunID,
			"seq":       snapshot.Sequence,
			"mechanism": m.Name,
			"position":  m.Position,
			"unit":      m.Unit,
			"state":     m.PositionState,
			"target":    m.Target,
			"at_target": m.AtTarget,
			"mode":      m.ControlMode,
		}).Debug("mechanism telemetry")
	}
	for _, a := range snapshot.Alerts {
		p.log.WithFields(logrus.Fields{
			"run_id": snapshot.RunID,
			"alert":  a.Key,
			"type":   a.Type,
		}).Info(a.Text)
	}
	return nil
}

func (p *LogPublisher) Close() error { return nil }
