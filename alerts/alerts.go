package alerts

import (
	"sort"
	"sync"

	"github.com/iwtcode/mechanismAdapter/models"
	"github.com/sirupsen/logrus"
)

// Type - уровень оповещения.
type Type string

const (
	Info    Type = "info"
	Warning Type = "warning"
	Error   Type = "error"
)

// Alert - именованное оповещение с текущим состоянием.
type Alert struct {
	key    string
	text   string
	typ    Type
	log    logrus.FieldLogger
	mu     sync.Mutex
	active bool
}

// Set включает или выключает оповещение. В лог пишутся только переключения.
func (a *Alert) Set(active bool) {
	if a == nil {
		return
	}
	a.mu.Lock()
	changed := a.active != active
	a.active = active
	a.mu.Unlock()

	if !changed {
		return
	}
	entry := a.log.WithFields(logrus.Fields{"alert": a.key, "type": a.typ})
	if !active {
		entry.Info("alert cleared: " + a.text)
		return
	}
	switch a.typ {
	case Error:
		entry.Error(a.text)
	case Warning:
		entry.Warn(a.text)
	default:
		entry.Info(a.text)
	}
}

// Active сообщает, включено ли оповещение.
func (a *Alert) Active() bool {
	if a == nil {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

func (a *Alert) Key() string  { return a.key }
func (a *Alert) Text() string { return a.text }
func (a *Alert) Type() Type   { return a.typ }

// Registry хранит все оповещения процесса.
type Registry struct {
	mu     sync.Mutex
	log    logrus.FieldLogger
	alerts map[string]*Alert
}

// NewRegistry создает реестр. nil-логгер заменяется стандартным логгером logrus.
func NewRegistry(log logrus.FieldLogger) *Registry {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Registry{log: log, alerts: make(map[string]*Alert)}
}

// Add регистрирует оповещение в выключенном состоянии. Повторная регистрация
// ключа возвращает уже существующее оповещение.
func (r *Registry) Add(key, text string, typ Type) *Alert {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.alerts[key]; ok {
		return a
	}
	a := &Alert{key: key, text: text, typ: typ, log: r.log}
	r.alerts[key] = a
	return a
}

// Get возвращает оповещение по ключу.
func (r *Registry) Get(key string) (*Alert, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.alerts[key]
	return a, ok
}

// Active возвращает включенные оповещения, отсортированные по ключу.
func (r *Registry) Active() []models.AlertState {
	r.mu.Lock()
	list := make([]*Alert, 0, len(r.alerts))
	for _, a := range r.alerts {
		list = append(list, a)
	}
	r.mu.Unlock()

	sort.Slice(list, func(i, j int) bool { return list[i].key < list[j].key })

	out := make([]models.AlertState, 0)
	for _, a := range list {
		if a.Active() {
			out = append(out, models.AlertState{Key: a.key, Type: string(a.typ), Text: a.text})
		}
	}
	return out
}
