package units

import (
	"fmt"
	"math"
)

// StateName - символическое имя положения механизма.
type StateName string

// Именованные положения механизмов
const (
	Home   StateName = "HOME"
	L1     StateName = "L1"
	L2     StateName = "L2"
	L3     StateName = "L3"
	L4     StateName = "L4"
	Open   StateName = "OPEN"
	Closed StateName = "CLOSED"
)

// NoState - строка для отображения отсутствующего значения.
const NoState = "none"

// FormatState форматирует результат классификации для логов и телеметрии.
func FormatState(name StateName, ok bool) string {
	if !ok {
		return NoState
	}
	return string(name)
}

// StateEntry - пара (имя, каноническое значение).
type StateEntry[F Family] struct {
	Name  StateName
	Value Quantity[F]
}

// StateTable - упорядоченная таблица именованных положений с общим допуском.
type StateTable[F Family] struct {
	entries   []StateEntry[F]
	tolerance Quantity[F]
}

// NewStateTable создает таблицу. Порядок записей задает приоритет при
// пересечении интервалов допуска.
func NewStateTable[F Family](tolerance Quantity[F], entries ...StateEntry[F]) *StateTable[F] {
	cp := make([]StateEntry[F], len(entries))
	copy(cp, entries)
	return &StateTable[F]{entries: cp, tolerance: tolerance.Abs()}
}

// Classify возвращает первое по порядку объявления положение, в замкнутый
// интервал допуска которого попадает q. Границы включаются с обеих сторон,
// гистерезиса нет.
func (t *StateTable[F]) Classify(q Quantity[F]) (StateName, bool) {
	for _, e := range t.entries {
		if q.Within(e.Value, t.tolerance) {
			return e.Name, true
		}
	}
	return "", false
}

// Lookup возвращает определяющее значение положения без учета допуска.
func (t *StateTable[F]) Lookup(name StateName) (Quantity[F], bool) {
	for _, e := range t.entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return Quantity[F]{}, false
}

// Tolerance возвращает общий допуск таблицы.
func (t *StateTable[F]) Tolerance() Quantity[F] {
	return t.tolerance
}

// Names возвращает имена в порядке объявления.
func (t *StateTable[F]) Names() []StateName {
	names := make([]StateName, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.Name
	}
	return names
}

// Entries возвращает копию записей.
func (t *StateTable[F]) Entries() []StateEntry[F] {
	cp := make([]StateEntry[F], len(t.entries))
	copy(cp, t.entries)
	return cp
}

// HazardKind - вид опасной конфигурации таблицы.
type HazardKind string

const (
	HazardOverlap      HazardKind = "overlap"
	HazardNonMonotonic HazardKind = "non_monotonic"
	HazardDuplicate    HazardKind = "duplicate_name"
)

// Hazard описывает найденную проблему конфигурации. Таблица при этом не меняется.
type Hazard struct {
	Kind   HazardKind
	First  StateName
	Second StateName
}

func (h Hazard) String() string {
	switch h.Kind {
	case HazardOverlap:
		return fmt.Sprintf("tolerance bands of %s and %s overlap, %s wins", h.First, h.Second, h.First)
	case HazardNonMonotonic:
		return fmt.Sprintf("state %s is declared after %s but the values are not monotonic", h.Second, h.First)
	case HazardDuplicate:
		return fmt.Sprintf("state %s is declared more than once", h.First)
	default:
		return string(h.Kind)
	}
}

// Hazards ищет пересекающиеся интервалы, повторные имена и немонотонный порядок.
func (t *StateTable[F]) Hazards() []Hazard {
	var hazards []Hazard
	seen := make(map[StateName]bool, len(t.entries))
	for _, e := range t.entries {
		if seen[e.Name] {
			hazards = append(hazards, Hazard{Kind: HazardDuplicate, First: e.Name})
		}
		seen[e.Name] = true
	}

	for i := 0; i < len(t.entries); i++ {
		for j := i + 1; j < len(t.entries); j++ {
			a, b := t.entries[i], t.entries[j]
			if math.Abs(a.Value.raw-b.Value.raw) < 2*t.tolerance.raw {
				hazards = append(hazards, Hazard{Kind: HazardOverlap, First: a.Name, Second: b.Name})
			}
		}
	}

	if len(t.entries) > 2 {
		ascending := t.entries[1].Value.raw >= t.entries[0].Value.raw
		for i := 1; i < len(t.entries); i++ {
			prev, cur := t.entries[i-1], t.entries[i]
			if (cur.Value.raw >= prev.Value.raw) != ascending {
				hazards = append(hazards, Hazard{Kind: HazardNonMonotonic, First: prev.Name, Second: cur.Name})
			}
		}
	}
	return hazards
}
