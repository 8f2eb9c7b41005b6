package units

import (
	"math"
	"sync"

	"github.com/sirupsen/logrus"
)

// warnLog - единый канал предупреждений для некритичных ошибок в арифметике величин.
var (
	warnMu  sync.RWMutex
	warnLog logrus.FieldLogger = logrus.StandardLogger()
)

// SetWarningLogger подменяет канал предупреждений для всего процесса.
// nil возвращает стандартный логгер logrus.
func SetWarningLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	warnMu.Lock()
	warnLog = l
	warnMu.Unlock()
}

func warn(family string, msg string) {
	warnMu.RLock()
	l := warnLog
	warnMu.RUnlock()
	l.WithField("family", family).Warn(msg)
}

// Family - семейство механизмов. Величины разных семейств несовместимы на уровне типов.
type Family interface {
	familyName() string
}

// Hoist - линейный подъемник.
type Hoist struct{}

// Lever - поворотный рычаг.
type Lever struct{}

// Clamp - зажим.
type Clamp struct{}

func (Hoist) familyName() string { return "HoistPosition" }
func (Lever) familyName() string { return "LeverAngle" }
func (Clamp) familyName() string { return "ClampAngle" }

// Quantity хранит физическую величину механизма в канонической единице -
// оборотах привода. Значение неизменяемое: любая операция возвращает новый экземпляр.
type Quantity[F Family] struct {
	raw float64
}

type (
	HoistPosition = Quantity[Hoist]
	LeverAngle    = Quantity[Lever]
	ClampAngle    = Quantity[Clamp]
)

// FromRaw оборачивает показание привода без преобразования.
func FromRaw[F Family](rotations float64) Quantity[F] {
	return Quantity[F]{raw: rotations}
}

// FromUnits переводит значение в единицах механизма в обороты привода.
func FromUnits[F Family](value float64, c Conversion) Quantity[F] {
	return Quantity[F]{raw: value * c.RawPerUnit}
}

// Raw возвращает значение в оборотах привода.
func (q Quantity[F]) Raw() float64 {
	return q.raw
}

// ToUnits возвращает значение в единицах механизма.
func (q Quantity[F]) ToUnits(c Conversion) float64 {
	return q.raw / c.RawPerUnit
}

// Ptr возвращает указатель на копию величины. Удобно для опциональных аргументов.
func (q Quantity[F]) Ptr() *Quantity[F] {
	return &q
}

// Add складывает величины. Отсутствующий операнд не считается фатальной ошибкой:
// пишется предупреждение и возвращается копия левого операнда.
func (q Quantity[F]) Add(b *Quantity[F]) Quantity[F] {
	if b == nil {
		warn(familyOf[F](), "cannot add a nil operand, returning left operand unchanged")
		return q
	}
	return Quantity[F]{raw: q.raw + b.raw}
}

// Sub вычитает b из q. Поведение при отсутствующем операнде такое же, как у Add.
func (q Quantity[F]) Sub(b *Quantity[F]) Quantity[F] {
	if b == nil {
		warn(familyOf[F](), "cannot subtract a nil operand, returning left operand unchanged")
		return q
	}
	return Quantity[F]{raw: q.raw - b.raw}
}

// Abs возвращает модуль величины.
func (q Quantity[F]) Abs() Quantity[F] {
	return Quantity[F]{raw: math.Abs(q.raw)}
}

// Within проверяет попадание в замкнутый интервал [center-tolerance, center+tolerance].
func (q Quantity[F]) Within(center, tolerance Quantity[F]) bool {
	return q.raw >= center.raw-tolerance.raw && q.raw <= center.raw+tolerance.raw
}

// IsFinite сообщает, что значение не NaN и не бесконечность.
func (q Quantity[F]) IsFinite() bool {
	return !math.IsNaN(q.raw) && !math.IsInf(q.raw, 0)
}

func familyOf[F Family]() string {
	var f F
	return f.familyName()
}
