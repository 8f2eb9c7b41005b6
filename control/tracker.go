package control

import "github.com/iwtcode/mechanismAdapter/units"

// Tracker хранит текущую цель замкнутого контура. Цель либо отсутствует
// (NoTarget), либо задана (Targeting). Сам Tracker не синхронизирован:
// его защищает мьютекс владеющего механизма.
type Tracker[F units.Family] struct {
	target    units.Quantity[F]
	hasTarget bool
	tolerance units.Quantity[F]
}

// NewTracker создает трекер без цели с заданным допуском удержания.
func NewTracker[F units.Family](tolerance units.Quantity[F]) *Tracker[F] {
	return &Tracker[F]{tolerance: tolerance.Abs()}
}

// Set задает или заменяет цель.
func (t *Tracker[F]) Set(target units.Quantity[F]) {
	t.target = target
	t.hasTarget = true
}

// Clear сбрасывает цель.
func (t *Tracker[F]) Clear() {
	t.target = units.Quantity[F]{}
	t.hasTarget = false
}

// Target возвращает цель и признак ее наличия.
func (t *Tracker[F]) Target() (units.Quantity[F], bool) {
	return t.target, t.hasTarget
}

// Tolerance возвращает допуск удержания цели.
func (t *Tracker[F]) Tolerance() units.Quantity[F] {
	return t.tolerance
}

// Distance возвращает target - current, если цель задана.
func (t *Tracker[F]) Distance(current units.Quantity[F]) (units.Quantity[F], bool) {
	if !t.hasTarget {
		return units.Quantity[F]{}, false
	}
	return t.target.Sub(&current), true
}

// AtTarget возвращает Unknown без цели, иначе True, если |current - target| <= tolerance.
func (t *Tracker[F]) AtTarget(current units.Quantity[F]) units.TriState {
	if !t.hasTarget {
		return units.Unknown
	}
	return units.TriStateOf(current.Within(t.target, t.tolerance))
}
