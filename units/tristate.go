package units

// TriState - результат "достигнута ли цель": Unknown, когда цели нет.
type TriState int8

const (
	Unknown TriState = iota
	True
	False
)

// TriStateOf переводит известный bool в TriState.
func TriStateOf(v bool) TriState {
	if v {
		return True
	}
	return False
}

// Known сообщает, что значение не Unknown.
func (t TriState) Known() bool {
	return t != Unknown
}

// Bool возвращает значение и признак его наличия.
func (t TriState) Bool() (value bool, ok bool) {
	switch t {
	case True:
		return true, true
	case False:
		return false, true
	default:
		return false, false
	}
}

func (t TriState) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}
