package formula

// Limits ограничения на размер формулы, проверяются до и во время разбора
type Limits struct {
	MaxLength int // максимальная длина исходной строки в байтах
	MaxDepth  int // максимальная глубина вложенности скобок
}

const (
	DefaultMaxLength = 1000
	DefaultMaxDepth  = 32
)

// DefaultLimits значения по умолчанию
func DefaultLimits() Limits {
	return Limits{MaxLength: DefaultMaxLength, MaxDepth: DefaultMaxDepth}
}

func (l Limits) withDefaults() Limits {
	if l.MaxLength <= 0 {
		l.MaxLength = DefaultMaxLength
	}
	if l.MaxDepth <= 0 {
		l.MaxDepth = DefaultMaxDepth
	}
	return l
}
