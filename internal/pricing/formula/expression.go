package formula

import (
	"math"
)

type node interface {
	eval(bindings map[string]float64, onVariableUsed func(string)) (float64, error)
}

type numberNode struct {
	value float64
}

func (n *numberNode) eval(map[string]float64, func(string)) (float64, error) {
	return n.value, nil
}

type variableNode struct {
	key string
}

func (n *variableNode) eval(bindings map[string]float64, onVariableUsed func(string)) (float64, error) {
	v, ok := bindings[n.key]
	if !ok {
		return 0, &UnknownVariableError{Key: n.key}
	}
	if onVariableUsed != nil {
		onVariableUsed(n.key)
	}
	return v, nil
}

type unaryNode struct {
	negate  bool
	operand node
}

func (n *unaryNode) eval(bindings map[string]float64, onVariableUsed func(string)) (float64, error) {
	v, err := n.operand.eval(bindings, onVariableUsed)
	if err != nil {
		return 0, err
	}
	if n.negate {
		return -v, nil
	}
	return v, nil
}

type binaryNode struct {
	op    tokenKind
	left  node
	right node
}

func (n *binaryNode) eval(bindings map[string]float64, onVariableUsed func(string)) (float64, error) {
	l, err := n.left.eval(bindings, onVariableUsed)
	if err != nil {
		return 0, err
	}
	r, err := n.right.eval(bindings, onVariableUsed)
	if err != nil {
		return 0, err
	}

	var result float64
	switch n.op {
	case tokPlus:
		result = l + r
	case tokMinus:
		result = l - r
	case tokStar:
		result = l * r
	case tokSlash:
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		result = l / r
	}

	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, ErrNotFinite
	}
	return result, nil
}

// Expression разобранная формула; неизменяема и безопасна для конкурентного использования
type Expression struct {
	src  string
	root node
}

// Source исходный текст формулы
func (e *Expression) Source() string {
	return e.src
}

// Eval вычисляет выражение по таблице значений
// onVariableUsed вызывается на каждое вхождение идентификатора (может быть nil)
func (e *Expression) Eval(bindings map[string]float64, onVariableUsed func(string)) (float64, error) {
	return e.root.eval(bindings, onVariableUsed)
}

// Identifiers возвращает идентификаторы в порядке появления без повторов
func (e *Expression) Identifiers() []string {
	seen := make(map[string]struct{})
	idents := make([]string, 0)
	var walk func(n node)
	walk = func(n node) {
		switch v := n.(type) {
		case *variableNode:
			if _, ok := seen[v.key]; !ok {
				seen[v.key] = struct{}{}
				idents = append(idents, v.key)
			}
		case *unaryNode:
			walk(v.operand)
		case *binaryNode:
			walk(v.left)
			walk(v.right)
		}
	}
	walk(e.root)
	return idents
}

// Evaluate разбирает и вычисляет формулу за один вызов
func Evaluate(src string, bindings map[string]float64, onVariableUsed func(string), limits Limits) (float64, error) {
	expr, err := Parse(src, limits)
	if err != nil {
		return 0, err
	}
	return expr.Eval(bindings, onVariableUsed)
}
