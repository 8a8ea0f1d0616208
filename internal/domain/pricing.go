package domain

import "time"

// ValueType is the declared type of a variable, literal or comparison
type ValueType string

const (
	TypeNumber   ValueType = "number"
	TypeTime     ValueType = "time"
	TypeDate     ValueType = "date"
	TypeDateTime ValueType = "datetime"
)

// IsValid reports whether t is one of the supported value types
func (t ValueType) IsValid() bool {
	switch t {
	case TypeNumber, TypeTime, TypeDate, TypeDateTime:
		return true
	}
	return false
}

// Comparator of a condition
type Comparator string

const (
	CmpLess        Comparator = "<"
	CmpLessOrEq    Comparator = "<="
	CmpGreater     Comparator = ">"
	CmpGreaterOrEq Comparator = ">="
	CmpEqual       Comparator = "="
	CmpNotEqual    Comparator = "!="
)

// IsValid reports whether c is a supported comparator
func (c Comparator) IsValid() bool {
	switch c {
	case CmpLess, CmpLessOrEq, CmpGreater, CmpGreaterOrEq, CmpEqual, CmpNotEqual:
		return true
	}
	return false
}

// Connector joins a condition with the result of the preceding ones
type Connector string

const (
	ConnectorNone Connector = ""
	ConnectorAnd  Connector = "and"
	ConnectorOr   Connector = "or"
)

// OperandKind discriminates Operand
type OperandKind string

const (
	OperandVariable OperandKind = "variable"
	OperandLiteral  OperandKind = "literal"
)

// Operand is either a variable reference (Key) or a typed literal (Value, Type, Meridiem)
type Operand struct {
	Kind OperandKind `json:"kind"`

	// variable
	Key string `json:"key,omitempty"`

	// literal
	Value    string    `json:"value,omitempty"`
	Type     ValueType `json:"type,omitempty"`
	Meridiem string    `json:"meridiem,omitempty"` // AM/PM for 12-hour time literals
}

// VariableOperand references a built-in or declared variable
func VariableOperand(key string) Operand {
	return Operand{Kind: OperandVariable, Key: key}
}

// LiteralOperand is a typed constant
func LiteralOperand(value string, typ ValueType) Operand {
	return Operand{Kind: OperandLiteral, Value: value, Type: typ}
}

// Condition is one comparison of an IF clause
type Condition struct {
	ID         string     `json:"id"`
	Connector  Connector  `json:"connector,omitempty"` // ignored for the first condition
	Negated    bool       `json:"negated"`
	Comparator Comparator `json:"comparator"`
	Type       ValueType  `json:"type"` // comparison type, operands are coerced to it
	Left       Operand    `json:"left"`
	Right      Operand    `json:"right"`
}

// Variable is a partner-declared input of a price formula
type Variable struct {
	Key          string    `json:"key"`
	Label        string    `json:"label"`
	Type         ValueType `json:"type"`
	InitialValue *string   `json:"initialValue,omitempty"`

	// ClientEditable allows the booking customer to supply the value at checkout.
	// Host-only variables always take InitialValue.
	ClientEditable bool `json:"clientEditable,omitempty"`
}

// RuleDefinition declarative price formula: variables, IF conditions and "THEN ELSE ELSE-part" formula
type RuleDefinition struct {
	Name       string      `json:"name"`
	Variables  []Variable  `json:"variables"`
	Conditions []Condition `json:"conditions"`
	Formula    string      `json:"formula"`
}

// PricingRule a stored version of an area's rule definition
// Only the latest version of an area is considered, and only when Active
type PricingRule struct {
	ID         int64
	AreaID     int64
	Version    int
	Active     bool
	Definition RuleDefinition
	CreatedBy  int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Built-in variables, always bound and never declared
const (
	VarBookingHours  = "booking_hours"
	VarBookingDays   = "booking_days"
	VarBookingWeeks  = "booking_weeks"
	VarBookingMonths = "booking_months"
	VarDayOfWeek     = "day_of_week"
	VarTime          = "time"
	VarDate          = "date"
	VarDateTime      = "datetime"
)

// BuiltinVariables maps built-in keys to their types
var BuiltinVariables = map[string]ValueType{
	VarBookingHours:  TypeNumber,
	VarBookingDays:   TypeNumber,
	VarBookingWeeks:  TypeNumber,
	VarBookingMonths: TypeNumber,
	VarDayOfWeek:     TypeNumber,
	VarTime:          TypeTime,
	VarDate:          TypeDate,
	VarDateTime:      TypeDateTime,
}

// IsBuiltinVariable reports whether key is reserved
func IsBuiltinVariable(key string) bool {
	_, ok := BuiltinVariables[key]
	return ok
}
