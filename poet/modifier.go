package poet

import "strings"

// Modifier represents a Kotlin declaration modifier; declaration order is the canonical emission order
type Modifier int

const (
	Public Modifier = iota
	Protected
	Private
	Internal
	Expect
	Actual
	Final
	Open
	Abstract
	Sealed
	Const
	External
	Override
	Lateinit
	Tailrec
	Vararg
	Suspend
	Inner
	Enum
	Annotation
	Fun
	Companion
	Inline
	Noinline
	Crossinline
	Reified
	Infix
	Operator
	Data
	In
	Out
	modifierCount
)

type target int

const (
	targetClass target = iota
	targetObject
	targetInterface
	targetTypeAlias
	targetFunction
	targetConstructor
	targetAccessor
	targetProperty
	targetParameter
	targetFunctionTypeParameter
	targetClassTypeParameter
)

var targetNames = [...]string{
	targetClass:                 "CLASS",
	targetObject:                "OBJECT",
	targetInterface:             "INTERFACE",
	targetTypeAlias:             "TYPE_ALIAS",
	targetFunction:              "FUNCTION",
	targetConstructor:           "CONSTRUCTOR",
	targetAccessor:              "ACCESSOR",
	targetProperty:              "PROPERTY",
	targetParameter:             "PARAMETER",
	targetFunctionTypeParameter: "FUNCTION_TYPE_PARAMETER",
	targetClassTypeParameter:    "CLASS_TYPE_PARAMETER",
}

func (t target) String() string {
	return targetNames[t]
}

var declarationTargets = []target{targetClass, targetObject, targetInterface, targetFunction, targetConstructor, targetAccessor, targetProperty, targetTypeAlias, targetParameter}

type modifierInfo struct {
	keyword string
	targets []target
}

var modifierInfos = [modifierCount]modifierInfo{
	Public:      {"public", declarationTargets},
	Protected:   {"protected", declarationTargets},
	Private:     {"private", declarationTargets},
	Internal:    {"internal", declarationTargets},
	Expect:      {"expect", nil},
	Actual:      {"actual", nil},
	Final:       {"final", []target{targetClass, targetFunction, targetProperty, targetParameter}},
	Open:        {"open", []target{targetClass, targetFunction, targetProperty, targetParameter}},
	Abstract:    {"abstract", []target{targetClass, targetFunction, targetProperty, targetParameter}},
	Sealed:      {"sealed", []target{targetClass, targetInterface}},
	Const:       {"const", []target{targetProperty}},
	External:    {"external", []target{targetClass, targetObject, targetInterface, targetFunction, targetProperty}},
	Override:    {"override", []target{targetFunction, targetProperty, targetParameter}},
	Lateinit:    {"lateinit", []target{targetProperty}},
	Tailrec:     {"tailrec", []target{targetFunction}},
	Vararg:      {"vararg", []target{targetParameter}},
	Suspend:     {"suspend", []target{targetFunction}},
	Inner:       {"inner", []target{targetClass}},
	Enum:        {"enum", []target{targetClass}},
	Annotation:  {"annotation", []target{targetClass}},
	Fun:         {"fun", []target{targetInterface}},
	Companion:   {"companion", []target{targetObject}},
	Inline:      {"inline", []target{targetFunction, targetClass, targetProperty, targetAccessor}},
	Noinline:    {"noinline", []target{targetParameter}},
	Crossinline: {"crossinline", []target{targetParameter}},
	Reified:     {"reified", []target{targetFunctionTypeParameter}},
	Infix:       {"infix", []target{targetFunction}},
	Operator:    {"operator", []target{targetFunction}},
	Data:        {"data", []target{targetClass}},
	In:          {"in", []target{targetClassTypeParameter}},
	Out:         {"out", []target{targetClassTypeParameter}},
}

// Keyword returns the Kotlin source keyword
func (m Modifier) Keyword() string {
	if m < 0 || m >= modifierCount {
		return ""
	}
	return modifierInfos[m].keyword
}

func (m Modifier) String() string {
	return strings.ToUpper(m.Keyword())
}

func (m Modifier) checkTarget(t target) error {
	for _, candidate := range modifierInfos[m].targets {
		if candidate == t {
			return nil
		}
	}
	if modifierInfos[m].targets == nil {
		return nil
	}
	return specError("unexpected modifier %v for %v", m, t)
}

// modifierSet is an ordered set of modifiers, iteration follows the canonical order
type modifierSet uint64

func newModifierSet(modifiers ...Modifier) modifierSet {
	var result modifierSet
	for _, m := range modifiers {
		result = result.with(m)
	}
	return result
}

func (s modifierSet) has(m Modifier) bool {
	return s&(1<<uint(m)) != 0
}

func (s modifierSet) with(m Modifier) modifierSet {
	return s | (1 << uint(m))
}

func (s modifierSet) without(m Modifier) modifierSet {
	return s &^ (1 << uint(m))
}

func (s modifierSet) union(other modifierSet) modifierSet {
	return s | other
}

func (s modifierSet) hasAny(modifiers ...Modifier) bool {
	for _, m := range modifiers {
		if s.has(m) {
			return true
		}
	}
	return false
}

func (s modifierSet) list() []Modifier {
	var result []Modifier
	for m := Modifier(0); m < modifierCount; m++ {
		if s.has(m) {
			result = append(result, m)
		}
	}
	return result
}

func (s modifierSet) hasVisibility() bool {
	return s.hasAny(Public, Protected, Private, Internal)
}
