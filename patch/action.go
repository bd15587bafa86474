package patch

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Action is the kind of a patch node.  The numeric values are part of the
// wire format.
type Action int

const (
	ActionSet Action = iota
	ActionDelete
	ActionMapSet
	ActionMapDelete
	ActionMapClear
	ActionSetAdd
	ActionSetDelete
	ActionSetClear
	ActionNested
	ActionArraySplice
	ActionArrayReverse
	ActionReplace
)

var actionNames = [...]string{
	ActionSet:          "set",
	ActionDelete:       "delete",
	ActionMapSet:       "map-set",
	ActionMapDelete:    "map-delete",
	ActionMapClear:     "map-clear",
	ActionSetAdd:       "set-add",
	ActionSetDelete:    "set-delete",
	ActionSetClear:     "set-clear",
	ActionNested:       "nested",
	ActionArraySplice:  "array-splice",
	ActionArrayReverse: "array-reverse",
	ActionReplace:      "replace",
}

func (a Action) String() string {
	if a.Valid() {
		return actionNames[a]
	}
	return "action(" + strconv.Itoa(int(a)) + ")"
}

func (a Action) Valid() bool {
	return a >= 0 && int(a) < len(actionNames)
}

// OnContainer reports whether a acts on the addressed container itself
// rather than on one of its slots.  Such patches have an empty P.
func (a Action) OnContainer() bool {
	switch a {
	case ActionMapClear, ActionSetAdd, ActionSetDelete, ActionSetClear,
		ActionArraySplice, ActionArrayReverse, ActionReplace:
		return true
	}
	return false
}

// ParseAction accepts either an action name or its wire number.
func ParseAction(s string) (Action, error) {
	for i, n := range actionNames {
		if strings.EqualFold(n, s) {
			return Action(i), nil
		}
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: unknown action %q", ErrUnsupportedPatch, s)
	}
	return Action(i), nil
}

func (a *Action) UnmarshalJSON(d []byte) error {
	var s string
	if err := json.Unmarshal(d, &s); err == nil {
		res, err := ParseAction(s)
		if err != nil {
			return err
		}
		*a = res
		return nil
	}
	var i int
	if err := json.Unmarshal(d, &i); err != nil {
		return fmt.Errorf("%w: action %s", ErrMalformedPatch, d)
	}
	*a = Action(i)
	return nil
}
