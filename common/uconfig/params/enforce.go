/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package params

import (
	"encoding/base64"
	"fmt"
	"strconv"
)

// enforceAny converts value to a Value while applying constraints. Empty strings
// and out of range integers are replaced by def. Byte slices are stored as base64.
func enforceAny(value any, min int, max int, def Value) Value {
	switch v := value.(type) {

	case string:
		if v == "" {
			return def
		}
		return Value(v)

	case []byte:
		if len(v) == 0 {
			return def
		}
		return Value(base64.StdEncoding.EncodeToString(v))

	case int:
		if !inRange(v, min, max) {
			return def
		}
		return Value(strconv.Itoa(v))

	case int64:
		if !inRange(int(v), min, max) {
			return def
		}
		return Value(strconv.FormatInt(v, 10))

	default:
		return Value(fmt.Sprintf("%v", v))
	}
}

// enforce returns the effective value of an element: the default when the value
// is empty, or when it is an integer outside [Min, Max]. A zero bound is unset.
func enforce(e Element) Value {
	if e.Value == "" {
		return e.Default
	}

	intValue, err := strconv.Atoi(string(e.Value))
	if err == nil && !inRange(intValue, e.Min, e.Max) {
		return e.Default
	}
	return e.Value
}

func inRange(v, min, max int) bool {
	if min != 0 && v < min {
		return false
	}
	if max != 0 && v > max {
		return false
	}
	return true
}
