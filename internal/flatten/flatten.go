// Package flatten turns a nested JSON value into a single-level mapping of
// slash-delimited paths to string values.
//
// Objects contribute "/<key>" and arrays "/<index>" to the path of each
// descendant. Only leaves (strings, numbers, booleans and null) produce
// entries, so empty objects and arrays vanish from the result. A scalar at
// the root is stored under the empty path.
package flatten

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/mcncl/rrapi/internal/models"
)

// ErrorMessagePath is where a GraphQL API puts the first application error.
const ErrorMessagePath = "/errors/0/message"

// Leaf representations for non-string scalars.
const (
	True      = "true"
	False     = "false"
	Null      = "null"
	Undefined = "undefined"
)

type frame struct {
	path  string
	value models.JSONValue
}

// Flatten walks value depth first and records every leaf under its path.
// Entries appear in document order. A key repeated within one object
// overwrites the earlier value.
func Flatten(value models.JSONValue) *models.FlatMap {
	out := models.NewFlatMap()

	// Children are pushed in reverse so they pop in document order.
	stack := []frame{{path: "", value: value}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch v := cur.value.(type) {
		case models.JSONObject:
			for i := len(v) - 1; i >= 0; i-- {
				stack = append(stack, frame{path: cur.path + "/" + v[i].Key, value: v[i].Value})
			}
		case map[string]interface{}:
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Sort(sort.Reverse(sort.StringSlice(keys)))
			for _, k := range keys {
				stack = append(stack, frame{path: cur.path + "/" + k, value: v[k]})
			}
		case models.JSONArray:
			for i := len(v) - 1; i >= 0; i-- {
				stack = append(stack, frame{path: cur.path + "/" + strconv.Itoa(i), value: v[i]})
			}
		case []interface{}:
			for i := len(v) - 1; i >= 0; i-- {
				stack = append(stack, frame{path: cur.path + "/" + strconv.Itoa(i), value: v[i]})
			}
		default:
			out.Set(cur.path, Scalar(v))
		}
	}

	return out
}

// Scalar returns the flattened representation of a leaf value.
func Scalar(value models.JSONValue) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return True
		}
		return False
	case nil:
		return Null
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return Undefined
	}
}

// ErrorMessage returns the first application error reported in a flattened
// GraphQL response.
func ErrorMessage(m *models.FlatMap) (string, bool) {
	return m.Get(ErrorMessagePath)
}
