package parser

import (
	"encoding/json"
	"strings"
	"testing"

	stderrors "errors"

	"github.com/mcncl/rrapi/internal/errors"
	"github.com/mcncl/rrapi/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SimpleObject(t *testing.T) {
	root, err := ParseString(`{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`)
	require.NoError(t, err)

	expected := models.JSONObject{
		{Key: "name", Value: "John Doe"},
		{Key: "age", Value: json.Number("30")},
		{Key: "isStudent", Value: false},
		{Key: "city", Value: nil},
	}
	assert.Equal(t, expected, root)
}

func TestParse_SimpleArray(t *testing.T) {
	root, err := ParseString(`[1, "test", true, null, 3.14]`)
	require.NoError(t, err)

	expected := models.JSONArray{
		json.Number("1"),
		"test",
		true,
		nil,
		json.Number("3.14"),
	}
	assert.Equal(t, expected, root)
}

func TestParse_PreservesMemberOrder(t *testing.T) {
	root, err := ParseString(`{"zeta": 1, "alpha": 2, "mid": 3}`)
	require.NoError(t, err)

	obj, ok := root.(models.JSONObject)
	require.True(t, ok, "root is %T", root)

	keys := make([]string, 0, len(obj))
	for _, m := range obj {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys)
}

func TestParse_NestedStructures(t *testing.T) {
	root, err := ParseString(`{"data": {"report": {"items": [{"id": 1}, {"id": 2}], "empty": {}, "none": []}}}`)
	require.NoError(t, err)

	expected := models.JSONObject{
		{Key: "data", Value: models.JSONObject{
			{Key: "report", Value: models.JSONObject{
				{Key: "items", Value: models.JSONArray{
					models.JSONObject{{Key: "id", Value: json.Number("1")}},
					models.JSONObject{{Key: "id", Value: json.Number("2")}},
				}},
				{Key: "empty", Value: models.JSONObject{}},
				{Key: "none", Value: models.JSONArray{}},
			}},
		}},
	}
	assert.Equal(t, expected, root)
}

func TestParse_KeepsNumericText(t *testing.T) {
	root, err := ParseString(`[12345678901234567890123, 0.10000000000000000000001, -1e400, 2.50]`)
	require.NoError(t, err)

	assert.Equal(t, models.JSONArray{
		json.Number("12345678901234567890123"),
		json.Number("0.10000000000000000000001"),
		json.Number("-1e400"),
		json.Number("2.50"),
	}, root)
}

func TestParse_RootScalars(t *testing.T) {
	tests := []struct {
		input    string
		expected models.JSONValue
	}{
		{`42`, json.Number("42")},
		{`"hello"`, "hello"},
		{`true`, true},
		{`null`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			root, err := ParseString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, root)
		})
	}
}

func TestParse_DuplicateKeysAreKept(t *testing.T) {
	root, err := ParseString(`{"a": 1, "a": 2}`)
	require.NoError(t, err)

	obj := root.(models.JSONObject)
	require.Len(t, obj, 2)
	v, ok := obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, json.Number("2"), v)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
	}{
		{"empty", "", errors.ErrEmptyInput},
		{"whitespace", "   \n\t ", errors.ErrEmptyInput},
		{"syntax error", `{"name": "John", "age": }`, errors.ErrInvalidJSON},
		{"missing colon", `{"name" "John"}`, errors.ErrInvalidJSON},
		{"truncated object", `{"name": "John"`, errors.ErrInvalidJSON},
		{"truncated array", `[1, 2`, errors.ErrInvalidJSON},
		{"html error page", `<html>Bad Gateway</html>`, errors.ErrInvalidJSON},
		{"multiple values", `{"a": 1} {"b": 2}`, errors.ErrMultipleJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, tt.sentinel), "got %v", err)

			var appErr *errors.AppError
			require.True(t, stderrors.As(err, &appErr))
			assert.Equal(t, errors.ErrorTypeParsing, appErr.Type)
		})
	}
}

func TestParse_TrailingWhitespaceIsAllowed(t *testing.T) {
	root, err := Parse(strings.NewReader("{\"ok\": true}\n\n  "))
	require.NoError(t, err)
	assert.Equal(t, models.JSONObject{{Key: "ok", Value: true}}, root)
}

func TestParse_MaxDepth(t *testing.T) {
	atLimit := strings.Repeat("[", MaxDepth) + strings.Repeat("]", MaxDepth)
	_, err := ParseString(atLimit)
	require.NoError(t, err)

	tooDeep := strings.Repeat("[", MaxDepth+1) + strings.Repeat("]", MaxDepth+1)
	_, err = ParseString(tooDeep)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrTooDeep))
}
