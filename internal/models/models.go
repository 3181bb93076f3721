package models

// JSONValue is a generic type to represent any JSON value.
// This can be a string, json.Number, bool, nil, JSONObject or JSONArray.
type JSONValue interface{}

// JSONMember is a single name/value pair of a JSON object.
type JSONMember struct {
	Key   string
	Value JSONValue
}

// JSONObject represents a JSON object. Members keep the order in which they
// appeared in the source document.
type JSONObject []JSONMember

// Get returns the value of the last member named key.
func (o JSONObject) Get(key string) (JSONValue, bool) {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].Key == key {
			return o[i].Value, true
		}
	}
	return nil, false
}

// JSONArray represents a JSON array, which is a slice of JSONValues.
type JSONArray []JSONValue

// Undefined marks a value that has no JSON representation.
type Undefined struct{}

// FlatEntry is a single path/value pair of a FlatMap.
type FlatEntry struct {
	Path  string
	Value string
}

// FlatMap maps slash-delimited paths to string values. Keys are iterated in
// the order they were first set.
type FlatMap struct {
	keys   []string
	values map[string]string
}

// NewFlatMap creates an empty FlatMap
func NewFlatMap() *FlatMap {
	return &FlatMap{values: make(map[string]string)}
}

// Set stores value at path. Setting an existing path overwrites the value
// and keeps the original position.
func (m *FlatMap) Set(path, value string) {
	if _, exists := m.values[path]; !exists {
		m.keys = append(m.keys, path)
	}
	m.values[path] = value
}

// Get returns the value stored at path
func (m *FlatMap) Get(path string) (string, bool) {
	v, ok := m.values[path]
	return v, ok
}

// Len returns the number of entries
func (m *FlatMap) Len() int {
	return len(m.keys)
}

// Keys returns the paths in insertion order
func (m *FlatMap) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Entries returns all entries in insertion order
func (m *FlatMap) Entries() []FlatEntry {
	entries := make([]FlatEntry, 0, len(m.keys))
	for _, k := range m.keys {
		entries = append(entries, FlatEntry{Path: k, Value: m.values[k]})
	}
	return entries
}

// Map returns a copy of the entries as a plain map
func (m *FlatMap) Map() map[string]string {
	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// GraphQLRequest is the payload POSTed to the report results API.
type GraphQLRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}
