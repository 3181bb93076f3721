// Package query loads the GraphQL document sent to the report results API
// and builds the JSON payload around it.
package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	stderrors "errors"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/mcncl/rrapi/internal/errors"
	"github.com/mcncl/rrapi/internal/models"
)

// ReportNumberVariable is the GraphQL variable carrying the report number.
const ReportNumberVariable = "ReportNumber"

// Load returns the contents of the GraphQL document at path. A missing file
// is reported with errors.ErrFileNotFound; any other failure is an input
// error the caller may choose to ignore.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return "", errors.NewInputError(
				fmt.Sprintf("cannot find the graphql file at %s", path),
				errors.ErrFileNotFound,
			)
		}
		return "", errors.NewInputError(fmt.Sprintf("failed to read graphql file %s", path), err)
	}
	return string(data), nil
}

// Operation describes one operation of a GraphQL document.
type Operation struct {
	Type      string
	Name      string
	Variables []string
}

// Summary lists the operations found in a GraphQL document.
type Summary struct {
	Operations []Operation
}

// HasVariable reports whether any operation declares $name.
func (s Summary) HasVariable(name string) bool {
	for _, op := range s.Operations {
		for _, v := range op.Variables {
			if v == name {
				return true
			}
		}
	}
	return false
}

// Inspect parses text as a GraphQL executable document. It checks syntax
// only; nothing is validated against a schema.
func Inspect(text string) (Summary, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: "query", Input: text})
	if err != nil {
		return Summary{}, fmt.Errorf("invalid graphql document: %w", err)
	}

	summary := Summary{Operations: make([]Operation, 0, len(doc.Operations))}
	for _, def := range doc.Operations {
		op := Operation{Type: string(def.Operation), Name: def.Name}
		for _, v := range def.VariableDefinitions {
			op.Variables = append(op.Variables, v.Variable)
		}
		summary.Operations = append(summary.Operations, op)
	}
	return summary, nil
}

// NewRequest builds the payload for looking up reportNumber.
func NewRequest(text, reportNumber string) models.GraphQLRequest {
	return models.GraphQLRequest{
		Query: text,
		Variables: map[string]string{
			ReportNumberVariable: reportNumber,
		},
	}
}

// Encode renders req as indented JSON. HTML characters are left unescaped
// so the printed payload matches the query file.
func Encode(req models.GraphQLRequest) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(req); err != nil {
		return "", errors.NewOutputError("failed to encode request payload", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
