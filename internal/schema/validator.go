package schema

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	cacheMu sync.Mutex
	cache   = make(map[string]*jsonschema.Schema)

	printer = message.NewPrinter(language.English)
)

// Result contains the outcome of a schema validation.
type Result struct {
	Valid  bool
	Issues []Issue
}

// Issue represents a single validation error from the schema.
type Issue struct {
	Path    string // Instance location (e.g., "/org", "/org/alias")
	Message string // Human-readable error message
}

// AsError converts a failed Result into an error summarizing the issues.
func (r *Result) AsError() error {
	if r.Valid {
		return nil
	}
	var b strings.Builder
	b.WriteString(printer.Sprintf("document failed schema validation (%d issue(s))", len(r.Issues)))
	for _, issue := range r.Issues {
		b.WriteString("\n  ")
		if issue.Path != "" {
			b.WriteString(issue.Path)
			b.WriteString(": ")
		}
		b.WriteString(issue.Message)
	}
	return fmt.Errorf("%s", b.String())
}

// compile loads and compiles the schema at path, caching the result.
func compile(schemaPath string) (*jsonschema.Schema, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if s, ok := cache[schemaPath]; ok {
		return s, nil
	}

	raw, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", schemaPath, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema %s: %w", schemaPath, err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaPath, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	s, err := c.Compile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", schemaPath, err)
	}
	cache[schemaPath] = s
	return s, nil
}

// Validate checks raw JSON document bytes against the schema at schemaPath.
// The error return is for I/O or compilation failures; validation issues
// are reported in the Result.
func Validate(data []byte, schemaPath string) (*Result, error) {
	s, err := compile(schemaPath)
	if err != nil {
		return nil, err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("preparing document for validation: %w", err)
	}

	err = s.Validate(inst)
	if err == nil {
		return &Result{Valid: true}, nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}
	return &Result{Valid: false, Issues: extractIssues(ve)}, nil
}

// ValidateFile reads a document file and validates it.
func ValidateFile(docPath, schemaPath string) (*Result, error) {
	data, err := os.ReadFile(docPath)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", docPath, err)
	}
	return Validate(data, schemaPath)
}

// extractIssues walks the error tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []Issue {
	var issues []Issue
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		return []Issue{{Message: ve.Error()}}
	}
	return issues
}

// collectIssues recursively walks the error tree to find leaf errors with
// specific instance locations.
func collectIssues(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}
		msg := ""
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}
		*issues = append(*issues, Issue{Path: path, Message: msg})
		return
	}
	for _, cause := range ve.Causes {
		collectIssues(cause, issues)
	}
}
