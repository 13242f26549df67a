package problemgen

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"text/template"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultCatalogYAML []byte

//go:embed templates.schema.json
var catalogSchemaJSON []byte

const catalogSchemaURL = "schema://word-problems.json"

// Template is one word-problem story. Story and Question are text/template
// sources rendered with storyData.
type Template struct {
	Theme     string        `yaml:"theme"`
	Operation WordOperation `yaml:"operation"`
	Story     string        `yaml:"story"`
	Question  string        `yaml:"question"`

	story    *template.Template
	question *template.Template
}

type storyData struct {
	A, B, Diff int
}

var storyFuncs = template.FuncMap{
	// plural picks the singular form when n is 1.
	"plural": func(n int, one, many string) string {
		if n == 1 {
			return one
		}
		return many
	},
}

// Render fills the template with the two story numbers.
func (t *Template) Render(a, b int) (story, question string, err error) {
	data := storyData{A: a, B: b, Diff: absInt(a - b)}
	var sb, qb strings.Builder
	if err := t.story.Execute(&sb, data); err != nil {
		return "", "", fmt.Errorf("render story: %w", err)
	}
	if err := t.question.Execute(&qb, data); err != nil {
		return "", "", fmt.Errorf("render question: %w", err)
	}
	return sb.String(), qb.String(), nil
}

// Catalog is an immutable set of word-problem templates.
type Catalog struct {
	templates []*Template
}

type catalogFile struct {
	Templates []*Template `yaml:"templates"`
}

var (
	catalogSchemaOnce sync.Once
	catalogSchema     *jsonschema.Schema
	catalogSchemaErr  error
)

func compiledCatalogSchema() (*jsonschema.Schema, error) {
	catalogSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(catalogSchemaJSON))
		if err != nil {
			catalogSchemaErr = fmt.Errorf("parse catalog schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(catalogSchemaURL, doc); err != nil {
			catalogSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		catalogSchema, catalogSchemaErr = c.Compile(catalogSchemaURL)
	})
	return catalogSchema, catalogSchemaErr
}

// LoadCatalog parses a YAML template catalog, validates it against the
// catalog schema and compiles every template.
func LoadCatalog(data []byte) (*Catalog, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	// The schema validator expects JSON values, so round-trip through JSON.
	asJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("convert catalog: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(asJSON))
	if err != nil {
		return nil, fmt.Errorf("convert catalog: %w", err)
	}
	sch, err := compiledCatalogSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("catalog schema validation failed: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i, t := range file.Templates {
		if t.story, err = template.New(fmt.Sprintf("story-%d", i)).Funcs(storyFuncs).Parse(t.Story); err != nil {
			return nil, fmt.Errorf("template %d story: %w", i, err)
		}
		if t.question, err = template.New(fmt.Sprintf("question-%d", i)).Funcs(storyFuncs).Parse(t.Question); err != nil {
			return nil, fmt.Errorf("template %d question: %w", i, err)
		}
	}
	return &Catalog{templates: file.Templates}, nil
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return LoadCatalog(defaultCatalogYAML)
})

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	return defaultCatalog()
}

// Len returns the number of templates.
func (c *Catalog) Len() int { return len(c.templates) }

// Themes returns the distinct themes in catalog order.
func (c *Catalog) Themes() []string {
	var out []string
	for _, t := range c.templates {
		if !slices.Contains(out, t.Theme) {
			out = append(out, t.Theme)
		}
	}
	return out
}

// Operations returns the distinct operations in catalog order.
func (c *Catalog) Operations() []WordOperation {
	var out []WordOperation
	for _, t := range c.templates {
		if !slices.Contains(out, t.Operation) {
			out = append(out, t.Operation)
		}
	}
	return out
}

// Find returns the templates for a theme and operation. An empty theme
// matches any theme.
func (c *Catalog) Find(theme string, op WordOperation) []*Template {
	var out []*Template
	for _, t := range c.templates {
		if t.Operation == op && (theme == "" || t.Theme == theme) {
			out = append(out, t)
		}
	}
	return out
}

func wordAnswer(op WordOperation, a, b int) int {
	switch op {
	case WordSubtract:
		return a - b
	case WordCompare:
		return absInt(a - b)
	default:
		return a + b
	}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
