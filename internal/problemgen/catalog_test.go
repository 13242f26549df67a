package problemgen

import (
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	if c.Len() != 20 {
		t.Errorf("Len = %d, want 20", c.Len())
	}
	themes := c.Themes()
	if len(themes) != 5 {
		t.Errorf("Themes = %v, want 5 themes", themes)
	}
	for _, theme := range themes {
		for _, op := range []WordOperation{WordAdd, WordSubtract, WordCompare} {
			if len(c.Find(theme, op)) == 0 {
				t.Errorf("no template for %s/%s", theme, op)
			}
		}
	}
}

func TestTemplate_RenderPlural(t *testing.T) {
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatal(err)
	}
	tmpl := c.Find("animals", WordSubtract)[0]

	story, question, err := tmpl.Render(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if want := "There was 1 bird sitting on a tree. 1 bird flew away."; story != want {
		t.Errorf("story = %q, want %q", story, want)
	}
	if question != "How many birds are still on the tree?" {
		t.Errorf("question = %q", question)
	}

	story, _, err = tmpl.Render(4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if want := "There were 4 birds sitting on a tree. 2 birds flew away."; story != want {
		t.Errorf("story = %q, want %q", story, want)
	}
}

func TestTemplate_RenderCompare(t *testing.T) {
	c, err := DefaultCatalog()
	if err != nil {
		t.Fatal(err)
	}
	tmpl := c.Find("animals", WordCompare)[0]
	_, question, err := tmpl.Render(3, 7)
	if err != nil {
		t.Fatal(err)
	}
	if want := "How many more cows does the blue barn have?"; question != want {
		t.Errorf("question = %q, want %q", question, want)
	}
}

func TestLoadCatalog_SchemaRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown operation", "templates:\n  - theme: a\n    operation: divide\n    story: s\n    question: q\n"},
		{"missing story", "templates:\n  - theme: a\n    operation: add\n    question: q\n"},
		{"empty list", "templates: []\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadCatalog([]byte(tc.yaml))
			if err == nil || !strings.Contains(err.Error(), "schema validation failed") {
				t.Errorf("err = %v, want schema validation failure", err)
			}
		})
	}
}

func TestLoadCatalog_BadTemplate(t *testing.T) {
	_, err := LoadCatalog([]byte("templates:\n  - theme: a\n    operation: add\n    story: '{{.A'\n    question: q\n"))
	if err == nil || !strings.Contains(err.Error(), "story") {
		t.Errorf("err = %v, want template parse error", err)
	}
}
