package analytics

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/mathcamp/internal/store"
)

//go:embed events.schema.json
var eventSchemaJSON []byte

const eventSchemaURL = "schema://analytics-event.json"

var compiledEventSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(eventSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse event schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(eventSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(eventSchemaURL)
})

// ValidateEvent checks e against the embedded event schema.
func ValidateEvent(e Event) error {
	sch, err := compiledEventSchema()
	if err != nil {
		return err
	}

	wire := map[string]any{"name": e.Name, "properties": e.Properties}
	if e.SessionID != "" {
		wire["session_id"] = e.SessionID
	}
	if e.Properties == nil {
		wire["properties"] = map[string]any{}
	}
	// Round-trip through JSON so numbers reach the validator in JSON form.
	raw, err := json.Marshal(wire)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("event %q failed schema validation: %w", e.Name, err)
	}
	return nil
}

// StoreSink validates events and appends them to the analytics table.
type StoreSink struct {
	repo store.AnalyticsRepo
}

// NewStoreSink returns a sink writing to repo.
func NewStoreSink(repo store.AnalyticsRepo) *StoreSink {
	return &StoreSink{repo: repo}
}

func (s *StoreSink) Write(ctx context.Context, e Event) error {
	if err := ValidateEvent(e); err != nil {
		return err
	}
	return s.repo.AppendAnalyticsEvent(ctx, store.AnalyticsEventRecord{
		Name:       e.Name,
		SessionID:  e.SessionID,
		Properties: e.Properties,
		Timestamp:  e.Timestamp,
	})
}

// MemorySink keeps validated events in memory.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

func (m *MemorySink) Write(_ context.Context, e Event) error {
	if err := ValidateEvent(e); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

// Events returns a copy of the recorded events.
func (m *MemorySink) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

// Count returns how many events named name were recorded.
func (m *MemorySink) Count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.events {
		if e.Name == name {
			n++
		}
	}
	return n
}
