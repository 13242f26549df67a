package store

import (
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/mathcamp/ent/schema"
)

// Table names.
const (
	tableSessions        = "sessions"
	tableAttempts        = "attempts"
	tableAchievements    = "achievements"
	tableMastery         = "mastery"
	tableProfile         = "profile"
	tableAnalyticsEvents = "analytics_events"
)

var builder = entsql.Dialect(dialect.SQLite)

var entities = []struct {
	name   string
	schema ent.Interface
}{
	{tableSessions, entschema.Session{}},
	{tableAttempts, entschema.Attempt{}},
	{tableAchievements, entschema.Achievement{}},
	{tableMastery, entschema.Mastery{}},
	{tableProfile, entschema.Profile{}},
	{tableAnalyticsEvents, entschema.AnalyticsEvent{}},
}

// Tables returns the migration tables derived from the ent schemas.
func Tables() []*schema.Table {
	tables := make([]*schema.Table, len(entities))
	for i, e := range entities {
		tables[i] = tableFor(e.name, e.schema)
	}
	return tables
}

// tableFor converts an ent schema into a migration table. Mixin fields
// come first. Schemas without an "id" field get an auto-increment key.
func tableFor(name string, s ent.Interface) *schema.Table {
	var (
		fields  []ent.Field
		indexes []ent.Index
	)
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	t := schema.NewTable(name)
	hasID := false
	for _, f := range fields {
		if f.Descriptor().Name == "id" {
			hasID = true
		}
	}
	if !hasID {
		t.AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true})
	}

	for _, f := range fields {
		d := f.Descriptor()
		col := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Nullable: d.Optional,
			Unique:   d.Unique,
			Size:     int64(d.Size),
			Comment:  d.Comment,
		}
		if literalDefault(d.Default) {
			col.Default = d.Default
		}
		if d.Name == "id" {
			t.AddPrimary(col)
			continue
		}
		t.AddColumn(col)
	}

	for _, idx := range indexes {
		d := idx.Descriptor()
		idxName := fmt.Sprintf("%s_%s", strings.TrimSuffix(name, "s"), strings.Join(d.Fields, "_"))
		t.AddIndex(idxName, d.Unique, d.Fields)
	}
	return t
}

// literalDefault reports whether v can be written as a column default.
// Function defaults such as time.Now are applied in Go instead.
func literalDefault(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool, reflect.Int, reflect.Int64, reflect.Float64, reflect.String:
		return true
	}
	return false
}
