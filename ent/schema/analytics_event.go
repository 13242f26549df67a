package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnalyticsEvent is one locally recorded usage event.
type AnalyticsEvent struct {
	ent.Schema
}

func (AnalyticsEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{SequencedMixin{}}
}

func (AnalyticsEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("name").NotEmpty(),
		field.String("session_id").
			Optional(),
		field.JSON("properties", map[string]any{}).
			Comment("Event payload, validated before insert"),
	}
}

func (AnalyticsEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("name"),
	}
}
