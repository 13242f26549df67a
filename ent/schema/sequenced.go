package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// SequencedMixin stamps append-only rows with a position in the global
// sequence shared by attempts and analytics events.
type SequencedMixin struct {
	mixin.Schema
}

func (SequencedMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Unique().
			Immutable(),
		field.Time("recorded_at").
			Default(time.Now).
			Immutable().
			Comment("UTC"),
	}
}

func (SequencedMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("recorded_at"),
	}
}
