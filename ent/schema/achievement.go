package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Achievement is an unlocked badge. Rows are never removed except by a
// full reset.
type Achievement struct {
	ent.Schema
}

func (Achievement) Fields() []ent.Field {
	return []ent.Field{
		field.String("achievement_id").
			Unique().
			Immutable(),
		field.String("session_id").
			Optional(),
		field.Time("unlocked_at").
			Immutable(),
	}
}
