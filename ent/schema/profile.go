package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Profile is the single row of lifetime totals.
type Profile struct {
	ent.Schema
}

func (Profile) Fields() []ent.Field {
	return []ent.Field{
		field.Int("id").
			Comment("Always 1"),
		field.Int("total_problems").Default(0),
		field.Int("correct_answers").Default(0),
		field.Int("current_streak").Default(0),
		field.Int("longest_streak").Default(0),
		field.String("favorite_activity").
			Optional(),
		field.Time("last_practiced").
			Optional().
			Nillable(),
	}
}
