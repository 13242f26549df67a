package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Session is one finished (or abandoned) play-through.
type Session struct {
	ent.Schema
}

func (Session) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			Immutable().
			Comment("UUID assigned at session start"),
		field.String("problem_type").NotEmpty(),
		field.String("difficulty").NotEmpty(),
		field.Time("started_at"),
		field.Time("ended_at").
			Optional().
			Nillable(),
		field.Int("problem_count").
			Default(0).
			Comment("Questions answered"),
		field.Int("correct_count").
			Default(0),
		field.Int("score").
			Default(0).
			Comment("Rounded percentage correct"),
		field.Int64("duration_ms").
			Default(0),
	}
}

func (Session) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("started_at"),
		index.Fields("problem_type"),
	}
}
