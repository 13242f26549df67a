package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Attempt records one answered problem.
type Attempt struct {
	ent.Schema
}

func (Attempt) Mixin() []ent.Mixin {
	return []ent.Mixin{SequencedMixin{}}
}

func (Attempt) Fields() []ent.Field {
	return []ent.Field{
		field.String("attempt_id").
			Unique().
			Comment("ULID, sortable by creation time"),
		field.String("session_id").
			Optional(),
		field.String("problem_id").NotEmpty(),
		field.String("problem_type").NotEmpty(),
		field.String("difficulty").NotEmpty(),
		field.String("question").NotEmpty(),
		field.String("correct_answer").NotEmpty(),
		field.String("user_answer"),
		field.Bool("correct"),
		field.Int64("time_spent_ms").
			Default(0),
		field.Int("hints_used").
			Default(0),
		field.Int("tries").
			Default(1).
			Comment("Submissions before the answer was accepted"),
	}
}

func (Attempt) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("problem_type"),
	}
}
