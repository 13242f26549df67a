package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Mastery holds the running per-activity skill estimate.
type Mastery struct {
	ent.Schema
}

func (Mastery) Fields() []ent.Field {
	return []ent.Field{
		field.String("problem_type").
			Unique(),
		field.Int("attempted").Default(0),
		field.Int("correct").Default(0),
		field.Int("level").
			Default(0).
			Comment("0-100"),
		field.Float("average_time_ms").
			Default(0).
			Comment("Exponential moving average of answer time"),
		field.Time("last_practiced"),
		field.JSON("recent", []bool{}).
			Optional().
			Comment("Most recent results, oldest first"),
	}
}
