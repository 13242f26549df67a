package store

import (
	"context"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open("file:"+name+"?mode=memory&cache=shared", nil)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{
		tableSessions, tableAttempts, tableAchievements,
		tableMastery, tableProfile, tableAnalyticsEvents, tableSequence,
	} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestTablesFromSchema(t *testing.T) {
	tables := Tables()
	if len(tables) != len(entities) {
		t.Fatalf("tables = %d, want %d", len(tables), len(entities))
	}

	byName := make(map[string]int)
	for i, tbl := range tables {
		byName[tbl.Name] = i
	}

	attempts := tables[byName[tableAttempts]]
	if len(attempts.PrimaryKey) != 1 || attempts.PrimaryKey[0].Name != "id" || !attempts.PrimaryKey[0].Increment {
		t.Errorf("attempts primary key = %+v, want auto-increment id", attempts.PrimaryKey)
	}
	if !attempts.HasColumn("sequence") || !attempts.HasColumn("recorded_at") {
		t.Error("attempts missing mixin columns")
	}

	sessions := tables[byName[tableSessions]]
	if sessions.PrimaryKey[0].Increment {
		t.Error("sessions id should be the uuid column, not auto-increment")
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := range 5 {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestSessionSaveAndRecent(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := range 3 {
		ended := base.Add(time.Duration(i)*time.Hour + time.Minute)
		err := repo.SaveSession(ctx, SessionRecord{
			ID:           "s" + string(rune('a'+i)),
			ProblemType:  "addition",
			Difficulty:   "easy",
			StartedAt:    base.Add(time.Duration(i) * time.Hour),
			EndedAt:      &ended,
			ProblemCount: 5,
			CorrectCount: i + 2,
			Score:        (i + 2) * 20,
			Duration:     time.Minute,
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	recent, err := repo.RecentSessions(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("recent = %d, want 2", len(recent))
	}
	if recent[0].ID != "sc" {
		t.Errorf("newest = %q, want sc", recent[0].ID)
	}
	if recent[0].Duration != time.Minute {
		t.Errorf("duration = %v, want 1m", recent[0].Duration)
	}
	if recent[0].EndedAt == nil {
		t.Error("ended_at lost")
	}
}

func TestSessionSaveReplaces(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	rec := SessionRecord{ID: "same", ProblemType: "addition", Difficulty: "easy", StartedAt: time.Now()}
	if err := repo.SaveSession(ctx, rec); err != nil {
		t.Fatal(err)
	}
	rec.Score = 80
	if err := repo.SaveSession(ctx, rec); err != nil {
		t.Fatal(err)
	}

	recent, err := repo.RecentSessions(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 1 || recent[0].Score != 80 {
		t.Errorf("recent = %+v, want one session with score 80", recent)
	}
}

func TestAttemptsAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	for i, typ := range []string{"addition", "addition", "counting"} {
		err := repo.AppendAttempt(ctx, AttemptRecord{
			AttemptID:     "a" + string(rune('0'+i)),
			SessionID:     "s1",
			ProblemID:     "p",
			ProblemType:   typ,
			Difficulty:    "easy",
			Question:      "2 + 3",
			CorrectAnswer: "5",
			UserAnswer:    "5",
			Correct:       i != 1,
			TimeSpent:     1500 * time.Millisecond,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := repo.SessionAttempts(ctx, "s1")
	if err != nil {
		t.Fatalf("session attempts: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("attempts = %d, want 3", len(got))
	}
	if got[0].Sequence >= got[1].Sequence {
		t.Error("attempts not ordered by sequence")
	}
	if got[1].Correct {
		t.Error("second attempt should be incorrect")
	}
	if got[0].TimeSpent != 1500*time.Millisecond {
		t.Errorf("time spent = %v, want 1.5s", got[0].TimeSpent)
	}
	if got[0].Tries != 1 {
		t.Errorf("tries = %d, want 1", got[0].Tries)
	}

	counts, err := repo.AttemptCountsByType(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts["addition"] != 2 || counts["counting"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	p, err := repo.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if p != nil {
		t.Fatal("expected nil profile when none saved")
	}

	now := time.Now().UTC().Truncate(time.Second)
	want := ProfileRecord{
		TotalProblems:    12,
		CorrectAnswers:   9,
		CurrentStreak:    3,
		LongestStreak:    6,
		FavoriteActivity: "counting",
		LastPracticed:    &now,
	}
	if err := repo.SaveProfile(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	want.TotalProblems = 13
	if err := repo.SaveProfile(ctx, want); err != nil {
		t.Fatalf("save again: %v", err)
	}

	got, err := repo.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TotalProblems != 13 || got.LongestStreak != 6 || got.FavoriteActivity != "counting" {
		t.Errorf("profile = %+v", got)
	}
	if got.LastPracticed == nil || !got.LastPracticed.Equal(now) {
		t.Errorf("last practiced = %v, want %v", got.LastPracticed, now)
	}
}

func TestMasteryUpsert(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	rec := MasteryRecord{
		ProblemType:   "addition",
		Attempted:     4,
		Correct:       3,
		Level:         75,
		AverageTimeMs: 2100.5,
		LastPracticed: time.Now(),
		Recent:        []bool{true, false, true, true},
	}
	if err := repo.SaveMastery(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	rec.Attempted = 5
	rec.Recent = append(rec.Recent, true)
	if err := repo.SaveMastery(ctx, rec); err != nil {
		t.Fatalf("save again: %v", err)
	}

	all, err := repo.LoadMastery(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("mastery rows = %d, want 1", len(all))
	}
	if all[0].Attempted != 5 || len(all[0].Recent) != 5 {
		t.Errorf("mastery = %+v", all[0])
	}
	if all[0].AverageTimeMs != 2100.5 {
		t.Errorf("average = %v, want 2100.5", all[0].AverageTimeMs)
	}
}

func TestUnlockAchievementOnce(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	rec := AchievementRecord{ID: "first-problem", SessionID: "s1", UnlockedAt: time.Now()}
	fresh, err := repo.UnlockAchievement(ctx, rec)
	if err != nil {
		t.Fatal(err)
	}
	if !fresh {
		t.Error("first unlock should be new")
	}
	fresh, err = repo.UnlockAchievement(ctx, rec)
	if err != nil {
		t.Fatal(err)
	}
	if fresh {
		t.Error("second unlock should not be new")
	}

	all, err := repo.Achievements(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].ID != "first-problem" {
		t.Errorf("achievements = %+v", all)
	}
}

func TestAnalyticsEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.AnalyticsRepo()
	ctx := context.Background()

	names := []string{"session_start", "problem_answered", "problem_answered"}
	for i, name := range names {
		err := repo.AppendAnalyticsEvent(ctx, AnalyticsEventRecord{
			Name:       name,
			SessionID:  "s1",
			Properties: map[string]any{"index": i},
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	events, err := repo.QueryAnalyticsEvents(ctx, QueryOpts{Name: "problem_answered"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	// Newest first.
	if events[0].Properties["index"] != float64(2) {
		t.Errorf("newest index = %v, want 2", events[0].Properties["index"])
	}

	limited, err := repo.QueryAnalyticsEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("limited = %d, want 1", len(limited))
	}

	counts, err := repo.AnalyticsEventCounts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if counts["problem_answered"] != 2 || counts["session_start"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.ProgressRepo()

	if err := repo.SaveSession(ctx, SessionRecord{ID: "x", ProblemType: "addition", Difficulty: "easy", StartedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveProfile(ctx, ProfileRecord{TotalProblems: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	recent, err := repo.RecentSessions(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(recent) != 0 {
		t.Errorf("sessions after reset = %d, want 0", len(recent))
	}
	p, err := repo.LoadProfile(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if p != nil {
		t.Error("profile should be gone after reset")
	}
}
