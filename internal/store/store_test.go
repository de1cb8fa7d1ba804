package store

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenPath(filepath.Join(t.TempDir(), "clockweek.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func TestDefaultProject(t *testing.T) {
	db := openTestDB(t)

	id, name, err := db.DefaultProject()
	if err != nil {
		t.Fatalf("default project: %v", err)
	}
	if id != "" || name != "" {
		t.Errorf("fresh store has default project %q/%q", id, name)
	}

	if err := db.SetDefaultProject("p1", "Acme"); err != nil {
		t.Fatalf("set default project: %v", err)
	}
	if err := db.SetDefaultProject("p2", "Beta Corp"); err != nil {
		t.Fatalf("overwrite default project: %v", err)
	}

	id, name, err = db.DefaultProject()
	if err != nil {
		t.Fatalf("default project: %v", err)
	}
	if id != "p2" || name != "Beta Corp" {
		t.Errorf("default project = %q/%q, want p2/Beta Corp", id, name)
	}
}

func TestSubmissions(t *testing.T) {
	db := openTestDB(t)

	subs := []Submission{
		{ProjectID: "p1", ProjectName: "Acme", Day: "2024-05-13", Action: "booked", Minutes: 120},
		{ProjectID: "p1", ProjectName: "Acme", Day: "2024-05-14", Action: "cleared", Minutes: 0},
		{ProjectID: "p2", ProjectName: "Beta", Day: "2024-05-14", Action: "booked", Minutes: 90},
	}
	for i := range subs {
		if err := db.InsertSubmission(&subs[i]); err != nil {
			t.Fatalf("insert submission: %v", err)
		}
	}

	recent, err := db.RecentSubmissions(2)
	if err != nil {
		t.Fatalf("recent submissions: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(recent))
	}
	if recent[0].ProjectID != "p2" || recent[0].Minutes != 90 {
		t.Errorf("newest submission = %+v, want the p2 booking", recent[0])
	}
	if recent[1].Action != "cleared" || recent[1].Day != "2024-05-14" {
		t.Errorf("second submission = %+v, want the cleared day", recent[1])
	}
}
