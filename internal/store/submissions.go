package store

import (
	"fmt"
	"time"
)

const (
	stateDefaultProjectID   = "default_project_id"
	stateDefaultProjectName = "default_project_name"
)

// Submission is a locally recorded change that was applied to the remote
// ledger: one booked or cleared day.
type Submission struct {
	ID          int
	ProjectID   string
	ProjectName string
	Day         string // "2006-01-02"
	Action      string // "booked" or "cleared"
	Minutes     int
	CreatedAt   time.Time
}

func (db *DB) InsertSubmission(s *Submission) error {
	_, err := db.Exec(
		`INSERT INTO submissions (project_id, project_name, day, action, minutes)
		 VALUES (?, ?, ?, ?, ?)`,
		s.ProjectID, s.ProjectName, s.Day, s.Action, s.Minutes,
	)
	if err != nil {
		return fmt.Errorf("inserting submission: %w", err)
	}
	return nil
}

func (db *DB) RecentSubmissions(limit int) ([]Submission, error) {
	rows, err := db.Query(
		`SELECT id, project_id, project_name, day, action, minutes, created_at
		 FROM submissions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying submissions: %w", err)
	}
	defer rows.Close()

	var subs []Submission
	for rows.Next() {
		var s Submission
		var createdStr string
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.ProjectName, &s.Day, &s.Action, &s.Minutes, &createdStr); err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		if t, err := time.Parse("2006-01-02 15:04:05", createdStr); err == nil {
			s.CreatedAt = t
		} else if t, err := time.Parse(time.RFC3339, createdStr); err == nil {
			s.CreatedAt = t
		}
		subs = append(subs, s)
	}

	return subs, rows.Err()
}

// DefaultProject returns the persisted default project id and name, both
// empty when none has been saved yet.
func (db *DB) DefaultProject() (id, name string, err error) {
	id, err = db.GetState(stateDefaultProjectID)
	if err != nil {
		return "", "", err
	}
	name, err = db.GetState(stateDefaultProjectName)
	if err != nil {
		return "", "", err
	}
	return id, name, nil
}

func (db *DB) SetDefaultProject(id, name string) error {
	if err := db.SetState(stateDefaultProjectID, id); err != nil {
		return err
	}
	return db.SetState(stateDefaultProjectName, name)
}
