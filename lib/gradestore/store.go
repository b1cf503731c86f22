// Package gradestore persists daily snapshots of a student's semester
// grades, so changes the portal never announces (a retake, a fixed absence)
// can be noticed by diffing against history.
package gradestore

import (
	"context"
	"database/sql"
	"time"

	"ibiassist-backend/lib/scrapers/raspisan"
	"ibiassist-backend/lib/timezone"

	_ "embed"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

type PushRequest struct {
	User      string
	Time      time.Time
	Semesters [raspisan.SemesterCount][]raspisan.GradeItem
}

// Push records one full grade snapshot, replacing any snapshot taken
// earlier the same day so a daemon can re-run freely.
func (s Store) Push(ctx context.Context, req PushRequest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	startOfToday := time.Date(req.Time.Year(), req.Time.Month(), req.Time.Day(), 0, 0, 0, 0, timezone.Location).Unix()
	startOfTommorow := time.Date(req.Time.Year(), req.Time.Month(), req.Time.Day()+1, 0, 0, 0, 0, timezone.Location).Unix()

	_, err = tx.ExecContext(
		ctx,
		`DELETE FROM grade_snapshots WHERE user = ? AND time >= ? AND time < ?`,
		req.User, startOfToday, startOfTommorow,
	)
	if err != nil {
		return err
	}

	for semester, items := range req.Semesters {
		for _, item := range items {
			_, err = tx.ExecContext(
				ctx,
				`INSERT INTO grade_snapshots
					(user, time, semester, discipline, grade_type, grade_result)
					VALUES (?, ?, ?, ?, ?, ?)`,
				req.User, req.Time.Unix(), semester,
				item.Name, item.Type.String(), item.Grade.String(),
			)
			if err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

type Snapshot struct {
	Time      time.Time
	Semesters [raspisan.SemesterCount][]raspisan.GradeItem
}

// Pull returns the most recent snapshot for a user, or false when the user
// has none.
func (s Store) Pull(ctx context.Context, user string) (Snapshot, bool, error) {
	var latest sql.NullInt64
	err := s.db.QueryRowContext(
		ctx,
		`SELECT MAX(time) FROM grade_snapshots WHERE user = ?`,
		user,
	).Scan(&latest)
	if err != nil {
		return Snapshot{}, false, err
	}
	if !latest.Valid {
		return Snapshot{}, false, nil
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT semester, discipline, grade_type, grade_result
			FROM grade_snapshots
			WHERE user = ? AND time = ?
			ORDER BY semester, id`,
		user, latest.Int64,
	)
	if err != nil {
		return Snapshot{}, false, err
	}
	defer rows.Close()

	snapshot := Snapshot{Time: time.Unix(latest.Int64, 0).In(timezone.Location)}
	for rows.Next() {
		var semester int
		var discipline, gradeType, gradeResult string
		err = rows.Scan(&semester, &discipline, &gradeType, &gradeResult)
		if err != nil {
			return Snapshot{}, false, err
		}
		if semester < 0 || semester >= raspisan.SemesterCount {
			continue
		}
		snapshot.Semesters[semester] = append(snapshot.Semesters[semester], raspisan.GradeItem{
			Name:  discipline,
			Type:  gradeTypeFromSerialized(gradeType),
			Grade: gradeResultFromSerialized(gradeResult),
		})
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, false, err
	}

	return snapshot, true, nil
}

func gradeTypeFromSerialized(s string) raspisan.GradeType {
	for t := raspisan.GRADE_TYPE_UNKNOWN; t <= raspisan.GRADE_TYPE_GOV_EXAM; t++ {
		if t.String() == s {
			return t
		}
	}
	return raspisan.GRADE_TYPE_UNKNOWN
}

func gradeResultFromSerialized(s string) raspisan.GradeResult {
	for r := raspisan.GRADE_RESULT_UNKNOWN; r <= raspisan.GRADE_RESULT_FIVE; r++ {
		if r.String() == s {
			return r
		}
	}
	return raspisan.GRADE_RESULT_UNKNOWN
}
