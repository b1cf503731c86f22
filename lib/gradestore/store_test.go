package gradestore

import (
	"context"
	"testing"
	"time"

	"ibiassist-backend/lib/scrapers/raspisan"
	"ibiassist-backend/lib/testutil"
	"ibiassist-backend/lib/timezone"

	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "gradestore",
		DbSchema: Schema,
	})
	defer cleanup()

	store := NewStore(res.DB)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		_, ok, err := store.Pull(ctx, "unknown-user")
		require.NoError(t, err)
		require.False(t, ok)
	}

	var first [raspisan.SemesterCount][]raspisan.GradeItem
	first[0] = []raspisan.GradeItem{
		{Name: "Математический анализ", Type: raspisan.GRADE_TYPE_EXAM, Grade: raspisan.GRADE_RESULT_FOUR},
		{Name: "Философия", Type: raspisan.GRADE_TYPE_SUBJECT_REPORT, Grade: raspisan.GRADE_RESULT_PASSED},
	}
	first[1] = []raspisan.GradeItem{
		{Name: "Линейная алгебра", Type: raspisan.GRADE_TYPE_SUBJECT_REPORT_WITH_GRADE, Grade: raspisan.GRADE_RESULT_ABSENCE},
	}

	now := timezone.Now()

	{
		err := store.Push(ctx, PushRequest{
			User:      "Иванов:1234",
			Time:      now,
			Semesters: first,
		})
		require.NoError(t, err)

		snapshot, ok, err := store.Pull(ctx, "Иванов:1234")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, first, snapshot.Semesters)
		require.Equal(t, now.Unix(), snapshot.Time.Unix())
	}

	{
		// a second push on the same day replaces the first
		updated := first
		updated[0] = append([]raspisan.GradeItem{}, first[0]...)
		updated[0][0].Grade = raspisan.GRADE_RESULT_FIVE

		err := store.Push(ctx, PushRequest{
			User:      "Иванов:1234",
			Time:      now.Add(time.Minute),
			Semesters: updated,
		})
		require.NoError(t, err)

		snapshot, ok, err := store.Pull(ctx, "Иванов:1234")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, updated, snapshot.Semesters)

		var count int
		err = res.DB.QueryRowContext(
			ctx,
			`SELECT COUNT(*) FROM grade_snapshots WHERE user = ?`,
			"Иванов:1234",
		).Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 3, count)
	}

	{
		// a push on a later day keeps both snapshots, Pull returns the latest
		var next [raspisan.SemesterCount][]raspisan.GradeItem
		next[0] = []raspisan.GradeItem{
			{Name: "Математический анализ", Type: raspisan.GRADE_TYPE_EXAM, Grade: raspisan.GRADE_RESULT_FIVE},
		}

		err := store.Push(ctx, PushRequest{
			User:      "Иванов:1234",
			Time:      now.Add(time.Hour * 24),
			Semesters: next,
		})
		require.NoError(t, err)

		snapshot, ok, err := store.Pull(ctx, "Иванов:1234")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, next, snapshot.Semesters)

		var count int
		err = res.DB.QueryRowContext(
			ctx,
			`SELECT COUNT(*) FROM grade_snapshots WHERE user = ?`,
			"Иванов:1234",
		).Scan(&count)
		require.NoError(t, err)
		require.Equal(t, 4, count)
	}

	{
		// other users are unaffected
		_, ok, err := store.Pull(ctx, "Петров:5678")
		require.NoError(t, err)
		require.False(t, ok)
	}
}

func TestSerializedRoundTrip(t *testing.T) {
	for typ := raspisan.GRADE_TYPE_UNKNOWN; typ <= raspisan.GRADE_TYPE_GOV_EXAM; typ++ {
		require.Equal(t, typ, gradeTypeFromSerialized(typ.String()))
	}
	for result := raspisan.GRADE_RESULT_UNKNOWN; result <= raspisan.GRADE_RESULT_FIVE; result++ {
		require.Equal(t, result, gradeResultFromSerialized(result.String()))
	}
}
