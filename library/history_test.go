package library

import (
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/require"
)

func tempHistory(t *testing.T) (*History, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history", "loans.db")
	h, err := OpenHistory(path)
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h, path
}

func TestHistoryCheckoutAndReturn(t *testing.T) {
	h, _ := tempHistory(t)
	due := civil.Date{Year: 2026, Month: 3, Day: 15}

	require.NoError(t, h.RecordCheckout("D1", "U1", testNow, due))

	loans, err := h.ForBook("D1")
	require.NoError(t, err)
	require.Len(t, loans, 1)
	require.Equal(t, "U1", loans[0].UserID)
	require.Equal(t, due, loans[0].DueDate)
	require.True(t, loans[0].CheckedOutAt.Equal(testNow))
	require.Nil(t, loans[0].ReturnedAt)

	returned := testNow.Add(72 * time.Hour)
	require.NoError(t, h.RecordReturn("D1", "U1", returned))

	loans, err = h.ForUser("U1")
	require.NoError(t, err)
	require.Len(t, loans, 1)
	require.NotNil(t, loans[0].ReturnedAt)
	require.True(t, loans[0].ReturnedAt.Equal(returned))
}

func TestHistoryReturnWithoutOpenLoan(t *testing.T) {
	h, _ := tempHistory(t)
	require.Error(t, h.RecordReturn("D1", "U1", testNow))

	require.NoError(t, h.RecordCheckout("D1", "U1", testNow, testDue))
	require.NoError(t, h.RecordReturn("D1", "U1", testNow))
	require.Error(t, h.RecordReturn("D1", "U1", testNow), "a loan can only be closed once")
}

func TestHistoryOrdering(t *testing.T) {
	h, _ := tempHistory(t)

	for i, c := range []struct{ book, user string }{
		{"D1", "U1"},
		{"E1", "U1"},
		{"D1", "U2"},
	} {
		at := testNow.AddDate(0, 0, i)
		require.NoError(t, h.RecordCheckout(c.book, c.user, at, civil.DateOf(at).AddDays(14)))
	}

	byBook, err := h.ForBook("D1")
	require.NoError(t, err)
	require.Len(t, byBook, 2)
	require.Equal(t, "U1", byBook[0].UserID)
	require.Equal(t, "U2", byBook[1].UserID)

	byUser, err := h.ForUser("U1")
	require.NoError(t, err)
	require.Len(t, byUser, 2)
	require.Equal(t, "D1", byUser[0].BookID)
	require.Equal(t, "E1", byUser[1].BookID)

	none, err := h.ForUser("U9")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestHistoryReopen(t *testing.T) {
	h, path := tempHistory(t)
	require.NoError(t, h.RecordCheckout("D1", "U1", testNow, testDue))
	require.NoError(t, h.Close())

	again, err := OpenHistory(path)
	require.NoError(t, err)
	defer again.Close()

	var version int
	require.NoError(t, again.db.QueryRow(`SELECT value FROM meta WHERE key='schema_version'`).Scan(&version))
	require.Equal(t, historySchemaVersion, version)

	loans, err := again.ForBook("D1")
	require.NoError(t, err)
	require.Len(t, loans, 1)
}
