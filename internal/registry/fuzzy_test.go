package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterRecords(t *testing.T) {
	recs := []Record{
		{ID: 1, Key: "1", Label: "Weekly gig mailer", ProgramPath: "weekly_gig_mailer.py"},
		{ID: 2, Key: "2", Label: "Rename drive files", Command: "drive_file_renamer.py --dry-run"},
		{ID: 3, Key: "3", Label: "Collections report"},
	}

	got := Filter(recs, "renamer")
	require.Len(t, got, 1)
	require.Equal(t, int64(2), got[0].ID)

	require.Len(t, Filter(recs, "  "), len(recs), "blank query returns every record")
	require.Empty(t, Filter(recs, "zzzz"))
}

func TestFilterRecords_InOrderCharacters(t *testing.T) {
	recs := []Record{
		{ID: 1, Key: "1", Label: "alpha"},
		{ID: 2, Key: "2", Label: "Hello World"},
	}
	require.Len(t, Filter(recs, "hwd"), 1)
	require.Equal(t, int64(2), Filter(recs, "helloworld")[0].ID)
	require.Empty(t, Filter(recs, "xq"))
}
