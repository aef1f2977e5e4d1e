package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesai/models"
)

func sampleEntries() []models.OvertimeEntry {
	return []models.OvertimeEntry{
		{
			ID: "e1", Period: "2024-03", Name: "Mehmet Demir", Date: "2024-03-11",
			Category: models.CategoryWeekday, Multiplier: 1.0, Start: "18:00", End: "20:00",
			Reason: `Release "Phoenix" support`, Status: models.StatusApproved,
			Username: "mehmet.user@example.com", SubmittedAt: "11.03.2024 18:05:00",
		},
		{
			ID: "e2", Period: "2024-03", Name: "Ayse Kara", Date: "2024-03-10",
			Category: models.CategoryWeekend, Multiplier: 1.5, Start: "09:00", End: "11:30",
			Reason: "Inventory count", Status: models.StatusRejected,
			RejectionReason: "Duplicate claim",
			Username:        "ayse.user@example.com", SubmittedAt: "10.03.2024 09:15:00",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleEntries()))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "records", buf.Bytes())
}

func TestWriteCSVStartsWithByteOrderMark(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
}

func TestWriteCSVHeaderOnlyWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Duration (Hours)")
}

func TestWriteCSVUsesCommaDecimals(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleEntries()))

	out := buf.String()
	assert.Contains(t, out, ";1,5;")
	assert.Contains(t, out, ";2,50;")
	assert.NotContains(t, out, ";1.5;")
}
