package csvexport

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/traineehub/internal/app/models"
)

func TestWriteTrainees(t *testing.T) {
	kana := "グエン"
	address := "愛知県豊田市1-2, 3F"
	departure := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	trainees := []models.Trainee{
		{
			TraineeCode:    "T001",
			FirstName:      "Van A",
			LastName:       "Nguyen",
			LastNameKana:   &kana,
			Nationality:    "ベトナム",
			PassportNumber: "C1234567",
			VisaType:       "技能実習1号",
			VisaExpiryDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			EntryDate:      time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			DepartureDate:  &departure,
			Department:     "製造部",
			Address:        &address,
			CreatedAt:      time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTrainees(&buf, trainees))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, utf8BOM))

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, utf8BOM))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, TraineeHeaders, records[0])
	row := records[1]
	assert.Len(t, row, len(TraineeHeaders))
	assert.Equal(t, "T001", row[0])
	assert.Equal(t, "", row[3])
	assert.Equal(t, "グエン", row[4])
	assert.Equal(t, "2025-04-01", row[8])
	assert.Equal(t, "2026-03-31", row[10])
	assert.Equal(t, "愛知県豊田市1-2, 3F", row[15])
	assert.Equal(t, "2024-03-20", row[18])
}

func TestWriteTrainees_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTrainees(&buf, nil))

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(buf.String(), utf8BOM)), "\r\n")
	assert.Len(t, lines, 1)
}
