package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/polkiloo/orderform/internal/domain/model"
)

func TestWriteAccessCodes(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(24 * time.Hour)

	codes := []model.AccessCode{
		{Code: "ABCD2345", CreatedAt: past, IsActive: true, ExpiresAt: &future},
		{Code: "USED2345", CreatedAt: past, IsActive: true, IsUsed: true, UsedAt: &past},
		{Code: "OLDC2345", CreatedAt: past.Add(-48 * time.Hour), IsActive: true, ExpiresAt: &past},
		{Code: "OFFC2345", CreatedAt: past},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAccessCodes(&buf, codes, now))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(AccessCodesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, []string{"Code", "Status", "Created", "Expires", "Used at"}, rows[0])
	assert.Equal(t, []string{"ABCD2345", "active", "2025-03-10 11:00", "2025-03-11 12:00"}, rows[1])
	assert.Equal(t, "used", rows[2][1])
	assert.Equal(t, "2025-03-10 11:00", rows[2][4])
	assert.Equal(t, "expired", rows[3][1])
	assert.Equal(t, "inactive", rows[4][1])
}

func TestWriteAccessCodes_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAccessCodes(&buf, nil, time.Now()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(AccessCodesSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
