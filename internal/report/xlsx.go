// Package report builds spreadsheet exports for operators.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/polkiloo/orderform/internal/domain/model"
)

// AccessCodesSheet is the worksheet name of the access code export.
const AccessCodesSheet = "Access codes"

const timeLayout = "2006-01-02 15:04"

var accessCodeHeader = []any{"Code", "Status", "Created", "Expires", "Used at"}

// WriteAccessCodes renders codes as an xlsx workbook, with statuses evaluated at now.
func WriteAccessCodes(w io.Writer, codes []model.AccessCode, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", AccessCodesSheet); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}
	if err := f.SetSheetRow(AccessCodesSheet, "A1", &accessCodeHeader); err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}
	if err := f.SetCellStyle(AccessCodesSheet, "A1", "E1", bold); err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}
	if err := f.SetColWidth(AccessCodesSheet, "A", "E", 20); err != nil {
		return fmt.Errorf("xlsx width: %w", err)
	}

	for i, c := range codes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{c.Code, string(c.Status(now)), c.CreatedAt.Format(timeLayout), formatOptional(c.ExpiresAt), formatOptional(c.UsedAt)}
		if err := f.SetSheetRow(AccessCodesSheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}
