// Package csvexport renders trainee records as spreadsheet-friendly CSV.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/yigit/traineehub/internal/app/models"
)

// utf8BOM makes Excel detect the encoding of Japanese headers.
const utf8BOM = "\uFEFF"

const dateLayout = "2006-01-02"

// TraineeHeaders are the column titles, in output order.
var TraineeHeaders = []string{
	"実習生ID", "名前", "姓", "名前（カナ）", "姓（カナ）", "国籍", "パスポート番号",
	"在留資格", "在留期限", "入国日", "帰国日", "配属部署", "職位",
	"電話番号", "メールアドレス", "住所", "緊急連絡先", "緊急連絡先電話", "登録日",
}

// Filename is the attachment name used for downloads.
const Filename = "trainees.csv"

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func date(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// TraineeRow flattens a trainee into one CSV record matching TraineeHeaders.
func TraineeRow(t *models.Trainee) []string {
	return []string{
		t.TraineeCode,
		t.FirstName,
		t.LastName,
		str(t.FirstNameKana),
		str(t.LastNameKana),
		t.Nationality,
		t.PassportNumber,
		t.VisaType,
		t.VisaExpiryDate.Format(dateLayout),
		t.EntryDate.Format(dateLayout),
		date(t.DepartureDate),
		t.Department,
		str(t.Position),
		str(t.PhoneNumber),
		str(t.Email),
		str(t.Address),
		str(t.EmergencyContact),
		str(t.EmergencyPhone),
		t.CreatedAt.Format(dateLayout),
	}
}

// WriteTrainees writes a BOM, the header row and one row per trainee.
func WriteTrainees(w io.Writer, trainees []models.Trainee) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(TraineeHeaders); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range trainees {
		if err := cw.Write(TraineeRow(&trainees[i])); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", trainees[i].TraineeCode, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
