package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aninayuwoki/cobranza/models"
)

func tempStore(t *testing.T) (*JSONFile, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "students.json")
	s, err := OpenJSONFile(path)
	require.NoError(t, err)
	return s, path
}

func TestOpenJSONFile_InitializesMissingFile(t *testing.T) {
	s, path := tempStore(t)

	students, err := s.ListAll()
	require.NoError(t, err)
	assert.Empty(t, students)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestOpenJSONFile_ResetsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"a list"`), 0o644))

	s, err := OpenJSONFile(path)
	require.NoError(t, err)

	students, err := s.ListAll()
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestOpenJSONFile_ResetsNonArrayContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id": 1}`), 0o644))

	s, err := OpenJSONFile(path)
	require.NoError(t, err)

	students, err := s.ListAll()
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestLoad_FillsDefaultsOnBareRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.json")
	raw := `[
		{"id": 1, "name": "Ana"},
		{"id": 2, "name": "Luis", "paymentHistory": [
			{"amount": 2.5, "date": "2024-01-08"},
			{"amount": 1.5, "date": "2024-01-02"}
		]}
	]`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	s, err := OpenJSONFile(path)
	require.NoError(t, err)
	students, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, students, 2)

	ana := students[0]
	assert.Equal(t, models.DefaultGrade, ana.Grade)
	assert.Equal(t, models.DefaultWeeklyAmount, ana.WeeklyAmount.Value)
	assert.True(t, ana.WeeklyAmount.Valid)
	assert.Equal(t, time.Now().Format(models.DateLayout), ana.StartDate)
	assert.NotNil(t, ana.PaymentHistory)
	assert.Empty(t, ana.PaymentHistory)

	luis := students[1]
	assert.Equal(t, 4.0, luis.TotalPaid.Value)
	require.NotNil(t, luis.LastPaymentDate)
	assert.Equal(t, "2024-01-08", *luis.LastPaymentDate)
}

func TestLoad_ToleratesStringAndJunkAmounts(t *testing.T) {
	// One record with string-typed or junk money values must not knock out
	// the rest of the file. Numeric strings parse, junk stays on its record.
	path := filepath.Join(t.TempDir(), "students.json")
	raw := `[
		{"id": 1, "name": "Ana", "weeklyAmount": "2.5", "startDate": "2024-01-01"},
		{"id": 2, "name": "Luis", "weeklyAmount": "abc", "totalPaid": "junk", "startDate": "2024-01-01"},
		{"id": 3, "name": "Rosa", "weeklyAmount": 2.0, "startDate": "2024-01-01"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	s, err := OpenJSONFile(path)
	require.NoError(t, err)
	students, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, students, 3)

	assert.Equal(t, 2.5, students[0].WeeklyAmount.Value)
	assert.True(t, students[0].WeeklyAmount.Valid)

	// The junk value is neither parseable nor replaced by the default.
	assert.False(t, students[1].WeeklyAmount.Valid)
	// Unreadable totalPaid is repaired from the (empty) history.
	assert.True(t, students[1].TotalPaid.Valid)
	assert.Equal(t, 0.0, students[1].TotalPaid.Value)

	assert.Equal(t, 2.0, students[2].WeeklyAmount.Value)
}

func TestLoad_KeepsStoredZeroWeeklyAmount(t *testing.T) {
	// An explicit 0 is a value, not an absence; the default applies only to
	// records that carry no weeklyAmount field at all.
	path := filepath.Join(t.TempDir(), "students.json")
	raw := `[{"id": 1, "name": "Ana", "weeklyAmount": 0, "startDate": "2024-01-01"}]`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	s, err := OpenJSONFile(path)
	require.NoError(t, err)
	students, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, students, 1)

	assert.True(t, students[0].WeeklyAmount.Valid)
	assert.Equal(t, 0.0, students[0].WeeklyAmount.Value)
}

func TestInsert_AssignsMonotonicIDs(t *testing.T) {
	s, _ := tempStore(t)

	first, err := s.Insert(models.Student{Name: "Ana"})
	require.NoError(t, err)
	second, err := s.Insert(models.Student{Name: "Luis"})
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
}

func TestInsert_NeverReusesIDs(t *testing.T) {
	s, _ := tempStore(t)

	_, err := s.Insert(models.Student{Name: "Ana"})
	require.NoError(t, err)
	second, err := s.Insert(models.Student{Name: "Luis"})
	require.NoError(t, err)

	removed, err := s.Remove(second.ID)
	require.NoError(t, err)
	require.True(t, removed)

	third, err := s.Insert(models.Student{Name: "Rosa"})
	require.NoError(t, err)
	assert.Equal(t, 3, third.ID)
}

func TestGetByID(t *testing.T) {
	s, _ := tempStore(t)
	inserted, err := s.Insert(models.Student{Name: "Ana", Grade: "2do", WeeklyAmount: models.Num(2), StartDate: "2024-01-01"})
	require.NoError(t, err)

	got, err := s.GetByID(inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	_, err = s.GetByID(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplace(t *testing.T) {
	s, _ := tempStore(t)
	inserted, err := s.Insert(models.Student{Name: "Ana", WeeklyAmount: models.Num(2), StartDate: "2024-01-01"})
	require.NoError(t, err)

	inserted.Name = "Ana María"
	inserted.ID = 42 // must be ignored: the id belongs to the path
	require.NoError(t, s.Replace(1, inserted))

	got, err := s.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", got.Name)
	assert.Equal(t, 1, got.ID)

	assert.ErrorIs(t, s.Replace(999, inserted), ErrNotFound)
}

func TestReplace_DoesNotPersistDerivedStatus(t *testing.T) {
	s, path := tempStore(t)
	inserted, err := s.Insert(models.Student{Name: "Ana", WeeklyAmount: models.Num(2), StartDate: "2024-01-01"})
	require.NoError(t, err)

	inserted.PaymentStatus = &models.PaymentStatus{StatusText: "current"}
	require.NoError(t, s.Replace(inserted.ID, inserted))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "paymentStatus")
}

func TestRemove(t *testing.T) {
	s, _ := tempStore(t)
	inserted, err := s.Insert(models.Student{Name: "Ana"})
	require.NoError(t, err)

	removed, err := s.Remove(inserted.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Remove(inserted.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	students, err := s.ListAll()
	require.NoError(t, err)
	assert.Empty(t, students)
}

func TestPaymentHistoryRoundTrip(t *testing.T) {
	s, _ := tempStore(t)
	inserted, err := s.Insert(models.Student{
		Name:         "Ana",
		WeeklyAmount: models.Num(2),
		StartDate:    "2024-01-01",
		TotalPaid:    models.Num(3.5),
		PaymentHistory: []models.Payment{
			{Amount: models.Num(2.0), Date: "2024-01-01"},
			{Amount: models.Num(1.5), Date: "2024-01-08"},
		},
	})
	require.NoError(t, err)

	got, err := s.GetByID(inserted.ID)
	require.NoError(t, err)
	require.Len(t, got.PaymentHistory, 2)
	assert.Equal(t, 2.0, got.PaymentHistory[0].Amount.Value)
	assert.True(t, got.PaymentHistory[0].Amount.Valid)
	assert.Equal(t, "2024-01-08", got.PaymentHistory[1].Date)
}
