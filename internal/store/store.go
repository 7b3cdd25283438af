package store

import (
	"errors"
	"math"
	"time"

	"github.com/aninayuwoki/cobranza/models"
)

// ErrNotFound is returned when a referenced student id is absent.
var ErrNotFound = errors.New("student not found")

// Store is the durable student collection. Implementations guarantee
// serialized writes and ids that are assigned monotonically and never
// reused within the store's lifetime.
type Store interface {
	ListAll() ([]models.Student, error)
	GetByID(id int) (models.Student, error)
	// Insert assigns the id and returns the stored record.
	Insert(s models.Student) (models.Student, error)
	Replace(id int, s models.Student) error
	// Remove reports whether a record was actually deleted.
	Remove(id int) (bool, error)
}

// applyDefaults fills the documented defaults on a loaded record: records
// written by older versions (or by hand) may miss fields, and defaults are
// applied once here, never implicitly downstream. Only truly absent fields
// are defaulted; a stored zero or a stored junk value is kept as-is for
// the calculator to judge.
func applyDefaults(s *models.Student, today time.Time) {
	if s.Grade == "" {
		s.Grade = models.DefaultGrade
	}
	if !s.WeeklyAmount.Present() {
		s.WeeklyAmount = models.Num(models.DefaultWeeklyAmount)
	}
	if s.StartDate == "" {
		s.StartDate = today.Format(models.DateLayout)
	}
	if s.PaymentHistory == nil {
		s.PaymentHistory = []models.Payment{}
	}
	if !s.TotalPaid.Valid {
		// Absent or unreadable: repair from the history.
		sum := 0.0
		for _, p := range s.PaymentHistory {
			if p.Amount.Valid {
				sum += p.Amount.Value
			}
		}
		s.TotalPaid = models.Num(math.Round(sum*100) / 100)
	}
	if s.LastPaymentDate == nil && len(s.PaymentHistory) > 0 {
		// ISO dates compare correctly as strings.
		last := ""
		for _, p := range s.PaymentHistory {
			if p.Date > last {
				last = p.Date
			}
		}
		if last != "" {
			s.LastPaymentDate = &last
		}
	}
}
