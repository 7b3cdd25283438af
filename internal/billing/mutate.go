package billing

import (
	"time"

	"github.com/aninayuwoki/cobranza/models"
)

// NewStudent builds a student record from validated input, filling the
// documented defaults for absent fields. The id is assigned later by the
// store. Callers must have run Validate on the input first.
func NewStudent(in models.StudentInput, today time.Time) models.Student {
	s := models.Student{
		Grade:          models.DefaultGrade,
		WeeklyAmount:   models.Num(models.DefaultWeeklyAmount),
		StartDate:      today.Format(models.DateLayout),
		TotalPaid:      models.Num(0),
		PaymentHistory: []models.Payment{},
	}
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.Grade != nil {
		s.Grade = *in.Grade
	}
	if in.WeeklyAmount != nil {
		s.WeeklyAmount = models.Num(in.WeeklyAmount.Value)
	}
	if in.StartDate != nil {
		s.StartDate = *in.StartDate
	}
	return s
}

// AppendPayment validates and appends a payment to the student's history,
// bumps the denormalized total and recomputes the payment status. The
// input student is not modified; the updated copy is returned.
//
// lastPaymentDate tracks the most recently appended payment, not the
// chronologically latest: appending an older-dated payment still moves it.
func AppendPayment(s models.Student, in models.PaymentInput, asOf time.Time) (models.Student, *ValidationError) {
	if in.Amount == nil || !in.Amount.Valid || in.Amount.Value <= 0 {
		return s, invalid("invalid payment amount")
	}
	if in.Date == nil || *in.Date == "" {
		return s, invalid("payment date required")
	}
	if _, err := time.Parse(models.DateLayout, *in.Date); err != nil {
		return s, invalid("invalid payment date format")
	}

	history := make([]models.Payment, len(s.PaymentHistory), len(s.PaymentHistory)+1)
	copy(history, s.PaymentHistory)
	s.PaymentHistory = append(history, models.Payment{
		Amount: models.Num(in.Amount.Value),
		Date:   *in.Date,
	})
	s.TotalPaid = models.Num(Round2(s.TotalPaid.Value + in.Amount.Value))
	date := *in.Date
	s.LastPaymentDate = &date

	status := ComputeStatus(s, asOf)
	s.PaymentStatus = &status
	return s, nil
}

// EditFields applies a patch of the editable fields (name, grade,
// weeklyAmount, startDate) to a student. Validation runs against the
// merged student-plus-patch view before anything is applied: an invalid
// patch leaves the student unchanged. id, totalPaid, paymentHistory and
// lastPaymentDate cannot be edited through this path.
func EditFields(s models.Student, patch models.StudentInput, asOf time.Time) (models.Student, *ValidationError) {
	merged := models.StudentInput{
		Name:         &s.Name,
		Grade:        &s.Grade,
		WeeklyAmount: &s.WeeklyAmount,
		StartDate:    &s.StartDate,
	}
	if patch.Name != nil {
		merged.Name = patch.Name
	}
	if patch.Grade != nil {
		merged.Grade = patch.Grade
	}
	if patch.WeeklyAmount != nil {
		merged.WeeklyAmount = patch.WeeklyAmount
	}
	if patch.StartDate != nil {
		merged.StartDate = patch.StartDate
	}
	if verr := Validate(merged); verr != nil {
		return s, verr
	}

	s.Name = *merged.Name
	s.Grade = *merged.Grade
	s.WeeklyAmount = models.Num(merged.WeeklyAmount.Value)
	s.StartDate = *merged.StartDate

	status := ComputeStatus(s, asOf)
	s.PaymentStatus = &status
	return s, nil
}
