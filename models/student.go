package models

// Defaults applied when a student record omits a field, both at creation
// and when loading records persisted by older versions.
const (
	DefaultGrade        = "Estudiante"
	DefaultWeeklyAmount = 2.00
)

// DateLayout is the wire and storage format for all calendar dates.
const DateLayout = "2006-01-02"

// Payment is a single entry in a student's payment history. Entries are
// append-only and never edited or deleted. Amount is a tolerant Number so
// that a malformed stored entry is skipped by the status calculator rather
// than poisoning the whole document.
type Payment struct {
	Amount Number `json:"amount"`
	Date   string `json:"date"`
}

// Student is the persisted student record. WeeklyAmount and TotalPaid are
// tolerant Numbers for the same reason Payment.Amount is: one string-typed
// or junk value in a legacy data file must degrade that one record, not
// fail the unmarshal of the whole collection.
type Student struct {
	ID              int            `json:"id"`
	Name            string         `json:"name"`
	Grade           string         `json:"grade"`
	WeeklyAmount    Number         `json:"weeklyAmount"`
	StartDate       string         `json:"startDate"`
	TotalPaid       Number         `json:"totalPaid"`
	PaymentHistory  []Payment      `json:"paymentHistory"`
	LastPaymentDate *string        `json:"lastPaymentDate"`
	PaymentStatus   *PaymentStatus `json:"paymentStatus,omitempty"`
}

// PaymentStatus is derived from a student record on every read; it is never
// the source of truth. SemanasPagadas and SemanasFaltantes keep the field
// names the original front-end consumes; SemanasFaltantes always mirrors
// WeeksDelinquent.
type PaymentStatus struct {
	WeeksElapsed     int     `json:"weeksElapsed"`
	WeeksPaid        int     `json:"semanasPagadas"`
	WeeksDelinquent  int     `json:"weeksDelinquent"`
	SemanasFaltantes int     `json:"semanasFaltantes"`
	TotalPaidActual  float64 `json:"totalPaidActual"`
	WeeklyAmount     float64 `json:"weeklyAmount"`
	ExpectedAmount   float64 `json:"expectedAmount"`
	Balance          float64 `json:"balance"`
	IsCurrent        bool    `json:"isCurrent"`
	StatusText       string  `json:"statusText"`
	StatusColor      string  `json:"statusColor"`
}

// StudentInput carries the editable fields of a create or edit request.
// Pointer fields distinguish an absent key from an empty value: an absent
// startDate means "apply the default", an empty one is a validation error.
type StudentInput struct {
	Name         *string `json:"name"`
	Grade        *string `json:"grade"`
	WeeklyAmount *Number `json:"weeklyAmount"`
	StartDate    *string `json:"startDate"`
}

// PaymentInput is the body of a register-payment request.
type PaymentInput struct {
	Amount *Number `json:"amount"`
	Date   *string `json:"date"`
}
