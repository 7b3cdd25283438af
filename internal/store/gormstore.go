package store

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/aninayuwoki/cobranza/models"
)

// studentRecord is the Postgres row shape. The payment history is kept as
// a JSON column; the serial primary key gives never-reused ids across
// restarts. There is no soft-delete column: removals are hard, as the
// store contract requires.
type studentRecord struct {
	ID              int     `gorm:"primaryKey"`
	Name            string  `gorm:"not null"`
	Grade           string
	WeeklyAmount    float64
	StartDate       string
	TotalPaid       float64
	PaymentHistory  datatypes.JSON
	LastPaymentDate *string
}

func (studentRecord) TableName() string { return "students" }

// Gorm is the Postgres-backed Store, selected when DB_URL is configured.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) (*Gorm, error) {
	if err := db.AutoMigrate(&studentRecord{}); err != nil {
		return nil, err
	}
	return &Gorm{db: db}, nil
}

func (s *Gorm) ListAll() ([]models.Student, error) {
	var records []studentRecord
	if err := s.db.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	students := make([]models.Student, 0, len(records))
	today := time.Now()
	for _, rec := range records {
		st := fromRecord(rec)
		applyDefaults(&st, today)
		students = append(students, st)
	}
	return students, nil
}

func (s *Gorm) GetByID(id int) (models.Student, error) {
	var rec studentRecord
	if err := s.db.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Student{}, ErrNotFound
		}
		return models.Student{}, err
	}
	st := fromRecord(rec)
	applyDefaults(&st, time.Now())
	return st, nil
}

func (s *Gorm) Insert(student models.Student) (models.Student, error) {
	rec, err := toRecord(student)
	if err != nil {
		return models.Student{}, err
	}
	rec.ID = 0
	if err := s.db.Create(&rec).Error; err != nil {
		return models.Student{}, err
	}
	student.ID = rec.ID
	if student.PaymentHistory == nil {
		student.PaymentHistory = []models.Payment{}
	}
	return student, nil
}

func (s *Gorm) Replace(id int, student models.Student) error {
	var existing studentRecord
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	rec, err := toRecord(student)
	if err != nil {
		return err
	}
	rec.ID = id
	return s.db.Save(&rec).Error
}

func (s *Gorm) Remove(id int) (bool, error) {
	res := s.db.Delete(&studentRecord{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func toRecord(st models.Student) (studentRecord, error) {
	if st.PaymentHistory == nil {
		st.PaymentHistory = []models.Payment{}
	}
	history, err := json.Marshal(st.PaymentHistory)
	if err != nil {
		return studentRecord{}, err
	}
	return studentRecord{
		ID:              st.ID,
		Name:            st.Name,
		Grade:           st.Grade,
		WeeklyAmount:    st.WeeklyAmount.Value,
		StartDate:       st.StartDate,
		TotalPaid:       st.TotalPaid.Value,
		PaymentHistory:  datatypes.JSON(history),
		LastPaymentDate: st.LastPaymentDate,
	}, nil
}

func fromRecord(rec studentRecord) models.Student {
	st := models.Student{
		ID:              rec.ID,
		Name:            rec.Name,
		Grade:           rec.Grade,
		WeeklyAmount:    models.Num(rec.WeeklyAmount),
		StartDate:       rec.StartDate,
		TotalPaid:       models.Num(rec.TotalPaid),
		PaymentHistory:  []models.Payment{},
		LastPaymentDate: rec.LastPaymentDate,
	}
	if len(rec.PaymentHistory) > 0 {
		if err := json.Unmarshal(rec.PaymentHistory, &st.PaymentHistory); err != nil {
			// Same self-healing policy as the file store, scoped to
			// the one bad column.
			slog.Warn("payment history column is unreadable, treating as empty",
				"student_id", rec.ID, "error", err)
			st.PaymentHistory = []models.Payment{}
		}
	}
	return st
}
