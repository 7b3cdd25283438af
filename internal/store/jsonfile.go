package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aninayuwoki/cobranza/models"
)

// JSONFile is the reference store: a flat JSON array of students in a
// single file. Every operation re-reads the file and every mutation writes
// it back, so there is no cross-request caching; a store-wide mutex
// serializes the read-modify-write cycles.
//
// A missing, empty or corrupt file is reset to an empty collection. The
// reset is logged so operators can tell data loss from a new deployment.
type JSONFile struct {
	mu     sync.Mutex
	path   string
	nextID int
}

// OpenJSONFile opens (initializing or repairing if needed) the store at
// path and seeds the id counter past the highest stored id.
func OpenJSONFile(path string) (*JSONFile, error) {
	s := &JSONFile{path: path, nextID: 1}
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	for _, st := range students {
		if st.ID >= s.nextID {
			s.nextID = st.ID + 1
		}
	}
	return s, nil
}

func (s *JSONFile) ListAll() ([]models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *JSONFile) GetByID(id int) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.loadLocked()
	if err != nil {
		return models.Student{}, err
	}
	for _, st := range students {
		if st.ID == id {
			return st, nil
		}
	}
	return models.Student{}, ErrNotFound
}

func (s *JSONFile) Insert(student models.Student) (models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.loadLocked()
	if err != nil {
		return models.Student{}, err
	}
	student.ID = s.nextID
	s.nextID++
	if student.PaymentHistory == nil {
		student.PaymentHistory = []models.Payment{}
	}
	students = append(students, student)
	if err := s.saveLocked(students); err != nil {
		return models.Student{}, err
	}
	return student, nil
}

func (s *JSONFile) Replace(id int, student models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.loadLocked()
	if err != nil {
		return err
	}
	for i := range students {
		if students[i].ID == id {
			student.ID = id
			students[i] = student
			return s.saveLocked(students)
		}
	}
	return ErrNotFound
}

func (s *JSONFile) Remove(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.loadLocked()
	if err != nil {
		return false, err
	}
	kept := students[:0]
	for _, st := range students {
		if st.ID != id {
			kept = append(kept, st)
		}
	}
	if len(kept) == len(students) {
		return false, nil
	}
	return true, s.saveLocked(kept)
}

// loadLocked reads and decodes the backing file, repairing it to an empty
// collection when it is missing, empty or malformed. Defaults are filled
// on every loaded record. Callers hold s.mu.
func (s *JSONFile) loadLocked() ([]models.Student, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) || (err == nil && len(data) == 0) {
		if werr := s.saveLocked([]models.Student{}); werr != nil {
			return nil, werr
		}
		return []models.Student{}, nil
	}
	if err != nil {
		return nil, err
	}

	var students []models.Student
	if uerr := json.Unmarshal(data, &students); uerr != nil {
		slog.Warn("student data file is unreadable, resetting to an empty collection",
			"path", s.path, "error", uerr)
		if werr := s.saveLocked([]models.Student{}); werr != nil {
			return nil, werr
		}
		return []models.Student{}, nil
	}

	today := time.Now()
	for i := range students {
		students[i].PaymentStatus = nil
		applyDefaults(&students[i], today)
	}
	return students, nil
}

// saveLocked writes the full collection back, dropping any derived status
// so it is never persisted as source of truth. Callers hold s.mu.
func (s *JSONFile) saveLocked(students []models.Student) error {
	for i := range students {
		students[i].PaymentStatus = nil
	}
	data, err := json.MarshalIndent(students, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
