package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aninayuwoki/cobranza/config"
	"github.com/aninayuwoki/cobranza/internal/billing"
	"github.com/aninayuwoki/cobranza/internal/store"
	"github.com/aninayuwoki/cobranza/models"
)

// StudentHandler bundles the handlers with their store dependency.
//
// The store serializes individual calls, but a get-mutate-replace cycle
// spans several of them; mu keeps concurrent updates from interleaving and
// dropping an append.
type StudentHandler struct {
	Store store.Store

	mu sync.Mutex
}

func NewStudentHandler(st store.Store) *StudentHandler {
	return &StudentHandler{Store: st}
}

const (
	listCacheKey = "students:all"
	listCacheTTL = 30 * time.Second
)

// updateRequest is the PUT body. A body carrying a payment object is a
// register-payment request; anything else is a field-edit patch.
type updateRequest struct {
	models.StudentInput
	Payment *models.PaymentInput `json:"payment"`
}

// List returns every student with a freshly computed payment status. An
// optional "search" query filters by name or grade, case-insensitively.
// Unfiltered responses are served from the Redis cache when available.
func (h *StudentHandler) List(c *gin.Context) {
	search := c.Query("search")

	if search == "" && config.RDB != nil {
		if cached, err := config.RDB.Get(config.Ctx, listCacheKey).Bytes(); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			return
		}
	}

	students, err := h.Store.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load students"})
		return
	}

	now := time.Now()
	result := make([]models.Student, 0, len(students))
	for _, s := range students {
		if search != "" && !matchesSearch(s, search) {
			continue
		}
		status := billing.ComputeStatus(s, now)
		s.PaymentStatus = &status
		result = append(result, s)
	}

	if search == "" && config.RDB != nil {
		if body, merr := json.Marshal(result); merr == nil {
			config.RDB.Set(config.Ctx, listCacheKey, body, listCacheTTL)
		}
	}

	c.JSON(http.StatusOK, result)
}

func matchesSearch(s models.Student, search string) bool {
	q := strings.ToLower(search)
	return strings.Contains(strings.ToLower(s.Name), q) ||
		strings.Contains(strings.ToLower(s.Grade), q)
}

// Get returns a single student with computed status.
func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := studentID(c)
	if !ok {
		return
	}

	student, err := h.Store.GetByID(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	status := billing.ComputeStatus(student, time.Now())
	student.PaymentStatus = &status
	c.JSON(http.StatusOK, student)
}

// Create validates the input, fills defaults and inserts the new student.
func (h *StudentHandler) Create(c *gin.Context) {
	var in models.StudentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if verr := billing.Validate(in); verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		return
	}

	now := time.Now()
	student, err := h.Store.Insert(billing.NewStudent(in, now))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save student"})
		return
	}
	invalidateListCache()

	status := billing.ComputeStatus(student, now)
	student.PaymentStatus = &status
	c.JSON(http.StatusCreated, student)
}

// Update registers a payment when the body carries one, or applies a field
// edit patch otherwise. Both paths validate before committing and persist
// the record in a single replace.
func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := studentID(c)
	if !ok {
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	student, err := h.Store.GetByID(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	now := time.Now()
	var updated models.Student
	var verr *billing.ValidationError
	if req.Payment != nil {
		updated, verr = billing.AppendPayment(student, *req.Payment, now)
	} else {
		updated, verr = billing.EditFields(student, req.StudentInput, now)
	}
	if verr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		return
	}

	if err := h.Store.Replace(id, updated); err != nil {
		respondStoreError(c, err)
		return
	}
	invalidateListCache()
	c.JSON(http.StatusOK, updated)
}

// Delete removes a student permanently.
func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := studentID(c)
	if !ok {
		return
	}

	removed, err := h.Store.Remove(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete student"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	invalidateListCache()
	c.JSON(http.StatusOK, gin.H{"message": "student deleted successfully"})
}

func studentID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return 0, false
	}
	return id, true
}

func respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
}

func invalidateListCache() {
	if config.RDB != nil {
		config.RDB.Del(config.Ctx, listCacheKey)
	}
}
