package repository

import (
	"errors"
	"slices"
	"sync"

	"go-recordshop/internal/model"
)

var ErrRecordNotFound = errors.New("record not found")

type RecordRepository interface {
	FindAll() ([]model.Record, error)
	FindByID(id int) (*model.Record, error)
	Create(fields model.RecordFields) (*model.Record, error)
	Update(id int, fields model.RecordFields) (*model.Record, error)
	Delete(id int) (*model.Record, error)
}

// recordRepo keeps records in memory. Ids come from a counter that only grows,
// so a deleted id is never handed out again.
type recordRepo struct {
	mu      sync.RWMutex
	records []model.Record
	nextID  int
}

func NewRecordRepo(seed []model.RecordFields) RecordRepository {
	r := &recordRepo{nextID: 1}
	for _, f := range seed {
		r.records = append(r.records, model.NewRecord(r.nextID, f))
		r.nextID++
	}
	return r
}

func (r *recordRepo) FindAll() ([]model.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.records), nil
}

func (r *recordRepo) FindByID(id int) (*model.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrRecordNotFound
	}
	record := r.records[i]
	return &record, nil
}

func (r *recordRepo) Create(fields model.RecordFields) (*model.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record := model.NewRecord(r.nextID, fields)
	r.nextID++
	r.records = append(r.records, record)
	return &record, nil
}

func (r *recordRepo) Update(id int, fields model.RecordFields) (*model.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrRecordNotFound
	}
	record := model.NewRecord(id, fields)
	r.records[i] = record
	return &record, nil
}

func (r *recordRepo) Delete(id int) (*model.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrRecordNotFound
	}
	deleted := r.records[i]
	r.records = slices.Delete(r.records, i, i+1)
	return &deleted, nil
}

// indexOf must be called with the lock held.
func (r *recordRepo) indexOf(id int) int {
	return slices.IndexFunc(r.records, func(rec model.Record) bool { return rec.ID == id })
}
