package repository

import (
	"errors"

	"go-recordshop/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormRecordRepo struct {
	db *gorm.DB
}

// NewGormRecordRepo stores records in a SQL table. The serial primary key gives the
// same never-reused id guarantee as the in-memory store.
func NewGormRecordRepo(db *gorm.DB) RecordRepository {
	return &gormRecordRepo{db}
}

func (r *gormRecordRepo) FindAll() ([]model.Record, error) {
	var records []model.Record
	err := r.db.Order("id").Find(&records).Error
	return records, err
}

func (r *gormRecordRepo) FindByID(id int) (*model.Record, error) {
	var record model.Record
	if err := r.db.First(&record, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (r *gormRecordRepo) Create(fields model.RecordFields) (*model.Record, error) {
	record := model.NewRecord(0, fields)
	if err := r.db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Update locks the row first; concurrent updates resolve to last writer wins.
func (r *gormRecordRepo) Update(id int, fields model.RecordFields) (*model.Record, error) {
	var updated model.Record
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Record
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&existing, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		updated = model.NewRecord(id, fields)
		return tx.Save(&updated).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *gormRecordRepo) Delete(id int) (*model.Record, error) {
	var deleted model.Record
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&deleted, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		res := tx.Delete(&model.Record{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		// someone else deleted it between the lock and here
		if res.RowsAffected == 0 {
			return ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// SeedRecords inserts the default catalogue into an empty table.
func SeedRecords(db *gorm.DB, seed []model.RecordFields) error {
	var count int64
	if err := db.Model(&model.Record{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, f := range seed {
		record := model.NewRecord(0, f)
		if err := db.Create(&record).Error; err != nil {
			return err
		}
	}
	return nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	return err
}
