package service

import (
	"fmt"
	"slices"

	"go-recordshop/internal/model"
	"go-recordshop/internal/repository"
	"go-recordshop/internal/ws"

	"go.uber.org/zap"
)

// EventPublisher receives record change notifications.
type EventPublisher interface {
	Publish(evt ws.Event)
}

type RecordService interface {
	GetAllRecords() ([]model.Record, error)
	GetRecord(id int) (*model.Record, error)
	CreateRecord(fields model.RecordFields, actor *model.Principal) (*model.Record, error)
	UpdateRecord(id int, fields model.RecordFields, actor *model.Principal) (*model.Record, error)
	DeleteRecord(id int, actor *model.Principal) (*model.Record, error)
	GetFormats() []string
	GetGenres() []string
}

type recordService struct {
	recordRepo repository.RecordRepository
	events     EventPublisher
	log        *zap.Logger
}

func NewRecordService(repo repository.RecordRepository, events EventPublisher, log *zap.Logger) RecordService {
	return &recordService{
		recordRepo: repo,
		events:     events,
		log:        log,
	}
}

func (s *recordService) GetAllRecords() ([]model.Record, error) {
	return s.recordRepo.FindAll()
}

func (s *recordService) GetRecord(id int) (*model.Record, error) {
	return s.recordRepo.FindByID(id)
}

func (s *recordService) CreateRecord(fields model.RecordFields, actor *model.Principal) (*model.Record, error) {
	record, err := s.recordRepo.Create(fields)
	if err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}

	s.log.Info("record created", zap.Int("id", record.ID), zap.String("title", record.Title), actorField(actor))
	s.publish(ws.ActionRecordCreated, *record, actor, fmt.Sprintf("%s created record '%s'", actorName(actor), record.Title))
	return record, nil
}

func (s *recordService) UpdateRecord(id int, fields model.RecordFields, actor *model.Principal) (*model.Record, error) {
	record, err := s.recordRepo.Update(id, fields)
	if err != nil {
		return nil, err
	}

	s.log.Info("record updated", zap.Int("id", record.ID), actorField(actor))
	s.publish(ws.ActionRecordUpdated, *record, actor, fmt.Sprintf("%s updated record '%s'", actorName(actor), record.Title))
	return record, nil
}

func (s *recordService) DeleteRecord(id int, actor *model.Principal) (*model.Record, error) {
	record, err := s.recordRepo.Delete(id)
	if err != nil {
		return nil, err
	}

	s.log.Info("record deleted", zap.Int("id", record.ID), actorField(actor))
	s.publish(ws.ActionRecordDeleted, *record, actor, fmt.Sprintf("%s deleted record '%s'", actorName(actor), record.Title))
	return record, nil
}

func (s *recordService) GetFormats() []string {
	return slices.Clone(model.Formats)
}

func (s *recordService) GetGenres() []string {
	return slices.Clone(model.Genres)
}

func (s *recordService) publish(action string, record model.Record, actor *model.Principal, message string) {
	if s.events == nil {
		return
	}
	s.events.Publish(ws.NewRecordEvent(action, record, actor, message))
}

func actorName(actor *model.Principal) string {
	if actor == nil {
		return "Someone"
	}
	return actor.Name
}

func actorField(actor *model.Principal) zap.Field {
	if actor == nil {
		return zap.Skip()
	}
	return zap.String("by", actor.Email)
}
