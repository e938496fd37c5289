package app

import (
	"context"
	"errors"
	"fmt"

	"pcb-inspector/internal/domain/entity"
	"pcb-inspector/internal/domain/port"
)

var (
	ErrInspectorNotConfigured = errors.New("inspector is not configured")
	ErrReferenceNotFound      = errors.New("reference photo is not found")
	ErrCandidateNotFound      = errors.New("candidate photo is not found")
)

type InspectionService struct {
	users     *UserService
	sessions  port.SessionRepository
	inspector port.ComponentInspector
}

// InspectionOutput содержит результат проверки и фото с разметкой.
type InspectionOutput struct {
	Result    *entity.InspectionResult
	Annotated []byte
}

// NewInspectionService создаёт сервис, который ведёт пользователя по проверке платы.
func NewInspectionService(users *UserService, sessions port.SessionRepository, inspector port.ComponentInspector) *InspectionService {
	return &InspectionService{
		users:     users,
		sessions:  sessions,
		inspector: inspector,
	}
}

// AcceptReferencePhoto начинает новую сессию с эталонным фото и ждёт проверяемое.
func (s *InspectionService) AcceptReferencePhoto(ctx context.Context, userID, chatID int64, photo []byte) (*entity.User, error) {
	if len(photo) == 0 {
		return nil, fmt.Errorf("%w: reference photo is empty", entity.ErrInvalidImage)
	}

	session := &entity.Session{UserID: userID, Reference: photo}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.users.SetState(ctx, userID, chatID, entity.StateAwaitingCandidate)
}

// AcceptCandidatePhoto сохраняет проверяемое фото и ждёт манифест.
func (s *InspectionService) AcceptCandidatePhoto(ctx context.Context, userID, chatID int64, photo []byte) (*entity.User, error) {
	if len(photo) == 0 {
		return nil, fmt.Errorf("%w: candidate photo is empty", entity.ErrInvalidImage)
	}

	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(session.Reference) == 0 {
		return nil, ErrReferenceNotFound
	}

	session.Candidate = photo
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return s.users.SetState(ctx, userID, chatID, entity.StateAwaitingManifest)
}

// ProcessManifest запускает проверку по сохранённым фото.
// После попытки сессия удаляется, а пользователь возвращается в главное меню.
func (s *InspectionService) ProcessManifest(ctx context.Context, userID, chatID int64, manifest entity.Manifest) (*InspectionOutput, error) {
	session, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(session.Reference) == 0 {
		return nil, ErrReferenceNotFound
	}
	if !session.Ready() {
		return nil, ErrCandidateNotFound
	}

	if _, err := s.users.SetState(ctx, userID, chatID, entity.StateProcessing); err != nil {
		return nil, err
	}

	out, inspectErr := s.Inspect(ctx, session.Reference, session.Candidate, manifest)

	if err := s.sessions.Delete(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.users.SetState(ctx, userID, chatID, entity.StateMainMenu); err != nil {
		return nil, err
	}

	if inspectErr != nil {
		return nil, inspectErr
	}
	return out, nil
}

// Inspect проверяет плату без привязки к пользователю.
func (s *InspectionService) Inspect(ctx context.Context, reference, candidate []byte, manifest entity.Manifest) (*InspectionOutput, error) {
	if s.inspector == nil {
		return nil, ErrInspectorNotConfigured
	}
	if len(reference) == 0 || len(candidate) == 0 {
		return nil, fmt.Errorf("%w: image is not set", entity.ErrInvalidImage)
	}

	result, annotated, err := s.inspector.Inspect(ctx, reference, candidate, manifest)
	if err != nil {
		return nil, err
	}

	return &InspectionOutput{Result: result, Annotated: annotated}, nil
}

// Cancel сбрасывает незавершённую проверку.
func (s *InspectionService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	if err := s.sessions.Delete(ctx, userID); err != nil {
		return nil, err
	}
	return s.users.Cancel(ctx, userID, chatID)
}
