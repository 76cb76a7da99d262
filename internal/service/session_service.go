package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"kvassess/internal/cache"
	"kvassess/internal/model"
	"kvassess/internal/repository"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionCompleted = errors.New("session is completed and read-only")
	ErrUnknownQuestion  = errors.New("unknown question")
	ErrInvalidAnswer    = errors.New("invalid answer")
)

// Broadcaster pushes dashboard events to connected watchers
type Broadcaster interface {
	BroadcastDashboard(msgType string, payload interface{})
}

// ProgressEvent is the dashboard payload emitted whenever a session advances
type ProgressEvent struct {
	SessionID      string  `json:"sessionId"`
	Status         string  `json:"status"`
	ResponseCount  int     `json:"responseCount"`
	TotalQuestions int     `json:"totalQuestions"`
	CompletionRate float64 `json:"completionRate"`
}

// SessionService manages the assessment session lifecycle: start, incremental
// answer/comment saves, completion freeze, and facilitator management.
// Each save persists the whole session document.
type SessionService struct {
	sessionRepo  repository.SessionRepo
	sessionCache cache.SessionCache
	questionSvc  *QuestionService
	broadcaster  Broadcaster
}

// NewSessionService creates a new session service
func NewSessionService(sessionRepo repository.SessionRepo, sessionCache cache.SessionCache, questionSvc *QuestionService) *SessionService {
	return &SessionService{
		sessionRepo:  sessionRepo,
		sessionCache: sessionCache,
		questionSvc:  questionSvc,
	}
}

// SetBroadcaster injects the dashboard broadcaster
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Start creates a new active session for the given user
func (s *SessionService) Start(ctx context.Context, user model.UserInfo) (*model.Session, error) {
	session := &model.Session{
		ID:        uuid.New().String(),
		User:      user,
		Status:    model.SessionActive,
		Responses: make(map[string]model.Answer),
		Comments:  make(map[string]string),
		StartedAt: time.Now(),
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.notifyProgress(session)
	return session, nil
}

// Get loads a session, trying the cache before the repository
func (s *SessionService) Get(ctx context.Context, id string) (*model.Session, error) {
	session, err := s.sessionCache.Get(ctx, id)
	if err != nil {
		// Cache trouble is not fatal; fall through to the repository
		log.Printf("session cache read failed for %s: %v", id, err)
	}
	if session != nil {
		return session, nil
	}

	session, err = s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if err := s.sessionCache.Set(ctx, session); err != nil {
		log.Printf("session cache write failed for %s: %v", id, err)
	}
	return session, nil
}

// SaveAnswer records one typed answer. The raw value is parsed against the
// question's type; a shape mismatch is rejected here so only well-formed
// tagged answers ever reach the store.
func (s *SessionService) SaveAnswer(ctx context.Context, sessionID, questionID string, raw interface{}) (*model.Session, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted() {
		return nil, ErrSessionCompleted
	}

	question, ok := s.questionSvc.QuestionByID(questionID)
	if !ok {
		return nil, ErrUnknownQuestion
	}

	answer, err := model.ParseAnswer(raw, question.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnswer, err)
	}

	if session.Responses == nil {
		session.Responses = make(map[string]model.Answer)
	}
	session.Responses[questionID] = answer

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.notifyProgress(session)
	return session, nil
}

// SaveComment records the free-text comment for one question. Comments are
// advisory and never count towards completion.
func (s *SessionService) SaveComment(ctx context.Context, sessionID, questionID, text string) (*model.Session, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted() {
		return nil, ErrSessionCompleted
	}

	if _, ok := s.questionSvc.QuestionByID(questionID); !ok {
		return nil, ErrUnknownQuestion
	}

	if session.Comments == nil {
		session.Comments = make(map[string]string)
	}
	if text == "" {
		delete(session.Comments, questionID)
	} else {
		session.Comments[questionID] = text
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Complete freezes the session; all subsequent writes are rejected
func (s *SessionService) Complete(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted() {
		return session, nil
	}

	now := time.Now()
	session.Status = model.SessionCompleted
	session.CompletedAt = &now

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	s.notifyProgress(session)
	return session, nil
}

// List returns all sessions, newest first
func (s *SessionService) List(ctx context.Context) ([]*model.Session, error) {
	return s.sessionRepo.List(ctx)
}

// Delete removes a session from the store and the cache
func (s *SessionService) Delete(ctx context.Context, id string) error {
	if err := s.sessionRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.sessionCache.Delete(ctx, id); err != nil {
		log.Printf("session cache delete failed for %s: %v", id, err)
	}
	return nil
}

func (s *SessionService) save(ctx context.Context, session *model.Session) error {
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return err
	}
	if err := s.sessionCache.Set(ctx, session); err != nil {
		log.Printf("session cache write failed for %s: %v", session.ID, err)
	}
	return nil
}

func (s *SessionService) notifyProgress(session *model.Session) {
	if s.broadcaster == nil {
		return
	}

	total := s.questionSvc.TotalQuestions()
	event := ProgressEvent{
		SessionID:      session.ID,
		Status:         string(session.Status),
		ResponseCount:  len(session.Responses),
		TotalQuestions: total,
	}
	if total > 0 {
		event.CompletionRate = float64(event.ResponseCount) / float64(total)
	}

	msgType := "session_progress"
	if session.IsCompleted() {
		msgType = "session_completed"
	}
	s.broadcaster.BroadcastDashboard(msgType, event)
}
