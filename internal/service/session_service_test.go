package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvassess/internal/model"
)

// memSessionRepo is an in-memory SessionRepo for tests
type memSessionRepo struct {
	sessions map[string]*model.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*model.Session)}
}

func (r *memSessionRepo) Save(ctx context.Context, session *model.Session) error {
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *memSessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (r *memSessionRepo) List(ctx context.Context) ([]*model.Session, error) {
	out := make([]*model.Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		copied := *session
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memSessionRepo) Delete(ctx context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

// memSessionCache is an in-memory SessionCache for tests
type memSessionCache struct {
	sessions map[string]*model.Session
}

func newMemSessionCache() *memSessionCache {
	return &memSessionCache{sessions: make(map[string]*model.Session)}
}

func (c *memSessionCache) Set(ctx context.Context, session *model.Session) error {
	copied := *session
	c.sessions[session.ID] = &copied
	return nil
}

func (c *memSessionCache) Get(ctx context.Context, id string) (*model.Session, error) {
	session, ok := c.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (c *memSessionCache) Delete(ctx context.Context, id string) error {
	delete(c.sessions, id)
	return nil
}

// recordingBroadcaster captures dashboard events
type recordingBroadcaster struct {
	events []string
}

func (b *recordingBroadcaster) BroadcastDashboard(msgType string, payload interface{}) {
	b.events = append(b.events, msgType)
}

func newTestSessionService() (*SessionService, *recordingBroadcaster) {
	svc := NewSessionService(newMemSessionRepo(), newMemSessionCache(), newQuestionServiceFromList(fallbackQuestions()))
	broadcaster := &recordingBroadcaster{}
	svc.SetBroadcaster(broadcaster)
	return svc, broadcaster
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, broadcaster := newTestSessionService()

	session, err := svc.Start(ctx, model.UserInfo{Name: "Alice"})
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, model.SessionActive, session.Status)
	assert.False(t, session.StartedAt.IsZero())

	// Likert answer comes in as a JSON number
	session, err = svc.SaveAnswer(ctx, session.ID, "q_0", float64(6))
	require.NoError(t, err)
	assert.Equal(t, model.LikertAnswer(6), session.Responses["q_0"])

	// Yes/no answer comes in as an option label
	session, err = svc.SaveAnswer(ctx, session.ID, "q_1", "Yes")
	require.NoError(t, err)
	assert.Equal(t, model.YesNoAnswer(true), session.Responses["q_1"])

	session, err = svc.SaveComment(ctx, session.ID, "q_0", "Well established here")
	require.NoError(t, err)
	assert.Equal(t, "Well established here", session.Comments["q_0"])

	session, err = svc.Complete(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionCompleted, session.Status)
	require.NotNil(t, session.CompletedAt)

	loaded, err := svc.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, loaded.IsCompleted())
	assert.Len(t, loaded.Responses, 2)

	assert.Contains(t, broadcaster.events, "session_progress")
	assert.Contains(t, broadcaster.events, "session_completed")
}

func TestSaveAnswerValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSessionService()

	session, err := svc.Start(ctx, model.UserInfo{Name: "Bob"})
	require.NoError(t, err)

	t.Run("unknown question", func(t *testing.T) {
		_, err := svc.SaveAnswer(ctx, session.ID, "q_42", float64(5))
		assert.ErrorIs(t, err, ErrUnknownQuestion)
	})

	t.Run("likert out of range", func(t *testing.T) {
		_, err := svc.SaveAnswer(ctx, session.ID, "q_0", float64(8))
		assert.ErrorIs(t, err, ErrInvalidAnswer)
	})

	t.Run("likert fraction", func(t *testing.T) {
		_, err := svc.SaveAnswer(ctx, session.ID, "q_0", 5.5)
		assert.ErrorIs(t, err, ErrInvalidAnswer)
	})

	t.Run("yes/no wrong shape", func(t *testing.T) {
		_, err := svc.SaveAnswer(ctx, session.ID, "q_1", float64(7))
		assert.ErrorIs(t, err, ErrInvalidAnswer)
	})

	t.Run("yes/no wrong label", func(t *testing.T) {
		_, err := svc.SaveAnswer(ctx, session.ID, "q_1", "Maybe")
		assert.ErrorIs(t, err, ErrInvalidAnswer)
	})

	t.Run("missing session", func(t *testing.T) {
		_, err := svc.SaveAnswer(ctx, "nope", "q_0", float64(5))
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestCompletedSessionIsReadOnly(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSessionService()

	session, err := svc.Start(ctx, model.UserInfo{Name: "Carol"})
	require.NoError(t, err)

	_, err = svc.SaveAnswer(ctx, session.ID, "q_0", float64(5))
	require.NoError(t, err)

	_, err = svc.Complete(ctx, session.ID)
	require.NoError(t, err)

	_, err = svc.SaveAnswer(ctx, session.ID, "q_2", float64(3))
	assert.ErrorIs(t, err, ErrSessionCompleted)

	_, err = svc.SaveComment(ctx, session.ID, "q_0", "too late")
	assert.ErrorIs(t, err, ErrSessionCompleted)

	// Completing again is idempotent
	again, err := svc.Complete(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SessionCompleted, again.Status)
}

func TestSaveCommentDeletesOnEmptyText(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSessionService()

	session, err := svc.Start(ctx, model.UserInfo{Name: "Dana"})
	require.NoError(t, err)

	session, err = svc.SaveComment(ctx, session.ID, "q_0", "first thoughts")
	require.NoError(t, err)
	assert.Contains(t, session.Comments, "q_0")

	session, err = svc.SaveComment(ctx, session.ID, "q_0", "")
	require.NoError(t, err)
	assert.NotContains(t, session.Comments, "q_0")
}

func TestDeleteSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSessionService()

	session, err := svc.Start(ctx, model.UserInfo{Name: "Eve"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, session.ID))

	_, err = svc.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
