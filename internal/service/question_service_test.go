package service

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvassess/internal/model"
)

func TestFallbackCatalog(t *testing.T) {
	// Unreadable source degrades to the embedded set
	svc := NewQuestionService(filepath.Join(t.TempDir(), "missing.xlsx"))

	assert.Equal(t, 6, svc.TotalQuestions())
	require.Equal(t, []string{fallbackChannel}, svc.Channels())

	group := svc.Channel(fallbackChannel)
	require.NotNil(t, group)
	assert.Equal(t, "Academia-Industry joint research & mobility", group.Name)
	assert.Len(t, group.Factors, 3)

	types := map[model.QuestionType]int{}
	for i := 0; i < 6; i++ {
		q, ok := svc.QuestionByID(fmt.Sprintf("q_%d", i))
		require.True(t, ok, "expected question %d", i)
		types[q.Type]++
	}
	assert.Equal(t, 3, types[model.QuestionTypeLikert])
	assert.Equal(t, 3, types[model.QuestionTypeYesNo])
}

func TestLoadCSVCarryForward(t *testing.T) {
	csvData := "CHANNELS,FACTORS,ACTORS," + colLikert + "," + colYesNo + "\n" +
		"n.1 Joint research,env,ACADEMIA,Our researchers collaborate with industry on joint projects.,\n" +
		",,,,Do you have formal agreements with industry partners?\n" +
		",org,,Internal processes support collaborative contracting effectively.,\n" +
		"n.2 Staff mobility,ind,INDUSTRY,Staff exchanges with academia happen regularly and are valued.,\n"

	path := filepath.Join(t.TempDir(), "questions.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0o644))

	svc := NewQuestionService(path)
	require.Equal(t, 4, svc.TotalQuestions())
	assert.Equal(t, []string{"n.1 Joint research", "n.2 Staff mobility"}, svc.Channels())

	q0, ok := svc.QuestionByID("q_0")
	require.True(t, ok)
	assert.Equal(t, model.QuestionTypeLikert, q0.Type)
	assert.Equal(t, "n.1 Joint research", q0.Channel)
	assert.Equal(t, "env", q0.Factor)
	assert.Equal(t, "ACADEMIA", q0.Actor)

	// Blank cells inherit channel, factor and actor from the row above
	q1, ok := svc.QuestionByID("q_1")
	require.True(t, ok)
	assert.Equal(t, model.QuestionTypeYesNo, q1.Type)
	assert.Equal(t, "n.1 Joint research", q1.Channel)
	assert.Equal(t, "env", q1.Factor)
	assert.Equal(t, "ACADEMIA", q1.Actor)

	q2, ok := svc.QuestionByID("q_2")
	require.True(t, ok)
	assert.Equal(t, "org", q2.Factor)
	assert.Equal(t, "ACADEMIA", q2.Actor)

	q3, ok := svc.QuestionByID("q_3")
	require.True(t, ok)
	assert.Equal(t, "n.2 Staff mobility", q3.Channel)
	assert.Equal(t, "ind", q3.Factor)
	assert.Equal(t, "INDUSTRY", q3.Actor)

	assert.Equal(t, "Staff mobility", svc.Channel("n.2 Staff mobility").Name)
}

func TestLoadCSVSkipsShortText(t *testing.T) {
	csvData := "CHANNELS,FACTORS,ACTORS," + colLikert + "," + colYesNo + "\n" +
		"n.1 Joint research,env,ACADEMIA,too short,\n" +
		",,,A proper question longer than the minimum length.,\n"

	path := filepath.Join(t.TempDir(), "questions.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0o644))

	svc := NewQuestionService(path)
	require.Equal(t, 1, svc.TotalQuestions())

	// The surviving question still gets the first sequential ID
	q, ok := svc.QuestionByID("q_0")
	require.True(t, ok)
	assert.Equal(t, "A proper question longer than the minimum length.", q.Text)
}

func TestLoadCSVMissingColumnFallsBack(t *testing.T) {
	csvData := "CHANNELS,FACTORS," + colLikert + "\n" +
		"n.1 Joint research,env,Our researchers collaborate with industry on joint projects.\n"

	path := filepath.Join(t.TempDir(), "questions.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0o644))

	svc := NewQuestionService(path)
	assert.Equal(t, 6, svc.TotalQuestions())
	assert.Equal(t, []string{fallbackChannel}, svc.Channels())
}

func TestCleanChannelName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"n.1 Academia-Industry joint research", "Academia-Industry joint research"},
		{"n.12 Spin-offs & start-ups", "Spin-offs & start-ups"},
		{"No prefix here", "No prefix here"},
		{"  n.3 Padded label  ", "Padded label"},
		{"n.9", "n.9"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, cleanChannelName(tt.in), tt.in)
	}
}

func TestOrganizeSkipsUnlabeledQuestions(t *testing.T) {
	svc := newQuestionServiceFromList([]model.Question{
		{ID: "q_0", Text: "Labeled", Channel: "n.1 A", Factor: "env"},
		{ID: "q_1", Text: "No channel", Factor: "env"},
		{ID: "q_2", Text: "No factor", Channel: "n.1 A"},
	})

	assert.Equal(t, 1, svc.TotalQuestions())
	_, ok := svc.QuestionByID("q_1")
	assert.False(t, ok)
}

func TestAllQuestionsOrder(t *testing.T) {
	svc := newQuestionServiceFromList(fallbackQuestions())

	var ids []string
	for _, q := range svc.AllQuestions() {
		ids = append(ids, q.ID)
	}
	// Channel order, then env/org/ind within the channel
	assert.Equal(t, []string{"q_0", "q_1", "q_2", "q_3", "q_4", "q_5"}, ids)
}
