package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"kvassess/internal/model"
)

// sourceSheet is the workbook sheet holding the assessment questions
const sourceSheet = "1) self-assessment tool"

// Column headers expected in the question source. The channel, factor and
// actor columns carry forward: a blank cell inherits the last non-empty value
// above it.
const (
	colChannels = "CHANNELS"
	colFactors  = "FACTORS"
	colActors   = "ACTORS"
	colLikert   = "1 - Strongly disagree / Not at all true | 7 - Strongly agree / Fully true"
	colYesNo    = "yes/no"
)

// minQuestionLen filters out stray short cell entries; only text strictly
// longer than this is treated as a question.
const minQuestionLen = 10

// loadQuestions reads the question source and extracts the ordered question
// list. Any failure (missing file, bad sheet, missing column) degrades to the
// embedded fallback list so the rest of the system stays exercisable.
func loadQuestions(path string) []model.Question {
	rows, err := readRows(path)
	if err != nil {
		log.Printf("question source unavailable (%s): %v; using fallback questions", path, err)
		return fallbackQuestions()
	}

	questions, err := extractQuestions(rows)
	if err != nil {
		log.Printf("question source unusable (%s): %v; using fallback questions", path, err)
		return fallbackQuestions()
	}

	log.Printf("loaded %d questions from %s", len(questions), path)
	return questions
}

// readRows reads the raw cell grid from an .xlsx workbook or a .csv file
func readRows(path string) ([][]string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return f.GetRows(sourceSheet)
	case ".csv":
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		r := csv.NewReader(file)
		r.FieldsPerRecord = -1
		return r.ReadAll()
	default:
		return nil, fmt.Errorf("unsupported question source format %q", ext)
	}
}

// extractQuestions walks the rows, maintaining the carry-forward channel,
// factor and actor context, and emits a question for each likert or yes/no
// text cell. A single row can yield zero, one or two questions; IDs are
// assigned sequentially as q_<index> in row-then-column order.
func extractQuestions(rows [][]string) ([]model.Question, error) {
	if len(rows) < 2 {
		return nil, errors.New("question source has no data rows")
	}

	idx, err := columnIndex(rows[0])
	if err != nil {
		return nil, err
	}

	var (
		channel, factor, actor string
		questions              []model.Question
		counter                int
	)

	for _, row := range rows[1:] {
		if v := cell(row, idx[colChannels]); v != "" {
			channel = v
		}
		if v := cell(row, idx[colFactors]); v != "" {
			factor = v
		}
		if v := cell(row, idx[colActors]); v != "" {
			actor = v
		}

		if text := cell(row, idx[colLikert]); len(text) > minQuestionLen {
			questions = append(questions, model.Question{
				ID:          fmt.Sprintf("q_%d", counter),
				Text:        text,
				Type:        model.QuestionTypeLikert,
				Channel:     channel,
				Factor:      factor,
				Actor:       actor,
				Scale:       model.LikertScale,
				ScaleLabels: model.LikertScaleLabels,
			})
			counter++
		}

		if text := cell(row, idx[colYesNo]); len(text) > minQuestionLen {
			questions = append(questions, model.Question{
				ID:      fmt.Sprintf("q_%d", counter),
				Text:    text,
				Type:    model.QuestionTypeYesNo,
				Channel: channel,
				Factor:  factor,
				Actor:   actor,
				Options: model.YesNoOptions,
			})
			counter++
		}
	}

	return questions, nil
}

// columnIndex locates the expected headers in the first row
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, 5)
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colChannels, colFactors, colActors, colLikert, colYesNo} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}
	return idx, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}
