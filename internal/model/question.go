package model

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeLikert QuestionType = "likert" // Statement rated on a 1-7 agreement scale
	QuestionTypeYesNo  QuestionType = "yesno"  // Binary question, collapsed to 7/1 for scoring
)

// Factor codes are the three fixed lenses cutting across channels
const (
	FactorEnvironmental  = "env"
	FactorOrganizational = "org"
	FactorIndividual     = "ind"
)

// Factors lists the factor codes in presentation order
var Factors = []string{FactorEnvironmental, FactorOrganizational, FactorIndividual}

// LikertScale is the contiguous 1..7 agreement scale shared by all likert questions
var LikertScale = []int{1, 2, 3, 4, 5, 6, 7}

// LikertScaleLabels maps scale values to their display labels
var LikertScaleLabels = map[int]string{
	1: "Strongly disagree",
	2: "Disagree",
	3: "Somewhat disagree",
	4: "Neutral",
	5: "Somewhat agree",
	6: "Agree",
	7: "Strongly agree",
}

// YesNoOptions are the two allowed option labels for yesno questions
var YesNoOptions = []string{"Yes", "No"}

// Question is an immutable assessment question loaded from the question
// source at startup; questions are never persisted. Channel, Factor and Actor
// carry the hierarchical context of the source row the question was extracted
// from.
type Question struct {
	ID          string         `json:"id"`
	Text        string         `json:"question"`
	Type        QuestionType   `json:"type"`
	Channel     string         `json:"channel"`
	Factor      string         `json:"factor"`
	Actor       string         `json:"actor"`
	Scale       []int          `json:"scale,omitempty"`       // likert only
	ScaleLabels map[int]string `json:"scaleLabels,omitempty"` // likert only
	Options     []string       `json:"options,omitempty"`     // yesno only
}
