package service

import "kvassess/internal/model"

// fallbackChannel is the single channel covered by the embedded question set
const fallbackChannel = "n.1 Academia-Industry joint research & mobility"

// fallbackQuestions is the embedded question set used when the question
// source cannot be read: one channel, all three factors, both question types.
func fallbackQuestions() []model.Question {
	const academia = "ACADEMIA incl. research and technology organisations"
	const industry = "INDUSTRY incl. SMEs and start-ups"

	return []model.Question{
		{
			ID:          "q_0",
			Text:        "National/regional policy frameworks effectively support sustained industry-academia co-creation.",
			Type:        model.QuestionTypeLikert,
			Channel:     fallbackChannel,
			Factor:      model.FactorEnvironmental,
			Actor:       academia,
			Scale:       model.LikertScale,
			ScaleLabels: model.LikertScaleLabels,
		},
		{
			ID:      "q_1",
			Text:    "Are there formal joint research agreements with industry?",
			Type:    model.QuestionTypeYesNo,
			Channel: fallbackChannel,
			Factor:  model.FactorEnvironmental,
			Actor:   academia,
			Options: model.YesNoOptions,
		},
		{
			ID:          "q_2",
			Text:        "IP/data governance policies are adapted to enable equitable sharing in joint R&I.",
			Type:        model.QuestionTypeLikert,
			Channel:     fallbackChannel,
			Factor:      model.FactorOrganizational,
			Actor:       industry,
			Scale:       model.LikertScale,
			ScaleLabels: model.LikertScaleLabels,
		},
		{
			ID:      "q_3",
			Text:    "Are research infrastructures co-governed or co-used with industry (e.g. joint labs, testbeds)?",
			Type:    model.QuestionTypeYesNo,
			Channel: fallbackChannel,
			Factor:  model.FactorOrganizational,
			Actor:   academia,
			Options: model.YesNoOptions,
		},
		{
			ID:          "q_4",
			Text:        "Researchers receive training or mentoring for working with industrial partners.",
			Type:        model.QuestionTypeLikert,
			Channel:     fallbackChannel,
			Factor:      model.FactorIndividual,
			Actor:       academia,
			Scale:       model.LikertScale,
			ScaleLabels: model.LikertScaleLabels,
		},
		{
			ID:      "q_5",
			Text:    "Are researchers formally authorised to lead or co-lead joint projects with industry?",
			Type:    model.QuestionTypeYesNo,
			Channel: fallbackChannel,
			Factor:  model.FactorIndividual,
			Actor:   academia,
			Options: model.YesNoOptions,
		},
	}
}
