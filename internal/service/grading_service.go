package service

import (
	"math"
	"strings"

	"trading_edu_backend/internal/model"
)

// Answer is one entry of a practice session, keyed by exercise id. The
// shape depends on the exercise type: an option index for multiple-choice,
// free text for essay, text plus explanation for case-study.
type Answer struct {
	Option      *int   `json:"option,omitempty"`
	Text        string `json:"text,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// AnswerSession is the ephemeral, client-built answer map. It is never
// persisted here; it exists only long enough to be graded.
type AnswerSession map[uint]Answer

// SessionSummary is the derived result of grading one completed session.
//
// swagger:model SessionSummary
type SessionSummary struct {
	Total         int `json:"total"`
	Answered      int `json:"answered"`
	Unanswered    int `json:"unanswered"`
	Correct       int `json:"correct"`
	Wrong         int `json:"wrong"`
	TotalGradable int `json:"totalGradable"`
	ScorePercent  int `json:"scorePercent"`
}

// Grade scores a completed session against the exercise list. The function
// is total and deterministic; it never fails. Only multiple-choice
// exercises are gradable: essays and case studies count toward answered but
// need manual review, so they never move correct/wrong or the score.
func Grade(exercises []model.ExerciseDetail, answers AnswerSession) SessionSummary {
	summary := SessionSummary{Total: len(exercises)}

	for _, ex := range exercises {
		gradable := ex.Type == model.ExerciseMultipleChoice
		if gradable {
			summary.TotalGradable++
		}

		answer, ok := answers[ex.ID]
		if !ok || !answered(ex.Type, answer) {
			continue
		}
		summary.Answered++

		if !gradable {
			continue
		}
		// An exercise whose options blob decoded empty has no correct index;
		// guard the -1 sentinel so no submitted index can match it.
		correctIdx := ex.CorrectOptionIndex()
		if correctIdx >= 0 && answer.Option != nil && *answer.Option == correctIdx {
			summary.Correct++
		} else {
			summary.Wrong++
		}
	}

	summary.Unanswered = summary.Total - summary.Answered
	if summary.TotalGradable > 0 {
		summary.ScorePercent = int(math.Round(float64(summary.Correct) / float64(summary.TotalGradable) * 100))
	}
	return summary
}

// answered reports whether the entry counts as an answer for its exercise
// type: a selected option for multiple-choice, non-blank text otherwise.
func answered(t model.ExerciseType, a Answer) bool {
	if t == model.ExerciseMultipleChoice {
		return a.Option != nil
	}
	return strings.TrimSpace(a.Text) != ""
}

// GradingService resolves a section's exercises and grades a submitted
// session against them. Nothing is stored; the summary goes straight back
// to the caller.
type GradingService struct {
	Exercises *ExerciseService
}

func NewGradingService(exercises *ExerciseService) *GradingService {
	return &GradingService{Exercises: exercises}
}

type GradeRequest struct {
	SectionID uint          `json:"sectionId" binding:"required"`
	Answers   AnswerSession `json:"answers"`
}

func (s *GradingService) GradeSection(req GradeRequest) (SessionSummary, error) {
	exercises, err := s.Exercises.ListBySection(req.SectionID)
	if err != nil {
		return SessionSummary{}, err
	}
	return Grade(exercises, req.Answers), nil
}
