package service

import (
	"errors"
	"testing"

	"trading_edu_backend/internal/model"
	"trading_edu_backend/internal/repository"
	"trading_edu_backend/internal/util"
)

// newExerciseService wires the service onto the in-memory surrogate, which
// implements both stores, so no database is needed.
func newExerciseService(t *testing.T) *ExerciseService {
	t.Helper()
	store := repository.NewSurrogateProvider()
	return NewExerciseService(store, store)
}

const validOptions = `[{"id":1,"text":"Limit order"},{"id":2,"text":"Market order","isCorrect":true}]`

func TestExerciseCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     ExerciseRequest
		wantErr error
	}{
		{
			"valid multiple-choice",
			ExerciseRequest{SectionID: 11, Type: model.ExerciseMultipleChoice, Content: "q", Options: validOptions},
			nil,
		},
		{
			"unknown type",
			ExerciseRequest{SectionID: 11, Type: "quiz", Content: "q"},
			util.ErrInvalidExercise,
		},
		{
			"too few options",
			ExerciseRequest{SectionID: 11, Type: model.ExerciseMultipleChoice, Content: "q",
				Options: `[{"id":1,"text":"only one","isCorrect":true}]`},
			util.ErrInvalidExercise,
		},
		{
			"no correct option",
			ExerciseRequest{SectionID: 11, Type: model.ExerciseMultipleChoice, Content: "q",
				Options: `[{"id":1,"text":"A"},{"id":2,"text":"B"}]`},
			util.ErrInvalidExercise,
		},
		{
			"two correct options",
			ExerciseRequest{SectionID: 11, Type: model.ExerciseMultipleChoice, Content: "q",
				Options: `[{"id":1,"text":"A","isCorrect":true},{"id":2,"text":"B","isCorrect":true}]`},
			util.ErrInvalidExercise,
		},
		{
			"blank option text",
			ExerciseRequest{SectionID: 11, Type: model.ExerciseMultipleChoice, Content: "q",
				Options: `[{"id":1,"text":"  "},{"id":2,"text":"B","isCorrect":true}]`},
			util.ErrInvalidExercise,
		},
		{
			"malformed options degrade to empty and fail the count check",
			ExerciseRequest{SectionID: 11, Type: model.ExerciseMultipleChoice, Content: "q",
				Options: "{not json"},
			util.ErrInvalidExercise,
		},
		{
			"essay without reference answer",
			ExerciseRequest{SectionID: 13, Type: model.ExerciseEssay, Content: "q"},
			util.ErrInvalidExercise,
		},
		{
			"valid essay",
			ExerciseRequest{SectionID: 13, Type: model.ExerciseEssay, Content: "q", CorrectAnswer: "ref"},
			nil,
		},
		{
			"case study with bad media type",
			ExerciseRequest{SectionID: 15, Type: model.ExerciseCaseStudy, Content: "q", CorrectAnswer: "ref",
				Media: `{"type":"audio","url":"/x.mp3"}`},
			util.ErrUnsupportedMedia,
		},
		{
			"case study with image",
			ExerciseRequest{SectionID: 15, Type: model.ExerciseCaseStudy, Content: "q", CorrectAnswer: "ref",
				Media: `{"type":"image","url":"/chart.png"}`},
			nil,
		},
		{
			"unknown section",
			ExerciseRequest{SectionID: 999, Type: model.ExerciseMultipleChoice, Content: "q", Options: validOptions},
			util.ErrSectionNotFound,
		},
		{
			"related question from another section",
			ExerciseRequest{SectionID: 11, Type: model.ExerciseMultipleChoice, Content: "q", Options: validOptions,
				RelatedQuestionIDs: `[104]`},
			util.ErrRelatedQuestion,
		},
		{
			"related question that does not exist",
			ExerciseRequest{SectionID: 11, Type: model.ExerciseMultipleChoice, Content: "q", Options: validOptions,
				RelatedQuestionIDs: `[9999]`},
			util.ErrRelatedQuestion,
		},
		{
			"related questions inside the section",
			ExerciseRequest{SectionID: 11, Type: model.ExerciseMultipleChoice, Content: "q", Options: validOptions,
				RelatedQuestionIDs: `[101,102]`},
			nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := newExerciseService(t)
			_, err := svc.Create(tc.req)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("Create() failed: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Create() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestExerciseCreateReturnsRefreshedList(t *testing.T) {
	svc := newExerciseService(t)

	before, err := svc.ListBySection(11)
	if err != nil {
		t.Fatalf("ListBySection() failed: %v", err)
	}

	list, err := svc.Create(ExerciseRequest{
		SectionID: 11,
		Type:      model.ExerciseMultipleChoice,
		Content:   "Which order type guarantees a price but not a fill?",
		Options:   validOptions,
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if len(list) != len(before)+1 {
		t.Fatalf("got %d exercises after create, want %d", len(list), len(before)+1)
	}

	added := list[len(list)-1]
	if added.ID == 0 {
		t.Error("created exercise has no id")
	}
	if idx := added.CorrectOptionIndex(); idx != 1 {
		t.Errorf("stored correct option index = %d, want 1", idx)
	}
}

func TestExerciseRoundTripThroughStore(t *testing.T) {
	svc := newExerciseService(t)

	list, err := svc.Create(ExerciseRequest{
		SectionID:          11,
		Type:               model.ExerciseMultipleChoice,
		Content:            "q",
		Options:            validOptions,
		RelatedQuestionIDs: `[101]`,
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	created := list[len(list)-1]

	got, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if len(got.Options) != 2 || got.Options[1].Text != "Market order" {
		t.Errorf("options lost in round trip: %+v", got.Options)
	}
	if len(got.RelatedQuestionIDs) != 1 || got.RelatedQuestionIDs[0] != 101 {
		t.Errorf("related ids lost in round trip: %v", got.RelatedQuestionIDs)
	}
}

func TestExerciseUpdateAndDelete(t *testing.T) {
	svc := newExerciseService(t)

	// Exercise 201 ships with the default dataset in section 11.
	list, err := svc.Update(201, ExerciseRequest{
		SectionID: 11,
		Type:      model.ExerciseMultipleChoice,
		Content:   "updated content",
		Options:   validOptions,
	})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	var updated *model.ExerciseDetail
	for i := range list {
		if list[i].ID == 201 {
			updated = &list[i]
		}
	}
	if updated == nil || updated.Content != "updated content" {
		t.Fatalf("updated exercise missing or stale: %+v", updated)
	}

	if _, err := svc.Delete(201); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := svc.Get(201); !errors.Is(err, util.ErrExerciseNotFound) {
		t.Errorf("Get() after delete = %v, want %v", err, util.ErrExerciseNotFound)
	}

	if _, err := svc.Delete(201); !errors.Is(err, util.ErrExerciseNotFound) {
		t.Errorf("double Delete() = %v, want %v", err, util.ErrExerciseNotFound)
	}
}

func TestGradeSectionEndToEnd(t *testing.T) {
	svc := newExerciseService(t)
	grading := NewGradingService(svc)

	// Section 11 holds one default multiple-choice exercise; index 1 is correct.
	summary, err := grading.GradeSection(GradeRequest{
		SectionID: 11,
		Answers:   AnswerSession{201: {Option: intp(1)}},
	})
	if err != nil {
		t.Fatalf("GradeSection() failed: %v", err)
	}
	want := SessionSummary{Total: 1, Answered: 1, Correct: 1, TotalGradable: 1, ScorePercent: 100}
	if summary != want {
		t.Errorf("GradeSection() = %+v, want %+v", summary, want)
	}
}
