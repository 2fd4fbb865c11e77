package service

import (
	"fmt"
	"strings"

	"trading_edu_backend/internal/model"
	"trading_edu_backend/internal/repository"
	"trading_edu_backend/internal/util"
)

// ExerciseService owns the study exercises bound to the content tree.
// Validation happens here, before anything touches a store, so a bad payload
// is rejected without a database round trip.
type ExerciseService struct {
	Store   repository.ExerciseStore
	Content repository.ContentStore
}

func NewExerciseService(store repository.ExerciseStore, content repository.ContentStore) *ExerciseService {
	return &ExerciseService{Store: store, Content: content}
}

func (s *ExerciseService) Degraded() bool {
	if d, ok := s.Store.(repository.Degradable); ok {
		return d.Degraded()
	}
	return false
}

// ExerciseRequest mirrors the admin screen payload: the semi-structured
// sub-fields arrive as JSON-encoded strings and are decoded defensively at
// this boundary.
type ExerciseRequest struct {
	SectionID          uint               `json:"sectionId" binding:"required"`
	Type               model.ExerciseType `json:"type" binding:"required"`
	Content            string             `json:"content" binding:"required"`
	CorrectAnswer      string             `json:"correctAnswer"`
	Explanation        string             `json:"explanation"`
	Options            string             `json:"options"`
	Media              string             `json:"media"`
	RelatedQuestionIDs string             `json:"related_question_ids"`
}

// decoded is the typed form of a request after the codec pass.
type decodedExercise struct {
	options    []model.Option
	media      *model.Media
	relatedIDs []uint
}

func (s *ExerciseService) decode(req ExerciseRequest) decodedExercise {
	return decodedExercise{
		options:    model.DecodeOptions([]byte(req.Options)),
		media:      model.DecodeMedia([]byte(req.Media)),
		relatedIDs: model.DecodeRelatedIDs([]byte(req.RelatedQuestionIDs)),
	}
}

// validate enforces the type-specific invariants plus cross-tree referential
// integrity: every related question must live in the exercise's own section.
// Dangling references are rejected at write time rather than silently
// dropped.
func (s *ExerciseService) validate(req ExerciseRequest, dec decodedExercise) error {
	if !req.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", util.ErrInvalidExercise, req.Type)
	}

	switch req.Type {
	case model.ExerciseMultipleChoice:
		if len(dec.options) < 2 {
			return fmt.Errorf("%w: multiple-choice needs at least 2 options", util.ErrInvalidExercise)
		}
		correct := 0
		for _, opt := range dec.options {
			if strings.TrimSpace(opt.Text) == "" {
				return fmt.Errorf("%w: option text must not be empty", util.ErrInvalidExercise)
			}
			if opt.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return fmt.Errorf("%w: exactly one option must be correct, got %d", util.ErrInvalidExercise, correct)
		}
	case model.ExerciseEssay:
		if strings.TrimSpace(req.CorrectAnswer) == "" {
			return fmt.Errorf("%w: essay needs a reference answer", util.ErrInvalidExercise)
		}
	case model.ExerciseCaseStudy:
		if strings.TrimSpace(req.CorrectAnswer) == "" {
			return fmt.Errorf("%w: case study needs a reference answer", util.ErrInvalidExercise)
		}
		if dec.media != nil {
			if !dec.media.Type.Valid() {
				return fmt.Errorf("%w: media type must be image or video", util.ErrUnsupportedMedia)
			}
			if dec.media.URL == "" {
				return fmt.Errorf("%w: media needs a url", util.ErrUnsupportedMedia)
			}
		}
	}

	if _, err := s.Content.FindSection(req.SectionID); err != nil {
		return util.ErrSectionNotFound
	}

	if len(dec.relatedIDs) > 0 {
		questions, err := s.Content.ListQuestions(req.SectionID, model.LevelAll)
		if err != nil {
			return err
		}
		inSection := make(map[uint]bool, len(questions))
		for _, q := range questions {
			inSection[q.ID] = true
		}
		for _, id := range dec.relatedIDs {
			if !inSection[id] {
				return fmt.Errorf("%w: question %d", util.ErrRelatedQuestion, id)
			}
		}
	}

	return nil
}

func (s *ExerciseService) toModel(req ExerciseRequest, dec decodedExercise) *model.Exercise {
	return &model.Exercise{
		SectionID:          req.SectionID,
		Type:               req.Type,
		Content:            req.Content,
		CorrectAnswer:      req.CorrectAnswer,
		Explanation:        req.Explanation,
		Options:            model.EncodeOptions(dec.options),
		Media:              model.EncodeMedia(dec.media),
		RelatedQuestionIDs: model.EncodeRelatedIDs(dec.relatedIDs),
	}
}

func details(exercises []model.Exercise) []model.ExerciseDetail {
	out := make([]model.ExerciseDetail, len(exercises))
	for i := range exercises {
		out[i] = exercises[i].Detail()
	}
	return out
}

func (s *ExerciseService) ListBySection(sectionID uint) ([]model.ExerciseDetail, error) {
	exercises, err := s.Store.ListBySection(sectionID)
	if err != nil {
		return nil, err
	}
	return details(exercises), nil
}

func (s *ExerciseService) Get(id uint) (*model.ExerciseDetail, error) {
	e, err := s.Store.FindByID(id)
	if err != nil {
		return nil, util.ErrExerciseNotFound
	}
	d := e.Detail()
	return &d, nil
}

// Create validates, persists and returns the refreshed exercise list of the
// affected section so the caller's view stays consistent with its write.
func (s *ExerciseService) Create(req ExerciseRequest) ([]model.ExerciseDetail, error) {
	dec := s.decode(req)
	if err := s.validate(req, dec); err != nil {
		return nil, err
	}
	if err := s.Store.Create(s.toModel(req, dec)); err != nil {
		return nil, err
	}
	return s.ListBySection(req.SectionID)
}

func (s *ExerciseService) Update(id uint, req ExerciseRequest) ([]model.ExerciseDetail, error) {
	existing, err := s.Store.FindByID(id)
	if err != nil {
		return nil, util.ErrExerciseNotFound
	}
	dec := s.decode(req)
	if err := s.validate(req, dec); err != nil {
		return nil, err
	}
	updated := s.toModel(req, dec)
	updated.BaseModel = existing.BaseModel
	if err := s.Store.Update(updated); err != nil {
		return nil, err
	}
	return s.ListBySection(req.SectionID)
}

func (s *ExerciseService) Delete(id uint) ([]model.ExerciseDetail, error) {
	existing, err := s.Store.FindByID(id)
	if err != nil {
		return nil, util.ErrExerciseNotFound
	}
	if err := s.Store.Delete(id); err != nil {
		return nil, err
	}
	return s.ListBySection(existing.SectionID)
}
