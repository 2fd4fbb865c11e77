package model

import "encoding/json"

// ExerciseType discriminates the three exercise variants. The variant
// determines which of the optional fields are meaningful.
type ExerciseType string

const (
	ExerciseMultipleChoice ExerciseType = "multiple-choice"
	ExerciseEssay          ExerciseType = "essay"
	ExerciseCaseStudy      ExerciseType = "case-study"
)

func (t ExerciseType) Valid() bool {
	switch t {
	case ExerciseMultipleChoice, ExerciseEssay, ExerciseCaseStudy:
		return true
	}
	return false
}

// Option is one answer choice of a multiple-choice exercise. Exactly one
// option per exercise carries IsCorrect.
type Option struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// Media is the attachment of a case-study exercise.
type Media struct {
	Type MediaType `json:"type"`
	URL  string    `json:"url"`
}

func (m MediaType) Valid() bool {
	return m == MediaImage || m == MediaVideo
}

// Exercise is the stored form. Options, Media and RelatedQuestionIDs travel
// and persist as opaque JSON blobs; everything outside the repository/codec
// boundary works with the decoded ExerciseDetail instead.
//
// swagger:model Exercise
type Exercise struct {
	BaseModel
	SectionID     uint         `gorm:"index;not null" json:"sectionId"`
	Type          ExerciseType `gorm:"type:enum('multiple-choice','essay','case-study');not null" json:"type"`
	Content       string       `gorm:"type:text;not null" json:"content"`
	CorrectAnswer string       `gorm:"type:text" json:"correctAnswer,omitempty"`
	Explanation   string       `gorm:"type:text" json:"explanation,omitempty"`

	Options            json.RawMessage `gorm:"type:json" json:"-"`
	Media              json.RawMessage `gorm:"type:json" json:"-"`
	RelatedQuestionIDs json.RawMessage `gorm:"type:json" json:"-"`
}

func (Exercise) TableName() string {
	return "study_exercises"
}

// ExerciseDetail is the decoded view handed to services, handlers and the
// grading engine.
//
// swagger:model ExerciseDetail
type ExerciseDetail struct {
	ID                 uint         `json:"id"`
	SectionID          uint         `json:"sectionId"`
	Type               ExerciseType `json:"type"`
	Content            string       `json:"content"`
	CorrectAnswer      string       `json:"correctAnswer,omitempty"`
	Explanation        string       `json:"explanation,omitempty"`
	Options            []Option     `json:"options"`
	Media              *Media       `json:"media,omitempty"`
	RelatedQuestionIDs []uint       `json:"relatedQuestionIds"`
}

// Detail decodes the opaque blobs into a typed view. Malformed blobs decode
// to empty values, they never surface as errors.
func (e *Exercise) Detail() ExerciseDetail {
	return ExerciseDetail{
		ID:                 e.ID,
		SectionID:          e.SectionID,
		Type:               e.Type,
		Content:            e.Content,
		CorrectAnswer:      e.CorrectAnswer,
		Explanation:        e.Explanation,
		Options:            DecodeOptions(e.Options),
		Media:              DecodeMedia(e.Media),
		RelatedQuestionIDs: DecodeRelatedIDs(e.RelatedQuestionIDs),
	}
}

// CorrectOptionIndex returns the position of the option flagged correct,
// or -1 when there is none.
func (d ExerciseDetail) CorrectOptionIndex() int {
	for i, opt := range d.Options {
		if opt.IsCorrect {
			return i
		}
	}
	return -1
}
