package repository

import (
	"trading_edu_backend/internal/model"

	"gorm.io/gorm"
)

// ContentStore is the read/write surface of the interview content tree.
// Implemented by ContentRepository (MySQL), SurrogateProvider (in-memory)
// and FallbackContentStore (the resilience wrapper around both).
type ContentStore interface {
	Tree(market model.Market) ([]model.Topic, error)

	ListTopics(market model.Market) ([]model.Topic, error)
	FindTopic(id uint) (*model.Topic, error)
	CreateTopic(topic *model.Topic) error
	UpdateTopic(topic *model.Topic) error
	DeleteTopic(id uint) error

	ListSections(topicID uint) ([]model.Section, error)
	FindSection(id uint) (*model.Section, error)
	CreateSection(section *model.Section) error
	UpdateSection(section *model.Section) error
	DeleteSection(id uint) error

	ListQuestions(sectionID uint, level model.QuestionLevel) ([]model.Question, error)
	FindQuestion(id uint) (*model.Question, error)
	CreateQuestion(question *model.Question) error
	UpdateQuestion(question *model.Question) error
	DeleteQuestion(id uint) error
}

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) Tree(market model.Market) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("interview_sections.created_at asc")
		}).
		Preload("Sections.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("interview_questions.created_at asc")
		}).
		Where("market = ?", market).
		Order("created_at asc").
		Find(&topics).Error
	return topics, err
}

func (r *ContentRepository) ListTopics(market model.Market) ([]model.Topic, error) {
	var topics []model.Topic
	query := r.DB.Model(&model.Topic{})
	if market != "" {
		query = query.Where("market = ?", market)
	}
	err := query.Order("created_at asc").Find(&topics).Error
	return topics, err
}

func (r *ContentRepository) FindTopic(id uint) (*model.Topic, error) {
	var t model.Topic
	err := r.DB.First(&t, id).Error
	return &t, err
}

func (r *ContentRepository) CreateTopic(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

func (r *ContentRepository) UpdateTopic(topic *model.Topic) error {
	return r.DB.Save(topic).Error
}

// DeleteTopic removes the topic together with its sections, questions and
// exercises in one transaction, so the tree never holds dangling children.
func (r *ContentRepository) DeleteTopic(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var sectionIDs []uint
		if err := tx.Model(&model.Section{}).Where("topic_id = ?", id).
			Pluck("id", &sectionIDs).Error; err != nil {
			return err
		}
		if len(sectionIDs) > 0 {
			if err := tx.Where("section_id IN ?", sectionIDs).
				Delete(&model.Exercise{}).Error; err != nil {
				return err
			}
			if err := tx.Where("section_id IN ?", sectionIDs).
				Delete(&model.Question{}).Error; err != nil {
				return err
			}
			if err := tx.Where("topic_id = ?", id).
				Delete(&model.Section{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Topic{}, id).Error
	})
}

func (r *ContentRepository) ListSections(topicID uint) ([]model.Section, error) {
	var sections []model.Section
	query := r.DB.Model(&model.Section{})
	if topicID > 0 {
		query = query.Where("topic_id = ?", topicID)
	}
	err := query.Order("created_at asc").Find(&sections).Error
	return sections, err
}

func (r *ContentRepository) FindSection(id uint) (*model.Section, error) {
	var s model.Section
	err := r.DB.First(&s, id).Error
	return &s, err
}

func (r *ContentRepository) CreateSection(section *model.Section) error {
	return r.DB.Create(section).Error
}

func (r *ContentRepository) UpdateSection(section *model.Section) error {
	return r.DB.Save(section).Error
}

func (r *ContentRepository) DeleteSection(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("section_id = ?", id).Delete(&model.Exercise{}).Error; err != nil {
			return err
		}
		if err := tx.Where("section_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Section{}, id).Error
	})
}

func (r *ContentRepository) ListQuestions(sectionID uint, level model.QuestionLevel) ([]model.Question, error) {
	var questions []model.Question
	query := r.DB.Model(&model.Question{})
	if sectionID > 0 {
		query = query.Where("section_id = ?", sectionID)
	}
	if level != "" && level != model.LevelAll {
		query = query.Where("level = ?", level)
	}
	err := query.Order("created_at asc").Find(&questions).Error
	return questions, err
}

func (r *ContentRepository) FindQuestion(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *ContentRepository) CreateQuestion(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *ContentRepository) UpdateQuestion(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *ContentRepository) DeleteQuestion(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}
