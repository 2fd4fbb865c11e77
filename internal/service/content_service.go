package service

import (
	"trading_edu_backend/internal/model"
	"trading_edu_backend/internal/repository"
	"trading_edu_backend/internal/util"
)

// ContentService owns the interview content tree. It talks to the store
// through the fallback wrapper, so reads keep working while the database is
// down. Every mutation re-fetches the affected list before returning, so the
// caller never renders state older than its own write.
type ContentService struct {
	Store repository.ContentStore
}

func NewContentService(store repository.ContentStore) *ContentService {
	return &ContentService{Store: store}
}

// Degraded reports whether the last store operation was served from
// surrogate data.
func (s *ContentService) Degraded() bool {
	if d, ok := s.Store.(repository.Degradable); ok {
		return d.Degraded()
	}
	return false
}

type TopicRequest struct {
	Name   string       `json:"name" binding:"required"`
	Market model.Market `json:"market" binding:"required"`
}

type SectionRequest struct {
	TopicID uint   `json:"topicId" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

type QuestionRequest struct {
	SectionID uint                `json:"sectionId" binding:"required"`
	Question  string              `json:"question" binding:"required"`
	Answer    string              `json:"answer"`
	Level     model.QuestionLevel `json:"level" binding:"required"`
}

func (s *ContentService) Tree(market model.Market) ([]model.Topic, error) {
	if !market.Valid() {
		return nil, util.ErrUnknownMarket
	}
	return s.Store.Tree(market)
}

// ValidateScope checks that a selection chain is internally consistent:
// the topic belongs to the selected market and the section to the selected
// topic. Used by list handlers that receive more than one scope parameter.
func (s *ContentService) ValidateScope(sel model.TreeSelection) error {
	if sel.TopicID > 0 && sel.Market != "" {
		topic, err := s.Store.FindTopic(sel.TopicID)
		if err != nil {
			return util.ErrTopicNotFound
		}
		if topic.Market != sel.Market {
			return util.ErrScopeMismatch
		}
	}
	if sel.SectionID > 0 && sel.TopicID > 0 {
		section, err := s.Store.FindSection(sel.SectionID)
		if err != nil {
			return util.ErrSectionNotFound
		}
		if section.TopicID != sel.TopicID {
			return util.ErrScopeMismatch
		}
	}
	return nil
}

// --- Topics ---

func (s *ContentService) ListTopics(market model.Market) ([]model.Topic, error) {
	if market != "" && !market.Valid() {
		return nil, util.ErrUnknownMarket
	}
	return s.Store.ListTopics(market)
}

func (s *ContentService) CreateTopic(req TopicRequest) ([]model.Topic, error) {
	if !req.Market.Valid() {
		return nil, util.ErrUnknownMarket
	}
	topic := &model.Topic{Name: req.Name, Market: req.Market}
	if err := s.Store.CreateTopic(topic); err != nil {
		return nil, err
	}
	return s.Store.ListTopics(req.Market)
}

func (s *ContentService) UpdateTopic(id uint, req TopicRequest) ([]model.Topic, error) {
	if !req.Market.Valid() {
		return nil, util.ErrUnknownMarket
	}
	topic, err := s.Store.FindTopic(id)
	if err != nil {
		return nil, util.ErrTopicNotFound
	}
	topic.Name = req.Name
	topic.Market = req.Market
	if err := s.Store.UpdateTopic(topic); err != nil {
		return nil, err
	}
	return s.Store.ListTopics(req.Market)
}

func (s *ContentService) DeleteTopic(id uint) ([]model.Topic, error) {
	topic, err := s.Store.FindTopic(id)
	if err != nil {
		return nil, util.ErrTopicNotFound
	}
	if err := s.Store.DeleteTopic(id); err != nil {
		return nil, err
	}
	return s.Store.ListTopics(topic.Market)
}

// --- Sections ---

func (s *ContentService) ListSections(topicID uint) ([]model.Section, error) {
	return s.Store.ListSections(topicID)
}

func (s *ContentService) CreateSection(req SectionRequest) ([]model.Section, error) {
	if _, err := s.Store.FindTopic(req.TopicID); err != nil {
		return nil, util.ErrTopicNotFound
	}
	section := &model.Section{TopicID: req.TopicID, Name: req.Name}
	if err := s.Store.CreateSection(section); err != nil {
		return nil, err
	}
	return s.Store.ListSections(req.TopicID)
}

func (s *ContentService) UpdateSection(id uint, req SectionRequest) ([]model.Section, error) {
	section, err := s.Store.FindSection(id)
	if err != nil {
		return nil, util.ErrSectionNotFound
	}
	if req.TopicID != section.TopicID {
		if _, err := s.Store.FindTopic(req.TopicID); err != nil {
			return nil, util.ErrTopicNotFound
		}
	}
	section.TopicID = req.TopicID
	section.Name = req.Name
	if err := s.Store.UpdateSection(section); err != nil {
		return nil, err
	}
	return s.Store.ListSections(req.TopicID)
}

func (s *ContentService) DeleteSection(id uint) ([]model.Section, error) {
	section, err := s.Store.FindSection(id)
	if err != nil {
		return nil, util.ErrSectionNotFound
	}
	if err := s.Store.DeleteSection(id); err != nil {
		return nil, err
	}
	return s.Store.ListSections(section.TopicID)
}

// --- Questions ---

func (s *ContentService) ListQuestions(sectionID uint, level model.QuestionLevel) ([]model.Question, error) {
	if level != "" && level != model.LevelAll && !level.Valid() {
		return nil, util.ErrInvalidLevel
	}
	return s.Store.ListQuestions(sectionID, level)
}

func (s *ContentService) CreateQuestion(req QuestionRequest) ([]model.Question, error) {
	if !req.Level.Valid() {
		return nil, util.ErrInvalidLevel
	}
	if _, err := s.Store.FindSection(req.SectionID); err != nil {
		return nil, util.ErrSectionNotFound
	}
	question := &model.Question{
		SectionID: req.SectionID,
		Question:  req.Question,
		Answer:    req.Answer,
		Level:     req.Level,
	}
	if err := s.Store.CreateQuestion(question); err != nil {
		return nil, err
	}
	return s.Store.ListQuestions(req.SectionID, model.LevelAll)
}

func (s *ContentService) UpdateQuestion(id uint, req QuestionRequest) ([]model.Question, error) {
	if !req.Level.Valid() {
		return nil, util.ErrInvalidLevel
	}
	question, err := s.Store.FindQuestion(id)
	if err != nil {
		return nil, util.ErrQuestionNotFound
	}
	if req.SectionID != question.SectionID {
		if _, err := s.Store.FindSection(req.SectionID); err != nil {
			return nil, util.ErrSectionNotFound
		}
	}
	question.SectionID = req.SectionID
	question.Question = req.Question
	question.Answer = req.Answer
	question.Level = req.Level
	if err := s.Store.UpdateQuestion(question); err != nil {
		return nil, err
	}
	return s.Store.ListQuestions(req.SectionID, model.LevelAll)
}

func (s *ContentService) DeleteQuestion(id uint) ([]model.Question, error) {
	question, err := s.Store.FindQuestion(id)
	if err != nil {
		return nil, util.ErrQuestionNotFound
	}
	if err := s.Store.DeleteQuestion(id); err != nil {
		return nil, err
	}
	return s.Store.ListQuestions(question.SectionID, model.LevelAll)
}
