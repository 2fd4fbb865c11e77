package model

// TreeSelection tracks one author's position in the content tree:
// market -> topic -> section -> question. Narrower selections are only
// meaningful inside the wider ones, so changing a level always clears
// everything below it. A zero id means nothing is selected at that level.
type TreeSelection struct {
	Market     Market `json:"market"`
	TopicID    uint   `json:"topicId"`
	SectionID  uint   `json:"sectionId"`
	QuestionID uint   `json:"questionId"`
}

func (s *TreeSelection) SelectMarket(m Market) {
	if s.Market != m {
		s.TopicID = 0
		s.SectionID = 0
		s.QuestionID = 0
	}
	s.Market = m
}

func (s *TreeSelection) SelectTopic(id uint) {
	if s.TopicID != id {
		s.SectionID = 0
		s.QuestionID = 0
	}
	s.TopicID = id
}

func (s *TreeSelection) SelectSection(id uint) {
	if s.SectionID != id {
		s.QuestionID = 0
	}
	s.SectionID = id
}

func (s *TreeSelection) SelectQuestion(id uint) {
	s.QuestionID = id
}
