package repository

import (
	"sync"
	"time"

	"trading_edu_backend/internal/model"

	"gorm.io/gorm"
)

// SurrogateProvider is the in-memory stand-in dataset served while the
// database is unreachable. It implements ContentStore and ExerciseStore so
// the fallback wrappers can substitute it transparently. One provider lives
// for the whole application session; it starts from the hard-coded default
// dataset and is refreshed with the last successful reads.
//
// Single-writer state: the admin tool is operated by one author at a time,
// the mutex only guards against the background refresh task.
type SurrogateProvider struct {
	mu        sync.Mutex
	topics    []model.Topic
	sections  []model.Section
	questions []model.Question
	exercises []model.Exercise
	nextID    uint
}

func NewSurrogateProvider() *SurrogateProvider {
	p := &SurrogateProvider{nextID: 1000}
	topics, sections, questions, exercises := DefaultDataset()
	p.topics = topics
	p.sections = sections
	p.questions = questions
	p.exercises = exercises
	return p
}

func (p *SurrogateProvider) allocID() uint {
	p.nextID++
	return p.nextID
}

// ReplaceTopics swaps the topic snapshot for one market with fresh rows.
func (p *SurrogateProvider) ReplaceTopics(market model.Market, topics []model.Topic) {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.topics[:0]
	for _, t := range p.topics {
		if market != "" && t.Market != market {
			kept = append(kept, t)
		}
	}
	p.topics = append(kept, topics...)
}

func (p *SurrogateProvider) ReplaceSections(topicID uint, sections []model.Section) {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.sections[:0]
	for _, s := range p.sections {
		if topicID > 0 && s.TopicID != topicID {
			kept = append(kept, s)
		}
	}
	p.sections = append(kept, sections...)
}

func (p *SurrogateProvider) ReplaceQuestions(sectionID uint, questions []model.Question) {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.questions[:0]
	for _, q := range p.questions {
		if sectionID > 0 && q.SectionID != sectionID {
			kept = append(kept, q)
		}
	}
	p.questions = append(kept, questions...)
}

func (p *SurrogateProvider) ReplaceExercises(sectionID uint, exercises []model.Exercise) {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.exercises[:0]
	for _, e := range p.exercises {
		if sectionID > 0 && e.SectionID != sectionID {
			kept = append(kept, e)
		}
	}
	p.exercises = append(kept, exercises...)
}

// --- ContentStore ---

func (p *SurrogateProvider) Tree(market model.Market) ([]model.Topic, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []model.Topic
	for _, t := range p.topics {
		if t.Market != market {
			continue
		}
		topic := t
		topic.Sections = nil
		for _, s := range p.sections {
			if s.TopicID != t.ID {
				continue
			}
			section := s
			section.Questions = nil
			for _, q := range p.questions {
				if q.SectionID == s.ID {
					section.Questions = append(section.Questions, q)
				}
			}
			topic.Sections = append(topic.Sections, section)
		}
		out = append(out, topic)
	}
	return out, nil
}

func (p *SurrogateProvider) ListTopics(market model.Market) ([]model.Topic, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []model.Topic
	for _, t := range p.topics {
		if market == "" || t.Market == market {
			t.Sections = nil
			out = append(out, t)
		}
	}
	return out, nil
}

func (p *SurrogateProvider) FindTopic(id uint) (*model.Topic, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range p.topics {
		if t.ID == id {
			t.Sections = nil
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (p *SurrogateProvider) CreateTopic(topic *model.Topic) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if topic.ID == 0 {
		topic.ID = p.allocID()
	}
	topic.CreatedAt = time.Now()
	topic.UpdatedAt = topic.CreatedAt
	p.topics = append(p.topics, *topic)
	return nil
}

func (p *SurrogateProvider) UpdateTopic(topic *model.Topic) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, t := range p.topics {
		if t.ID == topic.ID {
			topic.UpdatedAt = time.Now()
			p.topics[i] = *topic
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (p *SurrogateProvider) DeleteTopic(id uint) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, t := range p.topics {
		if t.ID == id {
			p.topics = append(p.topics[:i], p.topics[i+1:]...)
			break
		}
	}
	var sectionIDs []uint
	kept := p.sections[:0]
	for _, s := range p.sections {
		if s.TopicID == id {
			sectionIDs = append(sectionIDs, s.ID)
		} else {
			kept = append(kept, s)
		}
	}
	p.sections = kept
	for _, sid := range sectionIDs {
		p.dropSectionChildren(sid)
	}
	return nil
}

func (p *SurrogateProvider) dropSectionChildren(sectionID uint) {
	keptQ := p.questions[:0]
	for _, q := range p.questions {
		if q.SectionID != sectionID {
			keptQ = append(keptQ, q)
		}
	}
	p.questions = keptQ
	keptE := p.exercises[:0]
	for _, e := range p.exercises {
		if e.SectionID != sectionID {
			keptE = append(keptE, e)
		}
	}
	p.exercises = keptE
}

func (p *SurrogateProvider) ListSections(topicID uint) ([]model.Section, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []model.Section
	for _, s := range p.sections {
		if topicID == 0 || s.TopicID == topicID {
			s.Questions = nil
			out = append(out, s)
		}
	}
	return out, nil
}

func (p *SurrogateProvider) FindSection(id uint) (*model.Section, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, s := range p.sections {
		if s.ID == id {
			s.Questions = nil
			return &s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (p *SurrogateProvider) CreateSection(section *model.Section) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if section.ID == 0 {
		section.ID = p.allocID()
	}
	section.CreatedAt = time.Now()
	section.UpdatedAt = section.CreatedAt
	p.sections = append(p.sections, *section)
	return nil
}

func (p *SurrogateProvider) UpdateSection(section *model.Section) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, s := range p.sections {
		if s.ID == section.ID {
			section.UpdatedAt = time.Now()
			p.sections[i] = *section
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (p *SurrogateProvider) DeleteSection(id uint) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, s := range p.sections {
		if s.ID == id {
			p.sections = append(p.sections[:i], p.sections[i+1:]...)
			break
		}
	}
	p.dropSectionChildren(id)
	return nil
}

func (p *SurrogateProvider) ListQuestions(sectionID uint, level model.QuestionLevel) ([]model.Question, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []model.Question
	for _, q := range p.questions {
		if sectionID > 0 && q.SectionID != sectionID {
			continue
		}
		if level != "" && level != model.LevelAll && q.Level != level {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (p *SurrogateProvider) FindQuestion(id uint) (*model.Question, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, q := range p.questions {
		if q.ID == id {
			return &q, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (p *SurrogateProvider) CreateQuestion(question *model.Question) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if question.ID == 0 {
		question.ID = p.allocID()
	}
	question.CreatedAt = time.Now()
	question.UpdatedAt = question.CreatedAt
	p.questions = append(p.questions, *question)
	return nil
}

func (p *SurrogateProvider) UpdateQuestion(question *model.Question) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, q := range p.questions {
		if q.ID == question.ID {
			question.UpdatedAt = time.Now()
			p.questions[i] = *question
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (p *SurrogateProvider) DeleteQuestion(id uint) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, q := range p.questions {
		if q.ID == id {
			p.questions = append(p.questions[:i], p.questions[i+1:]...)
			return nil
		}
	}
	return nil
}

// --- ExerciseStore ---

func (p *SurrogateProvider) ListBySection(sectionID uint) ([]model.Exercise, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []model.Exercise
	for _, e := range p.exercises {
		if sectionID == 0 || e.SectionID == sectionID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (p *SurrogateProvider) FindByID(id uint) (*model.Exercise, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.exercises {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (p *SurrogateProvider) Create(exercise *model.Exercise) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if exercise.ID == 0 {
		exercise.ID = p.allocID()
	}
	exercise.CreatedAt = time.Now()
	exercise.UpdatedAt = exercise.CreatedAt
	p.exercises = append(p.exercises, *exercise)
	return nil
}

func (p *SurrogateProvider) Update(exercise *model.Exercise) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, e := range p.exercises {
		if e.ID == exercise.ID {
			exercise.UpdatedAt = time.Now()
			p.exercises[i] = *exercise
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (p *SurrogateProvider) Delete(id uint) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, e := range p.exercises {
		if e.ID == id {
			p.exercises = append(p.exercises[:i], p.exercises[i+1:]...)
			return nil
		}
	}
	return nil
}
