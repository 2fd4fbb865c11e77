package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"trading_edu_backend/internal/model"
	"trading_edu_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// The fallback stores wrap the database-backed repositories with the
// degrade-not-fail policy of the admin screens: a transport failure never
// surfaces to the caller. Reads are answered from the last snapshot held in
// Redis, then from the surrogate dataset. Writes that cannot reach the
// database are applied to the surrogate only and reported as degraded; they
// are lost on restart.

const snapshotTTL = 24 * time.Hour

// Degradable is implemented by stores that can serve surrogate data.
type Degradable interface {
	Degraded() bool
}

type snapshotCache struct {
	rdb *redis.Client
}

func (c snapshotCache) save(key string, v interface{}) {
	if c.rdb == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	c.rdb.Set(ctx, key, b, snapshotTTL)
}

func (c snapshotCache) load(key string, v interface{}) bool {
	if c.rdb == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(b, v) == nil
}

// notFound reports a domain miss, which must pass through to the caller
// rather than trigger the fallback path.
func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

type FallbackContentStore struct {
	inner     ContentStore
	surrogate *SurrogateProvider
	cache     snapshotCache
	log       *zap.Logger

	// Read by handlers while fellBack/recovered flip it under load, so it
	// has to be atomic.
	degraded atomic.Bool
}

func NewFallbackContentStore(inner ContentStore, surrogate *SurrogateProvider, rdb *redis.Client, log *zap.Logger) *FallbackContentStore {
	return &FallbackContentStore{
		inner:     inner,
		surrogate: surrogate,
		cache:     snapshotCache{rdb: rdb},
		log:       log,
	}
}

func (s *FallbackContentStore) Degraded() bool { return s.degraded.Load() }

func (s *FallbackContentStore) fellBack(op string, err error) {
	s.degraded.Store(true)
	monitoring.FallbackCounter.WithLabelValues("content", op).Inc()
	s.log.Warn("content store unavailable, serving surrogate data",
		zap.String("op", op), zap.Error(err))
}

func (s *FallbackContentStore) recovered() {
	if s.degraded.Swap(false) {
		s.log.Info("content store reachable again")
	}
}

func (s *FallbackContentStore) Tree(market model.Market) ([]model.Topic, error) {
	topics, err := s.inner.Tree(market)
	if err == nil {
		s.recovered()
		s.cache.save(fmt.Sprintf("snapshot:tree:%s", market), topics)
		return topics, nil
	}
	s.fellBack("tree", err)
	var cached []model.Topic
	if s.cache.load(fmt.Sprintf("snapshot:tree:%s", market), &cached) {
		return cached, nil
	}
	return s.surrogate.Tree(market)
}

func (s *FallbackContentStore) ListTopics(market model.Market) ([]model.Topic, error) {
	topics, err := s.inner.ListTopics(market)
	if err == nil {
		s.recovered()
		s.cache.save(fmt.Sprintf("snapshot:topics:%s", market), topics)
		s.surrogate.ReplaceTopics(market, topics)
		return topics, nil
	}
	s.fellBack("listTopics", err)
	var cached []model.Topic
	if s.cache.load(fmt.Sprintf("snapshot:topics:%s", market), &cached) {
		return cached, nil
	}
	return s.surrogate.ListTopics(market)
}

func (s *FallbackContentStore) FindTopic(id uint) (*model.Topic, error) {
	t, err := s.inner.FindTopic(id)
	if err == nil {
		s.recovered()
		return t, nil
	}
	if notFound(err) {
		return nil, err
	}
	s.fellBack("findTopic", err)
	return s.surrogate.FindTopic(id)
}

func (s *FallbackContentStore) CreateTopic(topic *model.Topic) error {
	if err := s.inner.CreateTopic(topic); err != nil {
		s.fellBack("createTopic", err)
		return s.surrogate.CreateTopic(topic)
	}
	s.recovered()
	return nil
}

func (s *FallbackContentStore) UpdateTopic(topic *model.Topic) error {
	if err := s.inner.UpdateTopic(topic); err != nil {
		if notFound(err) {
			return err
		}
		s.fellBack("updateTopic", err)
		return s.surrogate.UpdateTopic(topic)
	}
	s.recovered()
	return nil
}

func (s *FallbackContentStore) DeleteTopic(id uint) error {
	if err := s.inner.DeleteTopic(id); err != nil {
		s.fellBack("deleteTopic", err)
		return s.surrogate.DeleteTopic(id)
	}
	s.recovered()
	return nil
}

func (s *FallbackContentStore) ListSections(topicID uint) ([]model.Section, error) {
	sections, err := s.inner.ListSections(topicID)
	if err == nil {
		s.recovered()
		s.cache.save(fmt.Sprintf("snapshot:sections:%d", topicID), sections)
		s.surrogate.ReplaceSections(topicID, sections)
		return sections, nil
	}
	s.fellBack("listSections", err)
	var cached []model.Section
	if s.cache.load(fmt.Sprintf("snapshot:sections:%d", topicID), &cached) {
		return cached, nil
	}
	return s.surrogate.ListSections(topicID)
}

func (s *FallbackContentStore) FindSection(id uint) (*model.Section, error) {
	sec, err := s.inner.FindSection(id)
	if err == nil {
		s.recovered()
		return sec, nil
	}
	if notFound(err) {
		return nil, err
	}
	s.fellBack("findSection", err)
	return s.surrogate.FindSection(id)
}

func (s *FallbackContentStore) CreateSection(section *model.Section) error {
	if err := s.inner.CreateSection(section); err != nil {
		s.fellBack("createSection", err)
		return s.surrogate.CreateSection(section)
	}
	s.recovered()
	return nil
}

func (s *FallbackContentStore) UpdateSection(section *model.Section) error {
	if err := s.inner.UpdateSection(section); err != nil {
		if notFound(err) {
			return err
		}
		s.fellBack("updateSection", err)
		return s.surrogate.UpdateSection(section)
	}
	s.recovered()
	return nil
}

func (s *FallbackContentStore) DeleteSection(id uint) error {
	if err := s.inner.DeleteSection(id); err != nil {
		s.fellBack("deleteSection", err)
		return s.surrogate.DeleteSection(id)
	}
	s.recovered()
	return nil
}

func (s *FallbackContentStore) ListQuestions(sectionID uint, level model.QuestionLevel) ([]model.Question, error) {
	questions, err := s.inner.ListQuestions(sectionID, level)
	if err == nil {
		s.recovered()
		s.cache.save(fmt.Sprintf("snapshot:questions:%d:%s", sectionID, level), questions)
		if level == "" || level == model.LevelAll {
			s.surrogate.ReplaceQuestions(sectionID, questions)
		}
		return questions, nil
	}
	s.fellBack("listQuestions", err)
	var cached []model.Question
	if s.cache.load(fmt.Sprintf("snapshot:questions:%d:%s", sectionID, level), &cached) {
		return cached, nil
	}
	return s.surrogate.ListQuestions(sectionID, level)
}

func (s *FallbackContentStore) FindQuestion(id uint) (*model.Question, error) {
	q, err := s.inner.FindQuestion(id)
	if err == nil {
		s.recovered()
		return q, nil
	}
	if notFound(err) {
		return nil, err
	}
	s.fellBack("findQuestion", err)
	return s.surrogate.FindQuestion(id)
}

func (s *FallbackContentStore) CreateQuestion(question *model.Question) error {
	if err := s.inner.CreateQuestion(question); err != nil {
		s.fellBack("createQuestion", err)
		return s.surrogate.CreateQuestion(question)
	}
	s.recovered()
	return nil
}

func (s *FallbackContentStore) UpdateQuestion(question *model.Question) error {
	if err := s.inner.UpdateQuestion(question); err != nil {
		if notFound(err) {
			return err
		}
		s.fellBack("updateQuestion", err)
		return s.surrogate.UpdateQuestion(question)
	}
	s.recovered()
	return nil
}

func (s *FallbackContentStore) DeleteQuestion(id uint) error {
	if err := s.inner.DeleteQuestion(id); err != nil {
		s.fellBack("deleteQuestion", err)
		return s.surrogate.DeleteQuestion(id)
	}
	s.recovered()
	return nil
}

type FallbackExerciseStore struct {
	inner     ExerciseStore
	surrogate *SurrogateProvider
	cache     snapshotCache
	log       *zap.Logger
	degraded  atomic.Bool
}

func NewFallbackExerciseStore(inner ExerciseStore, surrogate *SurrogateProvider, rdb *redis.Client, log *zap.Logger) *FallbackExerciseStore {
	return &FallbackExerciseStore{
		inner:     inner,
		surrogate: surrogate,
		cache:     snapshotCache{rdb: rdb},
		log:       log,
	}
}

func (s *FallbackExerciseStore) Degraded() bool { return s.degraded.Load() }

func (s *FallbackExerciseStore) fellBack(op string, err error) {
	s.degraded.Store(true)
	monitoring.FallbackCounter.WithLabelValues("exercise", op).Inc()
	s.log.Warn("exercise store unavailable, serving surrogate data",
		zap.String("op", op), zap.Error(err))
}

func (s *FallbackExerciseStore) recovered() {
	if s.degraded.Swap(false) {
		s.log.Info("exercise store reachable again")
	}
}

func (s *FallbackExerciseStore) ListBySection(sectionID uint) ([]model.Exercise, error) {
	exercises, err := s.inner.ListBySection(sectionID)
	if err == nil {
		s.recovered()
		s.cache.save(fmt.Sprintf("snapshot:exercises:%d", sectionID), exercises)
		s.surrogate.ReplaceExercises(sectionID, exercises)
		return exercises, nil
	}
	s.fellBack("list", err)
	var cached []model.Exercise
	if s.cache.load(fmt.Sprintf("snapshot:exercises:%d", sectionID), &cached) {
		return cached, nil
	}
	return s.surrogate.ListBySection(sectionID)
}

func (s *FallbackExerciseStore) FindByID(id uint) (*model.Exercise, error) {
	e, err := s.inner.FindByID(id)
	if err == nil {
		s.recovered()
		return e, nil
	}
	if notFound(err) {
		return nil, err
	}
	s.fellBack("find", err)
	return s.surrogate.FindByID(id)
}

func (s *FallbackExerciseStore) Create(exercise *model.Exercise) error {
	if err := s.inner.Create(exercise); err != nil {
		s.fellBack("create", err)
		return s.surrogate.Create(exercise)
	}
	s.recovered()
	return nil
}

func (s *FallbackExerciseStore) Update(exercise *model.Exercise) error {
	if err := s.inner.Update(exercise); err != nil {
		if notFound(err) {
			return err
		}
		s.fellBack("update", err)
		return s.surrogate.Update(exercise)
	}
	s.recovered()
	return nil
}

func (s *FallbackExerciseStore) Delete(id uint) error {
	if err := s.inner.Delete(id); err != nil {
		s.fellBack("delete", err)
		return s.surrogate.Delete(id)
	}
	s.recovered()
	return nil
}
