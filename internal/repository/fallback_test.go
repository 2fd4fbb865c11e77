package repository

import (
	"errors"
	"sync"
	"testing"

	"trading_edu_backend/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var errDown = errors.New("dial tcp 127.0.0.1:3306: connect: connection refused")

// failingContentStore simulates an unreachable database: every call fails
// with a transport error.
type failingContentStore struct{}

func (failingContentStore) Tree(model.Market) ([]model.Topic, error)       { return nil, errDown }
func (failingContentStore) ListTopics(model.Market) ([]model.Topic, error) { return nil, errDown }
func (failingContentStore) FindTopic(uint) (*model.Topic, error)           { return nil, errDown }
func (failingContentStore) CreateTopic(*model.Topic) error                 { return errDown }
func (failingContentStore) UpdateTopic(*model.Topic) error                 { return errDown }
func (failingContentStore) DeleteTopic(uint) error                         { return errDown }
func (failingContentStore) ListSections(uint) ([]model.Section, error)     { return nil, errDown }
func (failingContentStore) FindSection(uint) (*model.Section, error)       { return nil, errDown }
func (failingContentStore) CreateSection(*model.Section) error             { return errDown }
func (failingContentStore) UpdateSection(*model.Section) error             { return errDown }
func (failingContentStore) DeleteSection(uint) error                       { return errDown }
func (failingContentStore) ListQuestions(uint, model.QuestionLevel) ([]model.Question, error) {
	return nil, errDown
}
func (failingContentStore) FindQuestion(uint) (*model.Question, error) { return nil, errDown }
func (failingContentStore) CreateQuestion(*model.Question) error       { return errDown }
func (failingContentStore) UpdateQuestion(*model.Question) error       { return errDown }
func (failingContentStore) DeleteQuestion(uint) error                  { return errDown }

type failingExerciseStore struct{}

func (failingExerciseStore) ListBySection(uint) ([]model.Exercise, error) { return nil, errDown }
func (failingExerciseStore) FindByID(uint) (*model.Exercise, error)       { return nil, errDown }
func (failingExerciseStore) Create(*model.Exercise) error                 { return errDown }
func (failingExerciseStore) Update(*model.Exercise) error                 { return errDown }
func (failingExerciseStore) Delete(uint) error                            { return errDown }

func TestFallbackContentReadsServeSurrogate(t *testing.T) {
	store := NewFallbackContentStore(failingContentStore{}, NewSurrogateProvider(), nil, zap.NewNop())

	topics, err := store.ListTopics(model.MarketCrypto)
	if err != nil {
		t.Fatalf("ListTopics() must not fail when the database is down: %v", err)
	}
	if len(topics) == 0 {
		t.Fatal("ListTopics() served no surrogate data")
	}
	for _, topic := range topics {
		if topic.Market != model.MarketCrypto {
			t.Errorf("surrogate topic %q has market %q", topic.Name, topic.Market)
		}
	}
	if !store.Degraded() {
		t.Error("store must report degraded after a failed read")
	}

	tree, err := store.Tree(model.MarketGold)
	if err != nil {
		t.Fatalf("Tree() must not fail when the database is down: %v", err)
	}
	if len(tree) == 0 || len(tree[0].Sections) == 0 {
		t.Error("surrogate tree is missing nested sections")
	}

	questions, err := store.ListQuestions(11, model.LevelAll)
	if err != nil || len(questions) == 0 {
		t.Fatalf("ListQuestions() = %v, %v; want surrogate rows", questions, err)
	}

	filtered, err := store.ListQuestions(11, model.LevelEntry)
	if err != nil {
		t.Fatalf("filtered ListQuestions() failed: %v", err)
	}
	for _, q := range filtered {
		if q.Level != model.LevelEntry {
			t.Errorf("level filter leaked question %d with level %s", q.ID, q.Level)
		}
	}
}

func TestFallbackContentWriteLandsInSurrogate(t *testing.T) {
	surrogate := NewSurrogateProvider()
	store := NewFallbackContentStore(failingContentStore{}, surrogate, nil, zap.NewNop())

	topic := &model.Topic{Name: "Stablecoins", Market: model.MarketCrypto}
	if err := store.CreateTopic(topic); err != nil {
		t.Fatalf("degraded CreateTopic() failed: %v", err)
	}
	if topic.ID == 0 {
		t.Fatal("degraded create assigned no id")
	}
	if !store.Degraded() {
		t.Error("store must report degraded after a failed write")
	}

	got, err := store.FindTopic(topic.ID)
	if err != nil {
		t.Fatalf("FindTopic() after degraded create failed: %v", err)
	}
	if got.Name != "Stablecoins" {
		t.Errorf("surrogate returned %q, want Stablecoins", got.Name)
	}
}

func TestFallbackRecovery(t *testing.T) {
	healthy := NewSurrogateProvider()
	store := NewFallbackContentStore(failingContentStore{}, NewSurrogateProvider(), nil, zap.NewNop())

	if _, err := store.ListTopics(model.MarketCrypto); err != nil {
		t.Fatalf("degraded read failed: %v", err)
	}
	if !store.Degraded() {
		t.Fatal("expected degraded state")
	}

	// Point the wrapper at a reachable store; the next read clears the flag.
	store.inner = healthy
	if _, err := store.ListTopics(model.MarketCrypto); err != nil {
		t.Fatalf("read after recovery failed: %v", err)
	}
	if store.Degraded() {
		t.Error("degraded flag must clear after a successful read")
	}
}

// The stores are shared by concurrent handlers and the background refresh
// task, so the degraded flag must stay safe under the race detector.
func TestFallbackDegradedFlagConcurrent(t *testing.T) {
	store := NewFallbackContentStore(failingContentStore{}, NewSurrogateProvider(), nil, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := store.ListTopics(model.MarketCrypto); err != nil {
					t.Errorf("ListTopics() failed: %v", err)
					return
				}
				store.Degraded()
			}
		}()
	}
	wg.Wait()

	if !store.Degraded() {
		t.Error("store must report degraded after failed reads")
	}
}

func TestFallbackNotFoundPassesThrough(t *testing.T) {
	// A domain miss from a healthy store is not a transport failure and must
	// not be masked by surrogate data.
	store := NewFallbackContentStore(NewSurrogateProvider(), NewSurrogateProvider(), nil, zap.NewNop())

	if _, err := store.FindTopic(424242); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("FindTopic(missing) = %v, want gorm.ErrRecordNotFound", err)
	}
	if store.Degraded() {
		t.Error("a not-found miss must not mark the store degraded")
	}
}

func TestFallbackExerciseStore(t *testing.T) {
	surrogate := NewSurrogateProvider()
	store := NewFallbackExerciseStore(failingExerciseStore{}, surrogate, nil, zap.NewNop())

	exercises, err := store.ListBySection(11)
	if err != nil {
		t.Fatalf("ListBySection() must not fail when the database is down: %v", err)
	}
	if len(exercises) == 0 {
		t.Fatal("ListBySection() served no surrogate data")
	}
	if !store.Degraded() {
		t.Error("store must report degraded after a failed read")
	}

	created := &model.Exercise{
		SectionID: 11,
		Type:      model.ExerciseEssay,
		Content:   "q",
	}
	if err := store.Create(created); err != nil {
		t.Fatalf("degraded Create() failed: %v", err)
	}
	got, err := store.FindByID(created.ID)
	if err != nil || got.Content != "q" {
		t.Fatalf("FindByID() after degraded create = %v, %v", got, err)
	}
}

func TestSurrogateCascadeDelete(t *testing.T) {
	p := NewSurrogateProvider()

	// Topic 1 owns sections 11 and 12; section 11 owns questions and the
	// default multiple-choice exercise.
	if err := p.DeleteTopic(1); err != nil {
		t.Fatalf("DeleteTopic() failed: %v", err)
	}

	if sections, _ := p.ListSections(1); len(sections) != 0 {
		t.Errorf("sections survived topic delete: %v", sections)
	}
	if questions, _ := p.ListQuestions(11, model.LevelAll); len(questions) != 0 {
		t.Errorf("questions survived topic delete: %v", questions)
	}
	if exercises, _ := p.ListBySection(11); len(exercises) != 0 {
		t.Errorf("exercises survived topic delete: %v", exercises)
	}

	// Unrelated branches stay intact.
	if topics, _ := p.ListTopics(model.MarketGold); len(topics) != 2 {
		t.Errorf("gold topics affected by crypto delete: %v", topics)
	}
}
