package service

import (
	"errors"
	"testing"

	"trading_edu_backend/internal/model"
	"trading_edu_backend/internal/repository"
	"trading_edu_backend/internal/util"
)

func newContentService(t *testing.T) *ContentService {
	t.Helper()
	return NewContentService(repository.NewSurrogateProvider())
}

func TestContentTree(t *testing.T) {
	svc := newContentService(t)

	tree, err := svc.Tree(model.MarketCrypto)
	if err != nil {
		t.Fatalf("Tree() failed: %v", err)
	}
	if len(tree) == 0 {
		t.Fatal("Tree() returned no topics")
	}
	for _, topic := range tree {
		if topic.Market != model.MarketCrypto {
			t.Errorf("topic %q leaked into crypto tree with market %q", topic.Name, topic.Market)
		}
	}

	if _, err := svc.Tree("forex"); !errors.Is(err, util.ErrUnknownMarket) {
		t.Errorf("Tree(forex) = %v, want %v", err, util.ErrUnknownMarket)
	}
}

func TestContentTopicLifecycle(t *testing.T) {
	svc := newContentService(t)

	before, _ := svc.ListTopics(model.MarketGold)

	list, err := svc.CreateTopic(TopicRequest{Name: "Central Bank Demand", Market: model.MarketGold})
	if err != nil {
		t.Fatalf("CreateTopic() failed: %v", err)
	}
	if len(list) != len(before)+1 {
		t.Fatalf("create returned %d topics, want %d", len(list), len(before)+1)
	}
	created := list[len(list)-1]

	list, err = svc.UpdateTopic(created.ID, TopicRequest{Name: "Official Sector Demand", Market: model.MarketGold})
	if err != nil {
		t.Fatalf("UpdateTopic() failed: %v", err)
	}
	found := false
	for _, topic := range list {
		if topic.ID == created.ID && topic.Name == "Official Sector Demand" {
			found = true
		}
	}
	if !found {
		t.Error("update not reflected in the returned list")
	}

	list, err = svc.DeleteTopic(created.ID)
	if err != nil {
		t.Fatalf("DeleteTopic() failed: %v", err)
	}
	if len(list) != len(before) {
		t.Errorf("delete returned %d topics, want %d", len(list), len(before))
	}

	if _, err := svc.DeleteTopic(created.ID); !errors.Is(err, util.ErrTopicNotFound) {
		t.Errorf("double DeleteTopic() = %v, want %v", err, util.ErrTopicNotFound)
	}
}

func TestContentValidation(t *testing.T) {
	svc := newContentService(t)

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{
			"topic with unknown market",
			func() error { _, err := svc.CreateTopic(TopicRequest{Name: "x", Market: "forex"}); return err },
			util.ErrUnknownMarket,
		},
		{
			"section under missing topic",
			func() error { _, err := svc.CreateSection(SectionRequest{TopicID: 999, Name: "x"}); return err },
			util.ErrTopicNotFound,
		},
		{
			"question under missing section",
			func() error {
				_, err := svc.CreateQuestion(QuestionRequest{SectionID: 999, Question: "q", Level: model.LevelEntry})
				return err
			},
			util.ErrSectionNotFound,
		},
		{
			"question with bogus level",
			func() error {
				_, err := svc.CreateQuestion(QuestionRequest{SectionID: 11, Question: "q", Level: "Wizard"})
				return err
			},
			util.ErrInvalidLevel,
		},
		{
			"stored question must not use the All filter level",
			func() error {
				_, err := svc.CreateQuestion(QuestionRequest{SectionID: 11, Question: "q", Level: model.LevelAll})
				return err
			},
			util.ErrInvalidLevel,
		},
		{
			"listing with bogus level filter",
			func() error { _, err := svc.ListQuestions(11, "Wizard"); return err },
			util.ErrInvalidLevel,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, tc.wantErr) {
				t.Errorf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestContentListQuestionsLevelFilter(t *testing.T) {
	svc := newContentService(t)

	all, err := svc.ListQuestions(11, model.LevelAll)
	if err != nil {
		t.Fatalf("ListQuestions(All) failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("section 11 holds %d questions, want 2", len(all))
	}

	entry, err := svc.ListQuestions(11, model.LevelEntry)
	if err != nil {
		t.Fatalf("ListQuestions(Entry) failed: %v", err)
	}
	if len(entry) != 1 || entry[0].Level != model.LevelEntry {
		t.Errorf("entry filter returned %v", entry)
	}
}

func TestValidateScope(t *testing.T) {
	svc := newContentService(t)

	tests := []struct {
		name    string
		sel     model.TreeSelection
		wantErr error
	}{
		{
			"consistent chain",
			model.TreeSelection{Market: model.MarketCrypto, TopicID: 1, SectionID: 11},
			nil,
		},
		{
			"topic from the other market",
			model.TreeSelection{Market: model.MarketGold, TopicID: 1},
			util.ErrScopeMismatch,
		},
		{
			"section from another topic",
			model.TreeSelection{Market: model.MarketCrypto, TopicID: 1, SectionID: 13},
			util.ErrScopeMismatch,
		},
		{
			"missing topic",
			model.TreeSelection{Market: model.MarketCrypto, TopicID: 999},
			util.ErrTopicNotFound,
		},
		{
			"market only, nothing to cross-check",
			model.TreeSelection{Market: model.MarketCrypto},
			nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.ValidateScope(tc.sel)
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateScope() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ValidateScope() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
