package repository

import "trading_edu_backend/internal/model"

// DefaultDataset is the hard-coded content set behind the surrogate provider.
// It doubles as first-run seed data for an empty database, so the admin
// screens always have something to show. IDs below 1000 are reserved for it;
// surrogate-created rows start above that range.
func DefaultDataset() ([]model.Topic, []model.Section, []model.Question, []model.Exercise) {
	topics := []model.Topic{
		{BaseModel: model.BaseModel{ID: 1}, Name: "Blockchain Fundamentals", Market: model.MarketCrypto},
		{BaseModel: model.BaseModel{ID: 2}, Name: "Crypto Market Structure", Market: model.MarketCrypto},
		{BaseModel: model.BaseModel{ID: 3}, Name: "Gold Market Basics", Market: model.MarketGold},
		{BaseModel: model.BaseModel{ID: 4}, Name: "Technical Analysis on Gold", Market: model.MarketGold},
	}

	sections := []model.Section{
		{BaseModel: model.BaseModel{ID: 11}, TopicID: 1, Name: "Consensus Mechanisms"},
		{BaseModel: model.BaseModel{ID: 12}, TopicID: 1, Name: "Wallets and Keys"},
		{BaseModel: model.BaseModel{ID: 13}, TopicID: 2, Name: "Order Books and Liquidity"},
		{BaseModel: model.BaseModel{ID: 14}, TopicID: 3, Name: "Spot and Futures"},
		{BaseModel: model.BaseModel{ID: 15}, TopicID: 4, Name: "Support and Resistance"},
	}

	questions := []model.Question{
		{
			BaseModel: model.BaseModel{ID: 101},
			SectionID: 11,
			Question:  "What problem does a consensus mechanism solve in a public blockchain?",
			Answer:    "It lets mutually distrusting nodes agree on a single transaction history without a central coordinator.",
			Level:     model.LevelEntry,
		},
		{
			BaseModel: model.BaseModel{ID: 102},
			SectionID: 11,
			Question:  "Compare the finality guarantees of Proof of Work and BFT-style Proof of Stake.",
			Answer:    "PoW offers probabilistic finality that strengthens with depth; BFT-style PoS reaches deterministic finality once a supermajority of validators sign.",
			Level:     model.LevelSenior,
		},
		{
			BaseModel: model.BaseModel{ID: 103},
			SectionID: 12,
			Question:  "Why must a private key never be derived from the public key?",
			Answer:    "Key derivation is one-way by design; reversing it would let anyone spend funds held by the address.",
			Level:     model.LevelJunior,
		},
		{
			BaseModel: model.BaseModel{ID: 104},
			SectionID: 13,
			Question:  "What does a thin order book imply about slippage for a market order?",
			Answer:    "Little resting liquidity means a market order walks the book and fills at progressively worse prices.",
			Level:     model.LevelMiddle,
		},
		{
			BaseModel: model.BaseModel{ID: 105},
			SectionID: 14,
			Question:  "Why do gold futures usually trade above the spot price?",
			Answer:    "Contango reflects the cost of carry: storage, insurance and forgone interest until delivery.",
			Level:     model.LevelMiddle,
		},
		{
			BaseModel: model.BaseModel{ID: 106},
			SectionID: 15,
			Question:  "How is a resistance level confirmed on a price chart?",
			Answer:    "Repeated rejections at the same price zone, ideally on rising volume, confirm it as resistance.",
			Level:     model.LevelEntry,
		},
	}

	exercises := []model.Exercise{
		{
			BaseModel: model.BaseModel{ID: 201},
			SectionID: 11,
			Type:      model.ExerciseMultipleChoice,
			Content:   "Which consensus mechanism secures the Bitcoin network?",
			Options: model.EncodeOptions([]model.Option{
				{ID: 1, Text: "Proof of Stake"},
				{ID: 2, Text: "Proof of Work", IsCorrect: true},
				{ID: 3, Text: "Delegated Byzantine Fault Tolerance"},
			}),
			RelatedQuestionIDs: model.EncodeRelatedIDs([]uint{101, 102}),
		},
		{
			BaseModel:     model.BaseModel{ID: 202},
			SectionID:     13,
			Type:          model.ExerciseEssay,
			Content:       "Explain how market makers profit from the bid-ask spread and what risks they carry in a fast market.",
			CorrectAnswer: "Makers earn the spread by quoting both sides; in a fast market they risk adverse selection and inventory losses when price moves through their quotes.",
		},
		{
			BaseModel:          model.BaseModel{ID: 203},
			SectionID:          15,
			Type:               model.ExerciseCaseStudy,
			Content:            "The chart shows gold rejecting the 2400 level three times over two weeks. Describe the setup and a reasonable trade plan.",
			CorrectAnswer:      "Triple rejection marks 2400 as strong resistance; a plan is to short near the zone with a stop above it, or wait for a confirmed breakout retest.",
			Explanation:        "The third rejection with declining volume signals buyer exhaustion.",
			Media:              model.EncodeMedia(&model.Media{Type: model.MediaImage, URL: "/uploads/samples/gold-2400-resistance.png"}),
			RelatedQuestionIDs: model.EncodeRelatedIDs([]uint{106}),
		},
	}

	return topics, sections, questions, exercises
}
