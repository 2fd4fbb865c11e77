package model

import "fmt"

// Market is the top-level content partition. Every topic belongs to
// exactly one market.
type Market string

const (
	MarketCrypto Market = "crypto"
	MarketGold   Market = "gold"
)

func (m Market) Valid() bool {
	return m == MarketCrypto || m == MarketGold
}

func ParseMarket(s string) (Market, error) {
	m := Market(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown market %q", s)
	}
	return m, nil
}

func AllMarkets() []Market {
	return []Market{MarketCrypto, MarketGold}
}

// QuestionLevel is the ordinal difficulty of an interview question.
type QuestionLevel string

const (
	LevelEntry  QuestionLevel = "Entry"
	LevelJunior QuestionLevel = "Junior"
	LevelMiddle QuestionLevel = "Middle"
	LevelSenior QuestionLevel = "Senior"
	LevelExpert QuestionLevel = "Expert"

	// LevelAll is only valid as a list filter, never on a stored question.
	LevelAll QuestionLevel = "All"
)

func (l QuestionLevel) Valid() bool {
	switch l {
	case LevelEntry, LevelJunior, LevelMiddle, LevelSenior, LevelExpert:
		return true
	}
	return false
}
