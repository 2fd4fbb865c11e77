package model

import "testing"

func TestSelectionCascadingReset(t *testing.T) {
	full := TreeSelection{Market: MarketCrypto, TopicID: 1, SectionID: 11, QuestionID: 101}

	tests := []struct {
		name   string
		change func(*TreeSelection)
		want   TreeSelection
	}{
		{
			"switching market clears everything below",
			func(s *TreeSelection) { s.SelectMarket(MarketGold) },
			TreeSelection{Market: MarketGold},
		},
		{
			"switching topic clears section and question",
			func(s *TreeSelection) { s.SelectTopic(2) },
			TreeSelection{Market: MarketCrypto, TopicID: 2},
		},
		{
			"switching section clears question only",
			func(s *TreeSelection) { s.SelectSection(12) },
			TreeSelection{Market: MarketCrypto, TopicID: 1, SectionID: 12},
		},
		{
			"switching question leaves the rest alone",
			func(s *TreeSelection) { s.SelectQuestion(102) },
			TreeSelection{Market: MarketCrypto, TopicID: 1, SectionID: 11, QuestionID: 102},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := full
			tc.change(&s)
			if s != tc.want {
				t.Errorf("got %+v, want %+v", s, tc.want)
			}
		})
	}
}

func TestSelectionReselectSameKeepsChildren(t *testing.T) {
	s := TreeSelection{Market: MarketCrypto, TopicID: 1, SectionID: 11, QuestionID: 101}

	s.SelectMarket(MarketCrypto)
	s.SelectTopic(1)
	s.SelectSection(11)

	want := TreeSelection{Market: MarketCrypto, TopicID: 1, SectionID: 11, QuestionID: 101}
	if s != want {
		t.Errorf("re-selecting the current value must not reset children: got %+v", s)
	}
}

func TestParseMarket(t *testing.T) {
	tests := []struct {
		in    string
		want  Market
		valid bool
	}{
		{"crypto", MarketCrypto, true},
		{"gold", MarketGold, true},
		{"", "", false},
		{"forex", "", false},
		{"CRYPTO", "", false},
	}

	for _, tc := range tests {
		got, err := ParseMarket(tc.in)
		if tc.valid {
			if err != nil || got != tc.want {
				t.Errorf("ParseMarket(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
			}
		} else if err == nil {
			t.Errorf("ParseMarket(%q) should fail", tc.in)
		}
	}
}
