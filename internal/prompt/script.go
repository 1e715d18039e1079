package prompt

import "fmt"

// Script is a canned Decider for testing. Each answer slice is consumed
// in order; running out of answers is an error so tests fail loudly when
// the engine asks more questions than expected. Every title asked is
// recorded in Titles.
type Script struct {
	ConfirmAnswers []bool
	OneAnswers     []int
	ManyAnswers    [][]int

	Titles []string
}

func (s *Script) Confirm(title string) (bool, error) {
	s.Titles = append(s.Titles, title)
	if len(s.ConfirmAnswers) == 0 {
		return false, fmt.Errorf("unexpected confirm prompt: %s", title)
	}
	answer := s.ConfirmAnswers[0]
	s.ConfirmAnswers = s.ConfirmAnswers[1:]
	return answer, nil
}

func (s *Script) ChooseOne(title string, options []string) (int, error) {
	s.Titles = append(s.Titles, title)
	if len(s.OneAnswers) == 0 {
		return 0, fmt.Errorf("unexpected select prompt: %s", title)
	}
	answer := s.OneAnswers[0]
	s.OneAnswers = s.OneAnswers[1:]
	if answer < 0 || answer >= len(options) {
		return 0, fmt.Errorf("scripted answer %d out of range for %d options", answer, len(options))
	}
	return answer, nil
}

func (s *Script) ChooseMany(title string, options []string) ([]int, error) {
	s.Titles = append(s.Titles, title)
	if len(s.ManyAnswers) == 0 {
		return nil, fmt.Errorf("unexpected multi-select prompt: %s", title)
	}
	answer := s.ManyAnswers[0]
	s.ManyAnswers = s.ManyAnswers[1:]
	for _, idx := range answer {
		if idx < 0 || idx >= len(options) {
			return nil, fmt.Errorf("scripted answer %d out of range for %d options", idx, len(options))
		}
	}
	return answer, nil
}
