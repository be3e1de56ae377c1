package runner

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Kind names one of the three page types.
type Kind string

const (
	KindResults      Kind = "results"
	KindStartList    Kind = "startlist"
	KindPropositions Kind = "propositions"
)

// Range is an inclusive span of page IDs.
type Range struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

// PropositionRange is a span of proposition page IDs under one race day.
type PropositionRange struct {
	RaceDay int `yaml:"raceday"`
	Range   `yaml:",inline"`
}

// Plan lists the page IDs to visit per kind.
//
//	results:
//	  - {from: 609974, to: 609986}
//	startlist:
//	  - {from: 610120, to: 610130}
//	propositions:
//	  - {raceday: 610129, from: 720415, to: 721900}
type Plan struct {
	Results      []Range            `yaml:"results"`
	StartList    []Range            `yaml:"startlist"`
	Propositions []PropositionRange `yaml:"propositions"`
}

// Target is one page to visit.
type Target struct {
	Kind Kind
	ID   int
	URL  string
}

func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan file: %w", err)
	}
	if err := plan.validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (p *Plan) validate() error {
	check := func(kind Kind, r Range) error {
		if r.From <= 0 || r.To < r.From {
			return fmt.Errorf("plan: bad %s range %d-%d", kind, r.From, r.To)
		}
		return nil
	}
	for _, r := range p.Results {
		if err := check(KindResults, r); err != nil {
			return err
		}
	}
	for _, r := range p.StartList {
		if err := check(KindStartList, r); err != nil {
			return err
		}
	}
	for _, r := range p.Propositions {
		if r.RaceDay <= 0 {
			return fmt.Errorf("plan: proposition range %d-%d has no raceday", r.From, r.To)
		}
		if err := check(KindPropositions, r.Range); err != nil {
			return err
		}
	}
	return nil
}

// Targets expands the plan into page URLs under base, in plan order.
func (p *Plan) Targets(base string) []Target {
	var out []Target
	for _, r := range p.Results {
		for id := r.From; id <= r.To; id++ {
			out = append(out, Target{Kind: KindResults, ID: id, URL: ResultsURL(base, id)})
		}
	}
	for _, r := range p.StartList {
		for id := r.From; id <= r.To; id++ {
			out = append(out, Target{Kind: KindStartList, ID: id, URL: StartListURL(base, id)})
		}
	}
	for _, r := range p.Propositions {
		for id := r.From; id <= r.To; id++ {
			out = append(out, Target{Kind: KindPropositions, ID: id, URL: PropositionURL(base, r.RaceDay, id)})
		}
	}
	return out
}

func ResultsURL(base string, id int) string {
	return fmt.Sprintf("%s/race/raceday/ts%d/results/all", base, id)
}

func StartListURL(base string, id int) string {
	return fmt.Sprintf("%s/race/raceday/ts%d/startlist/all", base, id)
}

func PropositionURL(base string, raceDay, id int) string {
	return fmt.Sprintf("%s/propositions/raceday/ts%d/proposition/ts%d", base, raceDay, id)
}
