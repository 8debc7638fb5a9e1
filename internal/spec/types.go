package spec

// TrialFile is the schema of a trials file loaded from YAML or JSON.
type TrialFile struct {
	Version    int            `json:"version" yaml:"version"`
	Trials     []TrialSpec    `json:"trials" yaml:"trials"`
	Simulation SimulationSpec `json:"simulation" yaml:"simulation"`
}

// TrialSpec declares one cloze trial. Unset optional flags take their
// defaults during normalization.
type TrialSpec struct {
	ID              string `json:"id" yaml:"id"`
	Text            string `json:"text" yaml:"text"`
	ButtonText      string `json:"button_text" yaml:"button_text"`
	CheckAnswers    bool   `json:"check_answers" yaml:"check_answers"`
	AllowBlanks     *bool  `json:"allow_blanks" yaml:"allow_blanks"`
	CaseSensitivity *bool  `json:"case_sensitivity" yaml:"case_sensitivity"`
	Autofocus       *bool  `json:"autofocus" yaml:"autofocus"`
	MistakeMessage  string `json:"mistake_message" yaml:"mistake_message"`
}

// SimulationSpec configures the simulated responder.
type SimulationSpec struct {
	Mode  string   `json:"mode" yaml:"mode"`
	Seed  uint64   `json:"seed" yaml:"seed"`
	Words []string `json:"words" yaml:"words"`
}
