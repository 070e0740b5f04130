package domain

// Result holds the outcome of stemming a single token.
type Result struct {
	Token      string   `json:"token" yaml:"token"`
	Converted  string   `json:"converted" yaml:"converted"`
	Stem       string   `json:"stem" yaml:"stem"`
	Candidates []string `json:"candidates" yaml:"candidates"`
	// Matched is false when no candidate was found and Stem fell back to Converted.
	Matched bool `json:"matched" yaml:"matched"`
}
