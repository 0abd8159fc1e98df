package ordina

// Fluent configuration. Each method returns a new Pipeline built from a
// copy of the configuration, so chains never mutate the receiver and a
// shared base pipeline stays safe for concurrent use.

// AllowBareNumbers returns a pipeline that also accepts bare 2-3 digit
// numerals as question numbers. Intended for densely numbered workbooks;
// carries a higher false-positive risk.
//
// Example:
//
//	doc := ordina.New().AllowBareNumbers().Analyze(page)
func (p *Pipeline) AllowBareNumbers() *Pipeline {
	config := p.config
	config.Recognizer.AllowBareNumbers = true
	return NewWithConfig(config)
}

// MinConfidence returns a pipeline with a custom boundary acceptance
// threshold in place of the default 0.70.
//
// Example:
//
//	doc := ordina.New().MinConfidence(0.85).Analyze(page)
func (p *Pipeline) MinConfidence(threshold float64) *Pipeline {
	config := p.config
	config.Recognizer.AcceptThreshold = threshold
	return NewWithConfig(config)
}

// Workers returns a pipeline with a fixed assignment fan-out instead of one
// worker per CPU.
func (p *Pipeline) Workers(n int) *Pipeline {
	config := p.config
	config.Workers = n
	return NewWithConfig(config)
}
