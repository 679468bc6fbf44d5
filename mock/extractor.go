package mock

import "github.com/fwojciec/wenji"

var _ wenji.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of wenji.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*wenji.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*wenji.ExtractResult, error) {
	return e.ExtractFn(html)
}
