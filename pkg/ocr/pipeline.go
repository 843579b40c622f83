package ocr

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// ScanEvent is one diagnostic record emitted per processed receipt.
type ScanEvent struct {
	FileName  string
	When      time.Time
	RawText   string
	Formatted string
	ItemCount int
	Failure   string // empty on success
}

// ScanLogger receives diagnostic events. The pipeline holds no log-file
// handle itself; persistence of events belongs to the caller's sink.
type ScanLogger interface {
	Record(e ScanEvent)
}

// Pipeline runs preprocess → recognize → parse for one receipt image.
// It is safe for concurrent use: the only shared state is the vocabulary,
// which is swapped atomically and read-only during a request.
type Pipeline struct {
	engine Engine
	cfg    Config
	pre    PreprocessOptions
	vocab  atomic.Pointer[Vocabulary]
	sink   ScanLogger
}

// NewPipeline wires an engine and vocabulary with default preprocessing and
// engine settings. sink may be nil to disable diagnostics.
func NewPipeline(engine Engine, vocab *Vocabulary, sink ScanLogger) *Pipeline {
	p := &Pipeline{
		engine: engine,
		cfg:    DefaultConfig(),
		pre:    DefaultPreprocessOptions(),
		sink:   sink,
	}
	p.vocab.Store(vocab)
	return p
}

// SetConfig overrides the engine configuration. Call before serving requests.
func (p *Pipeline) SetConfig(cfg Config) { p.cfg = cfg }

// SetPreprocessOptions overrides the preprocessing options. Call before
// serving requests.
func (p *Pipeline) SetPreprocessOptions(opts PreprocessOptions) { p.pre = opts }

// Vocabulary returns the exclusion vocabulary currently in effect.
func (p *Pipeline) Vocabulary() *Vocabulary { return p.vocab.Load() }

// SetVocabulary swaps the exclusion vocabulary; in-flight requests keep the
// one they started with.
func (p *Pipeline) SetVocabulary(v *Vocabulary) {
	p.vocab.Store(v)
	log.Info().Int("keywords", len(v.keywords)).Msg("exclusion vocabulary updated")
}

// Scan processes one receipt image. name is the caller's label for the image
// (e.g. the uploaded filename), used only for diagnostics. An image that
// decodes and yields text but no classifiable item lines is a successful
// empty result, not an error.
func (p *Pipeline) Scan(ctx context.Context, image []byte, name string) (ParseResult, error) {
	start := time.Now()
	processed, err := Preprocess(image, p.pre)
	if err != nil {
		p.record(name, "", "", 0, err)
		return ParseResult{}, err
	}
	text, err := p.engine.Recognize(ctx, processed, p.cfg)
	if err != nil {
		p.record(name, "", "", 0, err)
		return ParseResult{}, err
	}
	if strings.TrimSpace(text) == "" {
		p.record(name, text, "", 0, ErrNoText)
		return ParseResult{}, ErrNoText
	}
	res := Parse(text, p.Vocabulary())
	log.Info().
		Str("file", name).
		Int("items", len(res.Items)).
		Bool("total", res.Total != nil).
		Dur("elapsed", time.Since(start)).
		Msg("receipt scanned")
	p.record(name, text, res.Formatted, len(res.Items), nil)
	return res, nil
}

func (p *Pipeline) record(name, raw, formatted string, items int, err error) {
	if p.sink == nil {
		return
	}
	e := ScanEvent{
		FileName:  name,
		When:      time.Now(),
		RawText:   raw,
		Formatted: formatted,
		ItemCount: items,
	}
	if err != nil {
		e.Failure = err.Error()
	}
	p.sink.Record(e)
}
