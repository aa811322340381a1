package marker

import (
	"strings"

	"github.com/MaxGeldner/gulp-include-source/pkg/dedupe"
	"github.com/MaxGeldner/gulp-include-source/pkg/errors"
)

// Region names the two tag pairs used in region mode. Both pairs must be
// present; the first occurrence of each is used.
type Region struct {
	InstructionsOpen  string
	InstructionsClose string
	StatementsOpen    string
	StatementsClose   string
}

// DefaultRegion returns the stock tag names.
func DefaultRegion() *Region {
	return &Region{
		InstructionsOpen:  "<gulp-include-instructions>",
		InstructionsClose: "</gulp-include-instructions>",
		StatementsOpen:    "<gulp-include>",
		StatementsClose:   "</gulp-include>",
	}
}

// span is the content between an open and a close tag; outer includes the tags.
type span struct {
	start, end           int
	outerStart, outerEnd int
}

func locate(text, openTag, closeTag string) (span, error) {
	i := strings.Index(text, openTag)
	if i < 0 {
		return span{}, errors.Newf(errors.ErrRegion, "opening tag %s not found", openTag).
			WithDetail("tag", openTag)
	}
	start := i + len(openTag)
	j := strings.Index(text[start:], closeTag)
	if j < 0 {
		return span{}, errors.Newf(errors.ErrRegion, "closing tag %s not found after %s", closeTag, openTag).
			WithDetail("tag", closeTag)
	}
	end := start + j
	return span{start: start, end: end, outerStart: i, outerEnd: end + len(closeTag)}, nil
}

func (e *Engine) transformRegion(text string, opts Options, seen *dedupe.Registry) (string, error) {
	r := opts.Region

	ins, err := locate(text, r.InstructionsOpen, r.InstructionsClose)
	if err != nil {
		return text, err
	}
	stm, err := locate(text, r.StatementsOpen, r.StatementsClose)
	if err != nil {
		return text, err
	}
	if ins.outerStart < stm.outerEnd && stm.outerStart < ins.outerEnd {
		return text, errors.New(errors.ErrRegion, "instructions and statements regions overlap")
	}

	instructions := e.applyExcludes(text[ins.start:ins.end], opts.LineEndings, seen)
	statements, err := e.expandIncludes(instructions, opts, seen)
	if err != nil {
		return text, err
	}

	first, second := ins, stm
	firstText, secondText := instructions, statements
	if stm.start < ins.start {
		first, second = stm, ins
		firstText, secondText = statements, instructions
	}

	var b strings.Builder
	b.Grow(len(text) + len(statements))
	b.WriteString(text[:first.start])
	b.WriteString(firstText)
	b.WriteString(text[first.end:second.start])
	b.WriteString(secondText)
	b.WriteString(text[second.end:])

	e.logger.Debug().
		Int("instructionsBytes", len(instructions)).
		Int("statementsBytes", len(statements)).
		Msg("Region substituted")

	return b.String(), nil
}
