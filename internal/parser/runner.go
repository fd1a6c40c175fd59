package parser

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"widget-installer/internal/ports"
	"widget-installer/internal/shared"
	"widget-installer/internal/types"
)

// rootDepth is the depth of the frame holding the root parser; every
// document element is deeper.
const rootDepth = -1

type frame struct {
	parser ElementParser
	name   string
	depth  int
}

type stack []frame

func (s *stack) push(f frame) {
	*s = append(*s, f)
}

func (s *stack) pop() frame {
	head := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return head
}

func (s *stack) head() frame {
	return (*s)[len(*s)-1]
}

// Runner walks pull events and keeps one ElementParser per open element.
// A Runner holds per-parse state and must not be shared between
// concurrent parses.
type Runner struct {
	stack   stack
	started bool
}

func NewRunner() *Runner {
	return &Runner{}
}

// Run consumes source until it is exhausted, dispatching every event to
// the parser of the innermost open element. The first error aborts the
// parse; parsers still open at that point are dropped without Verify.
// The source is closed on every return path.
func (r *Runner) Run(ctx context.Context, source ports.XMLSourcePort, root ElementParser) (err error) {
	defer func() {
		if closeErr := source.Close(); closeErr != nil && err == nil {
			err = errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to release configuration reader").
				WithCause(closeErr)
		}
	}()

	r.stack = stack{{parser: root, depth: rootDepth}}
	r.started = false
	defer func() {
		r.stack = nil
	}()

	for {
		event, nextErr := source.Next()
		if errors.Is(nextErr, io.EOF) {
			break
		}
		if nextErr != nil {
			return readerError(nextErr)
		}
		if err := r.consume(ctx, event); err != nil {
			return err
		}
	}
	if !r.started {
		return Errorf("document has no root element")
	}
	for len(r.stack) > 1 {
		if err := r.finish(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) consume(ctx context.Context, event types.XMLEvent) error {
	switch event.Kind {
	case types.XMLEventStartElement:
		return r.startElement(ctx, event)
	case types.XMLEventText:
		if err := r.closeSkipped(ctx, event.Depth); err != nil {
			return err
		}
		return r.stack.head().parser.AcceptText(event.Text)
	case types.XMLEventEndElement:
		return r.endElement(ctx, event)
	default:
		return Errorf("unsupported XML event kind %d", event.Kind)
	}
}

func (r *Runner) startElement(ctx context.Context, event types.XMLEvent) error {
	// A reader that does not report the end of an empty element leaves its
	// frame open; a start at the same or a shallower depth closes it.
	if err := r.closeSkipped(ctx, event.Depth); err != nil {
		return err
	}
	element := event.Element
	factory, err := r.stack.head().parser.ChildParser(element.Namespace, element.Name)
	if err != nil {
		return err
	}
	child := factory()
	r.stack.push(frame{parser: child, name: element.Name, depth: event.Depth})
	r.started = true
	log.Ctx(ctx).Debug().
		Str("element", element.Name).
		Str("namespace", element.Namespace).
		Int("depth", event.Depth).
		Msg("element opened")

	if err := child.AcceptElement(element); err != nil {
		return err
	}
	for _, attribute := range event.Attributes {
		if err := child.AcceptAttribute(attribute); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) endElement(ctx context.Context, event types.XMLEvent) error {
	for len(r.stack) > 1 && r.stack.head().depth > event.Depth {
		if err := r.finish(ctx); err != nil {
			return err
		}
	}
	if len(r.stack) == 1 || r.stack.head().depth != event.Depth {
		return Errorf("unexpected closing tag %q", event.Element.Name)
	}
	return r.finish(ctx)
}

// closeSkipped finishes every open frame at depth or deeper.
func (r *Runner) closeSkipped(ctx context.Context, depth int) error {
	for len(r.stack) > 1 && r.stack.head().depth >= depth {
		if err := r.finish(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) finish(ctx context.Context) error {
	head := r.stack.head()
	if err := head.parser.Verify(); err != nil {
		return err
	}
	r.stack.pop()
	log.Ctx(ctx).Debug().
		Str("element", head.name).
		Int("depth", head.depth).
		Msg("element closed")
	return nil
}

// readerError folds every reader diagnostic into one structural error.
func readerError(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("malformed configuration document: " + strings.Join(readerMessages(err), "; ")).
		WithCause(err)
}

func readerMessages(err error) []string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var messages []string
		for _, inner := range joined.Unwrap() {
			messages = append(messages, readerMessages(inner)...)
		}
		return messages
	}
	return []string{shared.ErrorMessage(err)}
}
