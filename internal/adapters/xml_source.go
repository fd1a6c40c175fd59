package adapters

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"

	"widget-installer/internal/ports"
	"widget-installer/internal/shared"
	"widget-installer/internal/types"
)

const (
	xmlNamespace = "http://www.w3.org/XML/1998/namespace"
	xmlnsPrefix  = "xmlns"
	xmlPrefix    = "xml"
)

var _ ports.XMLSourcePort = (*XMLSourceAdapter)(nil)

// XMLSourceAdapter turns an encoding/xml token stream into pull events
// with depth, resolved namespace and inherited xml:lang. langs and spaces
// hold one entry per open element.
type XMLSourceAdapter struct {
	decoder *xml.Decoder
	closer  io.Closer
	langs   []string
	spaces  []string
	closed  bool
}

// NewXMLSource reads a document from r. Closing the source does not close
// r.
func NewXMLSource(r io.Reader) *XMLSourceAdapter {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	return &XMLSourceAdapter{decoder: decoder}
}

// NewXMLSourceFromBytes is a convenience for in-memory documents.
func NewXMLSourceFromBytes(data []byte) *XMLSourceAdapter {
	return NewXMLSource(bytes.NewReader(data))
}

// OpenXMLFile opens path and returns a source that owns the file.
func OpenXMLFile(path string) (*XMLSourceAdapter, error) {
	file, err := os.Open(path)
	if err != nil {
		code := errbuilder.CodeInternal
		if errors.Is(err, os.ErrNotExist) {
			code = errbuilder.CodeNotFound
		}
		return nil, errbuilder.New().
			WithCode(code).
			WithMsg(fmt.Sprintf("failed to open %s", path)).
			WithCause(err)
	}
	source := NewXMLSource(file)
	source.closer = file
	return source, nil
}

func (a *XMLSourceAdapter) Next() (types.XMLEvent, error) {
	for {
		token, err := a.decoder.Token()
		if errors.Is(err, io.EOF) {
			return types.XMLEvent{}, io.EOF
		}
		if err != nil {
			return types.XMLEvent{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(err.Error()).
				WithCause(err)
		}
		switch tok := token.(type) {
		case xml.StartElement:
			return a.startEvent(tok), nil
		case xml.EndElement:
			depth := len(a.langs) - 1
			lang := a.currentLang()
			a.langs = a.langs[:depth]
			a.spaces = a.spaces[:depth]
			return types.XMLEvent{
				Kind:    types.XMLEventEndElement,
				Depth:   depth,
				Element: types.XMLElement{Name: tok.Name.Local, Namespace: tok.Name.Space, Lang: lang},
			}, nil
		case xml.CharData:
			if len(a.langs) == 0 {
				continue
			}
			return types.XMLEvent{
				Kind:  types.XMLEventText,
				Depth: len(a.langs),
				Text: types.XMLText{
					Value:     string(tok),
					Namespace: a.spaces[len(a.spaces)-1],
					Lang:      a.currentLang(),
				},
			}, nil
		default:
			// comments, processing instructions and directives
			continue
		}
	}
}

func (a *XMLSourceAdapter) startEvent(tok xml.StartElement) types.XMLEvent {
	depth := len(a.langs)
	lang := a.currentLang()
	for _, attr := range tok.Attr {
		if attr.Name.Space == xmlNamespace && attr.Name.Local == "lang" {
			canonical, ok := shared.CanonicalLanguage(attr.Value)
			if !ok {
				log.Warn().Str("xml:lang", attr.Value).Msg("xml:lang is not a valid language tag")
			}
			lang = canonical
		}
	}
	a.langs = append(a.langs, lang)
	a.spaces = append(a.spaces, tok.Name.Space)

	attributes := make([]types.XMLAttribute, 0, len(tok.Attr))
	for _, attr := range tok.Attr {
		attribute := types.XMLAttribute{
			Name:      attr.Name.Local,
			Value:     attr.Value,
			Namespace: attr.Name.Space,
			Lang:      lang,
		}
		switch {
		case attr.Name.Space == xmlnsPrefix:
			attribute.Prefix = xmlnsPrefix
			attribute.Namespace = ""
		case attr.Name.Space == "" && attr.Name.Local == xmlnsPrefix:
			attribute.Prefix = xmlnsPrefix
		case attr.Name.Space == xmlNamespace:
			attribute.Prefix = xmlPrefix
		}
		attributes = append(attributes, attribute)
	}
	return types.XMLEvent{
		Kind:       types.XMLEventStartElement,
		Depth:      depth,
		Element:    types.XMLElement{Name: tok.Name.Local, Namespace: tok.Name.Space, Lang: lang},
		Attributes: attributes,
	}
}

func (a *XMLSourceAdapter) currentLang() string {
	if len(a.langs) == 0 {
		return ""
	}
	return a.langs[len(a.langs)-1]
}

// Close releases the owned file, if any. It is safe to call more than
// once.
func (a *XMLSourceAdapter) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

var _ ports.XMLSourceOpenerPort = XMLFileAdapter{}

// XMLFileAdapter opens config.xml documents from the local file system.
type XMLFileAdapter struct{}

func NewXMLFileAdapter() XMLFileAdapter {
	return XMLFileAdapter{}
}

func (XMLFileAdapter) Open(path string) (ports.XMLSourcePort, error) {
	source, err := OpenXMLFile(path)
	if err != nil {
		return nil, err
	}
	return source, nil
}
