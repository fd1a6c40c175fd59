package core

import (
	"strings"

	"github.com/rs/zerolog/log"

	"widget-installer/internal/parser"
	"widget-installer/internal/shared"
	"widget-installer/internal/types"
)

// cspParser records the text of a content-security-policy element. The
// first element of each kind wins.
type cspParser struct {
	data       *types.ConfigData
	reportOnly bool
	text       textCollector
}

func newCSPParser(data *types.ConfigData, reportOnly bool) *cspParser {
	return &cspParser{data: data, reportOnly: reportOnly}
}

func (p *cspParser) AcceptElement(element types.XMLElement) error {
	p.text.start(element)
	return nil
}

func (p *cspParser) AcceptAttribute(types.XMLAttribute) error {
	return nil
}

func (p *cspParser) AcceptText(text types.XMLText) error {
	p.text.add(text)
	return nil
}

func (p *cspParser) ChildParser(string, string) (parser.Factory, error) {
	return parser.NewIgnoringParser, nil
}

func (p *cspParser) Verify() error {
	target := &p.data.CSP
	if p.reportOnly {
		target = &p.data.CSPReportOnly
	}
	if *target != nil {
		return nil
	}
	*target = stringPtr(normalizeText(p.text.text.String()))
	return nil
}

// allowNavigationParser reads the space separated origin list of
// tizen:allow-navigation. Entries are full IRIs, hosts, "*.host" wildcards
// or a single "*".
type allowNavigationParser struct {
	data *types.ConfigData
	text strings.Builder
}

func newAllowNavigationParser(data *types.ConfigData) *allowNavigationParser {
	return &allowNavigationParser{data: data}
}

func (p *allowNavigationParser) AcceptElement(types.XMLElement) error {
	return nil
}

func (p *allowNavigationParser) AcceptAttribute(types.XMLAttribute) error {
	return nil
}

func (p *allowNavigationParser) AcceptText(text types.XMLText) error {
	p.text.WriteString(text.Value)
	return nil
}

func (p *allowNavigationParser) ChildParser(string, string) (parser.Factory, error) {
	return parser.NewIgnoringParser, nil
}

func (p *allowNavigationParser) Verify() error {
	if p.data.AllowNavigationDeclared {
		return nil
	}
	p.data.AllowNavigationDeclared = true
	for _, entry := range strings.Fields(normalizeText(p.text.String())) {
		if err := validateNavigationEntry(entry); err != nil {
			log.Warn().Str("entry", entry).Err(err).Msg("ignoring invalid allow-navigation entry")
			continue
		}
		p.data.AllowNavigation = appendUnique(p.data.AllowNavigation, entry)
	}
	return nil
}

func validateNavigationEntry(entry string) error {
	if entry == "*" {
		return nil
	}
	if strings.Contains(entry, "://") {
		return shared.ValidateIRI(entry)
	}
	return shared.ValidateHost(strings.TrimPrefix(entry, "*."))
}
