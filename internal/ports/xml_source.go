package ports

import "widget-installer/internal/types"

// XMLSourcePort is a pull-style XML reader. Next returns io.EOF once the
// document is exhausted. Close releases the underlying reader and must be
// safe to call on every exit path.
type XMLSourcePort interface {
	Next() (types.XMLEvent, error)
	Close() error
}

// XMLSourceOpenerPort opens config.xml documents from disk.
type XMLSourceOpenerPort interface {
	Open(path string) (XMLSourcePort, error)
}
