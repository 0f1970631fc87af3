// Package document renders descriptor trees into the self-contained
// registration documents accepted by the host extension registry.
package document

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
)

// Header precedes every rendered document.
const Header = `<?xml version="1.0" encoding="UTF-8"?>` + "\n" + `<?eclipse version="3.4"?>` + "\n"

// ErrDuplicateID reports a descriptor tree that reuses an identifier.
var ErrDuplicateID = errors.New("duplicate descriptor id")

// Kind distinguishes the two document families.
type Kind string

const (
	KindBuildDefinitions Kind = "build-definitions"
	KindScannerProfile   Kind = "scanner-profile"
)

// Document is one registration transaction.
type Document struct {
	ID     string
	Kind   Kind
	Source string
	Root   *Element
}

// Extension returns the first extension block of the document.
func (d Document) Extension() *Element {
	if d.Root == nil {
		return nil
	}
	if exts := d.Root.Find("extension"); len(exts) > 0 {
		return exts[0]
	}
	return nil
}

// Bytes renders the document with its header.
func (d Document) Bytes() ([]byte, error) {
	if d.Root == nil {
		return nil, fmt.Errorf("document %s has no root element", d.ID)
	}
	var buf bytes.Buffer
	buf.WriteString(Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(d.Root); err != nil {
		return nil, fmt.Errorf("encode document %s: %w", d.ID, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
