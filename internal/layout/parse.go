package layout

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Document is the parsed form of a keyboard description file.
//
// The format is a small XML dialect:
//
//	<kbd name="qwerty">
//	  <row id="home">
//	    <key lower="a"><pos><x>0</x><y>2</y></pos></key>
//	    <key lower="space" width="5"><pos><x>3</x><y>4</y></pos></key>
//	  </row>
//	</kbd>
//
// Exactly one row id must be "home"; it anchors the coordinate scale.
type Document struct {
	XMLName xml.Name  `xml:"kbd"`
	Name    string    `xml:"name,attr"`
	Rows    []RowElem `xml:"row"`
}

type RowElem struct {
	ID   string    `xml:"id,attr"`
	Keys []KeyElem `xml:"key"`
}

type KeyElem struct {
	Lower string   `xml:"lower,attr"`
	Upper string   `xml:"upper,attr"`
	Width float64  `xml:"width,attr"`
	Pos   *PosElem `xml:"pos"`
}

// PosElem keeps the coordinates as raw text so a non-numeric value can be
// reported with the offending key instead of as a bare xml.Decoder error.
type PosElem struct {
	X string `xml:"x"`
	Y string `xml:"y"`
}

// Parse reads a keyboard description document from r.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("layout: malformed description: %w", err)
	}
	return &doc, nil
}

// ParseFile reads a keyboard description from path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}
