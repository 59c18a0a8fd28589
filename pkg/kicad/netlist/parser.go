package netlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode"
)

// ErrUnknownFormat is returned when the input is neither an XML nor an
// S-expression netlist
var ErrUnknownFormat = errors.New("netlist: unknown netlist format")

// Format identifies the on-disk netlist flavour
type Format int

const (
	FormatUnknown Format = iota
	FormatXML            // KiCad intermediate netlist, passed to BOM plugins as %I
	FormatSexp           // KiCad S-expression netlist (.net)
)

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatSexp:
		return "sexp"
	}
	return "unknown"
}

// ParseFile reads and parses a KiCad netlist file
func ParseFile(filename string) (*Netlist, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads a netlist, detecting the format from its first significant
// character: '<' for XML and '(' for S-expressions.
func Parse(r io.Reader) (*Netlist, error) {
	br := bufio.NewReader(r)

	format, err := detectFormat(br)
	if err != nil {
		return nil, err
	}

	var nl *Netlist
	switch format {
	case FormatXML:
		nl, err = parseXML(br)
	case FormatSexp:
		nl, err = parseSexp(br)
	}
	if err != nil {
		return nil, err
	}

	nl.Format = format
	nl.link()
	return nl, nil
}

func detectFormat(br *bufio.Reader) (Format, error) {
	for {
		ch, _, err := br.ReadRune()
		if err == io.EOF {
			return FormatUnknown, fmt.Errorf("%w: empty input", ErrUnknownFormat)
		}
		if err != nil {
			return FormatUnknown, err
		}
		if unicode.IsSpace(ch) || ch == '\ufeff' {
			continue
		}
		if err := br.UnreadRune(); err != nil {
			return FormatUnknown, err
		}
		switch ch {
		case '<':
			return FormatXML, nil
		case '(':
			return FormatSexp, nil
		}
		return FormatUnknown, fmt.Errorf("%w: unexpected leading %q", ErrUnknownFormat, ch)
	}
}
