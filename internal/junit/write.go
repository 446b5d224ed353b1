package junit

import (
	"encoding/xml"
	"fmt"
	"io"
)

type xmlDocument struct {
	XMLName xml.Name   `xml:"testsuites"`
	Suites  []xmlSuite `xml:"testsuite"`
}

// Write serializes suites, with their cases and nested suites, as a
// <testsuites> JUnit XML document.
func Write(w io.Writer, suites *SuiteMap) error {
	doc := xmlDocument{Suites: suitesToNodes(suites)}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write junit xml: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode junit xml: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write junit xml: %w", err)
	}
	return nil
}

func suitesToNodes(suites *SuiteMap) []xmlSuite {
	var nodes []xmlSuite
	suites.Each(func(_ string, s *Suite) {
		node := xmlSuite{
			Name:       s.Name,
			File:       s.File,
			Tests:      s.Tests,
			Assertions: s.Assertions,
			Failures:   s.Failures,
			Errors:     s.Errors,
			Time:       s.Time,
			Suites:     suitesToNodes(s.Children),
		}
		for _, c := range s.Cases {
			node.Cases = append(node.Cases, caseToNode(c))
		}
		nodes = append(nodes, node)
	})
	return nodes
}

func caseToNode(c *Case) xmlCase {
	return xmlCase{
		Name:       c.Name,
		Class:      c.ClassName,
		ClassName:  c.ClassName,
		File:       c.File,
		Line:       c.Line,
		Assertions: c.Assertions,
		Time:       c.Time,
		Failures:   messagesToNodes(c.Failures),
		Errors:     messagesToNodes(c.Errors),
	}
}

func messagesToNodes(msgs []Message) []xmlMessage {
	if len(msgs) == 0 {
		return nil
	}
	nodes := make([]xmlMessage, len(msgs))
	for i, m := range msgs {
		nodes[i] = xmlMessage{Type: m.Type, Text: m.Text}
	}
	return nodes
}
