package junit

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

type xmlMessage struct {
	Type string `xml:"type,attr,omitempty"`
	Text string `xml:",chardata"`
}

type xmlCase struct {
	Name       string       `xml:"name,attr"`
	Class      string       `xml:"class,attr,omitempty"`
	ClassName  string       `xml:"classname,attr,omitempty"`
	File       string       `xml:"file,attr,omitempty"`
	Line       int          `xml:"line,attr,omitempty"`
	Assertions int          `xml:"assertions,attr"`
	Time       float64      `xml:"time,attr"`
	Failures   []xmlMessage `xml:"failure"`
	Errors     []xmlMessage `xml:"error"`
}

// xmlSuite is both a <testsuite> element and, at the top level,
// the <testsuites> document root.
type xmlSuite struct {
	XMLName    xml.Name
	Name       string     `xml:"name,attr,omitempty"`
	File       string     `xml:"file,attr,omitempty"`
	Tests      int        `xml:"tests,attr"`
	Assertions int        `xml:"assertions,attr"`
	Failures   int        `xml:"failures,attr"`
	Errors     int        `xml:"errors,attr"`
	Time       float64    `xml:"time,attr"`
	Cases      []xmlCase  `xml:"testcase"`
	Suites     []xmlSuite `xml:"testsuite"`
}

// Parse builds the suite tree of a JUnit XML document.
func Parse(data []byte) (*Tree, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a JUnit XML document from r and builds its suite tree.
// The document root may be <testsuites> or a single <testsuite>.
func Decode(r io.Reader) (*Tree, error) {
	var doc xmlSuite
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode junit xml: %w", err)
	}

	var top []xmlSuite
	switch doc.XMLName.Local {
	case "testsuites":
		top = doc.Suites
	case "testsuite":
		top = []xmlSuite{doc}
	default:
		return nil, fmt.Errorf("unexpected root element <%s>, want <testsuites> or <testsuite>", doc.XMLName.Local)
	}

	tree := NewTree()
	tree.Roots = buildSuites(top, "", tree.All)
	return tree, nil
}

// buildSuites converts sibling <testsuite> nodes into suites, registering
// every suite of the subtree in all.
func buildSuites(nodes []xmlSuite, parentPath string, all *SuiteMap) *SuiteMap {
	suites := NewSuiteMap()
	for i := range nodes {
		node := &nodes[i]
		path := JoinPath(parentPath, node.Name)

		suite := NewSuite(node.Name, path)
		suite.File = node.File
		suite.Tests = node.Tests
		suite.Assertions = node.Assertions
		suite.Failures = node.Failures
		suite.Errors = node.Errors
		suite.Time = node.Time

		suites.Set(path, suite)
		all.Set(path, suite)

		for j := range node.Cases {
			suite.Cases = append(suite.Cases, caseFromNode(&node.Cases[j]))
		}

		suite.Children = buildSuites(node.Suites, path, all)
	}
	return suites
}

func caseFromNode(node *xmlCase) *Case {
	className := node.ClassName
	if className == "" {
		className = node.Class
	}
	return &Case{
		Name:       node.Name,
		ClassName:  className,
		File:       node.File,
		Line:       node.Line,
		Assertions: node.Assertions,
		Time:       node.Time,
		Failures:   messagesFromNodes(node.Failures),
		Errors:     messagesFromNodes(node.Errors),
	}
}

func messagesFromNodes(nodes []xmlMessage) []Message {
	if len(nodes) == 0 {
		return nil
	}
	msgs := make([]Message, len(nodes))
	for i, n := range nodes {
		msgs[i] = Message{Type: n.Type, Text: n.Text}
	}
	return msgs
}
