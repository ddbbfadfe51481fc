package xml

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

var (
	xmlDeclaration  = regexp.MustCompile(`<\?xml[^>]*\?>`)
	interElementGap = regexp.MustCompile(`>\s+<`)
)

// normalizeXML strips the XML declaration and whitespace between elements
// for test comparisons
func normalizeXML(s string) string {
	s = xmlDeclaration.ReplaceAllString(s, "")
	s = interElementGap.ReplaceAllString(s, "><")
	return strings.TrimSpace(s)
}

// elementToString converts an etree.Element to a string for testing
func elementToString(elem *etree.Element) string {
	doc := etree.NewDocument()
	doc.AddChild(elem.Copy())
	s, _ := doc.WriteToString()
	return normalizeXML(s)
}
