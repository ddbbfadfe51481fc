package xml

import "github.com/beevik/etree"

// ICalendar is the xCal namespace defined by RFC 6321
const ICalendar = "urn:ietf:params:xml:ns:icalendar-2.0"

// AddNamespace declares ICalendar as the default namespace of the document root
func AddNamespace(doc *etree.Document) {
	root := doc.Root()
	if root == nil {
		return
	}
	root.CreateAttr("xmlns", ICalendar)
}

// inNamespace reports whether elem belongs to the xCal namespace. Elements
// without any namespace declaration are accepted as well.
func inNamespace(elem *etree.Element) bool {
	switch elem.NamespaceURI() {
	case "", ICalendar:
		return true
	}
	return false
}
