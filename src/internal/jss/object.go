package jss

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Object is a full Classic API document. Elements jsshelper does not know
// about are kept as-is, so saving an object only changes what was edited.
type Object struct {
	Type Type
	doc  *etree.Document
}

// ParseObject parses an object document returned by the server.
func ParseObject(t Type, data []byte) (*Object, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse %s document: %w", t, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("empty %s document", t)
	}
	return &Object{Type: t, doc: doc}, nil
}

// MustParseObject is ParseObject for documents known to be valid.
// It panics on error and is intended for tests.
func MustParseObject(t Type, data string) *Object {
	obj, err := ParseObject(t, []byte(data))
	if err != nil {
		panic(err)
	}
	return obj
}

// Root returns the document's root element.
func (o *Object) Root() *etree.Element {
	return o.doc.Root()
}

// Find returns the first element matching a path relative to the root,
// such as "general/name".
func (o *Object) Find(path string) *etree.Element {
	return o.doc.Root().FindElement(path)
}

// FindAll returns every element matching a path relative to the root.
func (o *Object) FindAll(path string) []*etree.Element {
	return o.doc.Root().FindElements(path)
}

// FindText returns the trimmed text of the first element matching path,
// or "" if there is none.
func (o *Object) FindText(path string) string {
	el := o.Find(path)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

// Has reports whether an element matches path.
func (o *Object) Has(path string) bool {
	return o.Find(path) != nil
}

// ID returns the object's id from general/id or id.
func (o *Object) ID() int {
	text := o.FindText("general/id")
	if text == "" {
		text = o.FindText("id")
	}
	id, _ := strconv.Atoi(text)
	return id
}

// Name returns the object's name from general/name or name.
func (o *Object) Name() string {
	if o.Has("general/name") {
		return o.FindText("general/name")
	}
	return o.FindText("name")
}

// SetName replaces the object's name.
func (o *Object) SetName(name string) {
	el := o.Find("general/name")
	if el == nil {
		el = o.Find("name")
	}
	if el == nil {
		el = o.Root().CreateElement("name")
	}
	el.SetText(name)
}

// Summary returns the object's id and name.
func (o *Object) Summary() Summary {
	return Summary{ID: o.ID(), Name: o.Name()}
}

// Copy returns a deep copy that can be edited without touching o.
func (o *Object) Copy() *Object {
	return &Object{Type: o.Type, doc: o.doc.Copy()}
}

// Bytes serializes the document as sent to the server.
func (o *Object) Bytes() ([]byte, error) {
	return o.doc.WriteToBytes()
}

// XML returns an indented rendering for display.
func (o *Object) XML() string {
	display := o.doc.Copy()
	display.Indent(2)
	text, err := display.WriteToString()
	if err != nil {
		return fmt.Sprintf("<!-- %v -->", err)
	}
	return text
}

// Reference is an id/name pair element such as
// <package><id>1</id><name>x.pkg</name></package>.
type Reference struct {
	*etree.Element
}

// References returns the reference elements at path.
func (o *Object) References(path string) []Reference {
	elements := o.FindAll(path)
	refs := make([]Reference, len(elements))
	for i, el := range elements {
		refs[i] = Reference{el}
	}
	return refs
}

// ID returns the referenced object's id, or 0 if missing.
func (r Reference) ID() int {
	id, _ := strconv.Atoi(childText(r.Element, "id"))
	return id
}

// Name returns the referenced object's name.
func (r Reference) Name() string {
	return childText(r.Element, "name")
}

// Set replaces the referenced id and name, creating the elements if needed.
func (r Reference) Set(id int, name string) {
	setChildText(r.Element, "id", strconv.Itoa(id))
	setChildText(r.Element, "name", name)
}

// Matches reports whether the reference points at s, by id or by name.
func (r Reference) Matches(s Summary) bool {
	return (s.ID != 0 && r.ID() == s.ID) || (s.Name != "" && r.Name() == s.Name)
}

// AddReference appends <tag><id/><name/></tag> under the element at
// parentPath, creating missing path elements. If an equal reference already
// exists it is returned unchanged and added is false.
func (o *Object) AddReference(parentPath, tag string, s Summary) (ref Reference, added bool) {
	parent := o.Root()
	for _, part := range strings.Split(parentPath, "/") {
		child := parent.SelectElement(part)
		if child == nil {
			child = parent.CreateElement(part)
		}
		parent = child
	}

	for _, el := range parent.SelectElements(tag) {
		if existing := (Reference{el}); existing.Matches(s) {
			return existing, false
		}
	}

	ref = Reference{parent.CreateElement(tag)}
	ref.Set(s.ID, s.Name)

	// Lists carry a <size> element that the server does not recompute.
	if size := parent.SelectElement("size"); size != nil {
		size.SetText(strconv.Itoa(len(parent.SelectElements(tag))))
	}
	return ref, true
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

func setChildText(el *etree.Element, tag, text string) {
	child := el.SelectElement(tag)
	if child == nil {
		child = el.CreateElement(tag)
	}
	child.SetText(text)
}
