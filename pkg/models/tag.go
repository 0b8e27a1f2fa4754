package models

// TagNode is one level of the nested tag tree. Trees are derived from
// the flat tag set on every read and never persisted.
type TagNode struct {
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	Children []*TagNode `json:"children,omitempty"`
}
