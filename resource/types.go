package resource

import (
	"encoding/json"
	"maps"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SentinelInfoKey is the only key of the info returned for a resource, or
// one of its parents, that does not exist.
const SentinelInfoKey = "info"

// Scope lists the parent names of a resource, outermost first.
type Scope []string

func (s Scope) String() string {
	return strings.Join(s, "/")
}

// Parent splits the scope into the parent's own scope and the parent name.
func (s Scope) Parent() (Scope, string, bool) {
	if len(s) == 0 {
		return nil, "", false
	}
	return s[:len(s)-1], s[len(s)-1], true
}

type Ref struct {
	Name string `json:"name" yaml:"name"`
	Href string `json:"href,omitempty" yaml:"href,omitempty"`
}

// Info is the server's description of one resource, unwrapped from its
// envelope and otherwise kept verbatim.
type Info map[string]any

func NotExistInfo(label string) Info {
	return Info{SentinelInfoKey: label + " does not exist"}
}

// Sentinel reports whether the info is the placeholder produced for a
// missing resource.
func (i Info) Sentinel() (string, bool) {
	if len(i) != 1 {
		return "", false
	}
	message, ok := i[SentinelInfoKey].(string)
	return message, ok
}

func (i Info) Clone() Info {
	if i == nil {
		return nil
	}
	return maps.Clone(i)
}

// Listing is the result of listing a collection. The zero value is an empty
// listing; listing failures are reported as errors, never as a Listing.
type Listing struct {
	refs *orderedmap.OrderedMap[string, Ref]
}

func NewListing(refs ...Ref) Listing {
	listing := Listing{}
	for _, ref := range refs {
		listing.Add(ref)
	}
	return listing
}

// Add inserts ref keeping the first position of its name; a repeated name
// replaces the earlier ref.
func (l *Listing) Add(ref Ref) {
	if l.refs == nil {
		l.refs = orderedmap.New[string, Ref]()
	}
	l.refs.Set(ref.Name, ref)
}

func (l Listing) Empty() bool {
	return l.Len() == 0
}

func (l Listing) Len() int {
	if l.refs == nil {
		return 0
	}
	return l.refs.Len()
}

func (l Listing) Get(name string) (Ref, bool) {
	if l.refs == nil {
		return Ref{}, false
	}
	return l.refs.Get(name)
}

func (l Listing) Names() []string {
	names := make([]string, 0, l.Len())
	for _, ref := range l.Refs() {
		names = append(names, ref.Name)
	}
	return names
}

// Refs returns the refs in listing order.
func (l Listing) Refs() []Ref {
	refs := make([]Ref, 0, l.Len())
	if l.refs == nil {
		return refs
	}
	for pair := l.refs.Oldest(); pair != nil; pair = pair.Next() {
		refs = append(refs, pair.Value)
	}
	return refs
}

func (l Listing) MarshalJSON() ([]byte, error) {
	if l.refs == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(l.refs)
}
