package cache

import (
	"strconv"

	"github.com/kailas-cloud/mediadex/internal/domain"
)

// EntityKind identifies what a cached value holds.
type EntityKind string

// Entity kinds stored in every tier.
const (
	FullDocument       EntityKind = "MD"
	TinyDocument       EntityKind = "MDT"
	AllTinyDocuments   EntityKind = "MDTA"
	RatingByHash       EntityKind = "RBH"
	SearchableTagNames EntityKind = "ST"
)

// AllKey is the key of the aggregate entities.
const AllKey = "ALL"

// Kinds lists every entity kind.
var Kinds = []EntityKind{FullDocument, TinyDocument, AllTinyDocuments, RatingByHash, SearchableTagNames}

// Valid reports whether k is a known entity kind.
func (k EntityKind) Valid() bool {
	switch k {
	case FullDocument, TinyDocument, AllTinyDocuments, RatingByHash, SearchableTagNames:
		return true
	}
	return false
}

// Query addresses one cached value. It is comparable and used as a map key.
type Query struct {
	Kind EntityKind
	Key  string
}

// String renders the query as "<kind>_<key>", the form used for store keys.
func (q Query) String() string {
	return string(q.Kind) + "_" + q.Key
}

// Document addresses the full document of a medium.
func Document(id int64) Query {
	return Query{Kind: FullDocument, Key: strconv.FormatInt(id, 10)}
}

// Tiny addresses the tiny document of a medium.
func Tiny(id int64) Query {
	return Query{Kind: TinyDocument, Key: strconv.FormatInt(id, 10)}
}

// AllTiny addresses the list of every tiny document.
func AllTiny() Query {
	return Query{Kind: AllTinyDocuments, Key: AllKey}
}

// Rating addresses the rating stored for a content hash.
func Rating(hash string) Query {
	return Query{Kind: RatingByHash, Key: hash}
}

// Searchable addresses the set of all searchable tag names.
func Searchable() Query {
	return Query{Kind: SearchableTagNames, Key: AllKey}
}

// ID parses the medium id out of a per-document query.
func (q Query) ID() (int64, error) {
	if q.Kind != FullDocument && q.Kind != TinyDocument {
		return 0, domain.ErrUnknownEntityKind
	}
	return strconv.ParseInt(q.Key, 10, 64)
}
