package medium

import "time"

// Tiny is the low-footprint flattened document the search engine scans.
// Cached documents are replaced wholesale, never patched field by field.
type Tiny struct {
	ID             int64
	Hash           string
	Rating         Rating
	Width          int
	Height         int
	Filesize       int64
	InsertDate     time.Time
	InnateTags     TagSet
	SearchableTags TagSet
	AbsentTags     TagSet
}

// AspectRatio returns width/height, or 0 for media without a known height.
func (t *Tiny) AspectRatio() float64 {
	if t.Height == 0 {
		return 0
	}
	return float64(t.Width) / float64(t.Height)
}

// Full is the complete flattened document of one medium.
type Full struct {
	Tiny
	MimeType      string
	TinyThumbnail []byte
}

// ToTiny drops the full-only fields.
func (f *Full) ToTiny() Tiny { return f.Tiny }

// TagRef is a tag id together with its name.
type TagRef struct {
	ID   int64
	Name string
}

// Record is one medium row as read from the relational source,
// before its tag closure is resolved.
type Record struct {
	ID            int64
	Hash          string
	MimeType      string
	Rating        Rating
	Width         int
	Height        int
	Filesize      int64
	InsertDate    time.Time
	TinyThumbnail []byte
	Tags          []TagRef
	AbsentTags    []string
}

// TagIDs returns the ids of the innate tags.
func (r *Record) TagIDs() []int64 {
	ids := make([]int64, len(r.Tags))
	for i, t := range r.Tags {
		ids[i] = t.ID
	}
	return ids
}
