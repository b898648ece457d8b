package relational

import (
	"time"

	"github.com/uptrace/bun"
)

type tagRow struct {
	bun.BaseModel `bun:"table:tag"`

	ID   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,notnull,unique"`
}

type aliasRow struct {
	bun.BaseModel `bun:"table:tag_alias"`

	ID    int64  `bun:"id,pk,autoincrement"`
	TagID int64  `bun:"tag_id,notnull"`
	Name  string `bun:"name,notnull,unique"`
}

type implicationRow struct {
	bun.BaseModel `bun:"table:tag_implication"`

	ImplyingTagID int64 `bun:"implying_tag_id,pk"`
	ImpliedTagID  int64 `bun:"implied_tag_id,pk"`
}

type mediumRow struct {
	bun.BaseModel `bun:"table:medium"`

	ID            int64     `bun:"id,pk,autoincrement"`
	Hash          string    `bun:"hash,notnull,unique"`
	MimeType      string    `bun:"mime_type,notnull"`
	Rating        string    `bun:"rating,notnull"`
	Width         int       `bun:"width,notnull"`
	Height        int       `bun:"height,notnull"`
	Filesize      int64     `bun:"filesize,notnull"`
	InsertDate    time.Time `bun:"insert_date,notnull"`
	TinyThumbnail []byte    `bun:"tiny_thumbnail"`
}

type mediumTagRow struct {
	bun.BaseModel `bun:"table:medium_tag"`

	MediumID int64 `bun:"medium_id,pk"`
	TagID    int64 `bun:"tag_id,pk"`
}

type absenceRow struct {
	bun.BaseModel `bun:"table:medium_tag_absence"`

	MediumID int64 `bun:"medium_id,pk"`
	TagID    int64 `bun:"tag_id,pk"`
}

// tagLink is a medium_tag or medium_tag_absence row joined with its tag name.
type tagLink struct {
	MediumID int64  `bun:"medium_id"`
	TagID    int64  `bun:"tag_id"`
	Name     string `bun:"name"`
}

// edgeRow is an implication joined with the implied tag's name.
type edgeRow struct {
	ImplyingTagID int64  `bun:"implying_tag_id"`
	ImpliedTagID  int64  `bun:"implied_tag_id"`
	Name          string `bun:"name"`
}

var models = []any{
	(*tagRow)(nil),
	(*aliasRow)(nil),
	(*implicationRow)(nil),
	(*mediumRow)(nil),
	(*mediumTagRow)(nil),
	(*absenceRow)(nil),
}
