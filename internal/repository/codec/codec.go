// Package codec is the binary schema of every entity kind in the shared store.
package codec

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/kailas-cloud/mediadex/internal/domain"
	"github.com/kailas-cloud/mediadex/internal/domain/cache"
	"github.com/kailas-cloud/mediadex/internal/domain/medium"
)

type tinyDTO struct {
	_msgpack struct{} `msgpack:",as_array"`

	ID         int64
	Hash       string
	Rating     string
	Width      int
	Height     int
	Filesize   int64
	InsertDate int64 // unix nanoseconds
	Innate     []string
	Searchable []string
	Absent     []string
}

type fullDTO struct {
	_msgpack struct{} `msgpack:",as_array"`

	Tiny          tinyDTO
	MimeType      string
	TinyThumbnail []byte
}

func toTinyDTO(t *medium.Tiny) tinyDTO {
	return tinyDTO{
		ID:         t.ID,
		Hash:       t.Hash,
		Rating:     string(t.Rating),
		Width:      t.Width,
		Height:     t.Height,
		Filesize:   t.Filesize,
		InsertDate: t.InsertDate.UnixNano(),
		Innate:     t.InnateTags.Sorted(),
		Searchable: t.SearchableTags.Sorted(),
		Absent:     t.AbsentTags.Sorted(),
	}
}

func (d *tinyDTO) toDomain() (medium.Tiny, error) {
	rating, err := medium.ParseRating(d.Rating)
	if err != nil {
		return medium.Tiny{}, err
	}
	return medium.Tiny{
		ID:             d.ID,
		Hash:           d.Hash,
		Rating:         rating,
		Width:          d.Width,
		Height:         d.Height,
		Filesize:       d.Filesize,
		InsertDate:     time.Unix(0, d.InsertDate).UTC(),
		InnateTags:     medium.NewTagSet(d.Innate...),
		SearchableTags: medium.NewTagSet(d.Searchable...),
		AbsentTags:     medium.NewTagSet(d.Absent...),
	}, nil
}

// Encode serializes v, which must hold the Go type stored for kind.
func Encode(kind cache.EntityKind, v any) ([]byte, error) {
	var payload any
	switch kind {
	case cache.FullDocument:
		d, ok := v.(medium.Full)
		if !ok {
			return nil, wrongType(kind, v)
		}
		payload = fullDTO{Tiny: toTinyDTO(&d.Tiny), MimeType: d.MimeType, TinyThumbnail: d.TinyThumbnail}
	case cache.TinyDocument:
		d, ok := v.(medium.Tiny)
		if !ok {
			return nil, wrongType(kind, v)
		}
		payload = toTinyDTO(&d)
	case cache.AllTinyDocuments:
		docs, ok := v.([]medium.Tiny)
		if !ok {
			return nil, wrongType(kind, v)
		}
		dtos := make([]tinyDTO, len(docs))
		for i := range docs {
			dtos[i] = toTinyDTO(&docs[i])
		}
		payload = dtos
	case cache.RatingByHash:
		r, ok := v.(medium.Rating)
		if !ok {
			return nil, wrongType(kind, v)
		}
		// a bare ASCII string, no framing
		return []byte(r), nil
	case cache.SearchableTagNames:
		names, ok := v.([]string)
		if !ok {
			return nil, wrongType(kind, v)
		}
		payload = names
	default:
		return nil, fmt.Errorf("encode %q: %w", kind, domain.ErrUnknownEntityKind)
	}

	data, err := msgpack.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", kind, err)
	}
	return data, nil
}

// Decode parses bytes written by Encode. Bytes that do not fit the schema
// yield domain.ErrCorruptCacheEntry.
func Decode(kind cache.EntityKind, data []byte) (any, error) {
	switch kind {
	case cache.FullDocument:
		var dto fullDTO
		if err := msgpack.Unmarshal(data, &dto); err != nil {
			return nil, corrupt(kind, err)
		}
		tiny, err := dto.Tiny.toDomain()
		if err != nil {
			return nil, corrupt(kind, err)
		}
		return medium.Full{Tiny: tiny, MimeType: dto.MimeType, TinyThumbnail: dto.TinyThumbnail}, nil
	case cache.TinyDocument:
		var dto tinyDTO
		if err := msgpack.Unmarshal(data, &dto); err != nil {
			return nil, corrupt(kind, err)
		}
		tiny, err := dto.toDomain()
		if err != nil {
			return nil, corrupt(kind, err)
		}
		return tiny, nil
	case cache.AllTinyDocuments:
		var dtos []tinyDTO
		if err := msgpack.Unmarshal(data, &dtos); err != nil {
			return nil, corrupt(kind, err)
		}
		docs := make([]medium.Tiny, len(dtos))
		for i := range dtos {
			tiny, err := dtos[i].toDomain()
			if err != nil {
				return nil, corrupt(kind, err)
			}
			docs[i] = tiny
		}
		return docs, nil
	case cache.RatingByHash:
		r, err := medium.ParseRating(string(data))
		if err != nil {
			return nil, corrupt(kind, err)
		}
		return r, nil
	case cache.SearchableTagNames:
		var names []string
		if err := msgpack.Unmarshal(data, &names); err != nil {
			return nil, corrupt(kind, err)
		}
		if names == nil {
			names = []string{}
		}
		return names, nil
	default:
		return nil, fmt.Errorf("decode %q: %w", kind, domain.ErrUnknownEntityKind)
	}
}

func wrongType(kind cache.EntityKind, v any) error {
	return fmt.Errorf("encode %s from %T: %w", kind, v, domain.ErrWrongEntityType)
}

func corrupt(kind cache.EntityKind, err error) error {
	return fmt.Errorf("decode %s: %w: %w", kind, domain.ErrCorruptCacheEntry, err)
}
