package chi

import (
	"time"

	"github.com/kailas-cloud/mediadex/internal/domain/medium"
	"github.com/kailas-cloud/mediadex/internal/domain/search/page"
	healthuc "github.com/kailas-cloud/mediadex/internal/usecase/health"
)

type mediumView struct {
	ID             int64     `json:"id"`
	Hash           string    `json:"hash"`
	MimeType       string    `json:"mime_type"`
	Rating         string    `json:"rating"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	Filesize       int64     `json:"filesize"`
	InsertDate     time.Time `json:"insert_date"`
	InnateTags     []string  `json:"innate_tags"`
	SearchableTags []string  `json:"searchable_tags"`
	AbsentTags     []string  `json:"absent_tags"`
	TinyThumbnail  []byte    `json:"tiny_thumbnail,omitempty"`
}

type pageView struct {
	Items      []mediumView `json:"items"`
	PageCount  int          `json:"page_count"`
	PageNumber int          `json:"page_number"`
	PageSize   int          `json:"page_size"`
}

type healthView struct {
	Status string                          `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

func mediumToView(d *medium.Full) mediumView {
	return mediumView{
		ID:             d.ID,
		Hash:           d.Hash,
		MimeType:       d.MimeType,
		Rating:         string(d.Rating),
		Width:          d.Width,
		Height:         d.Height,
		Filesize:       d.Filesize,
		InsertDate:     d.InsertDate,
		InnateTags:     d.InnateTags.Sorted(),
		SearchableTags: d.SearchableTags.Sorted(),
		AbsentTags:     d.AbsentTags.Sorted(),
		TinyThumbnail:  d.TinyThumbnail,
	}
}

func pageToView(p page.Page[medium.Full]) pageView {
	items := make([]mediumView, len(p.Items))
	for i := range p.Items {
		items[i] = mediumToView(&p.Items[i])
	}
	return pageView{
		Items:      items,
		PageCount:  p.PageCount,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}
}
