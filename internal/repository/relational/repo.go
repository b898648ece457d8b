// Package relational reads the tag graph and media rows from the
// relational system of record.
package relational

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/kailas-cloud/mediadex/internal/domain/medium"
	"github.com/kailas-cloud/mediadex/internal/domain/tag"
)

// Repo implements materialize.Source over bun. It never writes.
type Repo struct {
	db bun.IDB
}

// New creates a relational source.
func New(db bun.IDB) *Repo {
	return &Repo{db: db}
}

// CreateSchema creates the tables the source reads, if missing.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	for _, m := range models {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// AllMedia returns every medium with its innate and absent tags.
func (r *Repo) AllMedia(ctx context.Context) ([]medium.Record, error) {
	var rows []mediumRow
	if err := r.db.NewSelect().Model(&rows).Order("id").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select media: %w", err)
	}
	return r.records(ctx, rows, nil)
}

// MediaByIDs returns the media that exist among ids.
func (r *Repo) MediaByIDs(ctx context.Context, ids []int64) ([]medium.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []mediumRow
	err := r.db.NewSelect().Model(&rows).Where("id IN (?)", bun.In(ids)).Order("id").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select media by id: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	found := make([]int64, len(rows))
	for i := range rows {
		found[i] = rows[i].ID
	}
	return r.records(ctx, rows, found)
}

// records attaches tag names to rows. A nil ids loads links for every medium.
func (r *Repo) records(ctx context.Context, rows []mediumRow, ids []int64) ([]medium.Record, error) {
	innate, err := r.links(ctx, "medium_tag", ids)
	if err != nil {
		return nil, err
	}
	absent, err := r.links(ctx, "medium_tag_absence", ids)
	if err != nil {
		return nil, err
	}

	out := make([]medium.Record, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		rating, err := medium.ParseRating(row.Rating)
		if err != nil {
			return nil, fmt.Errorf("medium %d: %w", row.ID, err)
		}
		rec := medium.Record{
			ID:            row.ID,
			Hash:          row.Hash,
			MimeType:      row.MimeType,
			Rating:        rating,
			Width:         row.Width,
			Height:        row.Height,
			Filesize:      row.Filesize,
			InsertDate:    row.InsertDate.UTC(),
			TinyThumbnail: row.TinyThumbnail,
		}
		for _, l := range innate[row.ID] {
			rec.Tags = append(rec.Tags, medium.TagRef{ID: l.TagID, Name: l.Name})
		}
		for _, l := range absent[row.ID] {
			rec.AbsentTags = append(rec.AbsentTags, l.Name)
		}
		out = append(out, rec)
	}
	return out, nil
}

// links loads (medium, tag) pairs from table, grouped by medium id.
func (r *Repo) links(ctx context.Context, table string, ids []int64) (map[int64][]tagLink, error) {
	var rows []tagLink
	q := r.db.NewSelect().
		TableExpr("? AS l", bun.Ident(table)).
		ColumnExpr("l.medium_id, l.tag_id, t.name").
		Join("JOIN tag AS t ON t.id = l.tag_id").
		OrderExpr("l.medium_id, t.name")
	if ids != nil {
		q = q.Where("l.medium_id IN (?)", bun.In(ids))
	}
	if err := q.Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}

	out := make(map[int64][]tagLink)
	for _, l := range rows {
		out[l.MediumID] = append(out[l.MediumID], l)
	}
	return out, nil
}

// AllTags returns every tag.
func (r *Repo) AllTags(ctx context.Context) ([]tag.Tag, error) {
	var rows []tagRow
	if err := r.db.NewSelect().Model(&rows).Order("id").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select tags: %w", err)
	}
	out := make([]tag.Tag, len(rows))
	for i, t := range rows {
		out[i] = tag.Tag{ID: t.ID, Name: t.Name}
	}
	return out, nil
}

// AllAliases returns every alias.
func (r *Repo) AllAliases(ctx context.Context) ([]tag.Alias, error) {
	var rows []aliasRow
	if err := r.db.NewSelect().Model(&rows).Order("id").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select aliases: %w", err)
	}
	return toAliases(rows), nil
}

// AllImplications returns every implication edge.
func (r *Repo) AllImplications(ctx context.Context) ([]tag.Implication, error) {
	var rows []implicationRow
	if err := r.db.NewSelect().Model(&rows).Scan(ctx); err != nil {
		return nil, fmt.Errorf("select implications: %w", err)
	}
	out := make([]tag.Implication, len(rows))
	for i, e := range rows {
		out[i] = tag.Implication{From: e.ImplyingTagID, To: e.ImpliedTagID}
	}
	return out, nil
}

// AliasesOf returns the aliases registered to any of tagIDs.
func (r *Repo) AliasesOf(ctx context.Context, tagIDs []int64) ([]tag.Alias, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	var rows []aliasRow
	err := r.db.NewSelect().Model(&rows).Where("tag_id IN (?)", bun.In(tagIDs)).Order("id").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select aliases of tags: %w", err)
	}
	return toAliases(rows), nil
}

// ImpliedBy returns the implications leaving any of tagIDs, with target names.
func (r *Repo) ImpliedBy(ctx context.Context, tagIDs []int64) ([]tag.Edge, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	var rows []edgeRow
	err := r.db.NewSelect().
		TableExpr("tag_implication AS i").
		ColumnExpr("i.implying_tag_id, i.implied_tag_id, t.name").
		Join("JOIN tag AS t ON t.id = i.implied_tag_id").
		Where("i.implying_tag_id IN (?)", bun.In(tagIDs)).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("select implications of tags: %w", err)
	}
	out := make([]tag.Edge, len(rows))
	for i, e := range rows {
		out[i] = tag.Edge{From: e.ImplyingTagID, To: tag.Tag{ID: e.ImpliedTagID, Name: e.Name}}
	}
	return out, nil
}

// SearchableNames returns the union of tag names and alias names, sorted.
func (r *Repo) SearchableNames(ctx context.Context) ([]string, error) {
	var tags, aliases []string
	if err := r.db.NewSelect().Model((*tagRow)(nil)).Column("name").Scan(ctx, &tags); err != nil {
		return nil, fmt.Errorf("select tag names: %w", err)
	}
	if err := r.db.NewSelect().Model((*aliasRow)(nil)).Column("name").Scan(ctx, &aliases); err != nil {
		return nil, fmt.Errorf("select alias names: %w", err)
	}

	return medium.NewTagSet(tags...).Union(medium.NewTagSet(aliases...)).Sorted(), nil
}

// Ping checks connectivity of the underlying database.
func (r *Repo) Ping(ctx context.Context) error {
	var one int
	if err := r.db.NewSelect().ColumnExpr("1").Scan(ctx, &one); err != nil {
		return fmt.Errorf("relational ping: %w", err)
	}
	return nil
}

func toAliases(rows []aliasRow) []tag.Alias {
	out := make([]tag.Alias, len(rows))
	for i, a := range rows {
		out[i] = tag.Alias{TagID: a.TagID, Name: a.Name}
	}
	return out
}
