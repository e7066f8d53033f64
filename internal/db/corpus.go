package db

import (
	"context"

	"kwforge/internal/models"
)

// corpusColumns is the standard column list for corpus queries.
const corpusColumns = `keyword, search_volume, cpc, keyword_difficulty, competition`

// GetAllCorpusKeywords returns every reference keyword, in insertion order.
// The whole table is read in one pass; the index builder treats it as the
// complete, consistent basis at the moment of construction. Returns
// ErrCorpusEmpty when the table has no rows.
func (d *DB) GetAllCorpusKeywords(ctx context.Context) ([]models.CorpusEntry, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+corpusColumns+`
		FROM corpus_keywords
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.CorpusEntry
	for rows.Next() {
		var e models.CorpusEntry
		if err := rows.Scan(
			&e.Keyword,
			&e.SearchVolume,
			&e.CPC,
			&e.KeywordDifficulty,
			&e.Competition,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, ErrCorpusEmpty
	}
	return entries, nil
}

// CountCorpusKeywords returns the reference corpus size.
func (d *DB) CountCorpusKeywords(ctx context.Context) (int64, error) {
	var count int64
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM corpus_keywords`).Scan(&count)
	return count, err
}
