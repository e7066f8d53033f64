package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"kwforge/internal/models"
)

// variantColumns is the standard column list for variant queries.
const variantColumns = `id, request_id, keyword, source, search_volume, cpc,
	keyword_difficulty, competition, efficiency_index, confidence, bucket,
	image_url, created_at`

// scanVariants scans multiple rows into a slice of variants.
func scanVariants(rows pgx.Rows) ([]models.KeywordVariant, error) {
	defer rows.Close()

	var variants []models.KeywordVariant
	for rows.Next() {
		var v models.KeywordVariant
		if err := rows.Scan(
			&v.ID,
			&v.RequestID,
			&v.Keyword,
			&v.Source,
			&v.SearchVolume,
			&v.CPC,
			&v.KeywordDifficulty,
			&v.Competition,
			&v.EfficiencyIndex,
			&v.Confidence,
			&v.Bucket,
			&v.ImageURL,
			&v.CreatedAt,
		); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

// InsertVariants writes a batch of scored variants in one round trip.
func (d *DB) InsertVariants(ctx context.Context, variants []models.KeywordVariant) error {
	if len(variants) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO keyword_variants (id, request_id, keyword, source, search_volume,
			cpc, keyword_difficulty, competition, efficiency_index, confidence, bucket, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	for _, v := range variants {
		batch.Queue(query,
			v.ID,
			v.RequestID,
			v.Keyword,
			v.Source,
			v.SearchVolume,
			v.CPC,
			v.KeywordDifficulty,
			v.Competition,
			v.EfficiencyIndex,
			v.Confidence,
			v.Bucket,
			v.ImageURL,
		)
	}

	results := d.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for range variants {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// GetVariantByID returns one variant.
func (d *DB) GetVariantByID(ctx context.Context, id uuid.UUID) (*models.KeywordVariant, error) {
	var v models.KeywordVariant
	err := d.Pool.QueryRow(ctx, `
		SELECT `+variantColumns+`
		FROM keyword_variants
		WHERE id = $1
	`, id).Scan(
		&v.ID,
		&v.RequestID,
		&v.Keyword,
		&v.Source,
		&v.SearchVolume,
		&v.CPC,
		&v.KeywordDifficulty,
		&v.Competition,
		&v.EfficiencyIndex,
		&v.Confidence,
		&v.Bucket,
		&v.ImageURL,
		&v.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrVariantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetVariantsForKeyword returns all stored variants of one keyword, newest
// first.
func (d *DB) GetVariantsForKeyword(ctx context.Context, keyword string) ([]models.KeywordVariant, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+variantColumns+`
		FROM keyword_variants
		WHERE keyword = $1
		ORDER BY created_at DESC
	`, keyword)
	if err != nil {
		return nil, err
	}
	return scanVariants(rows)
}

// GetRecentVariants returns the most recently generated variants.
func (d *DB) GetRecentVariants(ctx context.Context, limit int) ([]models.KeywordVariant, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+variantColumns+`
		FROM keyword_variants
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return scanVariants(rows)
}

// GetKeywordCounts returns distinct keywords with their variant counts,
// most varied first.
func (d *DB) GetKeywordCounts(ctx context.Context) ([]models.KeywordCount, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT keyword, COUNT(*) AS variant_count
		FROM keyword_variants
		GROUP BY keyword
		ORDER BY variant_count DESC, keyword
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.KeywordCount
	for rows.Next() {
		var c models.KeywordCount
		if err := rows.Scan(&c.Keyword, &c.VariantCount); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// CountVariantsBySource returns variant totals grouped by provenance, for
// the metrics collector.
func (d *DB) CountVariantsBySource(ctx context.Context) (map[string]int64, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT source, COUNT(*)
		FROM keyword_variants
		GROUP BY source
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var source string
		var count int64
		if err := rows.Scan(&source, &count); err != nil {
			return nil, err
		}
		counts[source] = count
	}
	return counts, rows.Err()
}
