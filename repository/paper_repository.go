package repository

import (
	"context"
	"errors"
	"fmt"

	"scholarspace-backend/errs"
	"scholarspace-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PaperRepository handles database operations for papers
type PaperRepository struct {
	db Pool
}

// NewPaperRepository creates a new paper repository
func NewPaperRepository(db Pool) *PaperRepository {
	return &PaperRepository{db: db}
}

const paperColumns = `id, title, author, year, tags, abstract, favorite, document_path, uploaded_at`

func scanPaper(row pgx.Row) (*models.Paper, error) {
	paper := &models.Paper{}
	err := row.Scan(
		&paper.ID,
		&paper.Title,
		&paper.Author,
		&paper.Year,
		&paper.Tags,
		&paper.Abstract,
		&paper.Favorite,
		&paper.DocumentPath,
		&paper.UploadedAt,
	)
	if err != nil {
		return nil, err
	}
	return paper, nil
}

// Create inserts a new paper
func (r *PaperRepository) Create(ctx context.Context, paper *models.Paper) error {
	query := `
		INSERT INTO papers (title, author, year, tags, abstract, favorite)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, uploaded_at`

	err := r.db.QueryRow(
		ctx, query,
		paper.Title,
		paper.Author,
		paper.Year,
		paper.Tags,
		paper.Abstract,
		paper.Favorite,
	).Scan(&paper.ID, &paper.UploadedAt)

	return err
}

// GetByID retrieves a paper by ID
func (r *PaperRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Paper, error) {
	query := `SELECT ` + paperColumns + ` FROM papers WHERE id = $1`

	paper, err := scanPaper(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrPaperNotFound
	}
	if err != nil {
		return nil, err
	}

	return paper, nil
}

// List retrieves all papers in store order
func (r *PaperRepository) List(ctx context.Context) ([]*models.Paper, error) {
	return r.Filter(ctx, models.PaperFilter{})
}

// Filter retrieves papers matching all provided criteria. An empty filter
// behaves like List.
func (r *PaperRepository) Filter(ctx context.Context, filter models.PaperFilter) ([]*models.Paper, error) {
	query := `SELECT ` + paperColumns + ` FROM papers`

	var args []interface{}
	var conds []string

	if filter.Year != nil {
		args = append(args, *filter.Year)
		conds = append(conds, fmt.Sprintf("year = $%d", len(args)))
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		conds = append(conds, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}
	if filter.Author != "" {
		args = append(args, "%"+filter.Author+"%")
		conds = append(conds, fmt.Sprintf("author ILIKE $%d", len(args)))
	}

	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	papers := []*models.Paper{}
	for rows.Next() {
		paper, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		papers = append(papers, paper)
	}

	return papers, rows.Err()
}

// ToggleFavorite flips the favorite flag and returns the updated paper
func (r *PaperRepository) ToggleFavorite(ctx context.Context, id uuid.UUID) (*models.Paper, error) {
	query := `
		UPDATE papers SET favorite = NOT favorite
		WHERE id = $1
		RETURNING ` + paperColumns

	paper, err := scanPaper(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrPaperNotFound
	}
	if err != nil {
		return nil, err
	}

	return paper, nil
}

// SetDocumentPath records the storage path of the paper's attached document
func (r *PaperRepository) SetDocumentPath(ctx context.Context, id uuid.UUID, path string) error {
	query := `UPDATE papers SET document_path = $2 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, path)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrPaperNotFound
	}

	return nil
}

// CountAll returns the total number of papers
func (r *PaperRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM papers`).Scan(&count)
	return count, err
}

// CountByYear returns the number of papers published in the given year
func (r *PaperRepository) CountByYear(ctx context.Context, year int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM papers WHERE year = $1`, year).Scan(&count)
	return count, err
}

// TopTags returns the most frequent tags across all papers, descending by
// count with ties broken alphabetically.
func (r *PaperRepository) TopTags(ctx context.Context, limit int) ([]models.TagCount, error) {
	query := `
		SELECT tag, COUNT(*) AS count
		FROM papers, unnest(tags) AS tag
		GROUP BY tag
		ORDER BY count DESC, tag ASC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []models.TagCount{}
	for rows.Next() {
		var tc models.TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, err
		}
		tags = append(tags, tc)
	}

	return tags, rows.Err()
}
