// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"morphecms/internal/models"
)

// TermStore manages one taxonomy table (categories or tags) and reads its
// links to posts.
type TermStore struct {
	db     *sql.DB
	kind   models.TermKind
	table  string
	join   string // link table to posts
	column string // link column referencing table
}

// NewCategoryStore returns a TermStore over the categories table.
func NewCategoryStore(db *sql.DB) *TermStore {
	return &TermStore{db: db, kind: models.TermCategory, table: "categories", join: "post_categories", column: "category_id"}
}

// NewTagStore returns a TermStore over the tags table.
func NewTagStore(db *sql.DB) *TermStore {
	return &TermStore{db: db, kind: models.TermTag, table: "tags", join: "post_tags", column: "tag_id"}
}

// Kind reports which taxonomy the store manages.
func (s *TermStore) Kind() models.TermKind {
	return s.kind
}

// TermQuery selects a page of terms.
type TermQuery struct {
	// PublishedCounts restricts PostCount to published, already visible posts.
	PublishedCounts bool
	Page            Page
}

const termColumns = `t.id, t.name, t.slug, t.description, t.created_at, t.updated_at`

func scanTerm(row scanner) (models.Term, error) {
	var t models.Term
	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// List returns terms ordered by name, each with its post count.
func (s *TermStore) List(ctx context.Context, q TermQuery) ([]models.Term, int, error) {
	postFilter := ""
	if q.PublishedCounts {
		postFilter = ` AND p.status = 'PUBLISHED' AND p.published_at <= NOW()`
	}

	rows := fmt.Sprintf(`
		SELECT %s, COUNT(p.id) AS post_count
		FROM %s t
		LEFT JOIN %s l ON l.%s = t.id
		LEFT JOIN posts p ON p.id = l.post_id%s
		GROUP BY t.id
		ORDER BY t.name`, termColumns, s.table, s.join, s.column, postFilter)

	items, total, err := queryPage(ctx, s.db, pageQuery{
		rows:  rows,
		count: `SELECT COUNT(*) FROM ` + s.table,
		page:  q.Page,
	}, func(row scanner) (models.Term, error) {
		var t models.Term
		err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Description, &t.CreatedAt, &t.UpdatedAt, &t.PostCount)
		return t, err
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", s.table, err)
	}
	return items, total, nil
}

// FindByID retrieves a term with the posts filed under it. Returns nil if
// not found.
func (s *TermStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Term, error) {
	t, err := s.findOne(ctx, "t.id = $1", id)
	if err != nil || t == nil {
		return t, err
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT p.id, p.title, p.slug, p.status
		FROM posts p JOIN %s l ON l.post_id = p.id
		WHERE l.%s = $1
		ORDER BY p.created_at DESC`, s.join, s.column), id)
	if err != nil {
		return nil, fmt.Errorf("load %s posts: %w", s.kind, err)
	}
	defer rows.Close()

	t.Posts = []models.PostSummary{}
	for rows.Next() {
		var ps models.PostSummary
		if err := rows.Scan(&ps.ID, &ps.Title, &ps.Slug, &ps.Status); err != nil {
			return nil, fmt.Errorf("scan %s post: %w", s.kind, err)
		}
		t.Posts = append(t.Posts, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	t.PostCount = len(t.Posts)
	return t, nil
}

// FindBySlug retrieves a term by slug. Returns nil if not found.
func (s *TermStore) FindBySlug(ctx context.Context, slug string) (*models.Term, error) {
	return s.findOne(ctx, "t.slug = $1", slug)
}

func (s *TermStore) findOne(ctx context.Context, cond string, arg any) (*models.Term, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+termColumns+` FROM `+s.table+` t WHERE `+cond, arg)
	t, err := scanTerm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", s.kind, err)
	}
	return &t, nil
}

// SlugOwner returns the id of the term holding slug, if any.
func (s *TermStore) SlugOwner(ctx context.Context, slug string) (uuid.UUID, bool, error) {
	return slugOwner(ctx, s.db, s.table, slug)
}

// CountExisting returns how many of ids exist in the table.
func (s *TermStore) CountExisting(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+s.table+` WHERE id = ANY($1::uuid[])`, uuidStrings(ids),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", s.table, err)
	}
	return n, nil
}

// CountPosts returns the number of posts linked to the term.
func (s *TermStore) CountPosts(ctx context.Context, id uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+s.join+` WHERE `+s.column+` = $1`, id,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s posts: %w", s.kind, err)
	}
	return n, nil
}

// Create inserts a new term and returns it.
func (s *TermStore) Create(ctx context.Context, t *models.Term) (*models.Term, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO `+s.table+` AS t (name, slug, description)
		VALUES ($1, $2, $3)
		RETURNING `+termColumns,
		t.Name, t.Slug, t.Description,
	)
	created, err := scanTerm(row)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.kind, classify(err))
	}
	return &created, nil
}

// Update modifies an existing term. Returns nil if the row is gone.
func (s *TermStore) Update(ctx context.Context, t *models.Term) (*models.Term, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE `+s.table+` AS t SET name = $1, slug = $2, description = $3, updated_at = NOW()
		WHERE t.id = $4
		RETURNING `+termColumns,
		t.Name, t.Slug, t.Description, t.ID,
	)
	updated, err := scanTerm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", s.kind, classify(err))
	}
	return &updated, nil
}

// Delete removes a term. Links restrict the delete, so a term still filed
// under a post fails with ErrForeignKeyViolation. Returns false if no row
// was deleted.
func (s *TermStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+s.table+` WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", s.kind, classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", s.kind, err)
	}
	return n > 0, nil
}
