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

// PostStore manages blog posts and their category/tag links.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// PostQuery filters a post listing.
type PostQuery struct {
	Status       models.PostStatus
	CategorySlug string
	TagSlug      string

	// PublishedOnly restricts the listing to published posts whose
	// published_at is not in the future, newest first.
	PublishedOnly bool

	Page Page
}

// PostLinks carries the category and tag ids of a post write. A nil slice
// leaves the existing links untouched; an empty non-nil slice clears them.
type PostLinks struct {
	CategoryIDs []uuid.UUID
	TagIDs      []uuid.UUID
}

const postColumns = `p.id, p.title, p.slug, p.content, p.excerpt, p.featured_image,
	p.status, p.author_id, p.published_at, p.created_at, p.updated_at,
	u.name, u.email`

const postFrom = ` FROM posts p JOIN users u ON u.id = p.author_id`

// scanPost scans a row selected with postColumns.
func scanPost(row scanner) (models.Post, error) {
	var p models.Post
	var author models.Author
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.FeaturedImage,
		&p.Status, &p.AuthorID, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
		&author.Name, &author.Email,
	)
	if err != nil {
		return p, err
	}
	author.ID = p.AuthorID
	p.Author = &author
	p.Categories = []models.Label{}
	p.Tags = []models.Label{}
	return p, nil
}

// List returns one page of posts matching q together with the total count.
func (s *PostStore) List(ctx context.Context, q PostQuery) ([]models.Post, int, error) {
	var f filter
	order := " ORDER BY p.created_at DESC"
	if q.PublishedOnly {
		f.add("p.status = $%d", models.PostStatusPublished)
		f.addRaw("p.published_at <= NOW()")
		order = " ORDER BY p.published_at DESC"
	} else if q.Status != "" {
		f.add("p.status = $%d", q.Status)
	}
	if q.CategorySlug != "" {
		f.add(`EXISTS (SELECT 1 FROM post_categories pc JOIN categories c ON c.id = pc.category_id
			WHERE pc.post_id = p.id AND c.slug = $%d)`, q.CategorySlug)
	}
	if q.TagSlug != "" {
		f.add(`EXISTS (SELECT 1 FROM post_tags pt JOIN tags t ON t.id = pt.tag_id
			WHERE pt.post_id = p.id AND t.slug = $%d)`, q.TagSlug)
	}

	posts, total, err := queryPage(ctx, s.db, pageQuery{
		rows:  `SELECT ` + postColumns + postFrom + f.where() + order,
		count: `SELECT COUNT(*) FROM posts p` + f.where(),
		args:  f.args,
		page:  q.Page,
	}, scanPost)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}

	if err := s.attachLabels(ctx, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// FindByID retrieves a post by ID. Returns nil if not found.
func (s *PostStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return s.findOne(ctx, "p.id = $1", id)
}

// FindBySlug retrieves a post by slug regardless of status. Returns nil if
// not found.
func (s *PostStore) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return s.findOne(ctx, "p.slug = $1", slug)
}

func (s *PostStore) findOne(ctx context.Context, cond string, arg any) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postColumns+postFrom+` WHERE `+cond, arg)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}

	posts := []models.Post{p}
	if err := s.attachLabels(ctx, posts); err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// SlugOwner returns the id of the post holding slug, if any.
func (s *PostStore) SlugOwner(ctx context.Context, slug string) (uuid.UUID, bool, error) {
	return slugOwner(ctx, s.db, "posts", slug)
}

// Create inserts a post and its links in one transaction and returns the
// stored post.
func (s *PostStore) Create(ctx context.Context, p *models.Post, links PostLinks) (*models.Post, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var id uuid.UUID
	err = tx.QueryRowContext(ctx, `
		INSERT INTO posts (title, slug, content, excerpt, featured_image, status, author_id, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, p.Title, p.Slug, p.Content, p.Excerpt, p.FeaturedImage, p.Status, p.AuthorID, p.PublishedAt,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", classify(err))
	}

	if err := replaceLinks(ctx, tx, id, links); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create post commit: %w", classify(err))
	}

	return s.FindByID(ctx, id)
}

// Update writes the mutable fields of p and applies links, then returns the
// stored post.
func (s *PostStore) Update(ctx context.Context, p *models.Post, links PostLinks) (*models.Post, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE posts SET
			title = $1, slug = $2, content = $3, excerpt = $4, featured_image = $5,
			status = $6, published_at = $7, updated_at = NOW()
		WHERE id = $8
	`, p.Title, p.Slug, p.Content, p.Excerpt, p.FeaturedImage, p.Status, p.PublishedAt, p.ID)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if n == 0 {
		return nil, nil
	}

	if err := replaceLinks(ctx, tx, p.ID, links); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("update post commit: %w", classify(err))
	}

	return s.FindByID(ctx, p.ID)
}

// Delete removes a post. Its category and tag links cascade. Returns false
// if no row was deleted.
func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete post: %w", classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	return n > 0, nil
}

// replaceLinks rewrites the link rows selected by links.
func replaceLinks(ctx context.Context, tx *sql.Tx, postID uuid.UUID, links PostLinks) error {
	sets := []struct {
		ids    []uuid.UUID
		table  string
		column string
	}{
		{links.CategoryIDs, "post_categories", "category_id"},
		{links.TagIDs, "post_tags", "tag_id"},
	}

	for _, set := range sets {
		if set.ids == nil {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+set.table+` WHERE post_id = $1`, postID); err != nil {
			return fmt.Errorf("clear %s: %w", set.table, err)
		}
		if len(set.ids) == 0 {
			continue
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO `+set.table+` (post_id, `+set.column+`)
			SELECT $1, unnest($2::uuid[])
			ON CONFLICT DO NOTHING
		`, postID, uuidStrings(set.ids))
		if err != nil {
			return fmt.Errorf("link %s: %w", set.table, classify(err))
		}
	}
	return nil
}

// attachLabels loads categories and tags for posts in two queries.
func (s *PostStore) attachLabels(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	index := make(map[uuid.UUID]int, len(posts))
	ids := make([]uuid.UUID, len(posts))
	for i, p := range posts {
		index[p.ID] = i
		ids[i] = p.ID
	}

	load := func(query string, assign func(p *models.Post, l models.Label)) error {
		rows, err := s.db.QueryContext(ctx, query, uuidStrings(ids))
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var postID uuid.UUID
			var l models.Label
			if err := rows.Scan(&postID, &l.ID, &l.Name, &l.Slug); err != nil {
				return err
			}
			if i, ok := index[postID]; ok {
				assign(&posts[i], l)
			}
		}
		return rows.Err()
	}

	err := load(`
		SELECT pc.post_id, c.id, c.name, c.slug
		FROM post_categories pc JOIN categories c ON c.id = pc.category_id
		WHERE pc.post_id = ANY($1::uuid[])
		ORDER BY c.name
	`, func(p *models.Post, l models.Label) { p.Categories = append(p.Categories, l) })
	if err != nil {
		return fmt.Errorf("load post categories: %w", err)
	}

	err = load(`
		SELECT pt.post_id, t.id, t.name, t.slug
		FROM post_tags pt JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = ANY($1::uuid[])
		ORDER BY t.name
	`, func(p *models.Post, l models.Label) { p.Tags = append(p.Tags, l) })
	if err != nil {
		return fmt.Errorf("load post tags: %w", err)
	}
	return nil
}

// slugOwner looks up which row of table holds slug.
func slugOwner(ctx context.Context, db *sql.DB, table, slug string) (uuid.UUID, bool, error) {
	var id uuid.UUID
	err := db.QueryRowContext(ctx, `SELECT id FROM `+table+` WHERE slug = $1`, slug).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("slug lookup in %s: %w", table, err)
	}
	return id, true, nil
}
