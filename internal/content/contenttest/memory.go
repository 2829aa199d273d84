// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package contenttest provides in-memory repositories for the content
// managers, the auth service and the HTTP handlers in tests. They mirror
// the constraint behavior of the PostgreSQL stores: unique slugs per
// entity kind, restricted taxonomy deletes and cascading post links.
package contenttest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"morphecms/internal/models"
	"morphecms/internal/store"
)

// Store holds every entity in memory behind one lock.
type Store struct {
	mu sync.Mutex

	// SkipSlugCheck makes every SlugOwner lookup miss, so duplicate slugs
	// only surface at write time, as they would under a race.
	SkipSlugCheck bool

	// SkipReferenceCount makes term CountPosts report zero, so a referenced
	// term only surfaces at delete time through the foreign key.
	SkipReferenceCount bool

	users      map[uuid.UUID]models.User
	posts      map[uuid.UUID]models.Post
	categories map[uuid.UUID]models.Term
	tags       map[uuid.UUID]models.Term
	services   map[uuid.UUID]models.Service
	careers    map[uuid.UUID]models.Career

	postCategories map[uuid.UUID][]uuid.UUID // post id -> category ids
	postTags       map[uuid.UUID][]uuid.UUID // post id -> tag ids

	seq int // creation order, stands in for created_at ties
	now func() time.Time
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		users:          map[uuid.UUID]models.User{},
		posts:          map[uuid.UUID]models.Post{},
		categories:     map[uuid.UUID]models.Term{},
		tags:           map[uuid.UUID]models.Term{},
		services:       map[uuid.UUID]models.Service{},
		careers:        map[uuid.UUID]models.Career{},
		postCategories: map[uuid.UUID][]uuid.UUID{},
		postTags:       map[uuid.UUID][]uuid.UUID{},
		now:            time.Now,
	}
}

// SetClock replaces the time source used for timestamps and visibility.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// stamp returns a creation time that strictly increases across calls.
func (s *Store) stamp() time.Time {
	s.seq++
	return s.now().UTC().Add(time.Duration(s.seq) * time.Microsecond)
}

func uniqueViolation(table, slug string) error {
	return fmt.Errorf("%w: %s slug %q", store.ErrUniqueViolation, table, slug)
}

func fkViolation(table string) error {
	return fmt.Errorf("%w: %s", store.ErrForeignKeyViolation, table)
}

// window applies a store.Page to a sorted slice.
func window[T any](items []T, p store.Page) []T {
	out := []T{}
	if p.Offset >= len(items) {
		return out
	}
	end := len(items)
	if p.Limit > 0 && p.Offset+p.Limit < end {
		end = p.Offset + p.Limit
	}
	return append(out, items[p.Offset:end]...)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func contains(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

// Users returns the user repository.
func (s *Store) Users() *Users { return &Users{s: s} }

// Users is an in-memory user repository.
type Users struct{ s *Store }

func (r *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *Users) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *Users) Create(_ context.Context, email, password, name string, role models.Role) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return nil, fmt.Errorf("%w: users email %q", store.ErrUniqueViolation, email)
		}
	}
	now := r.s.stamp()
	u := models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.s.users[u.ID] = u
	return &u, nil
}

func (r *Users) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.users), nil
}

func (r *Users) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// ---------------------------------------------------------------------------
// Posts
// ---------------------------------------------------------------------------

// Posts returns the post repository.
func (s *Store) Posts() *Posts { return &Posts{s: s} }

// Posts is an in-memory post repository.
type Posts struct{ s *Store }

func (r *Posts) List(_ context.Context, q store.PostQuery) ([]models.Post, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	var matched []models.Post
	for _, p := range r.s.posts {
		if q.PublishedOnly {
			if p.Status != models.PostStatusPublished || p.PublishedAt == nil || p.PublishedAt.After(now) {
				continue
			}
		} else if q.Status != "" && p.Status != q.Status {
			continue
		}
		if q.CategorySlug != "" && !r.s.linkedSlug(r.s.postCategories[p.ID], r.s.categories, q.CategorySlug) {
			continue
		}
		if q.TagSlug != "" && !r.s.linkedSlug(r.s.postTags[p.ID], r.s.tags, q.TagSlug) {
			continue
		}
		matched = append(matched, r.s.hydrate(p))
	}

	sort.Slice(matched, func(i, j int) bool {
		if q.PublishedOnly {
			return matched[i].PublishedAt.After(*matched[j].PublishedAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return window(matched, q.Page), len(matched), nil
}

func (r *Posts) FindByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, nil
	}
	p = r.s.hydrate(p)
	return &p, nil
}

func (r *Posts) FindBySlug(_ context.Context, slug string) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.posts {
		if p.Slug == slug {
			p = r.s.hydrate(p)
			return &p, nil
		}
	}
	return nil, nil
}

func (r *Posts) SlugOwner(_ context.Context, slug string) (uuid.UUID, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.SkipSlugCheck {
		return uuid.Nil, false, nil
	}
	for id, p := range r.s.posts {
		if p.Slug == slug {
			return id, true, nil
		}
	}
	return uuid.Nil, false, nil
}

func (r *Posts) Create(_ context.Context, p *models.Post, links store.PostLinks) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, other := range r.s.posts {
		if other.Slug == p.Slug {
			return nil, uniqueViolation("posts", p.Slug)
		}
	}
	if _, ok := r.s.users[p.AuthorID]; !ok {
		return nil, fkViolation("posts.author_id")
	}
	if err := r.s.checkLinks(links); err != nil {
		return nil, err
	}

	now := r.s.stamp()
	created := *p
	created.ID = uuid.New()
	created.CreatedAt, created.UpdatedAt = now, now
	created.Author, created.Categories, created.Tags = nil, nil, nil
	r.s.posts[created.ID] = created
	r.s.applyLinks(created.ID, links)

	out := r.s.hydrate(created)
	return &out, nil
}

func (r *Posts) Update(_ context.Context, p *models.Post, links store.PostLinks) (*models.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.posts[p.ID]
	if !ok {
		return nil, nil
	}
	for id, other := range r.s.posts {
		if id != p.ID && other.Slug == p.Slug {
			return nil, uniqueViolation("posts", p.Slug)
		}
	}
	if err := r.s.checkLinks(links); err != nil {
		return nil, err
	}

	updated := *p
	updated.AuthorID = current.AuthorID
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = r.s.now().UTC()
	updated.Author, updated.Categories, updated.Tags = nil, nil, nil
	r.s.posts[p.ID] = updated
	r.s.applyLinks(p.ID, links)

	out := r.s.hydrate(updated)
	return &out, nil
}

func (r *Posts) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return false, nil
	}
	delete(r.s.posts, id)
	delete(r.s.postCategories, id)
	delete(r.s.postTags, id)
	return true, nil
}

func (s *Store) checkLinks(links store.PostLinks) error {
	for _, id := range links.CategoryIDs {
		if _, ok := s.categories[id]; !ok {
			return fkViolation("post_categories.category_id")
		}
	}
	for _, id := range links.TagIDs {
		if _, ok := s.tags[id]; !ok {
			return fkViolation("post_tags.tag_id")
		}
	}
	return nil
}

func (s *Store) applyLinks(postID uuid.UUID, links store.PostLinks) {
	if links.CategoryIDs != nil {
		s.postCategories[postID] = append([]uuid.UUID(nil), links.CategoryIDs...)
	}
	if links.TagIDs != nil {
		s.postTags[postID] = append([]uuid.UUID(nil), links.TagIDs...)
	}
}

func (s *Store) linkedSlug(ids []uuid.UUID, terms map[uuid.UUID]models.Term, slug string) bool {
	for _, id := range ids {
		if terms[id].Slug == slug {
			return true
		}
	}
	return false
}

// hydrate fills the author and label fields the way the SQL store does.
func (s *Store) hydrate(p models.Post) models.Post {
	if u, ok := s.users[p.AuthorID]; ok {
		p.Author = &models.Author{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	p.Categories = labels(s.postCategories[p.ID], s.categories)
	p.Tags = labels(s.postTags[p.ID], s.tags)
	return p
}

func labels(ids []uuid.UUID, terms map[uuid.UUID]models.Term) []models.Label {
	out := []models.Label{}
	for _, id := range ids {
		if t, ok := terms[id]; ok {
			out = append(out, models.Label{ID: t.ID, Name: t.Name, Slug: t.Slug})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ---------------------------------------------------------------------------
// Categories and tags
// ---------------------------------------------------------------------------

// Categories returns the category repository.
func (s *Store) Categories() *Terms {
	return &Terms{s: s, kind: models.TermCategory, rows: s.categories, links: s.postCategories}
}

// Tags returns the tag repository.
func (s *Store) Tags() *Terms {
	return &Terms{s: s, kind: models.TermTag, rows: s.tags, links: s.postTags}
}

// Terms is an in-memory category or tag repository.
type Terms struct {
	s     *Store
	kind  models.TermKind
	rows  map[uuid.UUID]models.Term
	links map[uuid.UUID][]uuid.UUID
}

func (r *Terms) Kind() models.TermKind { return r.kind }

func (r *Terms) List(_ context.Context, q store.TermQuery) ([]models.Term, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	items := make([]models.Term, 0, len(r.rows))
	for _, t := range r.rows {
		t.PostCount = len(r.postsOf(t.ID, q.PublishedCounts))
		t.Posts = nil
		items = append(items, t)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return window(items, q.Page), len(items), nil
}

func (r *Terms) FindByID(_ context.Context, id uuid.UUID) (*models.Term, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	t.Posts = []models.PostSummary{}
	for _, p := range r.postsOf(id, false) {
		t.Posts = append(t.Posts, models.PostSummary{ID: p.ID, Title: p.Title, Slug: p.Slug, Status: p.Status})
	}
	t.PostCount = len(t.Posts)
	return &t, nil
}

func (r *Terms) FindBySlug(_ context.Context, slug string) (*models.Term, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.rows {
		if t.Slug == slug {
			return &t, nil
		}
	}
	return nil, nil
}

func (r *Terms) SlugOwner(_ context.Context, slug string) (uuid.UUID, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.SkipSlugCheck {
		return uuid.Nil, false, nil
	}
	for id, t := range r.rows {
		if t.Slug == slug {
			return id, true, nil
		}
	}
	return uuid.Nil, false, nil
}

func (r *Terms) CountExisting(_ context.Context, ids []uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, id := range ids {
		if _, ok := r.rows[id]; ok {
			n++
		}
	}
	return n, nil
}

func (r *Terms) CountPosts(_ context.Context, id uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.SkipReferenceCount {
		return 0, nil
	}
	return len(r.postsOf(id, false)), nil
}

func (r *Terms) Create(_ context.Context, t *models.Term) (*models.Term, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.rows {
		if other.Slug == t.Slug {
			return nil, uniqueViolation(string(r.kind), t.Slug)
		}
	}
	now := r.s.stamp()
	created := models.Term{
		ID:          uuid.New(),
		Name:        t.Name,
		Slug:        t.Slug,
		Description: t.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.rows[created.ID] = created
	return &created, nil
}

func (r *Terms) Update(_ context.Context, t *models.Term) (*models.Term, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.rows[t.ID]
	if !ok {
		return nil, nil
	}
	for id, other := range r.rows {
		if id != t.ID && other.Slug == t.Slug {
			return nil, uniqueViolation(string(r.kind), t.Slug)
		}
	}
	current.Name, current.Slug, current.Description = t.Name, t.Slug, t.Description
	current.UpdatedAt = r.s.now().UTC()
	r.rows[t.ID] = current
	return &current, nil
}

func (r *Terms) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	if len(r.postsOf(id, false)) > 0 {
		return false, fkViolation(string(r.kind))
	}
	delete(r.rows, id)
	return true, nil
}

// postsOf returns the posts linked to term id, newest first. Callers hold
// the lock.
func (r *Terms) postsOf(id uuid.UUID, visibleOnly bool) []models.Post {
	now := r.s.now()
	var out []models.Post
	for postID, termIDs := range r.links {
		if !contains(termIDs, id) {
			continue
		}
		p := r.s.posts[postID]
		if visibleOnly && (p.Status != models.PostStatusPublished || p.PublishedAt == nil || p.PublishedAt.After(now)) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// ---------------------------------------------------------------------------
// Services
// ---------------------------------------------------------------------------

// Services returns the service repository.
func (s *Store) Services() *Services { return &Services{s: s} }

// Services is an in-memory service repository.
type Services struct{ s *Store }

func (r *Services) List(_ context.Context, q store.ServiceQuery) ([]models.Service, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var items []models.Service
	for _, svc := range r.s.services {
		if q.Status != "" && svc.Status != q.Status {
			continue
		}
		items = append(items, svc)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].Title < items[j].Title
	})
	return window(items, q.Page), len(items), nil
}

func (r *Services) FindByID(_ context.Context, id uuid.UUID) (*models.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.services[id]
	if !ok {
		return nil, nil
	}
	return &svc, nil
}

func (r *Services) FindBySlug(_ context.Context, slug string) (*models.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, svc := range r.s.services {
		if svc.Slug == slug {
			return &svc, nil
		}
	}
	return nil, nil
}

func (r *Services) SlugOwner(_ context.Context, slug string) (uuid.UUID, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.SkipSlugCheck {
		return uuid.Nil, false, nil
	}
	for id, svc := range r.s.services {
		if svc.Slug == slug {
			return id, true, nil
		}
	}
	return uuid.Nil, false, nil
}

func (r *Services) Create(_ context.Context, svc *models.Service) (*models.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.services {
		if other.Slug == svc.Slug {
			return nil, uniqueViolation("services", svc.Slug)
		}
	}
	now := r.s.stamp()
	created := *svc
	created.ID = uuid.New()
	created.CreatedAt, created.UpdatedAt = now, now
	r.s.services[created.ID] = created
	return &created, nil
}

func (r *Services) Update(_ context.Context, svc *models.Service) (*models.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.services[svc.ID]
	if !ok {
		return nil, nil
	}
	for id, other := range r.s.services {
		if id != svc.ID && other.Slug == svc.Slug {
			return nil, uniqueViolation("services", svc.Slug)
		}
	}
	updated := *svc
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = r.s.now().UTC()
	r.s.services[svc.ID] = updated
	return &updated, nil
}

func (r *Services) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.services[id]; !ok {
		return false, nil
	}
	delete(r.s.services, id)
	return true, nil
}

// ---------------------------------------------------------------------------
// Careers
// ---------------------------------------------------------------------------

// Careers returns the career repository.
func (s *Store) Careers() *Careers { return &Careers{s: s} }

// Careers is an in-memory career repository.
type Careers struct{ s *Store }

func (r *Careers) List(_ context.Context, q store.CareerQuery) ([]models.Career, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var items []models.Career
	for _, c := range r.s.careers {
		if q.Status != "" && c.Status != q.Status {
			continue
		}
		if q.Type != "" && c.Type != q.Type {
			continue
		}
		if q.Location != "" && !containsFold(c.Location, q.Location) {
			continue
		}
		items = append(items, c)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return window(items, q.Page), len(items), nil
}

func (r *Careers) FindByID(_ context.Context, id uuid.UUID) (*models.Career, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.careers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *Careers) FindBySlug(_ context.Context, slug string) (*models.Career, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.careers {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *Careers) SlugOwner(_ context.Context, slug string) (uuid.UUID, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.SkipSlugCheck {
		return uuid.Nil, false, nil
	}
	for id, c := range r.s.careers {
		if c.Slug == slug {
			return id, true, nil
		}
	}
	return uuid.Nil, false, nil
}

func (r *Careers) Create(_ context.Context, c *models.Career) (*models.Career, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.careers {
		if other.Slug == c.Slug {
			return nil, uniqueViolation("careers", c.Slug)
		}
	}
	now := r.s.stamp()
	created := *c
	created.ID = uuid.New()
	created.CreatedAt, created.UpdatedAt = now, now
	r.s.careers[created.ID] = created
	return &created, nil
}

func (r *Careers) Update(_ context.Context, c *models.Career) (*models.Career, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.careers[c.ID]
	if !ok {
		return nil, nil
	}
	for id, other := range r.s.careers {
		if id != c.ID && other.Slug == c.Slug {
			return nil, uniqueViolation("careers", c.Slug)
		}
	}
	updated := *c
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = r.s.now().UTC()
	r.s.careers[c.ID] = updated
	return &updated, nil
}

func (r *Careers) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.careers[id]; !ok {
		return false, nil
	}
	delete(r.s.careers, id)
	return true, nil
}
