// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"morphecms/internal/content"
	"morphecms/internal/models"
)

// ListPosts lists posts of every status, newest first. Accepts ?status=.
func (a *Admin) ListPosts(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	filter := content.PostFilter{Status: models.PostStatus(r.URL.Query().Get("status"))}
	page, err := a.Posts.List(r.Context(), filter, req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	respondPage(w, r, page)
}

// GetPost returns a post by id.
func (a *Admin) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "post")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	post, err := a.Posts.Get(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, post)
}

// CreatePost creates a post authored by the caller.
func (a *Admin) CreatePost(w http.ResponseWriter, r *http.Request) {
	var in content.CreatePostInput
	if err := decode(w, r, &in); err != nil {
		a.fail(w, r, err)
		return
	}
	post, err := a.Posts.Create(r.Context(), principal(r), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.changed(r, "post", "created")
	respond(w, r, http.StatusCreated, post)
}

// UpdatePost applies a partial update to a post.
func (a *Admin) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "post")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var in content.UpdatePostInput
	if err := decode(w, r, &in); err != nil {
		a.fail(w, r, err)
		return
	}
	post, err := a.Posts.Update(r.Context(), principal(r), id, in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.changed(r, "post", "updated")
	respond(w, r, http.StatusOK, post)
}

// DeletePost removes a post and its taxonomy links.
func (a *Admin) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "post")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.Posts.Delete(r.Context(), principal(r), id); err != nil {
		a.fail(w, r, err)
		return
	}
	a.changed(r, "post", "deleted")
	respondMessage(w, r, "Post deleted successfully")
}
