package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kamaukinuthia/irrigo-backend/api/responses"
	"github.com/kamaukinuthia/irrigo-backend/api/validators"
	blogsvc "github.com/kamaukinuthia/irrigo-backend/internal/blog"
	pkgerrors "github.com/kamaukinuthia/irrigo-backend/pkg/errors"
	"github.com/kamaukinuthia/irrigo-backend/pkg/logger"
)

// ListPosts handles the public blog index, published articles only.
func ListPosts(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := svc.List(r.Context(), true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, posts)
	}
}

// GetPostBySlug handles the public article view.
func GetPostBySlug(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		// Drafts are invisible on the public surface.
		if !post.IsPublished {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "blog post not found"))
			return
		}
		responses.WriteSuccess(w, post)
	}
}

// ListAllPosts handles the admin blog list, drafts included.
func ListAllPosts(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := svc.List(r.Context(), false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, posts)
	}
}

type createPostRequest struct {
	Title      string  `json:"title" validate:"required"`
	Slug       string  `json:"slug" validate:"required"`
	Excerpt    string  `json:"excerpt"`
	Content    string  `json:"content" validate:"required"`
	CoverImage *string `json:"cover_image,omitempty"`
	AuthorName string  `json:"author_name"`
	Publish    bool    `json:"publish"`
}

// CreatePost handles admin article creation.
func CreatePost(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createPostRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		post, err := svc.Create(r.Context(), blogsvc.CreateInput{
			Title:      payload.Title,
			Slug:       payload.Slug,
			Excerpt:    payload.Excerpt,
			Content:    payload.Content,
			CoverImage: payload.CoverImage,
			AuthorName: payload.AuthorName,
			Publish:    payload.Publish,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, post)
	}
}

type updatePostRequest struct {
	Title      *string `json:"title,omitempty"`
	Slug       *string `json:"slug,omitempty"`
	Excerpt    *string `json:"excerpt,omitempty"`
	Content    *string `json:"content,omitempty"`
	CoverImage *string `json:"cover_image,omitempty"`
	AuthorName *string `json:"author_name,omitempty"`
	Publish    *bool   `json:"publish,omitempty"`
}

// UpdatePost handles partial admin edits, including publish toggles.
func UpdatePost(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updatePostRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		post, err := svc.Update(r.Context(), id, blogsvc.UpdateInput{
			Title:      payload.Title,
			Slug:       payload.Slug,
			Excerpt:    payload.Excerpt,
			Content:    payload.Content,
			CoverImage: payload.CoverImage,
			AuthorName: payload.AuthorName,
			Publish:    payload.Publish,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, post)
	}
}

// DeletePost handles admin article removal.
func DeletePost(svc blogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
