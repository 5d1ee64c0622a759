package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/devenkumar1/Portfolio-app/internal/auth"
	"github.com/devenkumar1/Portfolio-app/internal/portfolio"
)

// actorID identifies the admin behind a mutation for the audit trail. The
// guard has already verified the role; missing claims means a test calling
// the handler directly.
func actorID(r *http.Request) string {
	if c, ok := auth.FromContext(r.Context()); ok {
		return c.Sub
	}
	return "unknown"
}

// crudOps adapts one content collection to the shared admin handler.
type crudOps[T any] struct {
	name   string // audit action prefix, e.g. "project"
	list   func(ctx context.Context) ([]T, error)
	create func(ctx context.Context, v *T) error
	update func(ctx context.Context, id string, v *T) (*T, error)
	remove func(ctx context.Context, id string) error
}

func crudHandler[T any](s *Server, ops crudOps[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			items, err := ops.list(r.Context())
			if err != nil {
				s.logger.Printf("%s list: %v", ops.name, err)
				writeErr(w, http.StatusInternalServerError, "internal error")
				return
			}
			if items == nil {
				items = []T{}
			}
			writeJSON(w, map[string]any{"success": true, "items": items})

		case http.MethodPost:
			var v T
			if err := decodeBody(r, &v); err != nil {
				writeErr(w, http.StatusBadRequest, "invalid JSON body")
				return
			}
			if err := ops.create(r.Context(), &v); err != nil {
				s.logger.Printf("%s create: %v", ops.name, err)
				writeErr(w, http.StatusInternalServerError, "internal error")
				return
			}
			s.trail.Record(actorID(r), ops.name+".create", "")
			writeJSONStatus(w, http.StatusCreated, map[string]any{"success": true, "item": v})

		case http.MethodPut:
			id := r.URL.Query().Get("id")
			if id == "" {
				writeErr(w, http.StatusBadRequest, "id is required")
				return
			}
			var v T
			if err := decodeBody(r, &v); err != nil {
				writeErr(w, http.StatusBadRequest, "invalid JSON body")
				return
			}
			updated, err := ops.update(r.Context(), id, &v)
			if errors.Is(err, portfolio.ErrNotFound) {
				writeErr(w, http.StatusNotFound, "not found")
				return
			}
			if err != nil {
				s.logger.Printf("%s update: %v", ops.name, err)
				writeErr(w, http.StatusInternalServerError, "internal error")
				return
			}
			s.trail.Record(actorID(r), ops.name+".update", "id="+id)
			writeJSON(w, map[string]any{"success": true, "item": updated})

		case http.MethodDelete:
			id := r.URL.Query().Get("id")
			if id == "" {
				writeErr(w, http.StatusBadRequest, "id is required")
				return
			}
			err := ops.remove(r.Context(), id)
			if errors.Is(err, portfolio.ErrNotFound) {
				writeErr(w, http.StatusNotFound, "not found")
				return
			}
			if err != nil {
				s.logger.Printf("%s delete: %v", ops.name, err)
				writeErr(w, http.StatusInternalServerError, "internal error")
				return
			}
			s.trail.Record(actorID(r), ops.name+".delete", "id="+id)
			writeJSON(w, map[string]any{"success": true})

		default:
			writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	}
}

// singletonHandler serves Bio and Contact: GET returns the one document
// (null when unset), PUT replaces it.
func singletonHandler[T any](s *Server, name string,
	get func(ctx context.Context) (*T, error),
	upsert func(ctx context.Context, v *T) (*T, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			v, err := get(r.Context())
			if errors.Is(err, portfolio.ErrNotFound) {
				writeJSON(w, map[string]any{"success": true, "item": nil})
				return
			}
			if err != nil {
				s.logger.Printf("%s get: %v", name, err)
				writeErr(w, http.StatusInternalServerError, "internal error")
				return
			}
			writeJSON(w, map[string]any{"success": true, "item": v})

		case http.MethodPut, http.MethodPost:
			var v T
			if err := decodeBody(r, &v); err != nil {
				writeErr(w, http.StatusBadRequest, "invalid JSON body")
				return
			}
			saved, err := upsert(r.Context(), &v)
			if err != nil {
				s.logger.Printf("%s upsert: %v", name, err)
				writeErr(w, http.StatusInternalServerError, "internal error")
				return
			}
			s.trail.Record(actorID(r), name+".upsert", "")
			writeJSON(w, map[string]any{"success": true, "item": saved})

		default:
			writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	}
}

func (s *Server) handleBio(w http.ResponseWriter, r *http.Request) {
	singletonHandler(s, "bio", s.content.Bio, s.content.UpsertBio)(w, r)
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	singletonHandler(s, "contact", s.content.Contact, s.content.UpsertContact)(w, r)
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	crudHandler(s, crudOps[portfolio.Project]{
		name:   "project",
		list:   s.content.Projects,
		create: s.content.CreateProject,
		update: s.content.UpdateProject,
		remove: s.content.DeleteProject,
	})(w, r)
}

func (s *Server) handleSkill(w http.ResponseWriter, r *http.Request) {
	crudHandler(s, crudOps[portfolio.Skill]{
		name:   "skill",
		list:   s.content.Skills,
		create: s.content.CreateSkill,
		update: s.content.UpdateSkill,
		remove: s.content.DeleteSkill,
	})(w, r)
}

func (s *Server) handleExperience(w http.ResponseWriter, r *http.Request) {
	crudHandler(s, crudOps[portfolio.Experience]{
		name:   "experience",
		list:   s.content.Experiences,
		create: s.content.CreateExperience,
		update: s.content.UpdateExperience,
		remove: s.content.DeleteExperience,
	})(w, r)
}

func (s *Server) handleEducation(w http.ResponseWriter, r *http.Request) {
	crudHandler(s, crudOps[portfolio.Education]{
		name:   "education",
		list:   s.content.Educations,
		create: s.content.CreateEducation,
		update: s.content.UpdateEducation,
		remove: s.content.DeleteEducation,
	})(w, r)
}

func (s *Server) handleAchievement(w http.ResponseWriter, r *http.Request) {
	crudHandler(s, crudOps[portfolio.Achievement]{
		name:   "achievement",
		list:   s.content.Achievements,
		create: s.content.CreateAchievement,
		update: s.content.UpdateAchievement,
		remove: s.content.DeleteAchievement,
	})(w, r)
}

func (s *Server) handleCertificate(w http.ResponseWriter, r *http.Request) {
	crudHandler(s, crudOps[portfolio.Certificate]{
		name:   "certificate",
		list:   s.content.Certificates,
		create: s.content.CreateCertificate,
		update: s.content.UpdateCertificate,
		remove: s.content.DeleteCertificate,
	})(w, r)
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if err := s.trail.Verify(); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]any{"success": true, "entries": s.trail.Entries()})
}
