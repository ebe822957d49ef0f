package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sagarc03/endpoint"
	endpointhttp "github.com/sagarc03/endpoint/http"
)

const (
	roleMember    endpoint.Role = 1
	roleModerator endpoint.Role = 5
)

type noteInput struct {
	Title string   `json:"title" validate:"required,max=200"`
	Body  string   `json:"body" validate:"max=10000"`
	Tags  []string `json:"tags" validate:"max=10,dive,required,max=32"`
}

type notePatch struct {
	Title *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Body  *string  `json:"body" validate:"omitempty,max=10000"`
	Tags  []string `json:"tags" validate:"omitempty,max=10,dive,required,max=32"`
}

type note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags,omitempty"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type noteStore struct {
	mu    sync.RWMutex
	notes map[string]note
}

func newNoteStore() *noteStore {
	return &noteStore{notes: make(map[string]note)}
}

func (s *noteStore) list(tag string) []note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]note, 0, len(s.notes))
	for _, n := range s.notes {
		if tag == "" || slices.Contains(n.Tags, tag) {
			out = append(out, n)
		}
	}
	slices.SortFunc(out, func(a, b note) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out
}

func (s *noteStore) get(id string) (note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notes[id]
	return n, ok
}

func (s *noteStore) put(n note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[n.ID] = n
}

func (s *noteStore) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.notes[id]
	delete(s.notes, id)
	return ok
}

type notesAPI struct {
	store *noteStore
	now   func() time.Time
}

func newRoutes(auth endpointhttp.Authenticator, opts ...endpointhttp.Option) ([]endpointhttp.Route, error) {
	api := &notesAPI{store: newNoteStore(), now: time.Now}

	whoami, err := endpointhttp.New(nil, auth, opts...)
	if err != nil {
		return nil, err
	}

	notes, err := endpointhttp.New(map[string]endpointhttp.MethodConfig{
		http.MethodGet:  {Role: endpoint.Anonymous},
		http.MethodPost: {Role: roleMember, Body: endpointhttp.JSONBody{Schema: endpoint.NewStructSchema[noteInput]()}},
	}, auth, opts...)
	if err != nil {
		return nil, err
	}

	noteByID, err := endpointhttp.New(map[string]endpointhttp.MethodConfig{
		http.MethodGet:    {Role: endpoint.Anonymous},
		http.MethodPut:    {Role: roleMember, Body: endpointhttp.JSONBody{Schema: endpoint.NewStructSchema[noteInput]()}},
		http.MethodPatch:  {Role: roleMember, Body: endpointhttp.JSONBody{Schema: endpoint.NewStructSchema[notePatch]()}},
		http.MethodDelete: {Role: roleModerator},
	}, auth, opts...)
	if err != nil {
		return nil, err
	}

	feedback, err := endpointhttp.New(map[string]endpointhttp.MethodConfig{
		http.MethodPost: {Role: endpoint.Anonymous, Body: endpointhttp.FormBody{}},
	}, auth, opts...)
	if err != nil {
		return nil, err
	}

	err = errors.Join(
		whoami.Register(http.MethodGet, api.whoami),
		notes.Register(http.MethodGet, api.list),
		notes.Register(http.MethodPost, api.create),
		noteByID.Register(http.MethodGet, api.get),
		noteByID.Register(http.MethodPut, api.replace),
		noteByID.Register(http.MethodPatch, api.update),
		noteByID.Register(http.MethodDelete, api.remove),
		feedback.Register(http.MethodPost, api.feedback),
	)
	if err != nil {
		return nil, fmt.Errorf("register handlers: %w", err)
	}

	return []endpointhttp.Route{
		{Pattern: "/whoami", Dispatcher: whoami},
		{Pattern: "/notes", Dispatcher: notes},
		{Pattern: "/notes/{id}", Dispatcher: noteByID},
		{Pattern: "/feedback", Dispatcher: feedback},
	}, nil
}

func (a *notesAPI) whoami(_ context.Context, _ *endpointhttp.RequestContext, user endpoint.UserData) (endpointhttp.Response, error) {
	return endpointhttp.JSON(http.StatusOK, user), nil
}

func (a *notesAPI) list(_ context.Context, rc *endpointhttp.RequestContext, _ endpoint.UserData) (endpointhttp.Response, error) {
	return endpointhttp.JSON(http.StatusOK, a.store.list(rc.Query.Get("tag"))), nil
}

func (a *notesAPI) create(_ context.Context, rc *endpointhttp.RequestContext, user endpoint.UserData) (endpointhttp.Response, error) {
	in, ok := rc.Body.(noteInput)
	if !ok {
		return nil, fmt.Errorf("create note: missing body: %w", endpoint.ErrBadRequest)
	}

	now := a.now().UTC()
	n := note{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Body:      in.Body,
		Tags:      in.Tags,
		Author:    user.Username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	a.store.put(n)

	return endpointhttp.JSON(http.StatusCreated, n), nil
}

func (a *notesAPI) get(_ context.Context, rc *endpointhttp.RequestContext, _ endpoint.UserData) (endpointhttp.Response, error) {
	n, ok := a.store.get(rc.Param("id"))
	if !ok {
		return endpointhttp.Error(http.StatusNotFound, "not_found", "Note not found"), nil
	}
	return endpointhttp.JSON(http.StatusOK, n), nil
}

func (a *notesAPI) replace(_ context.Context, rc *endpointhttp.RequestContext, user endpoint.UserData) (endpointhttp.Response, error) {
	in, ok := rc.Body.(noteInput)
	if !ok {
		return nil, fmt.Errorf("replace note: missing body: %w", endpoint.ErrBadRequest)
	}

	n, found := a.store.get(rc.Param("id"))
	if !found {
		return endpointhttp.Error(http.StatusNotFound, "not_found", "Note not found"), nil
	}
	if err := canEdit(n, user); err != nil {
		return nil, err
	}

	n.Title, n.Body, n.Tags = in.Title, in.Body, in.Tags
	n.UpdatedAt = a.now().UTC()
	a.store.put(n)

	return endpointhttp.JSON(http.StatusOK, n), nil
}

func (a *notesAPI) update(_ context.Context, rc *endpointhttp.RequestContext, user endpoint.UserData) (endpointhttp.Response, error) {
	patch, ok := rc.Body.(notePatch)
	if !ok {
		return nil, fmt.Errorf("update note: missing body: %w", endpoint.ErrBadRequest)
	}

	n, found := a.store.get(rc.Param("id"))
	if !found {
		return endpointhttp.Error(http.StatusNotFound, "not_found", "Note not found"), nil
	}
	if err := canEdit(n, user); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Body != nil {
		n.Body = *patch.Body
	}
	if patch.Tags != nil {
		n.Tags = patch.Tags
	}
	n.UpdatedAt = a.now().UTC()
	a.store.put(n)

	return endpointhttp.JSON(http.StatusOK, n), nil
}

func (a *notesAPI) remove(_ context.Context, rc *endpointhttp.RequestContext, _ endpoint.UserData) (endpointhttp.Response, error) {
	if !a.store.delete(rc.Param("id")) {
		return endpointhttp.Error(http.StatusNotFound, "not_found", "Note not found"), nil
	}
	return endpointhttp.NoContent(), nil
}

func (a *notesAPI) feedback(_ context.Context, rc *endpointhttp.RequestContext, user endpoint.UserData) (endpointhttp.Response, error) {
	form, _ := rc.Body.(url.Values)
	message := strings.TrimSpace(form.Get("message"))
	if message == "" {
		return nil, fmt.Errorf("feedback: empty message: %w", endpoint.ErrBadRequest)
	}

	from := user.Username
	if user.IsAnonymous() {
		from = "anonymous"
	}

	return endpointhttp.JSON(http.StatusAccepted, map[string]any{
		"received": len(message),
		"from":     from,
	}), nil
}

// canEdit lets authors edit their own notes and moderators edit any note.
func canEdit(n note, user endpoint.UserData) error {
	if user.IsAnonymous() {
		return fmt.Errorf("edit note %s: %w", n.ID, endpoint.ErrForbidden)
	}
	if n.Author == user.Username || user.Role >= roleModerator {
		return nil
	}
	return fmt.Errorf("note %s belongs to %s: %w", n.ID, n.Author, endpoint.ErrForbidden)
}
