// Package jsstest provides an in-memory jss.Repository for tests.
package jsstest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/jss"
)

// Repository is an in-memory object store. Objects are copied on the
// way in and out so callers cannot mutate stored state.
type Repository struct {
	mu      sync.Mutex
	objects map[string]map[int]*jss.Object

	// SaveErr, if set, is returned by every Save.
	SaveErr error
	// Saved records every object passed to a successful Save.
	Saved []*jss.Object
	// Gets counts calls to Get.
	Gets int
}

var _ jss.Repository = (*Repository)(nil)

// New returns an empty repository.
func New() *Repository {
	return &Repository{objects: map[string]map[int]*jss.Object{}}
}

// Add stores an object parsed from XML and returns it.
func (r *Repository) Add(t jss.Type, xml string) *jss.Object {
	obj := jss.MustParseObject(t, xml)
	r.put(obj)
	return obj
}

// AddPackage stores a package with just an id and filename.
func (r *Repository) AddPackage(id int, filename string) {
	r.Add(jss.Package, fmt.Sprintf("<package><id>%d</id><name>%s</name></package>", id, filename))
}

func (r *Repository) put(obj *jss.Object) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byID, ok := r.objects[obj.Type.Path]
	if !ok {
		byID = map[int]*jss.Object{}
		r.objects[obj.Type.Path] = byID
	}
	byID[obj.ID()] = obj.Copy()
}

// List returns summaries ordered by id.
func (r *Repository) List(_ context.Context, t jss.Type) ([]jss.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []jss.Summary
	for _, obj := range r.objects[t.Path] {
		result = append(result, obj.Summary())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Get finds an object by id or exact name.
func (r *Repository) Get(_ context.Context, t jss.Type, sel jss.Selector) (*jss.Object, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Gets++
	for _, obj := range r.objects[t.Path] {
		if (sel.ID != 0 && obj.ID() == sel.ID) || (sel.ID == 0 && sel.Name != "" && obj.Name() == sel.Name) {
			return obj.Copy(), nil
		}
	}
	return nil, fmt.Errorf("%s %s: %w", t, sel, jss.ErrNotFound)
}

// Save stores the object unless SaveErr is set.
func (r *Repository) Save(_ context.Context, obj *jss.Object) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.put(obj)
	r.mu.Lock()
	r.Saved = append(r.Saved, obj.Copy())
	r.mu.Unlock()
	return nil
}

// Stored returns the current copy of an object, or nil.
func (r *Repository) Stored(t jss.Type, id int) *jss.Object {
	r.mu.Lock()
	defer r.mu.Unlock()
	obj, ok := r.objects[t.Path][id]
	if !ok {
		return nil
	}
	return obj.Copy()
}
