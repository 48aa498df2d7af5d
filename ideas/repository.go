package ideas

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/btree"
)

// Sort orders for List
type Sort string

const (
	SortDate    Sort = "date" // newest first
	SortDateAsc Sort = "date_asc"
	SortTitle   Sort = "title"
)

// ParseSort maps a sort name to a Sort; empty selects SortDate
func ParseSort(s string) (Sort, error) {
	switch Sort(lower(s)) {
	case "", SortDate:
		return SortDate, nil
	case SortDateAsc:
		return SortDateAsc, nil
	case SortTitle:
		return SortTitle, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSort, s)
}

// Query filters and orders List results; zero value lists everything newest first
type Query struct {
	Search string // case-insensitive substring over title, description, author names and tags
	Tag    string // exact tag match
	Sort   Sort
}

// dateKey orders the date index; the id breaks ties between ideas created at the same instant
type dateKey struct {
	at time.Time
	id string
}

func dateLess(a, b dateKey) bool {
	if c := a.at.Compare(b.at); c != 0 {
		return c < 0
	}
	return a.id < b.id
}

// IdeaRepository stores ideas in memory with a creation-date index
type IdeaRepository struct {
	mu     sync.RWMutex
	byID   map[string]*Idea
	byDate *btree.BTreeG[dateKey]
	now    func() time.Time
}

// NewIdeaRepository creates an empty repository; now defaults to time.Now
func NewIdeaRepository(now func() time.Time) *IdeaRepository {
	if now == nil {
		now = time.Now
	}
	return &IdeaRepository{
		byID:   make(map[string]*Idea),
		byDate: btree.NewBTreeG[dateKey](dateLess),
		now:    now,
	}
}

// Add stores a submission; the author becomes the first contributor with the chosen participation
func (r *IdeaRepository) Add(n NewIdea) (Idea, error) {
	title := strings.TrimSpace(n.Title)
	if title == "" {
		return Idea{}, ErrEmptyTitle
	}
	role := n.Participation
	if role == "" {
		role = RoleProposer
	}
	idea := &Idea{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  n.Description,
		Author:       n.Author,
		Anonymous:    n.Anonymous,
		Tags:         append([]string(nil), n.Tags...),
		CreatedAt:    r.now().UTC(),
		Contributors: []Contributor{{User: n.Author, Role: role}},
		Progress:     ProgressProposed,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.insert(idea)
	return idea.clone(), nil
}

// insert indexes an idea; caller holds the write lock
func (r *IdeaRepository) insert(idea *Idea) {
	if old, ok := r.byID[idea.ID]; ok {
		r.byDate.Delete(dateKey{old.CreatedAt, old.ID})
	}
	r.byID[idea.ID] = idea
	r.byDate.Set(dateKey{idea.CreatedAt, idea.ID})
}

// Get returns a copy of the idea with id
func (r *IdeaRepository) Get(id string) (Idea, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idea, ok := r.byID[id]
	if !ok {
		return Idea{}, fmt.Errorf("idea %q: %w", id, ErrNotFound)
	}
	return idea.clone(), nil
}

// Len returns the number of stored ideas
func (r *IdeaRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// List returns the ideas matching q in q.Sort order
func (r *IdeaRepository) List(q Query) ([]Idea, error) {
	order, err := ParseSort(string(q.Sort))
	if err != nil {
		return nil, err
	}
	term := lower(q.Search)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Idea, 0, len(r.byID))
	visit := func(k dateKey) bool {
		idea := r.byID[k.id]
		if matches(idea, term, q.Tag) {
			out = append(out, idea.clone())
		}
		return true
	}
	if order == SortDateAsc {
		r.byDate.Scan(visit)
	} else {
		r.byDate.Reverse(visit)
	}

	if order == SortTitle {
		slices.SortStableFunc(out, func(a, b Idea) int {
			return cmp.Compare(lower(a.Title), lower(b.Title))
		})
	}
	return out, nil
}

func matches(idea *Idea, term, tag string) bool {
	if tag != "" && !slices.Contains(idea.Tags, tag) {
		return false
	}
	if term == "" {
		return true
	}
	if strings.Contains(lower(idea.Title), term) ||
		strings.Contains(lower(idea.Description), term) ||
		strings.Contains(lower(idea.Author.FirstName), term) ||
		strings.Contains(lower(idea.Author.LastName), term) {
		return true
	}
	return slices.ContainsFunc(idea.Tags, func(t string) bool {
		return strings.Contains(lower(t), term)
	})
}

// Tags returns every tag in use, in order of first appearance by creation date
func (r *IdeaRepository) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var tags []string
	r.byDate.Scan(func(k dateKey) bool {
		for _, t := range r.byID[k.id].Tags {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				tags = append(tags, t)
			}
		}
		return true
	})
	return tags
}

// Titles returns idea titles newest first, used as node labels
func (r *IdeaRepository) Titles() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	titles := make([]string, 0, len(r.byID))
	r.byDate.Reverse(func(k dateKey) bool {
		titles = append(titles, r.byID[k.id].Title)
		return true
	})
	return titles
}

// AddContributor joins user to an idea, or changes the role of an existing contributor
func (r *IdeaRepository) AddContributor(id string, user User, role Role) (Idea, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idea, ok := r.byID[id]
	if !ok {
		return Idea{}, fmt.Errorf("idea %q: %w", id, ErrNotFound)
	}
	for i := range idea.Contributors {
		if idea.Contributors[i].User.ID == user.ID {
			idea.Contributors[i].Role = role
			return idea.clone(), nil
		}
	}
	idea.Contributors = append(idea.Contributors, Contributor{User: user, Role: role})
	return idea.clone(), nil
}

// SetProgress moves an idea along its lifecycle
func (r *IdeaRepository) SetProgress(id string, p Progress) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idea, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("idea %q: %w", id, ErrNotFound)
	}
	idea.Progress = p
	return nil
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
