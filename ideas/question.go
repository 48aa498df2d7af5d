package ideas

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// QuestionRepository holds submitted questions in submission order
type QuestionRepository struct {
	mu        sync.RWMutex
	questions []*Question
	now       func() time.Time
}

// NewQuestionRepository creates an empty board; now defaults to time.Now
func NewQuestionRepository(now func() time.Time) *QuestionRepository {
	if now == nil {
		now = time.Now
	}
	return &QuestionRepository{now: now}
}

// Add files a new private, unanswered question
func (r *QuestionRepository) Add(content string, author User, anonymous bool) (Question, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Question{}, ErrEmptyText
	}
	q := &Question{
		ID:        uuid.NewString(),
		Content:   content,
		Author:    author,
		Anonymous: anonymous,
		CreatedAt: r.now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.questions = append(r.questions, q)
	return q.clone(), nil
}

// All returns every question in submission order
func (r *QuestionRepository) All() []Question {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Question, len(r.questions))
	for i, q := range r.questions {
		out[i] = q.clone()
	}
	return out
}

// Answered returns the public answered questions, most recent answer first
func (r *QuestionRepository) Answered() []Question {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Question
	for _, q := range r.questions {
		if q.Answered && q.Public {
			out = append(out, q.clone())
		}
	}
	slices.SortStableFunc(out, func(a, b Question) int {
		return cmp.Compare(answeredAt(b).UnixNano(), answeredAt(a).UnixNano())
	})
	return out
}

func answeredAt(q Question) time.Time {
	if q.Answer == nil {
		return time.Time{}
	}
	return q.Answer.AnsweredAt
}

// Answer records a reply; a non-empty reformulation replaces the displayed wording and publish
// makes the question public. An already public question stays public.
func (r *QuestionRepository) Answer(id, content, by, reformulated string, publish bool) (Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, q := range r.questions {
		if q.ID != id {
			continue
		}
		q.Answer = &Answer{Content: content, AnsweredAt: r.now().UTC(), AnsweredBy: by}
		q.Answered = true
		if reformulated != "" {
			q.Reformulated = reformulated
		}
		if publish {
			q.Public = true
		}
		return q.clone(), nil
	}
	return Question{}, fmt.Errorf("question %q: %w", id, ErrNotFound)
}
