package ideas

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed seed.toml
var defaultSeed string

type seedFile struct {
	Ideas     []seedIdea     `toml:"ideas"`
	Questions []seedQuestion `toml:"questions"`
}

type seedIdea struct {
	ID          string    `toml:"id"`
	Title       string    `toml:"title"`
	Description string    `toml:"description"`
	Author      User      `toml:"author"`
	Anonymous   bool      `toml:"anonymous"`
	Tags        []string  `toml:"tags"`
	CreatedAt   time.Time `toml:"created_at"`
	Progress    Progress  `toml:"progress"`
}

type seedQuestion struct {
	ID           string      `toml:"id"`
	Content      string      `toml:"content"`
	Reformulated string      `toml:"reformulated"`
	Author       User        `toml:"author"`
	Anonymous    bool        `toml:"anonymous"`
	CreatedAt    time.Time   `toml:"created_at"`
	Public       bool        `toml:"public"`
	Answer       *seedAnswer `toml:"answer"`
}

type seedAnswer struct {
	Content    string    `toml:"content"`
	AnsweredAt time.Time `toml:"answered_at"`
	AnsweredBy string    `toml:"answered_by"`
}

// SeedDefault loads the built-in idea box content
func SeedDefault(ideas *IdeaRepository, questions *QuestionRepository) error {
	return seed(defaultSeed, ideas, questions)
}

// SeedFile loads seed content from a TOML file at path
func SeedFile(path string, ideas *IdeaRepository, questions *QuestionRepository) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read seed: %w", err)
	}
	return seed(string(data), ideas, questions)
}

// seed keeps the ids and dates from the file; ideas without a date get the repository clock
func seed(data string, ideas *IdeaRepository, questions *QuestionRepository) error {
	var sf seedFile
	if _, err := toml.Decode(data, &sf); err != nil {
		return fmt.Errorf("decode seed: %w", err)
	}

	if ideas != nil {
		ideas.mu.Lock()
		for i, s := range sf.Ideas {
			if s.Title == "" {
				ideas.mu.Unlock()
				return fmt.Errorf("seed idea %d: %w", i, ErrEmptyTitle)
			}
			idea := &Idea{
				ID:          s.ID,
				Title:       s.Title,
				Description: s.Description,
				Author:      s.Author,
				Anonymous:   s.Anonymous,
				Tags:        s.Tags,
				CreatedAt:   s.CreatedAt.UTC(),
				Progress:    s.Progress,
			}
			if idea.ID == "" {
				idea.ID = fmt.Sprintf("seed-%d", i+1)
			}
			if idea.CreatedAt.IsZero() {
				idea.CreatedAt = ideas.now().UTC()
			}
			if idea.Progress == "" {
				idea.Progress = ProgressProposed
			}
			ideas.insert(idea)
		}
		ideas.mu.Unlock()
	}

	if questions != nil {
		questions.mu.Lock()
		defer questions.mu.Unlock()
		for i, s := range sf.Questions {
			q := &Question{
				ID:           s.ID,
				Content:      s.Content,
				Reformulated: s.Reformulated,
				Author:       s.Author,
				Anonymous:    s.Anonymous,
				CreatedAt:    s.CreatedAt.UTC(),
				Public:       s.Public,
			}
			if q.ID == "" {
				q.ID = fmt.Sprintf("seed-q%d", i+1)
			}
			if s.Answer != nil {
				q.Answer = &Answer{Content: s.Answer.Content, AnsweredAt: s.Answer.AnsweredAt.UTC(), AnsweredBy: s.Answer.AnsweredBy}
				q.Answered = true
			}
			questions.questions = append(questions.questions, q)
		}
	}
	return nil
}
