// Package ideas holds the idea box data behind the network: ideas with their contributors, and
// the question/answer board. Repositories are in-memory and safe for concurrent use.
package ideas

import (
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrEmptyTitle  = errors.New("idea title is empty")
	ErrEmptyText   = errors.New("question content is empty")
	ErrUnknownSort = errors.New("unknown sort order")
)

// UserStatus is the author's standing in the school
type UserStatus string

const (
	StatusStudent UserStatus = "Student"
	StatusStaff   UserStatus = "Staff"
	StatusTeacher UserStatus = "Teacher"
)

// Role is how a contributor takes part in an idea
type Role string

const (
	RoleActor    Role = "Actor"
	RoleProposer Role = "Proposer"
	RoleDriver   Role = "Moteur"
)

// ParseRole accepts the role names case-insensitively; "driver" is an alias for Moteur
func ParseRole(s string) (Role, bool) {
	switch lower(s) {
	case "actor":
		return RoleActor, true
	case "proposer":
		return RoleProposer, true
	case "moteur", "driver":
		return RoleDriver, true
	}
	return "", false
}

// Progress is the lifecycle state of an idea
type Progress string

const (
	ProgressProposed   Progress = "Proposed"
	ProgressInProgress Progress = "In Progress"
	ProgressCompleted  Progress = "Completed"
)

type User struct {
	ID        string     `toml:"id"`
	FirstName string     `toml:"first_name"`
	LastName  string     `toml:"last_name"`
	Status    UserStatus `toml:"status"`
	Email     string     `toml:"email,omitempty"`
}

// DisplayName joins the non-empty name parts
func (u User) DisplayName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type Contributor struct {
	User User
	Role Role
}

type Idea struct {
	ID           string
	Title        string
	Description  string
	Author       User
	Anonymous    bool
	Tags         []string
	CreatedAt    time.Time
	Contributors []Contributor
	Progress     Progress
}

// AuthorName hides the author of anonymous ideas
func (i Idea) AuthorName() string {
	if i.Anonymous {
		return "Anonymous"
	}
	return i.Author.DisplayName()
}

// clone copies the slices so callers cannot reach repository state
func (i Idea) clone() Idea {
	i.Tags = append([]string(nil), i.Tags...)
	i.Contributors = append([]Contributor(nil), i.Contributors...)
	return i
}

// NewIdea is the submission form
type NewIdea struct {
	Title         string
	Description   string
	Author        User
	Anonymous     bool
	Tags          []string
	Participation Role
}

type Answer struct {
	Content    string
	AnsweredAt time.Time
	AnsweredBy string
}

type Question struct {
	ID           string
	Content      string
	Reformulated string
	Author       User
	Anonymous    bool
	CreatedAt    time.Time
	Public       bool
	Answer       *Answer
	Answered     bool
}

// Display is the reformulated wording when there is one
func (q Question) Display() string {
	if q.Reformulated != "" {
		return q.Reformulated
	}
	return q.Content
}

func (q Question) clone() Question {
	if q.Answer != nil {
		a := *q.Answer
		q.Answer = &a
	}
	return q
}
