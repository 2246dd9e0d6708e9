package roadmap

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrRoadmapNotFound = errors.New("roadmap not found")
	ErrInvalidRoadmap  = errors.New("invalid roadmap")
	ErrStorage         = errors.New("storage failure")
)

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// Item is one free-form node or edge as sent by the editor.
type Item = map[string]interface{}

// Roadmap is a named graph owned by an email address. Titles are unique per
// email.
type Roadmap struct {
	Email     string    `json:"email"`
	Title     string    `json:"title"`
	Nodes     []Item    `json:"nodes"`
	Edges     []Item    `json:"edges"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SaveRoadmapRequest struct {
	UserEmail    string `json:"userEmail" binding:"required,email"`
	ProjectTitle string `json:"projectTitle" binding:"required,max=256"`
	Nodes        []Item `json:"nodes" binding:"required"`
	Edges        []Item `json:"edges" binding:"required"`
}

type ProjectsResponse struct {
	Projects []string `json:"projects"`
}

type GraphResponse struct {
	Nodes []Item `json:"nodes"`
	Edges []Item `json:"edges"`
}
