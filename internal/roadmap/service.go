package roadmap

import (
	"context"
	"fmt"
	"strings"

	"github.com/dnvishnu12/slot-booking-backend/internal/logger"
	"github.com/dnvishnu12/slot-booking-backend/internal/metrics"
)

type Service interface {
	ListProjects(ctx context.Context, email string) ([]string, error)
	SaveRoadmap(ctx context.Context, req SaveRoadmapRequest) error
	FetchRoadmap(ctx context.Context, email, title string) (*Roadmap, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListProjects(ctx context.Context, email string) ([]string, error) {
	return s.repo.ListTitles(ctx, email)
}

func (s *service) SaveRoadmap(ctx context.Context, req SaveRoadmapRequest) error {
	email := strings.TrimSpace(req.UserEmail)
	title := strings.TrimSpace(req.ProjectTitle)
	if email == "" || title == "" {
		return fmt.Errorf("%w: userEmail and projectTitle are required", ErrInvalidRoadmap)
	}

	created, err := s.repo.Save(ctx, &Roadmap{
		Email: email,
		Title: title,
		Nodes: req.Nodes,
		Edges: req.Edges,
	})
	if err != nil {
		return err
	}

	result := "updated"
	if created {
		result = "created"
	}
	metrics.RecordRoadmapSave(result)
	logger.Info("roadmap saved", "email", email, "title", title, "result", result)

	return nil
}

func (s *service) FetchRoadmap(ctx context.Context, email, title string) (*Roadmap, error) {
	return s.repo.Get(ctx, email, title)
}
