package roadmap

import (
	"errors"
	"net/http"

	"github.com/dnvishnu12/slot-booking-backend/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      List project titles
// @Tags         roadmaps
// @Produce      json
// @Param        email path string true "Owner email"
// @Success      200 {object} roadmap.ProjectsResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /projects/{email} [get]
func (h *Handler) ListProjects(c *gin.Context) {
	titles, err := h.service.ListProjects(c.Request.Context(), c.Param("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch projects"})
		return
	}

	c.JSON(http.StatusOK, ProjectsResponse{Projects: titles})
}

// @Summary      Save a roadmap
// @Description  Replaces the nodes and edges of an existing title or creates it
// @Tags         roadmaps
// @Accept       json
// @Produce      json
// @Param        request body roadmap.SaveRoadmapRequest true "Roadmap payload"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /roadmap/save [post]
func (h *Handler) SaveRoadmap(c *gin.Context) {
	var req SaveRoadmapRequest
	if !api.BindJSON(c, &req) {
		return
	}

	if err := h.service.SaveRoadmap(c.Request.Context(), req); err != nil {
		if errors.Is(err, ErrInvalidRoadmap) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to save roadmap"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Roadmap saved successfully"})
}

// @Summary      Fetch a roadmap
// @Tags         roadmaps
// @Produce      json
// @Param        email path string true "Owner email"
// @Param        projectTitle path string true "Project title"
// @Success      200 {object} roadmap.GraphResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /roadmap/fetch/{email}/{projectTitle} [get]
func (h *Handler) FetchRoadmap(c *gin.Context) {
	rm, err := h.service.FetchRoadmap(c.Request.Context(), c.Param("email"), c.Param("projectTitle"))
	if err != nil {
		if errors.Is(err, ErrRoadmapNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Roadmap not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch roadmap"})
		return
	}

	c.JSON(http.StatusOK, GraphResponse{Nodes: rm.Nodes, Edges: rm.Edges})
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/projects/:email", h.ListProjects)
	r.POST("/roadmap/save", h.SaveRoadmap)
	r.GET("/roadmap/fetch/:email/:projectTitle", h.FetchRoadmap)
}
