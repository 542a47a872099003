package presentation

import (
	"github.com/zjrosen/pulsar/internal/domain/groups"
)

// GroupDTO represents one group and its subtree for presentation
type GroupDTO struct {
	ID          string      `json:"id"`
	ExternalID  string      `json:"external_id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Children    []*GroupDTO `json:"children"` // always present, empty for leaves
}

// ForestDTO represents a built forest with its build summary
type ForestDTO struct {
	Source   string      `json:"source,omitempty"`
	Total    int         `json:"total"`
	Roots    []*GroupDTO `json:"roots"`
	Dangling []string    `json:"dangling,omitempty"`
	Promoted []string    `json:"promoted,omitempty"`
}

func fromDomainGroup(g *groups.Group) *GroupDTO {
	return &GroupDTO{
		ID:          g.ID(),
		ExternalID:  g.ExternalID(),
		Name:        g.Name(),
		Description: g.Description(),
		Children:    make([]*GroupDTO, 0, len(g.Children())),
	}
}

// FromDomainGroups converts forest roots to DTOs, children in order.
func FromDomainGroups(roots []*groups.Group) []*GroupDTO {
	dtos := make([]*GroupDTO, 0, len(roots))
	// path[d] is the DTO most recently emitted at depth d.
	var path []*GroupDTO
	groups.Walk(roots, func(g *groups.Group, depth int) bool {
		dto := fromDomainGroup(g)
		path = append(path[:depth], dto)
		if depth == 0 {
			dtos = append(dtos, dto)
		} else {
			parent := path[depth-1]
			parent.Children = append(parent.Children, dto)
		}
		return true
	})
	return dtos
}

// FromDomainForest converts a built forest and its report to a DTO.
func FromDomainForest(source string, forest groups.Forest, report *groups.BuildReport) ForestDTO {
	roots := forest.Values()
	dto := ForestDTO{
		Source: source,
		Total:  groups.Count(roots),
		Roots:  FromDomainGroups(roots),
	}
	if report != nil {
		dto.Dangling = report.Dangling
		dto.Promoted = report.Promoted
	}
	return dto
}
