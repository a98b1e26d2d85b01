// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"github.com/drinkingsweets/avito-tech/internal/api"
	"github.com/drinkingsweets/avito-tech/internal/entities"
)

// FromAPITeam builds an entities.Team from transport DTO.
func FromAPITeam(src api.Team) entities.Team {
	members := make([]entities.User, 0, len(src.Members))
	for _, m := range src.Members {
		members = append(members, entities.User{
			ID:       m.UserID,
			Username: m.Username,
			TeamName: src.TeamName,
			IsActive: m.IsActive,
		})
	}

	return entities.Team{
		Name:    src.TeamName,
		Members: members,
	}
}

// ToAPITeam maps entities.Team to transport model.
func ToAPITeam(team entities.Team) api.Team {
	members := make([]api.TeamMember, 0, len(team.Members))
	for _, m := range team.Members {
		members = append(members, api.TeamMember{
			UserID:   m.ID,
			Username: m.Username,
			IsActive: m.IsActive,
		})
	}

	return api.Team{
		TeamName: team.Name,
		Members:  members,
	}
}

// ToAPIUser maps entities.User to transport model.
func ToAPIUser(u entities.User) api.User {
	return api.User{
		UserID:   u.ID,
		Username: u.Username,
		TeamName: u.TeamName,
		IsActive: u.IsActive,
	}
}

// ToAPIUserList maps a slice of entities.User to transport slice.
func ToAPIUserList(list []entities.User) []api.User {
	res := make([]api.User, 0, len(list))
	for _, u := range list {
		res = append(res, ToAPIUser(u))
	}
	return res
}

// ToAPIPull maps entities.PullRequest to transport model.
func ToAPIPull(pr entities.PullRequest) api.PullRequest {
	reviewers := make([]string, len(pr.Reviewers))
	copy(reviewers, pr.Reviewers)

	return api.PullRequest{
		PullRequestID:   pr.ID,
		PullRequestName: pr.Name,
		AuthorID:        pr.AuthorID,
		Status:          string(pr.Status),
		Reviewers:       reviewers,
		CreatedAt:       pr.CreatedAt,
		MergedAt:        pr.MergedAt,
	}
}

// ToAPIPullShort maps entities.PullRequestShort to transport model.
func ToAPIPullShort(pr entities.PullRequestShort) api.PullRequestShort {
	return api.PullRequestShort{
		PullRequestID:   pr.ID,
		PullRequestName: pr.Name,
		AuthorID:        pr.AuthorID,
		Status:          string(pr.Status),
	}
}

// ToAPIPullShortList maps a slice of entities.PullRequestShort to transport slice.
func ToAPIPullShortList(list []entities.PullRequestShort) []api.PullRequestShort {
	res := make([]api.PullRequestShort, 0, len(list))
	for _, pr := range list {
		res = append(res, ToAPIPullShort(pr))
	}
	return res
}
