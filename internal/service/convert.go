package service

import (
	"github.com/mmynk/familytable/internal/api"
	"github.com/mmynk/familytable/internal/models"
)

func toUser(u *models.User) *api.User {
	out := &api.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Nickname:  u.Nickname,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
	if u.Membership != nil {
		out.FamilyID = u.FamilyID()
		out.Role = string(u.Membership.Role)
	}
	return out
}

func toFamily(f *models.Family) *api.Family {
	return &api.Family{
		ID:         f.ID,
		Name:       f.Name,
		OwnerID:    f.OwnerID,
		InviteCode: f.InviteCode,
		Metadata:   f.Metadata,
		CreatedAt:  f.CreatedAt,
	}
}

func toRecipe(r *models.Recipe) *api.Recipe {
	out := &api.Recipe{
		ID:           r.ID,
		FamilyID:     r.FamilyID,
		Title:        r.Title,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Story:        r.Story,
		Photos:       r.Photos,
		CookingTime:  r.CookingTime,
		Servings:     r.Servings,
		Category:     r.Category,
		Difficulty:   r.Difficulty,
		AuthorID:     r.AuthorID,
		AuthorName:   r.AuthorName,
		CreatedAt:    r.CreatedAt,
	}
	if out.Ingredients == nil {
		out.Ingredients = []string{}
	}
	if out.Photos == nil {
		out.Photos = []string{}
	}
	return out
}

func toComment(c *models.Comment) *api.Comment {
	return &api.Comment{
		ID:        c.ID,
		RecipeID:  c.RecipeID,
		UserID:    c.AuthorID,
		UserName:  c.AuthorName,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}

func toNotification(n *models.Notification) *api.Notification {
	return &api.Notification{
		ID:           n.ID,
		UserID:       n.UserID,
		Type:         string(n.Type),
		Message:      n.Message,
		RecipeID:     n.RecipeID,
		FromUserName: n.FromUserName,
		IsRead:       n.IsRead,
		CreatedAt:    n.CreatedAt,
	}
}
