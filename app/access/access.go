// Package access holds the pure authorization decisions for card
// operations. Admins see everything; members see only what they created.
package access

import "cardsapi/app/models"

type Policy struct{}

func (Policy) IsAdmin(a models.Actor) bool {
	return a.Role == models.RoleAdmin
}

func (Policy) IsMember(a models.Actor) bool {
	return a.Role == models.RoleMember
}

// CanAccessCard reports whether the actor may read or mutate the card.
func (p Policy) CanAccessCard(a models.Actor, card *models.Card) bool {
	return p.IsAdmin(a) || card.CreatedBy == a.Email
}

// FilterTargetsOtherUser reports whether the filter map asks for another
// user's cards by creator. Only meaningful for members; admins may filter by
// anyone.
func (Policy) FilterTargetsOtherUser(a models.Actor, filters map[string]string) bool {
	creator, ok := filters[models.FilterCreatedBy]
	if !ok {
		return false
	}
	return creator != a.Email
}
