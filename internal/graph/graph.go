// Package graph derives relationship views from the directed follow edges
// incident to a single user.
package graph

import (
	"slices"

	"github.com/BloggingApp/friends-service/internal/model"
)

type IDSet map[int64]struct{}

func (s IDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Relations holds the edges incident to Subject split by direction:
// Outgoing are the users Subject follows, Incoming the users following Subject.
type Relations struct {
	Subject  int64
	Outgoing IDSet
	Incoming IDSet
}

// FromEdges builds Relations for subject. Edges not touching subject and self-loops are ignored.
func FromEdges(subject int64, edges []model.Follow) Relations {
	r := Relations{
		Subject:  subject,
		Outgoing: make(IDSet),
		Incoming: make(IDSet),
	}
	for _, e := range edges {
		if e.UserID == e.FollowingID {
			continue
		}
		switch subject {
		case e.UserID:
			r.Outgoing[e.FollowingID] = struct{}{}
		case e.FollowingID:
			r.Incoming[e.UserID] = struct{}{}
		}
	}
	return r
}

// Subscribers returns users following Subject who are not followed back, ascending.
func (r Relations) Subscribers() []int64 {
	return difference(r.Incoming, r.Outgoing)
}

// Subscriptions returns users Subject follows who do not follow back, ascending.
func (r Relations) Subscriptions() []int64 {
	return difference(r.Outgoing, r.Incoming)
}

// Friends returns mutual follows, ascending.
func (r Relations) Friends() []int64 {
	ids := make([]int64, 0)
	for id := range r.Outgoing {
		if r.Incoming.Has(id) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (r Relations) IsSubscriber(id int64) bool {
	return r.Incoming.Has(id) && !r.Outgoing.Has(id)
}

// IsFollower reports whether id follows Subject.
func (r Relations) IsFollower(id int64) bool {
	return r.Incoming.Has(id)
}

// IsFollowing reports whether Subject follows id.
func (r Relations) IsFollowing(id int64) bool {
	return r.Outgoing.Has(id)
}

// Annotate marks every user relative to the viewer described by r.
func (r Relations) Annotate(users []*model.User) []*model.AnnotatedUser {
	out := make([]*model.AnnotatedUser, 0, len(users))
	for _, u := range users {
		out = append(out, &model.AnnotatedUser{
			User:        *u,
			IsFollower:  r.IsFollower(u.ID),
			IsFollowing: r.IsFollowing(u.ID),
		})
	}
	return out
}

// Anonymous annotates users for a viewer with no edges at all.
func Anonymous(users []*model.User) []*model.AnnotatedUser {
	out := make([]*model.AnnotatedUser, 0, len(users))
	for _, u := range users {
		out = append(out, &model.AnnotatedUser{User: *u})
	}
	return out
}

func difference(a, b IDSet) []int64 {
	ids := make([]int64, 0, len(a))
	for id := range a {
		if !b.Has(id) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
