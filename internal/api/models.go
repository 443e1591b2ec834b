package api

import (
	"github.com/phrazzld/subscriptions-api/internal/domain"
)

// UserRequest is the payload for creating or updating a user.
type UserRequest struct {
	Name  string `json:"name"  validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SubscriptionRequest is the payload for subscribing a user to a service.
type SubscriptionRequest struct {
	ServiceName string `json:"serviceName" validate:"required,max=255"`
}

// SubscriptionResponse is the public view of a subscription.
type SubscriptionResponse struct {
	ID          int64  `json:"id"`
	ServiceName string `json:"serviceName"`
	UserID      int64  `json:"userId"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

func usersToResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, userToResponse(&users[i]))
	}
	return out
}

func subscriptionToResponse(s *domain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:          s.ID,
		ServiceName: s.ServiceName,
		UserID:      s.UserID,
	}
}

func subscriptionsToResponse(subs []domain.Subscription) []SubscriptionResponse {
	out := make([]SubscriptionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, subscriptionToResponse(&subs[i]))
	}
	return out
}
