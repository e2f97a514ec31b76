// Package service provides the business logic behind the timetable API
package service

import (
	"context"
	"errors"
	"time"

	"github.com/cyrel-edt/cyrel/internal/models"
)

var (
	// ErrUserNotFound is returned when no user has the requested id or e-mail
	ErrUserNotFound = errors.New("user not found")
	// ErrGroupNotFound is returned when a group does not exist
	ErrGroupNotFound = errors.New("group not found")
	// ErrClientNotFound is returned when a client does not exist
	ErrClientNotFound = errors.New("client not found")
	// ErrNotMember is returned when a user reads a group it does not belong to
	ErrNotMember = errors.New("user is not a member of the group")
	// ErrPrivateGroup is returned when a user tries to join a private group
	ErrPrivateGroup = errors.New("group is private")
	// ErrAlreadyMember is returned when a user joins a group twice
	ErrAlreadyMember = errors.New("user is already a member of the group")
	// ErrInvalidRange is returned when a schedule window ends before it starts
	ErrInvalidRange = errors.New("invalid time range")
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks -source=service.go TimetableService

// TimetableService defines the read and membership operations of the API
type TimetableService interface {
	// CheckReadiness checks if the service is ready to serve requests
	CheckReadiness(ctx context.Context) error

	// GetUserByID returns the user with the given id
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// GetUserByEmail returns the user with the given e-mail
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListPublicGroups returns every group that is not private
	ListPublicGroups(ctx context.Context) ([]models.Group, error)

	// ListUserGroups returns the groups a user joined
	ListUserGroups(ctx context.Context, userID int64) ([]models.Group, error)

	// JoinGroup adds a user to a public group
	JoinGroup(ctx context.Context, userID int64, groupID int32) error

	// GroupSchedule returns the courses of a group starting within [start, end].
	// The user must belong to the group or to its parent.
	GroupSchedule(ctx context.Context, userID int64, groupID int32, start, end time.Time) ([]models.CourseRecord, error)

	// GetClientConfig returns the configuration a user stored for a client, nil when unset
	GetClientConfig(ctx context.Context, userID int64, clientID int32) (*string, error)

	// SetClientConfig stores the configuration of a user for a client
	SetClientConfig(ctx context.Context, userID int64, clientID int32, config string) error

	// ListGroupReferents returns every group with a referent student
	ListGroupReferents(ctx context.Context) ([]models.GroupReferent, error)
}
