package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/trace"

	"github.com/cyrel-edt/cyrel/internal/db/sqlc"
	"github.com/cyrel-edt/cyrel/internal/models"
	"github.com/cyrel-edt/cyrel/internal/otel"
	"github.com/cyrel-edt/cyrel/internal/service"
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation
const uniqueViolation = "23505"

// options holds configuration options for the database service
type options struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
}

// Option is a functional option for configuring the database service
type Option func(*options) error

// WithConnectionPool sets the pgx pool. The caller is responsible for closing
// the pool when it is done.
func WithConnectionPool(pool *pgxpool.Pool) Option {
	return func(o *options) error {
		if pool == nil {
			return fmt.Errorf("pgx pool is required")
		}
		o.pool = pool
		return nil
	}
}

// WithTracer sets the OpenTelemetry tracer for the database service.
// If not set, tracing will be disabled (no-op).
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		o.tracer = tracer
		return nil
	}
}

// dbService implements the TimetableService interface using a database backend
type dbService struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
}

var _ service.TimetableService = (*dbService)(nil)

// New creates a new database-backed timetable service with the given options
func New(opts ...Option) (service.TimetableService, error) {
	o := &options{}

	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.pool == nil {
		return nil, fmt.Errorf("pgx pool is required")
	}

	return &dbService{
		pool:   o.pool,
		tracer: o.tracer,
	}, nil
}

// CheckReadiness checks if the service is ready to serve requests
func (s *dbService) CheckReadiness(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "dbService.CheckReadiness")
	defer span.End()

	if err := s.pool.Ping(ctx); err != nil {
		recordError(span, err)
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// GetUserByID implements service.TimetableService
func (s *dbService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, span := s.startSpan(ctx, "dbService.GetUserByID",
		trace.WithAttributes(AttrUserID.Int64(id)))
	defer span.End()

	row, err := sqlc.New(s.pool).GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrUserNotFound
		}
		recordError(span, err)
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return toUser(row), nil
}

// GetUserByEmail implements service.TimetableService
func (s *dbService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, span := s.startSpan(ctx, "dbService.GetUserByEmail")
	defer span.End()

	row, err := sqlc.New(s.pool).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrUserNotFound
		}
		recordError(span, err)
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return toUser(row), nil
}

// ListPublicGroups implements service.TimetableService
func (s *dbService) ListPublicGroups(ctx context.Context) ([]models.Group, error) {
	ctx, span := s.startSpan(ctx, "dbService.ListPublicGroups")
	defer span.End()

	rows, err := sqlc.New(s.pool).ListPublicGroups(ctx)
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	span.SetAttributes(otel.AttrResultCount.Int(len(rows)))
	return toGroups(rows), nil
}

// ListUserGroups implements service.TimetableService
func (s *dbService) ListUserGroups(ctx context.Context, userID int64) ([]models.Group, error) {
	ctx, span := s.startSpan(ctx, "dbService.ListUserGroups",
		trace.WithAttributes(AttrUserID.Int64(userID)))
	defer span.End()

	rows, err := sqlc.New(s.pool).ListUserGroups(ctx, userID)
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("failed to list groups of user %d: %w", userID, err)
	}
	span.SetAttributes(otel.AttrResultCount.Int(len(rows)))
	return toGroups(rows), nil
}

// JoinGroup implements service.TimetableService
func (s *dbService) JoinGroup(ctx context.Context, userID int64, groupID int32) error {
	ctx, span := s.startSpan(ctx, "dbService.JoinGroup",
		trace.WithAttributes(AttrUserID.Int64(userID), otel.AttrGroupID.Int64(int64(groupID))))
	defer span.End()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		recordError(span, err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	querier := sqlc.New(tx)

	group, err := querier.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return service.ErrGroupNotFound
		}
		recordError(span, err)
		return fmt.Errorf("failed to get group %d: %w", groupID, err)
	}
	if group.Private {
		return service.ErrPrivateGroup
	}

	err = querier.AddUserToGroup(ctx, sqlc.AddUserToGroupParams{UserID: userID, GroupID: groupID})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return service.ErrAlreadyMember
		}
		recordError(span, err)
		return fmt.Errorf("failed to add user %d to group %d: %w", userID, groupID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		recordError(span, err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GroupSchedule implements service.TimetableService
func (s *dbService) GroupSchedule(
	ctx context.Context,
	userID int64,
	groupID int32,
	start, end time.Time,
) ([]models.CourseRecord, error) {
	ctx, span := s.startSpan(ctx, "dbService.GroupSchedule",
		trace.WithAttributes(
			AttrUserID.Int64(userID),
			otel.AttrGroupID.Int64(int64(groupID)),
			AttrRangeFrom.String(start.Format(time.RFC3339)),
			AttrRangeTo.String(end.Format(time.RFC3339)),
		))
	defer span.End()

	if end.Before(start) {
		return nil, service.ErrInvalidRange
	}

	querier := sqlc.New(s.pool)
	if err := s.checkMembership(ctx, querier, userID, groupID); err != nil {
		if !errors.Is(err, service.ErrNotMember) && !errors.Is(err, service.ErrGroupNotFound) {
			recordError(span, err)
		}
		return nil, err
	}

	rows, err := querier.ListGroupCourses(ctx, sqlc.ListGroupCoursesParams{
		GroupID:    groupID,
		RangeStart: start,
		RangeEnd:   end,
	})
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("failed to list courses of group %d: %w", groupID, err)
	}
	span.SetAttributes(otel.AttrResultCount.Int(len(rows)))

	courses := make([]models.CourseRecord, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, toCourse(row))
	}
	return courses, nil
}

// checkMembership accepts members of the group itself or of its parent group
func (*dbService) checkMembership(ctx context.Context, querier *sqlc.Queries, userID int64, groupID int32) error {
	group, err := querier.GetGroup(ctx, groupID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return service.ErrGroupNotFound
		}
		return fmt.Errorf("failed to get group %d: %w", groupID, err)
	}

	candidates := []int32{group.ID}
	if group.Parent != nil {
		candidates = append(candidates, *group.Parent)
	}
	for _, id := range candidates {
		ok, err := querier.IsUserInGroup(ctx, sqlc.IsUserInGroupParams{UserID: userID, GroupID: id})
		if err != nil {
			return fmt.Errorf("failed to check membership: %w", err)
		}
		if ok {
			return nil
		}
	}
	return service.ErrNotMember
}

// GetClientConfig implements service.TimetableService
func (s *dbService) GetClientConfig(ctx context.Context, userID int64, clientID int32) (*string, error) {
	ctx, span := s.startSpan(ctx, "dbService.GetClientConfig",
		trace.WithAttributes(AttrUserID.Int64(userID), AttrClientID.Int64(int64(clientID))))
	defer span.End()

	querier := sqlc.New(s.pool)
	if err := ensureClient(ctx, querier, clientID); err != nil {
		return nil, err
	}

	cfg, err := querier.GetClientUserConfig(ctx, sqlc.GetClientUserConfigParams{
		ClientID: clientID,
		UserID:   userID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		recordError(span, err)
		return nil, fmt.Errorf("failed to get client config: %w", err)
	}
	return cfg, nil
}

// SetClientConfig implements service.TimetableService
func (s *dbService) SetClientConfig(ctx context.Context, userID int64, clientID int32, config string) error {
	ctx, span := s.startSpan(ctx, "dbService.SetClientConfig",
		trace.WithAttributes(AttrUserID.Int64(userID), AttrClientID.Int64(int64(clientID))))
	defer span.End()

	querier := sqlc.New(s.pool)
	if err := ensureClient(ctx, querier, clientID); err != nil {
		return err
	}

	err := querier.UpsertClientUserConfig(ctx, sqlc.UpsertClientUserConfigParams{
		ClientID: clientID,
		UserID:   userID,
		Config:   &config,
	})
	if err != nil {
		recordError(span, err)
		return fmt.Errorf("failed to store client config: %w", err)
	}
	return nil
}

func ensureClient(ctx context.Context, querier *sqlc.Queries, clientID int32) error {
	ok, err := querier.ClientExists(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to look up client %d: %w", clientID, err)
	}
	if !ok {
		return service.ErrClientNotFound
	}
	return nil
}

// ListGroupReferents implements service.TimetableService
func (s *dbService) ListGroupReferents(ctx context.Context) ([]models.GroupReferent, error) {
	ctx, span := s.startSpan(ctx, "dbService.ListGroupReferents")
	defer span.End()

	rows, err := sqlc.New(s.pool).ListGroupReferents(ctx)
	if err != nil {
		recordError(span, err)
		return nil, fmt.Errorf("failed to list group referents: %w", err)
	}

	result := make([]models.GroupReferent, 0, len(rows))
	for _, row := range rows {
		if row.Referent == nil {
			continue
		}
		result = append(result, models.GroupReferent{
			GroupID:  row.ID,
			Referent: strconv.FormatInt(*row.Referent, 10),
		})
	}
	span.SetAttributes(otel.AttrResultCount.Int(len(result)))
	return result, nil
}

func toUser(row sqlc.User) *models.User {
	return &models.User{
		ID:        row.ID,
		Firstname: row.Firstname,
		Lastname:  row.Lastname,
		Email:     row.Email,
		Password:  row.Password,
	}
}

func toGroups(rows []sqlc.Group) []models.Group {
	groups := make([]models.Group, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, models.Group{
			ID:       row.ID,
			Name:     row.Name,
			Referent: row.Referent,
			Parent:   row.Parent,
			Private:  row.Private,
		})
	}
	return groups
}

func toCourse(row sqlc.Course) models.CourseRecord {
	return models.CourseRecord{
		ID:          row.ID,
		Start:       row.StartTime,
		End:         row.EndTime,
		Category:    row.Category,
		Module:      row.Module,
		Room:        row.Room,
		Teacher:     row.Teacher,
		Description: row.Description,
	}
}
