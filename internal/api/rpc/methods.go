package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/cyrel-edt/cyrel/internal/auth"
	"github.com/cyrel-edt/cyrel/internal/models"
	"github.com/cyrel-edt/cyrel/internal/status"
	"github.com/cyrel-edt/cyrel/internal/sync/state"
)

// naiveLayout is the zone-less timestamp format of schedule windows, read as UTC
const naiveLayout = "2006-01-02T15:04:05"

// Timestamp accepts RFC 3339 and zone-less timestamps
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, layout := range []string{time.RFC3339Nano, naiveLayout} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return errors.New("timestamp must be RFC 3339 or YYYY-MM-DDTHH:MM:SS")
}

// LoginParams identifies a user by id or e-mail
type LoginParams struct {
	ID       *int64 `json:"id,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// ScheduleParams selects the courses of a group within a window
type ScheduleParams struct {
	Start *Timestamp `json:"start"`
	End   *Timestamp `json:"end"`
	Group *int32     `json:"group"`
}

// GroupParams names a group
type GroupParams struct {
	Group *int32 `json:"group"`
}

// SyncStatusParams selects the kind of run, courses by default
type SyncStatusParams struct {
	Kind status.SyncKind `json:"kind,omitempty"`
}

// ConfigParams names a client and, for config_set, the value to store
type ConfigParams struct {
	Client *int32  `json:"client"`
	Config *string `json:"config,omitempty"`
}

// decodeParams reads named params. Absent params decode to the zero value.
func decodeParams(raw json.RawMessage, v any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] != '{' {
		return invalidParams("params must be an object")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return invalidParams("%v", err)
	}
	return nil
}

func (*Handler) ping(context.Context, json.RawMessage) (any, error) {
	return "pong", nil
}

func (h *Handler) login(ctx context.Context, raw json.RawMessage) (any, error) {
	var p LoginParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	email := strings.TrimSpace(p.Email)
	if p.ID == nil && email == "" {
		return nil, invalidParams("id or email is required")
	}

	var (
		user *models.User
		err  error
	)
	if p.ID != nil {
		user, err = h.svc.GetUserByID(ctx, *p.ID)
	} else {
		user, err = h.svc.GetUserByEmail(ctx, email)
	}
	if err != nil {
		slog.Warn("Login for unknown user", "id", p.ID, "email", email)
		return nil, err
	}

	if err := auth.VerifyPassword(p.Password, user.Password); err != nil {
		slog.Warn("Failed login", "user", user.ID)
		return nil, err
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	slog.Info("User logged in", "user", user.ID)
	return token, nil
}

func (h *Handler) scheduleGet(ctx context.Context, raw json.RawMessage) (any, error) {
	var p ScheduleParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	if p.Start == nil || p.End == nil || p.Group == nil {
		return nil, invalidParams("start, end and group are required")
	}
	userID, _ := auth.UserIDFromContext(ctx)

	courses, err := h.svc.GroupSchedule(ctx, userID, *p.Group, p.Start.Time, p.End.Time)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []models.CourseRecord{}
	}
	return courses, nil
}

func (h *Handler) groupsGet(ctx context.Context, _ json.RawMessage) (any, error) {
	groups, err := h.svc.ListPublicGroups(ctx)
	if err != nil {
		return nil, err
	}
	return nonNilGroups(groups), nil
}

func (h *Handler) groupsUser(ctx context.Context, _ json.RawMessage) (any, error) {
	userID, _ := auth.UserIDFromContext(ctx)
	groups, err := h.svc.ListUserGroups(ctx, userID)
	if err != nil {
		return nil, err
	}
	return nonNilGroups(groups), nil
}

func (h *Handler) groupsJoin(ctx context.Context, raw json.RawMessage) (any, error) {
	var p GroupParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	if p.Group == nil {
		return nil, invalidParams("group is required")
	}
	userID, _ := auth.UserIDFromContext(ctx)
	if err := h.svc.JoinGroup(ctx, userID, *p.Group); err != nil {
		return nil, err
	}
	return true, nil
}

func (h *Handler) syncStatus(ctx context.Context, raw json.RawMessage) (any, error) {
	if h.runs == nil {
		return nil, ErrServer
	}
	var p SyncStatusParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	if p.Kind == "" {
		p.Kind = status.SyncKindCourses
	}
	if !p.Kind.Valid() {
		return nil, invalidParams("unknown sync kind %q", p.Kind)
	}

	run, err := h.runs.LatestRun(ctx, p.Kind)
	if errors.Is(err, state.ErrNoRuns) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (h *Handler) configGet(ctx context.Context, raw json.RawMessage) (any, error) {
	var p ConfigParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	if p.Client == nil {
		return nil, invalidParams("client is required")
	}
	userID, _ := auth.UserIDFromContext(ctx)
	return h.svc.GetClientConfig(ctx, userID, *p.Client)
}

func (h *Handler) configSet(ctx context.Context, raw json.RawMessage) (any, error) {
	var p ConfigParams
	if err := decodeParams(raw, &p); err != nil {
		return nil, err
	}
	if p.Client == nil || p.Config == nil {
		return nil, invalidParams("client and config are required")
	}
	userID, _ := auth.UserIDFromContext(ctx)
	if err := h.svc.SetClientConfig(ctx, userID, *p.Client, *p.Config); err != nil {
		return nil, err
	}
	return true, nil
}

func nonNilGroups(groups []models.Group) []models.Group {
	if groups == nil {
		return []models.Group{}
	}
	return groups
}
