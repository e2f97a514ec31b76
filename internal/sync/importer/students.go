package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.opentelemetry.io/otel/trace"

	"github.com/cyrel-edt/cyrel/internal/celcat"
	"github.com/cyrel-edt/cyrel/internal/models"
	"github.com/cyrel-edt/cyrel/internal/otel"
	"github.com/cyrel-edt/cyrel/internal/status"
	"github.com/cyrel-edt/cyrel/internal/sync/state"
	"github.com/cyrel-edt/cyrel/internal/sync/writer"
	"github.com/cyrel-edt/cyrel/internal/telemetry"
)

const (
	// studentSearchTerm matches every student in the resource search
	studentSearchTerm = "__"
	studentPageSize   = 1000000
)

// StudentImporter refreshes the Celcat student directory
type StudentImporter struct {
	resources ResourceLister
	students  writer.StudentWriter
	state     state.RunStateService
	logger    *slog.Logger
	metrics   *telemetry.SyncMetrics
	tracer    trace.Tracer
}

// StudentSummary describes a finished student run
type StudentSummary struct {
	Listed  int
	Stored  int
	Skipped int
}

// NewStudentImporter creates a student importer. state, metrics and tracer may be nil.
func NewStudentImporter(
	resources ResourceLister,
	students writer.StudentWriter,
	stateSvc state.RunStateService,
	metrics *telemetry.SyncMetrics,
	tracer trace.Tracer,
) *StudentImporter {
	return &StudentImporter{
		resources: resources,
		students:  students,
		state:     stateSvc,
		logger:    slog.Default(),
		metrics:   metrics,
		tracer:    tracer,
	}
}

// Run lists every student and upserts them in one transaction. Entries whose
// id is not numeric or whose name cannot be split are skipped.
func (s *StudentImporter) Run(ctx context.Context) (_ *StudentSummary, err error) {
	began := time.Now()

	var run *status.SyncRun
	if s.state != nil {
		if run, err = s.state.StartRun(ctx, status.SyncKindStudents); err != nil {
			return nil, err
		}
	}

	ctx, span := otel.StartSpan(ctx, s.tracer, "importer.students")
	defer span.End()

	summary := &StudentSummary{}
	defer func() {
		s.metrics.RecordRunDuration(ctx, string(status.SyncKindStudents), time.Since(began), err == nil)
		if err != nil {
			otel.RecordError(span, err)
		}
		if run == nil {
			return
		}
		run.Finish(time.Now().UTC(), err)
		if err == nil {
			run.Message = fmt.Sprintf("%d students stored, %d skipped", summary.Stored, summary.Skipped)
		}
		if ferr := s.state.FinishRun(context.WithoutCancel(ctx), run); ferr != nil {
			s.logger.Error("Failed to record sync run", "run", run.ID, "error", ferr)
		}
	}()

	list, err := s.resources.ListResources(ctx, celcat.ResourceListRequest{
		SearchTerm:   studentSearchTerm,
		PageSize:     studentPageSize,
		PageNumber:   0,
		ResourceType: celcat.ResourceStudent,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	summary.Listed = len(list.Results)

	students := make([]models.Student, 0, len(list.Results))
	for _, res := range list.Results {
		st, err := toStudent(res)
		if err != nil {
			summary.Skipped++
			s.logger.Warn("Skipping student", "id", res.ID, "error", err)
			continue
		}
		students = append(students, st)
	}

	if err := s.students.StoreStudents(ctx, students); err != nil {
		return nil, err
	}
	summary.Stored = len(students)
	span.SetAttributes(otel.AttrResultCount.Int(summary.Stored))

	s.logger.Info("Student sync finished",
		"listed", summary.Listed, "stored", summary.Stored, "skipped", summary.Skipped)
	return summary, nil
}

func toStudent(res celcat.Resource) (models.Student, error) {
	id, err := strconv.ParseInt(res.ID, 10, 64)
	if err != nil {
		return models.Student{}, fmt.Errorf("invalid student id %q: %w", res.ID, err)
	}
	first, last, err := SplitName(res.Text)
	if err != nil {
		return models.Student{}, err
	}
	return models.Student{
		ID:         id,
		Firstname:  first,
		Lastname:   last,
		Department: res.Department,
	}, nil
}

// SplitName splits a Celcat display name, "LASTNAME Firstname", into first and
// last name. Each word keeps its first letter and has the rest lowercased,
// words being delimited by any non-letter. The last space separates the two parts.
func SplitName(display string) (string, string, error) {
	var b strings.Builder
	b.Grow(len(display))

	wordStart := true
	for _, r := range display {
		if wordStart {
			b.WriteRune(r)
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		wordStart = !unicode.IsLetter(r)
	}
	name := b.String()

	i := strings.LastIndexByte(name, ' ')
	if i < 0 {
		return "", "", fmt.Errorf("can't split %q into firstname and lastname", display)
	}
	last, first := name[:i], name[i+1:]
	if first == "" || last == "" {
		return "", "", fmt.Errorf("can't split %q into firstname and lastname", display)
	}
	return first, last, nil
}
