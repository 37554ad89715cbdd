package database

import (
	"context"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/avoronov/cadscreen/internal/model"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

type AssessmentDAO struct {
	Logger *slog.Logger
	*DB
}

func NewAssessmentDAO(logger *slog.Logger, db *DB) *AssessmentDAO {
	return &AssessmentDAO{
		Logger: logger.With("dao", "assessment"),
		DB:     db,
	}
}

type InsertAssessmentDTO struct {
	UserID       model.ID
	Features     model.FeatureVector
	Probability  float64
	RiskCategory model.RiskCategory
}

// Insert creates one immutable assessment row on behalf of the patient.
func (dao *AssessmentDAO) Insert(ctx context.Context, dto InsertAssessmentDTO) (model.ID, error) {
	logger := dao.Logger.With("query", "insert")

	columns := append([]string{"user_id"}, model.FeatureColumns...)
	columns = append(columns, "probability", "risk_category")

	values := []any{dto.UserID}
	for _, v := range dto.Features.Ordered() {
		values = append(values, v)
	}
	values = append(values, dto.Probability, dto.RiskCategory)

	query, args, err := dao.Builder.
		Insert("assessments").
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	var id model.ID
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&id); err != nil {
		logger.Warn("failed query execute", "error", err)
		return 0, err
	}

	logger.Debug("success query execute", "insertId", id)

	return id, nil
}

// ListForPatient returns all assessments owned by the given user, newest
// first. The set is bounded by one patient's own history, so it is not
// paginated.
func (dao *AssessmentDAO) ListForPatient(ctx context.Context, userID model.ID) ([]model.Assessment, error) {
	logger := dao.Logger.With("query", "listForPatient")

	query, args, err := dao.listForPatientQuery(userID)
	if err != nil {
		return nil, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	assessments := make([]model.Assessment, 0)
	if err := dao.SelectContext(ctx, &assessments, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)
		return nil, err
	}

	logger.Debug("success query execute", "countAssessments", len(assessments))

	return assessments, nil
}

func (dao *AssessmentDAO) listForPatientQuery(userID model.ID) (string, []any, error) {
	return dao.Builder.
		Select("*").
		From("assessments").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id ASC").
		ToSql()
}

// AssessmentFilter narrows the doctor-side queries. All set fields are
// combined with AND. Username matches case-insensitively on a substring;
// the date bounds are inclusive.
type AssessmentFilter struct {
	Risk     *model.RiskCategory
	Username *string
	From     *time.Time
	To       *time.Time
}

func (f AssessmentFilter) apply(q squirrel.SelectBuilder) squirrel.SelectBuilder {
	if f.Risk != nil {
		q = q.Where(squirrel.Eq{"a.risk_category": *f.Risk})
	}
	if f.Username != nil {
		q = q.Where(squirrel.ILike{"u.username": "%" + *f.Username + "%"})
	}
	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"a.created_at": *f.From})
	}
	if f.To != nil {
		q = q.Where(squirrel.LtOrEq{"a.created_at": *f.To})
	}
	return q
}

func (dao *AssessmentDAO) joined() squirrel.SelectBuilder {
	return dao.Builder.
		Select("a.*", "u.username").
		From("assessments AS a").
		Join("users AS u ON u.id = a.user_id")
}

// ListAll returns one page of assessments across all patients plus the total
// count of matching rows. Pages are 1-indexed; out-of-range pages yield an
// empty slice. Ordering is creation time descending with ascending id as the
// tie-break, so pagination is deterministic.
func (dao *AssessmentDAO) ListAll(ctx context.Context, filter AssessmentFilter, page, pageSize int) ([]model.AssessmentWithUser, int, error) {
	logger := dao.Logger.With("query", "listAll")

	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total, err := dao.countAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	query, args, err := dao.listAllQuery(filter, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	assessments := make([]model.AssessmentWithUser, 0, pageSize)
	if err := dao.SelectContext(ctx, &assessments, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)
		return nil, 0, err
	}

	logger.Debug("success query execute", "countAssessments", len(assessments), "total", total)

	return assessments, total, nil
}

func (dao *AssessmentDAO) listAllQuery(filter AssessmentFilter, page, pageSize int) (string, []any, error) {
	return filter.apply(dao.joined()).
		OrderBy("a.created_at DESC", "a.id ASC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		ToSql()
}

// ListAllFiltered returns the complete matching set, unpaginated, for bulk
// export. Same filter semantics and ordering as ListAll.
func (dao *AssessmentDAO) ListAllFiltered(ctx context.Context, filter AssessmentFilter) ([]model.AssessmentWithUser, error) {
	logger := dao.Logger.With("query", "listAllFiltered")

	query, args, err := filter.apply(dao.joined()).
		OrderBy("a.created_at DESC", "a.id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	logger.Debug("build query", "sql", query, "args", args)

	assessments := make([]model.AssessmentWithUser, 0)
	if err := dao.SelectContext(ctx, &assessments, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)
		return nil, err
	}

	return assessments, nil
}

func (dao *AssessmentDAO) countAll(ctx context.Context, filter AssessmentFilter) (int, error) {
	query, args, err := filter.apply(
		dao.Builder.
			Select("COUNT(*)").
			From("assessments AS a").
			Join("users AS u ON u.id = a.user_id"),
	).ToSql()
	if err != nil {
		return 0, err
	}

	var total int
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}
