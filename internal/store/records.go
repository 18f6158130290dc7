package store

import (
	"context"
	"fmt"
	"time"

	"github.com/zulandar/cave/internal/db"
	"github.com/zulandar/cave/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const responseColumns = `r.response_id, r.challenge_id, c.type AS type, r.miner_hotkey, r.node_id,
	r.processing_time, r.received_at, r.completed_at, r.evaluated, r.score, r.evaluated_at`

// RecordStore reads challenges, responses, and availability checks from the
// validator's SQLite database. Every call opens its own read-only connection
// and closes it before returning.
type RecordStore struct {
	path string
	log  *zap.Logger
	now  func() time.Time
}

// NewRecordStore returns a store reading the database at path.
func NewRecordStore(path string, log *zap.Logger) *RecordStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &RecordStore{path: path, log: log, now: time.Now}
}

// Path returns the database location the store reads.
func (s *RecordStore) Path() string { return s.path }

// query runs fn against a fresh connection and converts every failure into
// an UnavailableError naming the database path.
func (s *RecordStore) query(ctx context.Context, resource string, fn func(tx *gorm.DB) error) error {
	gormDB, err := db.Open(s.path)
	if err != nil {
		return unavailable(resource, s.path, err)
	}
	defer db.Close(gormDB)

	if err := fn(gormDB.WithContext(ctx)); err != nil {
		return unavailable(resource, s.path, err)
	}
	return nil
}

// LoadChallenges returns every challenge of type t, joined to the common
// challenges table for its creation time.
func (s *RecordStore) LoadChallenges(ctx context.Context, t models.ChallengeType) ([]models.Challenge, error) {
	if _, err := models.ParseChallengeType(string(t)); err != nil {
		return nil, fmt.Errorf("store: load challenges: %w", err)
	}

	// The variant columns come first so the joined created_at wins any clash.
	q := fmt.Sprintf(`SELECT v.*, c.type AS type, c.created_at AS created_at
		FROM %s v
		JOIN challenges c ON v.challenge_id = c.challenge_id
		WHERE c.type = ?
		ORDER BY c.created_at ASC, v.challenge_id ASC`, t.Table())

	var rows []models.ChallengeRow
	if err := s.query(ctx, t.Table(), func(tx *gorm.DB) error {
		return tx.Raw(q, string(t)).Scan(&rows).Error
	}); err != nil {
		return nil, err
	}

	challenges := make([]models.Challenge, len(rows))
	for i, r := range rows {
		challenges[i] = r.Challenge()
	}
	s.log.Debug("loaded challenges", zap.String("type", string(t)), zap.Int("count", len(challenges)))
	return challenges, nil
}

// LoadResponses returns responses joined to their challenge type. With an
// empty t it returns the base shape for every type; otherwise it restricts
// to t and joins the variant's patch table.
func (s *RecordStore) LoadResponses(ctx context.Context, t models.ChallengeType) ([]models.Response, error) {
	var (
		q        string
		args     []any
		resource = "responses"
	)
	if t == "" {
		q = `SELECT ` + responseColumns + `
			FROM responses r
			JOIN challenges c ON r.challenge_id = c.challenge_id
			ORDER BY r.response_id ASC`
	} else {
		if _, err := models.ParseChallengeType(string(t)); err != nil {
			return nil, fmt.Errorf("store: load responses: %w", err)
		}
		resource = t.ResponseTable()
		q = fmt.Sprintf(`SELECT `+responseColumns+`, v.response_patch
			FROM responses r
			JOIN %s v ON r.response_id = v.response_id
			JOIN challenges c ON r.challenge_id = c.challenge_id
			WHERE c.type = ?
			ORDER BY r.response_id ASC`, t.ResponseTable())
		args = append(args, string(t))
	}

	var rows []models.ResponseRow
	if err := s.query(ctx, resource, func(tx *gorm.DB) error {
		return tx.Raw(q, args...).Scan(&rows).Error
	}); err != nil {
		return nil, err
	}

	kind := models.KindFor(t)
	now := s.now()
	responses := make([]models.Response, len(rows))
	for i, r := range rows {
		responses[i] = r.Response(kind, now)
	}
	s.log.Debug("loaded responses", zap.String("type", string(t)), zap.Int("count", len(responses)))
	return responses, nil
}

// LoadPendingResponses returns unevaluated responses, newest first. Each
// response's variant follows its challenge type and its patch comes from
// that variant's table. A response_patch column on the responses table is
// used when the variant table has no row.
func (s *RecordStore) LoadPendingResponses(ctx context.Context) ([]models.Response, error) {
	const q = `SELECT r.*, c.type AS type,
			CASE c.type
				WHEN 'codegen' THEN cr.response_patch
				WHEN 'regression' THEN rr.response_patch
			END AS variant_patch
		FROM responses r
		JOIN challenges c ON r.challenge_id = c.challenge_id
		LEFT JOIN codegen_responses cr ON cr.response_id = r.response_id
		LEFT JOIN regression_responses rr ON rr.response_id = r.response_id
		WHERE r.evaluated = 0
		ORDER BY r.received_at DESC`

	var rows []models.ResponseRow
	if err := s.query(ctx, "responses", func(tx *gorm.DB) error {
		return tx.Raw(q).Scan(&rows).Error
	}); err != nil {
		return nil, err
	}

	now := s.now()
	responses := make([]models.Response, len(rows))
	for i, r := range rows {
		kind := models.KindFor(models.ChallengeType(derefType(r.Type)))
		responses[i] = r.Response(kind, now)
	}
	s.log.Debug("loaded pending responses", zap.Int("count", len(responses)))
	return responses, nil
}

// LoadAvailabilityChecks returns every probe result in insertion order.
func (s *RecordStore) LoadAvailabilityChecks(ctx context.Context) ([]models.AvailabilityCheck, error) {
	var rows []models.AvailabilityCheckRow
	if err := s.query(ctx, "availability_checks", func(tx *gorm.DB) error {
		return tx.Raw(`SELECT * FROM availability_checks ORDER BY id ASC`).Scan(&rows).Error
	}); err != nil {
		return nil, err
	}

	checks := make([]models.AvailabilityCheck, len(rows))
	for i, r := range rows {
		c, err := r.AvailabilityCheck()
		if err != nil {
			return nil, unavailable("availability_checks", s.path, err)
		}
		checks[i] = c
	}
	s.log.Debug("loaded availability checks", zap.Int("count", len(checks)))
	return checks, nil
}

func derefType(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
