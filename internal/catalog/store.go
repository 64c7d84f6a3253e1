// internal/catalog/store.go
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	apperrors "community-assist/internal/common/errors"
	"community-assist/internal/common/logger"
	"community-assist/internal/models"
)

// Store loads immutable catalog snapshots from PostgreSQL. The matching
// engine never touches the database directly; it consumes the snapshot.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

// NewStore builds a Store over an open connection pool.
func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-store"}),
	}
}

// LoadSnapshot reads all active programs with their criteria, income
// limits and document requirements, plus the FPL reference tables for the
// given year, into one read-only snapshot.
func (s *Store) LoadSnapshot(ctx context.Context, fplYear int) (*models.Snapshot, error) {
	programs, index, err := s.loadPrograms(ctx)
	if err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(err)
	}
	if err := s.loadCriteria(ctx, programs, index); err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(err)
	}
	if err := s.loadIncomeLimits(ctx, programs, index); err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(err)
	}
	if err := s.loadDocuments(ctx, programs, index); err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(err)
	}
	fpl, err := s.loadFPLTables(ctx, fplYear)
	if err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(err)
	}

	snap := &models.Snapshot{
		Programs: programs,
		FPL:      fpl,
		LoadedAt: time.Now().UTC(),
	}
	s.logger.Info("catalog snapshot loaded", map[string]interface{}{
		"programs":  len(snap.Programs),
		"fplStates": len(snap.FPL),
		"fplYear":   fplYear,
	})
	return snap, nil
}

func (s *Store) loadPrograms(ctx context.Context) ([]models.Program, map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, program_code, program_name, category, description,
		       fpl_percentage, benefit_amount_min, benefit_amount_max,
		       benefit_family, serves_counties, serves_states,
		       is_emergency, confidence_score
		FROM programs
		WHERE is_active = true
		ORDER BY confidence_score DESC, program_name`)
	if err != nil {
		return nil, nil, fmt.Errorf("query programs: %w", err)
	}
	defer rows.Close()

	var programs []models.Program
	index := make(map[string]int)
	for rows.Next() {
		var (
			p        models.Program
			code     sql.NullString
			desc     sql.NullString
			fplPct   sql.NullInt64
			minAmt   decimal.NullDecimal
			maxAmt   decimal.NullDecimal
			family   sql.NullString
			counties pq.StringArray
			states   pq.StringArray
		)
		if err := rows.Scan(&p.ID, &code, &p.Name, &p.Category, &desc,
			&fplPct, &minAmt, &maxAmt, &family, &counties, &states,
			&p.IsEmergency, &p.Confidence); err != nil {
			return nil, nil, fmt.Errorf("scan program: %w", err)
		}
		p.Code = code.String
		p.Description = desc.String
		p.BenefitFamily = family.String
		p.ServesCounties = counties
		p.ServesStates = states
		if fplPct.Valid {
			v := int(fplPct.Int64)
			p.FPLPercentage = &v
		}
		if minAmt.Valid {
			p.BenefitMin = &minAmt.Decimal
		}
		if maxAmt.Valid {
			p.BenefitMax = &maxAmt.Decimal
		}
		index[p.ID] = len(programs)
		programs = append(programs, p)
	}
	return programs, index, rows.Err()
}

func (s *Store) loadCriteria(ctx context.Context, programs []models.Program, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, program_id, criterion_type, name, value, is_required
		FROM eligibility_criteria
		ORDER BY program_id, position`)
	if err != nil {
		return fmt.Errorf("query criteria: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			c         models.EligibilityCriterion
			programID string
			value     []byte
		)
		if err := rows.Scan(&c.ID, &programID, &c.Type, &c.Name, &value, &c.Required); err != nil {
			return fmt.Errorf("scan criterion: %w", err)
		}
		c.Value = json.RawMessage(value)
		if i, ok := index[programID]; ok {
			programs[i].Criteria = append(programs[i].Criteria, c)
		}
	}
	return rows.Err()
}

func (s *Store) loadIncomeLimits(ctx context.Context, programs []models.Program, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT program_id, household_size, annual_limit, monthly_limit,
		       fpl_percentage, effective_date, expires_at
		FROM income_limits
		ORDER BY program_id, household_size, effective_date`)
	if err != nil {
		return fmt.Errorf("query income limits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			l         models.IncomeLimit
			programID string
			fplPct    sql.NullInt64
			expires   sql.NullTime
		)
		if err := rows.Scan(&programID, &l.HouseholdSize, &l.AnnualLimit,
			&l.MonthlyLimit, &fplPct, &l.EffectiveDate, &expires); err != nil {
			return fmt.Errorf("scan income limit: %w", err)
		}
		if fplPct.Valid {
			v := int(fplPct.Int64)
			l.FPLPercentage = &v
		}
		if expires.Valid {
			t := expires.Time
			l.ExpiresAt = &t
		}
		if i, ok := index[programID]; ok {
			programs[i].IncomeLimits = append(programs[i].IncomeLimits, l)
		}
	}
	return rows.Err()
}

func (s *Store) loadDocuments(ctx context.Context, programs []models.Program, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pd.program_id, d.id, d.document_name, d.document_type,
		       pd.is_required, pd.condition_need, pd.condition_situation,
		       d.alternatives
		FROM program_documents pd
		JOIN documents d ON d.id = pd.document_id
		ORDER BY pd.program_id, d.document_name`)
	if err != nil {
		return fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			req          models.DocumentRequirement
			programID    string
			condNeed     sql.NullString
			condSit      sql.NullString
			alternatives pq.StringArray
		)
		if err := rows.Scan(&programID, &req.DocumentID, &req.Name, &req.Type,
			&req.Required, &condNeed, &condSit, &alternatives); err != nil {
			return fmt.Errorf("scan document: %w", err)
		}
		req.Alternatives = alternatives
		if condNeed.Valid || condSit.Valid {
			req.Condition = &models.DocumentCondition{
				Need:      models.Category(condNeed.String),
				Situation: condSit.String,
			}
		}
		if i, ok := index[programID]; ok {
			programs[i].Documents = append(programs[i].Documents, req)
		}
	}
	return rows.Err()
}

func (s *Store) loadFPLTables(ctx context.Context, year int) (map[string]*models.FPLTable, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT year, state, household_size, annual_amount, monthly_amount
		FROM fpl_tables
		WHERE year = $1
		ORDER BY state, household_size`, year)
	if err != nil {
		return nil, fmt.Errorf("query fpl tables: %w", err)
	}
	defer rows.Close()

	tables := make(map[string]*models.FPLTable)
	for rows.Next() {
		var e models.FPLEntry
		if err := rows.Scan(&e.Year, &e.State, &e.HouseholdSize,
			&e.AnnualAmount, &e.MonthlyAmount); err != nil {
			return nil, fmt.Errorf("scan fpl entry: %w", err)
		}
		t, ok := tables[e.State]
		if !ok {
			t = &models.FPLTable{
				Year:    e.Year,
				State:   e.State,
				Entries: make(map[int]models.FPLEntry),
			}
			tables[e.State] = t
		}
		t.Entries[e.HouseholdSize] = e
	}
	return tables, rows.Err()
}
