package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/ekwiwalent/internal/brigade"
	"go.uber.org/zap"
)

// OperationFilter narrows ListOperations. Zero fields match everything; From
// and To are inclusive calendar dates.
type OperationFilter struct {
	MemberID string
	From     time.Time
	To       time.Time
}

const operationColumns = `id, member_id, member_name, date, type_key, type, hours, rate, total`

// AddOperation stores an operation built by brigade.NewOperation. The member
// must exist.
func (s *Store) AddOperation(op brigade.Operation) error {
	if _, err := s.GetMember(op.MemberID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("add operation: %w", brigade.ErrMemberNotFound)
		}
		return fmt.Errorf("add operation: %w", err)
	}

	_, err := s.db.Exec(
		`INSERT INTO operations (`+operationColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		op.ID, op.MemberID, op.MemberName, op.Date.Format(brigade.DateLayout),
		op.TypeKey, op.Type, op.Hours, op.Rate, op.Total,
	)
	if err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	s.log.Info("operation added",
		zap.String("operation_id", op.ID),
		zap.String("member_id", op.MemberID),
		zap.String("type", op.TypeKey),
		zap.String("total", op.Total.String()),
	)
	return nil
}

func (s *Store) GetOperation(id string) (*brigade.Operation, error) {
	row := s.db.QueryRow(`SELECT `+operationColumns+` FROM operations WHERE id = ?`, id)
	op, err := scanOperation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get operation %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get operation %s: %w", id, err)
	}
	return &op, nil
}

func (s *Store) DeleteOperation(id string) error {
	res, err := s.db.Exec(`DELETE FROM operations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete operation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete operation %s: %w", id, ErrNotFound)
	}
	s.log.Info("operation deleted", zap.String("operation_id", id))
	return nil
}

// ListOperations returns matching operations in the order they were logged.
func (s *Store) ListOperations(f OperationFilter) ([]brigade.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations`
	var conds []string
	var args []any

	if f.MemberID != "" {
		conds = append(conds, "member_id = ?")
		args = append(args, f.MemberID)
	}
	if !f.From.IsZero() {
		conds = append(conds, "date >= ?")
		args = append(args, f.From.Format(brigade.DateLayout))
	}
	if !f.To.IsZero() {
		conds = append(conds, "date <= ?")
		args = append(args, f.To.Format(brigade.DateLayout))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY rowid"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	var ops []brigade.Operation
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

// LoadRoster reads the whole application state.
func (s *Store) LoadRoster() (*brigade.Roster, error) {
	members, err := s.ListMembers()
	if err != nil {
		return nil, err
	}
	ops, err := s.ListOperations(OperationFilter{})
	if err != nil {
		return nil, err
	}
	return &brigade.Roster{Members: members, Operations: ops}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOperation(sc scanner) (brigade.Operation, error) {
	var op brigade.Operation
	var date string
	err := sc.Scan(&op.ID, &op.MemberID, &op.MemberName, &date,
		&op.TypeKey, &op.Type, &op.Hours, &op.Rate, &op.Total)
	if err != nil {
		return op, err
	}
	op.Date, err = brigade.ParseDate(date)
	if err != nil {
		return op, fmt.Errorf("operation %s: %w", op.ID, err)
	}
	return op, nil
}
