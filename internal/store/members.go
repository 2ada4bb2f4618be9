package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sadopc/ekwiwalent/internal/brigade"
	"go.uber.org/zap"
)

func (s *Store) CreateMember(m brigade.Member) error {
	_, err := s.db.Exec(`INSERT INTO members (id, name, rank) VALUES (?, ?, ?)`, m.ID, m.Name, m.Rank)
	if err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	s.log.Info("member created", zap.String("member_id", m.ID), zap.String("name", m.Name))
	return nil
}

func (s *Store) GetMember(id string) (*brigade.Member, error) {
	m := &brigade.Member{}
	err := s.db.QueryRow(`SELECT id, name, rank FROM members WHERE id = ?`, id).Scan(&m.ID, &m.Name, &m.Rank)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get member %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get member %s: %w", id, err)
	}
	return m, nil
}

// ListMembers returns members in the order they were added.
func (s *Store) ListMembers() ([]brigade.Member, error) {
	rows, err := s.db.Query(`SELECT id, name, rank FROM members ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []brigade.Member
	for rows.Next() {
		var m brigade.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Rank); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// DeleteMember removes a member together with all of their operations and
// reports how many operations went with them.
func (s *Store) DeleteMember(id string) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM operations WHERE member_id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete member operations: %w", err)
	}
	removed, _ := res.RowsAffected()

	res, err = tx.Exec(`DELETE FROM members WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete member: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, fmt.Errorf("delete member %s: %w", id, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	s.log.Info("member deleted", zap.String("member_id", id), zap.Int64("operations_removed", removed))
	return removed, nil
}
