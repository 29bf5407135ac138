package store

import (
	"database/sql"
	"strings"

	"github.com/pkg/errors"
)

// The four name tables (authors, publishers, series, tags) share one
// shape, so a single set of helpers parameterized by table name replaces
// per-entity SQL. Name matching follows the column collation: authors,
// publishers and tags fold case, series does not.

func (s *Store) insertNamed(table, name string) (int64, error) {
	tx, done, err := s.begin()
	if err != nil {
		return 0, err
	}
	defer done()

	id, err := insertNamedTx(tx, table, name)
	if err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

func insertNamedTx(tx *sql.Tx, table, name string) (int64, error) {
	var id int64
	err := tx.QueryRow(`INSERT INTO `+table+` (name) VALUES (?) RETURNING id`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, errors.Wrapf(ErrNoRowsAffected, "inserting into %s", table)
	}
	if err != nil {
		return 0, errors.Wrapf(err, "inserting into %s", table)
	}
	return id, nil
}

// insertNamedBatch inserts all names inside one transaction guarded by a
// savepoint: any failed row rolls back to the savepoint and aborts the
// whole batch.
func (s *Store) insertNamedBatch(table string, names []string) ([]int64, error) {
	tx, done, err := s.begin()
	if err != nil {
		return nil, err
	}
	defer done()

	if _, err := tx.Exec(`SAVEPOINT batch_insert`); err != nil {
		return nil, errors.Wrap(err, "creating savepoint")
	}

	ids := make([]int64, 0, len(names))
	for _, name := range names {
		id, err := insertNamedTx(tx, table, name)
		if err != nil {
			if _, rbErr := tx.Exec(`ROLLBACK TO SAVEPOINT batch_insert`); rbErr != nil {
				return nil, errors.Wrapf(rbErr, "rolling back to savepoint after: %v", err)
			}
			return nil, errors.Wrapf(err, "batch insert into %s aborted", table)
		}
		ids = append(ids, id)
	}

	if _, err := tx.Exec(`RELEASE SAVEPOINT batch_insert`); err != nil {
		return nil, errors.Wrap(err, "releasing savepoint")
	}
	return ids, tx.Commit()
}

func (s *Store) updateNamed(table string, id int64, name string) error {
	tx, done, err := s.begin()
	if err != nil {
		return err
	}
	defer done()

	res, err := tx.Exec(`UPDATE `+table+` SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return errors.Wrapf(err, "updating %s %d", table, id)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return errors.Wrapf(ErrNoRowsAffected, "updating %s %d", table, id)
	}
	return tx.Commit()
}

func (s *Store) deleteByID(table string, id int64) error {
	return s.deleteByIDs(table, []int64{id})
}

func (s *Store) deleteByIDs(table string, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	tx, done, err := s.begin()
	if err != nil {
		return err
	}
	defer done()

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")

	res, err := tx.Exec(`DELETE FROM `+table+` WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return errors.Wrapf(err, "deleting from %s", table)
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return errors.Wrapf(ErrNoRowsAffected, "deleting from %s", table)
	}
	return tx.Commit()
}

func (s *Store) queryNamedByID(table string, id int64) (string, error) {
	var name string
	err := s.db.QueryRow(`SELECT name FROM `+table+` WHERE id = ?`, id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.Wrapf(ErrNotFound, "%s %d", table, id)
	}
	if err != nil {
		return "", errors.Wrapf(err, "querying %s %d", table, id)
	}
	return name, nil
}

func (s *Store) queryNamedByName(table, name string) (int64, string, error) {
	var (
		id     int64
		stored string
	)
	err := s.db.QueryRow(`SELECT id, name FROM `+table+` WHERE name = ?`, name).Scan(&id, &stored)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", errors.Wrapf(ErrNotFound, "%s %q", table, name)
	}
	if err != nil {
		return 0, "", errors.Wrapf(err, "querying %s %q", table, name)
	}
	return id, stored, nil
}

type namedRow struct {
	id   int64
	name string
}

func (s *Store) listNamed(table string) ([]namedRow, error) {
	rows, err := s.db.Query(`SELECT id, name FROM ` + table + ` ORDER BY name`)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", table)
	}
	defer rows.Close()

	var list []namedRow
	for rows.Next() {
		var r namedRow
		if err := rows.Scan(&r.id, &r.name); err != nil {
			return nil, err
		}
		list = append(list, r)
	}
	return list, rows.Err()
}
