// Package store хранит историю прогонов bench в SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"flowShopOpt/internal/bench"
)

type Store struct {
	Db *sql.DB
}

type Batch struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Source    string
	Results   int
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", withWAL(dbPath))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	s := &Store{Db: db}
	if err := s.Init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// withWAL добавляет режим журнала к DSN, сохраняя уже заданные параметры.
func withWAL(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&_journal_mode=WAL"
	}
	return dsn + "?_journal_mode=WAL"
}

func (s *Store) Init() error {
	_, err := s.Db.Exec(`
	create table if not exists batches(
		id text primary key,
		created_at DATETIME not null,
		source text not null
	);
	create table if not exists results(
		batch_id text not null references batches(id),
		instance text not null,
		fingerprint text not null,
		algo text not null,
		jobs integer not null,
		machines integer not null,
		status text not null,
		makespan integer,
		time_mean_ms real not null,
		permutation text not null
	);
	create index if not exists results_fingerprint on results(fingerprint);`)
	return err
}

func (s *Store) Close() error { return s.Db.Close() }

// SaveBatch сохраняет записи одного прогона в одной транзакции.
func (s *Store) SaveBatch(ctx context.Context, id uuid.UUID, source string, records []bench.Record) error {
	tx, err := s.Db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`insert into batches (id, created_at, source) values (?,?,?);`,
		id.String(), time.Now().UTC(), source,
	); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `insert into results (
		batch_id, instance, fingerprint, algo, jobs, machines, status, makespan, time_mean_ms, permutation
		) values (?,?,?,?,?,?,?,?,?,?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		var makespan sql.NullInt64
		if r.Applicable() {
			makespan = sql.NullInt64{Int64: int64(r.Makespan), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			id.String(), r.Instance, r.Fingerprint, r.Algo, r.Jobs, r.Machines,
			string(r.Status), makespan, r.TimeMeanMs, bench.FormatPermutation(r.Permutation),
		); err != nil {
			return fmt.Errorf("save %s/%s: %w", r.Instance, r.Algo, err)
		}
	}
	return tx.Commit()
}

// ListBatches возвращает последние прогоны, новые первыми.
func (s *Store) ListBatches(ctx context.Context, limit int) ([]Batch, error) {
	rows, err := s.Db.QueryContext(ctx, `
	select b.id, b.created_at, b.source, count(r.batch_id)
	from batches b left join results r on r.batch_id = b.id
	group by b.id, b.created_at, b.source
	order by b.created_at desc
	limit ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Batch
	for rows.Next() {
		var (
			b  Batch
			id string
		)
		if err := rows.Scan(&id, &b.CreatedAt, &b.Source, &b.Results); err != nil {
			return nil, err
		}
		if b.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Results возвращает записи прогона в порядке сохранения.
func (s *Store) Results(ctx context.Context, id uuid.UUID) ([]bench.Record, error) {
	rows, err := s.Db.QueryContext(ctx, `
	select instance, fingerprint, algo, jobs, machines, status, makespan, time_mean_ms, permutation
	from results where batch_id = ? order by rowid;`, id.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []bench.Record
	for rows.Next() {
		var (
			r        bench.Record
			status   string
			makespan sql.NullInt64
			perm     string
		)
		if err := rows.Scan(&r.Instance, &r.Fingerprint, &r.Algo, &r.Jobs, &r.Machines,
			&status, &makespan, &r.TimeMeanMs, &perm); err != nil {
			return nil, err
		}
		r.Status = bench.Status(status)
		r.Makespan = int(makespan.Int64)
		if r.Permutation, err = parsePermutation(perm); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// BestKnown — наименьший сохранённый Cmax для экземпляра с данным отпечатком.
func (s *Store) BestKnown(ctx context.Context, fingerprint string) (int, bool, error) {
	var best sql.NullInt64
	err := s.Db.QueryRowContext(ctx,
		`select min(makespan) from results where fingerprint = ? and makespan is not null;`,
		fingerprint,
	).Scan(&best)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !best.Valid) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return int(best.Int64), true, nil
}

func parsePermutation(s string) ([]int, error) {
	fields := strings.Fields(s)
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("stored permutation %q: %w", s, err)
		}
		out[i] = v
	}
	return out, nil
}
