package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	dbpkg "github.com/VoxDroid/smenu/internal/db"
	"github.com/VoxDroid/smenu/internal/nameutil"
)

// Repository provides the item store operations over one SQLite file. The
// file is opened and closed per operation; only the path and the optional
// column probe taken at Open are kept.
type Repository struct {
	path string
	caps Capabilities
	cols []string
	// extra lists columns this package does not model. Their values are
	// carried through Record.Extra so copies and updates keep them.
	extra []string
}

// Open probes the database at path once and returns a Repository bound to
// it. Missing files, unreadable files and files without a menu_items table
// yield an error wrapping ErrStoreUnavailable.
func Open(path string) (*Repository, error) {
	r := &Repository{path: path}
	err := r.withDB(func(db *sql.DB) error {
		cols, err := dbpkg.Columns(db, dbpkg.Table)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		if len(cols) == 0 {
			return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, path, dbpkg.ErrNoTable)
		}
		for _, c := range dbpkg.RequiredColumns {
			if !cols[c] {
				return fmt.Errorf("%w: %s lacks column %q", ErrStoreUnavailable, dbpkg.Table, c)
			}
		}
		r.caps = Capabilities{
			Args:        cols["args"],
			BasePath:    cols["base_path"],
			Description: cols["description"],
			KeepOpen:    cols["keep_open"],
		}
		r.cols = slices.Clone(dbpkg.RequiredColumns)
		for _, c := range dbpkg.OptionalColumns {
			if cols[c] {
				r.cols = append(r.cols, c)
			}
		}
		for c := range cols {
			if !slices.Contains(r.cols, c) && !slices.Contains(dbpkg.OptionalColumns, c) {
				r.extra = append(r.extra, c)
			}
		}
		slices.Sort(r.extra)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Path returns the database file the repository reads.
func (r *Repository) Path() string { return r.path }

// Capabilities reports which optional columns were found at Open.
func (r *Repository) Capabilities() Capabilities { return r.caps }

func (r *Repository) withDB(fn func(*sql.DB) error) error {
	conn, err := dbpkg.Open(r.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer func() { _ = conn.Close() }()
	return fn(conn)
}

// ListCommands returns every record in natural key order.
func (r *Repository) ListCommands(ctx context.Context) ([]Record, error) {
	var out []Record
	err := r.withDB(func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT %s FROM %s", r.selectList(), dbpkg.Table))
		if err != nil {
			return fmt.Errorf("list %s: %w", dbpkg.Table, err)
		}
		defer func() { _ = rows.Close() }()
		for rows.Next() {
			rec, err := r.scan(rows)
			if err != nil {
				return err
			}
			out = append(out, rec)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	SortRecords(out)
	return out, nil
}

// FindByKey returns the record whose option_number or id equals key. When
// several rows match, option_number matches win over id matches and the
// lowest id wins among equals.
func (r *Repository) FindByKey(ctx context.Context, key string) (Record, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Record{}, fmt.Errorf("%w: empty key", ErrNotFound)
	}
	var rec Record
	err := r.withDB(func(db *sql.DB) error {
		q := fmt.Sprintf(`SELECT %s FROM %s
			WHERE option_number = ? OR id = ?
			ORDER BY (option_number = ?) DESC, id ASC
			LIMIT 1`, strings.Join(r.cols, ", "), dbpkg.Table)
		row := db.QueryRowContext(ctx, q, key, key, key)
		var err error
		rec, err = r.scan(row)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return err
	})
	return rec, err
}

// Insert appends rec as a new row and returns its id. rec.ID is ignored.
// Key and label are trimmed and checked.
func (r *Repository) Insert(ctx context.Context, rec Record) (int64, error) {
	rec, err := checkRecord(rec)
	if err != nil {
		return 0, err
	}
	return r.insert(ctx, rec)
}

// InsertDerived copies every field of src except the non-nil overrides into
// a new row and returns the new id. Only the overrides are checked; the
// copied fields are written exactly as stored.
func (r *Repository) InsertDerived(ctx context.Context, src Record, o Overrides) (int64, error) {
	rec := src
	rec.ID = 0
	if o.Key != nil {
		k, err := checkKey(*o.Key)
		if err != nil {
			return 0, err
		}
		rec.Key = k
	}
	if o.Label != nil {
		l := strings.TrimSpace(*o.Label)
		if err := nameutil.ValidateLabel(l); err != nil {
			return 0, err
		}
		rec.Label = l
	}
	if o.Args != nil {
		rec.Args = *o.Args
	}
	return r.insert(ctx, rec)
}

func (r *Repository) insert(ctx context.Context, rec Record) (int64, error) {
	cols, vals, err := r.writable(rec)
	if err != nil {
		return 0, err
	}
	var id int64
	err = r.withDB(func(db *sql.DB) error {
		trx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = trx.Rollback() }()

		if err := keyInUse(ctx, trx, rec.Key, 0); err != nil {
			return err
		}

		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
		res, err := trx.ExecContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", dbpkg.Table, strings.Join(cols, ", "), placeholders), vals...)
		if err != nil {
			return fmt.Errorf("insert %s: %w", dbpkg.Table, err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}
		return trx.Commit()
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update rewrites every stored field of the row with rec.ID. Columns the
// schema lacks are skipped when empty; the new key must not belong to
// another row.
func (r *Repository) Update(ctx context.Context, rec Record) error {
	if rec.ID <= 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, rec.ID)
	}
	rec, err := checkRecord(rec)
	if err != nil {
		return err
	}
	cols, vals, err := r.writable(rec)
	if err != nil {
		return err
	}
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = c + " = ?"
	}
	vals = append(vals, rec.ID)
	return r.withDB(func(db *sql.DB) error {
		trx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = trx.Rollback() }()

		if err := keyInUse(ctx, trx, rec.Key, rec.ID); err != nil {
			return err
		}
		res, err := trx.ExecContext(ctx, fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", dbpkg.Table, strings.Join(sets, ", ")), vals...)
		if err != nil {
			return fmt.Errorf("update %s: %w", dbpkg.Table, err)
		}
		if err := requireAffected(res, rec.ID); err != nil {
			return err
		}
		return trx.Commit()
	})
}

// keyInUse reports ErrDuplicateKey when a row other than exceptID has key.
func keyInUse(ctx context.Context, trx *sql.Tx, key string, exceptID int64) error {
	var exists int
	err := trx.QueryRowContext(ctx, fmt.Sprintf("SELECT 1 FROM %s WHERE option_number = ? AND id != ? LIMIT 1", dbpkg.Table), key, exceptID).Scan(&exists)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", ErrDuplicateKey, key)
	case errors.Is(err, sql.ErrNoRows):
		return nil
	default:
		return err
	}
}

func checkKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("invalid option number: cannot be empty")
	}
	return key, nil
}

// checkRecord trims and validates the operator-entered fields of rec.
func checkRecord(rec Record) (Record, error) {
	var err error
	if rec.Key, err = checkKey(rec.Key); err != nil {
		return rec, err
	}
	rec.Label = strings.TrimSpace(rec.Label)
	if err := nameutil.ValidateLabel(rec.Label); err != nil {
		return rec, err
	}
	if rec.KeepOpen != "" {
		k, ok := NormalizeKeepOpen(rec.KeepOpen)
		if !ok {
			return rec, fmt.Errorf("invalid keep_open %q (want *Auto, *Yes or *No)", rec.KeepOpen)
		}
		rec.KeepOpen = string(k)
	}
	return rec, nil
}

// UpdateArguments replaces the args text of the record with the given id.
func (r *Repository) UpdateArguments(ctx context.Context, id int64, args string) error {
	if !r.caps.Args {
		return fmt.Errorf("%w: args (run `smenu migrate`)", ErrColumnMissing)
	}
	return r.withDB(func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, fmt.Sprintf("UPDATE %s SET args = ? WHERE id = ?", dbpkg.Table), args, id)
		if err != nil {
			return fmt.Errorf("update args: %w", err)
		}
		return requireAffected(res, id)
	})
}

// Delete removes the record with the given id.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.withDB(func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", dbpkg.Table), id)
		if err != nil {
			return fmt.Errorf("delete: %w", err)
		}
		return requireAffected(res, id)
	})
}

// NextFreeKey returns one more than the largest integer key, or "1" when no
// integer keys exist.
func (r *Repository) NextFreeKey(ctx context.Context) (string, error) {
	recs, err := r.ListCommands(ctx)
	if err != nil {
		return "", err
	}
	return nextFreeKey(recs), nil
}

func nextFreeKey(recs []Record) string {
	var highest int64
	for _, rec := range recs {
		if n, err := strconv.ParseInt(strings.TrimSpace(rec.Key), 10, 64); err == nil && n > highest {
			highest = n
		}
	}
	return strconv.FormatInt(highest+1, 10)
}

func requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

// writable returns the column list and values for writing rec, limited to
// the columns this schema has. Unmodeled columns are written only when rec
// carries a value for them.
func (r *Repository) writable(rec Record) ([]string, []any, error) {
	cols := []string{"option_number", "label", "command", "type", "working_dir", "program_path"}
	vals := []any{rec.Key, rec.Label, rec.Command, rec.Kind, rec.WorkingDir, rec.ProgramPath}
	optional := []struct {
		name  string
		has   bool
		value string
	}{
		{"args", r.caps.Args, rec.Args},
		{"base_path", r.caps.BasePath, rec.BasePath},
		{"description", r.caps.Description, rec.Description},
		{"keep_open", r.caps.KeepOpen, rec.KeepOpen},
	}
	for _, o := range optional {
		if o.has {
			cols = append(cols, o.name)
			vals = append(vals, o.value)
			continue
		}
		if strings.TrimSpace(o.value) != "" {
			return nil, nil, fmt.Errorf("%w: %s (run `smenu migrate`)", ErrColumnMissing, o.name)
		}
	}
	for _, c := range r.extra {
		if v, ok := rec.Extra[c]; ok {
			cols = append(cols, quoteIdent(c))
			vals = append(vals, v)
		}
	}
	return cols, vals, nil
}

func (r *Repository) selectList() string {
	list := slices.Clone(r.cols)
	for _, c := range r.extra {
		list = append(list, quoteIdent(c))
	}
	return strings.Join(list, ", ")
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

type scanner interface {
	Scan(dest ...any) error
}

// scan reads one row selected with selectList.
func (r *Repository) scan(s scanner) (Record, error) {
	var id int64
	texts := make([]sql.NullString, len(r.cols)-1)
	extra := make([]any, len(r.extra))
	dest := make([]any, 0, len(r.cols)+len(r.extra))
	dest = append(dest, &id)
	for i := range texts {
		dest = append(dest, &texts[i])
	}
	for i := range extra {
		dest = append(dest, &extra[i])
	}
	if err := s.Scan(dest...); err != nil {
		return Record{}, err
	}
	rec := Record{ID: id}
	for i, c := range r.cols[1:] {
		v := texts[i].String
		switch c {
		case "option_number":
			rec.Key = v
		case "label":
			rec.Label = v
		case "command":
			rec.Command = v
		case "type":
			rec.Kind = v
		case "working_dir":
			rec.WorkingDir = v
		case "program_path":
			rec.ProgramPath = v
		case "args":
			rec.Args = v
		case "base_path":
			rec.BasePath = v
		case "description":
			rec.Description = v
		case "keep_open":
			rec.KeepOpen = v
		}
	}
	if len(r.extra) > 0 {
		rec.Extra = make(map[string]any, len(r.extra))
		for i, c := range r.extra {
			rec.Extra[c] = extra[i]
		}
	}
	return rec, nil
}
