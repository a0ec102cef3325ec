package record

import (
	"context"
	"errors"
	"sort"

	"github.com/asaidimu/go-kente/core"
	"github.com/asaidimu/go-kente/core/builder"
	"github.com/asaidimu/go-kente/core/schema"
	"go.uber.org/zap"
)

// Repository drives the record lifecycle for one record type. It asks the
// table metadata for column bindings, builds a default statement per
// operation (or the override the type registered), hands it to the
// executor, and materializes results back through the bindings.
//
// A Repository is safe for concurrent use: it only reads the immutable
// table metadata, and every operation constructs its own statement builder.
type Repository[R any] struct {
	table  *schema.Table[R]
	exec   Executor
	logger *zap.Logger
	bus    *eventBus
}

// NewRepository looks up the table metadata for R in the registry and binds
// it to an executor. A nil executor is a configuration error.
func NewRepository[R any](reg *schema.Registry, exec Executor, logger *zap.Logger) (*Repository[R], error) {
	if exec == nil {
		return nil, &core.ConnectionError{Err: errors.New("no executor configured")}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	table, err := schema.LookupTable[R](reg)
	if err != nil {
		return nil, err
	}
	bus, err := newEventBus()
	if err != nil {
		return nil, err
	}
	return &Repository[R]{table: table, exec: exec, logger: logger, bus: bus}, nil
}

// Table exposes the table metadata backing this repository.
func (r *Repository[R]) Table() *schema.Table[R] {
	return r.table
}

// Get fetches the record identified by key. Zero matching rows is an error,
// unlike Find.
func (r *Repository[R]) Get(ctx context.Context, key any) (*R, error) {
	stmt, err := r.getStatement(key)
	if err != nil {
		return nil, err
	}
	rs, err := r.query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	if len(rs.Rows) == 0 {
		return nil, &core.NotFoundError{Table: r.table.Name(), Key: key}
	}
	rec := new(R)
	if err := r.bindRow(rec, rs.Columns, rs.Rows[0]); err != nil {
		return nil, err
	}
	return rec, nil
}

// Find fetches every record matching the AND-conjunction of the given
// column equality conditions. Zero matches yields an empty slice, not an
// error; that asymmetry with Get is deliberate.
func (r *Repository[R]) Find(ctx context.Context, conditions map[string]any) ([]*R, error) {
	stmt, err := r.findStatement(conditions)
	if err != nil {
		return nil, err
	}
	rs, err := r.query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	records := make([]*R, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		rec := new(R)
		if err := r.bindRow(rec, rs.Columns, row); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Create inserts the record's current column values. When the identity
// column is auto-increment, the assigned value is read back and bound into
// the identity field before Create returns.
func (r *Repository[R]) Create(ctx context.Context, rec *R) error {
	stmt, err := r.createStatement(rec)
	if err != nil {
		r.bus.emit(EventCreateFailed, r.table.Name(), err)
		return err
	}
	affected, err := r.execute(ctx, stmt)
	if err != nil {
		r.bus.emit(EventCreateFailed, r.table.Name(), err)
		return err
	}
	if affected < 1 {
		err := &core.AffectedRowError{Op: "create", Table: r.table.Name()}
		r.bus.emit(EventCreateFailed, r.table.Name(), err)
		return err
	}

	identity := r.table.Identity()
	if identity.AutoIncrement() {
		if err := r.bindLastInsertID(ctx, rec, identity); err != nil {
			r.bus.emit(EventCreateFailed, r.table.Name(), err)
			return err
		}
	}
	r.bus.emit(EventCreateSuccess, r.table.Name(), nil)
	return nil
}

// Save updates the given columns (all non-identity columns when none are
// named) keyed by the record's identity value. Column values are validated
// before any statement is built.
func (r *Repository[R]) Save(ctx context.Context, rec *R, columns ...string) error {
	stmt, err := r.saveStatement(rec, columns)
	if err != nil {
		r.bus.emit(EventSaveFailed, r.table.Name(), err)
		return err
	}
	affected, err := r.execute(ctx, stmt)
	if err != nil {
		r.bus.emit(EventSaveFailed, r.table.Name(), err)
		return err
	}
	if affected < 1 {
		err := &core.AffectedRowError{Op: "save", Table: r.table.Name()}
		r.bus.emit(EventSaveFailed, r.table.Name(), err)
		return err
	}
	r.bus.emit(EventSaveSuccess, r.table.Name(), nil)
	return nil
}

// Remove deletes the row keyed by the record's identity value.
func (r *Repository[R]) Remove(ctx context.Context, rec *R) error {
	stmt, err := r.removeStatement(rec)
	if err != nil {
		r.bus.emit(EventRemoveFailed, r.table.Name(), err)
		return err
	}
	affected, err := r.execute(ctx, stmt)
	if err != nil {
		r.bus.emit(EventRemoveFailed, r.table.Name(), err)
		return err
	}
	if affected < 1 {
		err := &core.AffectedRowError{Op: "remove", Table: r.table.Name()}
		r.bus.emit(EventRemoveFailed, r.table.Name(), err)
		return err
	}
	r.bus.emit(EventRemoveSuccess, r.table.Name(), nil)
	return nil
}

// Subscribe registers a callback for a lifecycle event and returns the
// subscription id for Unsubscribe.
func (r *Repository[R]) Subscribe(event EventType, callback EventCallback) string {
	return r.bus.subscribe(event, callback)
}

// Unsubscribe removes a subscription by id.
func (r *Repository[R]) Unsubscribe(id string) {
	r.bus.unsubscribe(id)
}

// getStatement builds the select-by-identity statement, or uses the
// registered override.
func (r *Repository[R]) getStatement(key any) (builder.Statement, error) {
	if p := r.table.Producers().Get; p != nil {
		return p(r.table, key)
	}
	where := builder.NewWhere().Eq(r.table.IDColumn(), key)
	return builder.NewSelect().From(r.table.Name()).Where(where), nil
}

// findStatement builds the conjunction-of-equalities select, or uses the
// registered override. Conditions render in column name order so the text
// is deterministic.
func (r *Repository[R]) findStatement(conditions map[string]any) (builder.Statement, error) {
	if p := r.table.Producers().Find; p != nil {
		return p(r.table, conditions)
	}
	sel := builder.NewSelect().From(r.table.Name())
	if len(conditions) == 0 {
		return sel, nil
	}
	columns := make([]string, 0, len(conditions))
	for column := range conditions {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	where := builder.NewWhere()
	for i, column := range columns {
		if i > 0 {
			where.And()
		}
		where.Eq(column, conditions[column])
	}
	return sel.Where(where), nil
}

// createStatement builds the all-columns insert, or uses the registered
// override. Every column value passes constraint validation before the
// statement exists; a pending auto-increment value is inserted as NULL so
// the database assigns it.
func (r *Repository[R]) createStatement(rec *R) (builder.Statement, error) {
	if p := r.table.Producers().Create; p != nil {
		return p(r.table, rec)
	}
	ins := builder.NewInsert().Into(r.table.Name())
	for _, column := range r.table.Columns() {
		v, err := column.Read(rec)
		if err != nil {
			return nil, err
		}
		if column.AutoIncrement() && autoIncrementPending(v) {
			ins.Insert(column.Name()).Value(nil)
			continue
		}
		ins.Insert(column.Name()).Value(v.Any())
	}
	return ins, nil
}

// saveStatement builds the update keyed by identity, or uses the registered
// override.
func (r *Repository[R]) saveStatement(rec *R, columns []string) (builder.Statement, error) {
	if p := r.table.Producers().Save; p != nil {
		return p(r.table, rec, columns)
	}
	if len(columns) == 0 {
		for _, column := range r.table.Columns() {
			if !column.IsIdentity() {
				columns = append(columns, column.Name())
			}
		}
	}

	upd := builder.NewUpdate().Update(r.table.Name())
	for _, name := range columns {
		column, ok := r.table.Column(name)
		if !ok {
			return nil, &core.InputError{Op: "save", Reason: "unknown column " + name}
		}
		if column.IsIdentity() {
			continue
		}
		v, err := column.Read(rec)
		if err != nil {
			return nil, err
		}
		upd.Set(column.Name(), v.Any())
	}

	idValue, err := r.identityValue(rec)
	if err != nil {
		return nil, err
	}
	return upd.Where(builder.NewWhere().Eq(r.table.IDColumn(), idValue)), nil
}

// removeStatement builds the delete keyed by identity, or uses the
// registered override.
func (r *Repository[R]) removeStatement(rec *R) (builder.Statement, error) {
	if p := r.table.Producers().Remove; p != nil {
		return p(r.table, rec)
	}
	idValue, err := r.identityValue(rec)
	if err != nil {
		return nil, err
	}
	where := builder.NewWhere().Eq(r.table.IDColumn(), idValue)
	return builder.NewDelete().From(r.table.Name()).Where(where), nil
}

// identityValue reads the record's identity column for keying save/remove.
func (r *Repository[R]) identityValue(rec *R) (any, error) {
	v, err := r.table.Identity().Read(rec)
	if err != nil {
		return nil, err
	}
	if v.IsNull() {
		return nil, &core.ValidationError{Column: r.table.IDColumn(), Reason: "identity value is not set"}
	}
	return v.Any(), nil
}

// bindLastInsertID issues the last-insert-id select and writes the value
// into the identity field.
func (r *Repository[R]) bindLastInsertID(ctx context.Context, rec *R, identity *schema.Column[R]) error {
	rs, err := r.query(ctx, builder.LastInsertID())
	if err != nil {
		return err
	}
	if len(rs.Rows) == 0 || len(rs.Rows[0]) == 0 {
		return &core.AffectedRowError{Op: "last insert id", Table: r.table.Name()}
	}
	return identity.Write(rec, rs.Rows[0][0])
}

// bindRow writes one result row into a record through its column bindings.
// Result columns without a binding are skipped.
func (r *Repository[R]) bindRow(rec *R, columns []string, row []core.Value) error {
	for i, name := range columns {
		column, ok := r.table.Column(name)
		if !ok {
			r.logger.Warn("result column has no binding", zap.String("table", r.table.Name()), zap.String("column", name))
			continue
		}
		if err := column.Write(rec, row[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository[R]) query(ctx context.Context, stmt builder.Statement) (*RowSet, error) {
	sql, err := stmt.Build()
	if err != nil {
		return nil, err
	}
	params := stmt.Parameters()
	r.logger.Debug("executing query", zap.String("sql", sql), zap.Any("params", params))
	return r.exec.Query(ctx, sql, params)
}

func (r *Repository[R]) execute(ctx context.Context, stmt builder.Statement) (int64, error) {
	sql, err := stmt.Build()
	if err != nil {
		return 0, err
	}
	params := stmt.Parameters()
	r.logger.Debug("executing statement", zap.String("sql", sql), zap.Any("params", params))
	return r.exec.Exec(ctx, sql, params)
}

// autoIncrementPending reports whether an auto-increment column still waits
// for a database-assigned value: null or numeric zero.
func autoIncrementPending(v core.Value) bool {
	if v.IsNull() {
		return true
	}
	if n, err := v.Int64(); err == nil {
		return n == 0
	}
	return false
}
