package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"

	"socialregistry/internal/platform/tracing"
	"socialregistry/internal/registry/models"
	"socialregistry/internal/registry/store"
)

// foreignKeyViolation is the PostgreSQL SQLSTATE for a dangling reference.
const foreignKeyViolation = "23503"

// PostgresStore persists the registry in PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
	// q is the pool outside a transaction and the open *sqlx.Tx inside one.
	q sqlx.ExtContext
	// inTx marks a store bound to an open transaction.
	inTx bool
}

// New constructs a PostgreSQL-backed registry store.
func New(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db, q: db}
}

func (s *PostgresStore) ResolveReference(ctx context.Context, kind models.ReferenceKind, name string) (models.ReferenceID, bool, error) {
	ib := sqlbuilder.PostgreSQL.NewInsertBuilder()
	ib.InsertInto(tableReferences)
	ib.Cols("kind", "name")
	ib.Values(kind.String(), name)
	ib.SQL("ON CONFLICT (kind, name) DO NOTHING")
	ib.Returning("id")

	query, args := ib.Build()
	var id int64
	err := sqlx.GetContext(ctx, s.q, &id, query, args...)
	if err == nil {
		return models.ReferenceID(id), true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, fmt.Errorf("insert reference %s: %w", kind, err)
	}

	// Another writer holds the row; read it back.
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id")
	sb.From(tableReferences)
	sb.Where(sb.Equal("kind", kind.String()), sb.Equal("name", name))
	query, args = sb.Build()
	if err := sqlx.GetContext(ctx, s.q, &id, query, args...); err != nil {
		return 0, false, fmt.Errorf("find reference %s: %w", kind, err)
	}
	return models.ReferenceID(id), false, nil
}

func (s *PostgresStore) FindReferences(ctx context.Context, ids []models.ReferenceID) (map[models.ReferenceID]models.Reference, error) {
	out := make(map[models.ReferenceID]models.Reference, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "kind", "name")
	sb.From(tableReferences)
	sb.Where(fmt.Sprintf("id = ANY(%s)", sb.Var(pq.Array(raw))))

	query, args := sb.Build()
	var rows []referenceRow
	if err := sqlx.SelectContext(ctx, s.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("find references: %w", err)
	}
	for _, row := range rows {
		id := models.ReferenceID(row.ID)
		out[id] = models.Reference{ID: id, Kind: models.ReferenceKind(row.Kind), Name: row.Name}
	}
	return out, nil
}

func (s *PostgresStore) CreateRegistrant(ctx context.Context, r *models.Registrant) error {
	ctx, span := tracing.StartSpan(ctx, "registry.store.create_registrant",
		attribute.Bool("registrant.is_group", r.IsGroup))
	defer span.End()

	var kindID *int64
	if r.KindID != nil {
		v := int64(*r.KindID)
		kindID = &v
	}

	ib := sqlbuilder.PostgreSQL.NewInsertBuilder()
	ib.InsertInto(tableRegistrants)
	ib.Cols(registrantColumns[1:len(registrantColumns)-1]...)
	ib.Values(
		r.Name, r.IsGroup, r.RegistrationDate.TimePtr(), r.Email,
		r.GivenName, r.FamilyName, r.AdditionalName, string(r.Gender), r.Birthdate.TimePtr(),
		r.BirthdateNotExact, r.BirthPlace, r.Address, r.IsPartialGroup,
		kindID,
	)
	ib.Returning("id", "created_at")

	query, args := ib.Build()
	var inserted insertedRow
	if err := sqlx.GetContext(ctx, s.q, &inserted, query, args...); err != nil {
		tracing.RecordError(span, err)
		return translate(err, "insert registrant")
	}
	r.ID = models.RegistrantID(inserted.ID)
	r.CreatedAt = inserted.CreatedAt

	for i := range r.Identifiers {
		identifier := &r.Identifiers[i]
		ib := sqlbuilder.PostgreSQL.NewInsertBuilder()
		ib.InsertInto(tableIdentifiers)
		ib.Cols("registrant_id", "id_type_id", "value", "expiry_date")
		ib.Values(inserted.ID, int64(identifier.IDTypeID), identifier.Value, identifier.ExpiryDate.TimePtr())
		ib.Returning("id")
		query, args := ib.Build()
		if err := sqlx.GetContext(ctx, s.q, &identifier.ID, query, args...); err != nil {
			tracing.RecordError(span, err)
			return translate(err, "insert identifier")
		}
		identifier.RegistrantID = r.ID
	}

	for i := range r.PhoneNumbers {
		phone := &r.PhoneNumbers[i]
		ib := sqlbuilder.PostgreSQL.NewInsertBuilder()
		ib.InsertInto(tablePhoneNumbers)
		ib.Cols("registrant_id", "phone_no", "date_collected")
		ib.Values(inserted.ID, phone.PhoneNo, phone.DateCollected.TimePtr())
		ib.Returning("id")
		query, args := ib.Build()
		if err := sqlx.GetContext(ctx, s.q, &phone.ID, query, args...); err != nil {
			tracing.RecordError(span, err)
			return translate(err, "insert phone number")
		}
		phone.RegistrantID = r.ID
	}
	return nil
}

func (s *PostgresStore) FindRegistrant(ctx context.Context, id models.RegistrantID) (*models.Registrant, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(registrantColumns...)
	sb.From(tableRegistrants)
	sb.Where(sb.Equal("id", int64(id)))

	query, args := sb.Build()
	var row registrantRow
	if err := sqlx.GetContext(ctx, s.q, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("find registrant: %w", err)
	}
	r := row.toModel()

	ids := sqlbuilder.PostgreSQL.NewSelectBuilder()
	ids.Select("id", "registrant_id", "id_type_id", "value", "expiry_date")
	ids.From(tableIdentifiers)
	ids.Where(ids.Equal("registrant_id", int64(id)))
	ids.OrderBy("id")
	query, args = ids.Build()
	var identifierRows []identifierRow
	if err := sqlx.SelectContext(ctx, s.q, &identifierRows, query, args...); err != nil {
		return nil, fmt.Errorf("find identifiers: %w", err)
	}
	for _, ir := range identifierRows {
		r.Identifiers = append(r.Identifiers, ir.toModel())
	}

	phones := sqlbuilder.PostgreSQL.NewSelectBuilder()
	phones.Select("id", "registrant_id", "phone_no", "date_collected")
	phones.From(tablePhoneNumbers)
	phones.Where(phones.Equal("registrant_id", int64(id)))
	phones.OrderBy("id")
	query, args = phones.Build()
	var phoneRows []phoneRow
	if err := sqlx.SelectContext(ctx, s.q, &phoneRows, query, args...); err != nil {
		return nil, fmt.Errorf("find phone numbers: %w", err)
	}
	for _, pr := range phoneRows {
		r.PhoneNumbers = append(r.PhoneNumbers, pr.toModel())
	}
	return r, nil
}

func (s *PostgresStore) RegistrantExists(ctx context.Context, id models.RegistrantID) (bool, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("COUNT(1)")
	sb.From(tableRegistrants)
	sb.Where(sb.Equal("id", int64(id)))

	query, args := sb.Build()
	var count int
	if err := sqlx.GetContext(ctx, s.q, &count, query, args...); err != nil {
		return false, fmt.Errorf("check registrant: %w", err)
	}
	return count > 0, nil
}

func (s *PostgresStore) SearchGroups(ctx context.Context, filter models.GroupSearch) ([]*models.Registrant, error) {
	ctx, span := tracing.StartSpan(ctx, "registry.store.search_groups")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(registrantColumns...)
	sb.From(tableRegistrants)
	sb.Where(sb.Equal("is_group", true))
	if filter.ID != 0 {
		sb.Where(sb.Equal("id", int64(filter.ID)))
	}
	if filter.Name != "" {
		sb.Where(sb.Like("name", "%"+escapeLike(filter.Name)+"%"))
	}
	sb.OrderBy("id")

	query, args := sb.Build()
	var rows []registrantRow
	if err := sqlx.SelectContext(ctx, s.q, &rows, query, args...); err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("search groups: %w", err)
	}
	out := make([]*models.Registrant, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

func (s *PostgresStore) CreateRelationship(ctx context.Context, rel *models.Relationship) error {
	ib := sqlbuilder.PostgreSQL.NewInsertBuilder()
	ib.InsertInto(tableRelationships)
	ib.Cols("source_id", "destination_id", "relation_id")
	ib.Values(int64(rel.SourceID), int64(rel.DestinationID), int64(rel.RelationID))
	ib.Returning("id", "created_at")

	query, args := ib.Build()
	var inserted insertedRow
	if err := sqlx.GetContext(ctx, s.q, &inserted, query, args...); err != nil {
		return translate(err, "insert relationship")
	}
	rel.ID = inserted.ID
	rel.CreatedAt = inserted.CreatedAt
	return nil
}

func (s *PostgresStore) ListRelationships(ctx context.Context, id models.RegistrantID, dir models.Direction) ([]models.Relationship, error) {
	column := "source_id"
	if dir == models.IntoSubject {
		column = "destination_id"
	}

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "source_id", "destination_id", "relation_id", "created_at")
	sb.From(tableRelationships)
	sb.Where(sb.Equal(column, int64(id)))
	sb.OrderBy("id")

	query, args := sb.Build()
	var rows []relationshipRow
	if err := sqlx.SelectContext(ctx, s.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	out := make([]models.Relationship, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

func (s *PostgresStore) CreateMembership(ctx context.Context, m *models.Membership) error {
	group, err := s.FindRegistrant(ctx, m.GroupID)
	if err != nil {
		return fmt.Errorf("membership group %d: %w", m.GroupID, err)
	}
	if !group.IsGroup {
		return fmt.Errorf("membership group %d: %w", m.GroupID, store.ErrNotFound)
	}

	ib := sqlbuilder.PostgreSQL.NewInsertBuilder()
	ib.InsertInto(tableMemberships)
	ib.Cols("group_id", "individual_id")
	ib.Values(int64(m.GroupID), int64(m.IndividualID))
	ib.Returning("id", "created_at")

	query, args := ib.Build()
	var inserted insertedRow
	if err := sqlx.GetContext(ctx, s.q, &inserted, query, args...); err != nil {
		return translate(err, "insert membership")
	}
	m.ID = inserted.ID
	m.CreatedAt = inserted.CreatedAt

	if len(m.KindIDs) == 0 {
		return nil
	}
	kinds := sqlbuilder.PostgreSQL.NewInsertBuilder()
	kinds.InsertInto(tableMembershipKinds)
	kinds.Cols("membership_id", "kind_id", "position")
	for i, kindID := range m.KindIDs {
		kinds.Values(inserted.ID, int64(kindID), i)
	}
	query, args = kinds.Build()
	if _, err := s.q.ExecContext(ctx, query, args...); err != nil {
		return translate(err, "insert membership kinds")
	}
	return nil
}

func (s *PostgresStore) ListMemberships(ctx context.Context, groupID models.RegistrantID) ([]models.Membership, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select("id", "group_id", "individual_id", "created_at")
	sb.From(tableMemberships)
	sb.Where(sb.Equal("group_id", int64(groupID)))
	sb.OrderBy("id")

	query, args := sb.Build()
	var rows []membershipRow
	if err := sqlx.SelectContext(ctx, s.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	kb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	kb.Select("membership_id", "kind_id")
	kb.From(tableMembershipKinds)
	kb.Where(fmt.Sprintf("membership_id = ANY(%s)", kb.Var(pq.Array(ids))))
	kb.OrderBy("membership_id", "position")
	query, args = kb.Build()
	var kindRows []membershipKindRow
	if err := sqlx.SelectContext(ctx, s.q, &kindRows, query, args...); err != nil {
		return nil, fmt.Errorf("list membership kinds: %w", err)
	}
	kindsByMembership := make(map[int64][]models.ReferenceID, len(rows))
	for _, kr := range kindRows {
		kindsByMembership[kr.MembershipID] = append(kindsByMembership[kr.MembershipID], models.ReferenceID(kr.KindID))
	}

	out := make([]models.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.Membership{
			ID:           row.ID,
			GroupID:      models.RegistrantID(row.GroupID),
			IndividualID: models.RegistrantID(row.IndividualID),
			KindIDs:      kindsByMembership[row.ID],
			CreatedAt:    row.CreatedAt,
		})
	}
	return out, nil
}

// RunInTx runs fn in a database transaction. Calls made on a store that is
// already transactional join the open transaction.
func (s *PostgresStore) RunInTx(ctx context.Context, fn func(tx store.Store) error) (err error) {
	if s.inTx {
		return fn(s)
	}

	ctx, span := tracing.StartSpan(ctx, "registry.store.tx")
	defer span.End()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tracing.RecordError(span, err)
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback transaction: %w", rbErr))
			}
		}
	}()

	if err = fn(&PostgresStore{db: s.db, q: tx, inTx: true}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// translate maps a dangling foreign key to store.ErrNotFound.
func translate(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == foreignKeyViolation {
		return fmt.Errorf("%s: %w: %s", op, store.ErrNotFound, pqErr.Constraint)
	}
	return fmt.Errorf("%s: %w", op, err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE wildcards so the term matches literally.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
