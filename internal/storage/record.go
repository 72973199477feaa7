package storage

import (
	"errors"
	"fmt"
	"strconv"
)

// Record is one customer row. Records are never modified after the store is built.
type Record struct {
	ID            int64
	Name          string
	Phone         string
	Email         string
	Score         string
	LastMessageAt string
	AddedBy       string
	AvatarRef     string
}

// Field names a sortable record attribute.
type Field string

const (
	FieldNone          Field = ""
	FieldID            Field = "id"
	FieldName          Field = "name"
	FieldPhone         Field = "phone"
	FieldEmail         Field = "email"
	FieldScore         Field = "score"
	FieldLastMessageAt Field = "lastMessageAt"
	FieldAddedBy       Field = "addedBy"
	FieldAvatarRef     Field = "avatarRef"
)

// Fields lists every record field in declaration order.
var Fields = []Field{
	FieldID,
	FieldName,
	FieldPhone,
	FieldEmail,
	FieldScore,
	FieldLastMessageAt,
	FieldAddedBy,
	FieldAvatarRef,
}

// Value returns the string form of the field for r.
func (f Field) Value(r Record) string {
	switch f {
	case FieldID:
		return strconv.FormatInt(r.ID, 10)
	case FieldName:
		return r.Name
	case FieldPhone:
		return r.Phone
	case FieldEmail:
		return r.Email
	case FieldScore:
		return r.Score
	case FieldLastMessageAt:
		return r.LastMessageAt
	case FieldAddedBy:
		return r.AddedBy
	case FieldAvatarRef:
		return r.AvatarRef
	default:
		return ""
	}
}

// ParseField resolves a field name, accepting snake_case aliases.
func ParseField(name string) (Field, bool) {
	switch name {
	case "last_message_at", "lastmessageat":
		return FieldLastMessageAt, true
	case "added_by", "addedby":
		return FieldAddedBy, true
	case "avatar", "avatar_ref", "avatarref":
		return FieldAvatarRef, true
	}
	for _, f := range Fields {
		if string(f) == name {
			return f, true
		}
	}
	return FieldNone, false
}

var (
	// ErrDuplicateID indicates two records share an id.
	ErrDuplicateID = errors.New("duplicate record id")
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")
)

// Store is the immutable in-memory record set.
type Store struct {
	records []Record
	byID    map[int64]int
}

// NewStore builds a store over records, keeping their order. The slice is owned
// by the store afterwards.
func NewStore(records []Record) (*Store, error) {
	byID := make(map[int64]int, len(records))
	for i, r := range records {
		if _, ok := byID[r.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, r.ID)
		}
		byID[r.ID] = i
	}
	return &Store{records: records, byID: byID}, nil
}

// Len returns the number of records.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// All returns the records in store order. Callers must not modify the slice.
func (s *Store) All() []Record {
	if s == nil {
		return nil
	}
	return s.records[:len(s.records):len(s.records)]
}

// ByID looks up a record by its identifier.
func (s *Store) ByID(id int64) (Record, error) {
	if s == nil {
		return Record{}, ErrNotFound
	}
	idx, ok := s.byID[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return s.records[idx], nil
}
