package repos

import (
	"database/sql"
	"errors"

	"faceswapadmin/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SessionRepo struct{ DB *sqlx.DB }

func NewSessionRepo(db *sqlx.DB) *SessionRepo { return &SessionRepo{DB: db} }

func (r *SessionRepo) Bind(sid, username string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,username,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET username=excluded.username,last_seen=CURRENT_TIMESTAMP`, sid, username)
	return err
}

func (r *SessionRepo) Unbind(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET username=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}

// Get returns the session for sid; unknown or unbound sids are
// Unauthenticated, not an error.
func (r *SessionRepo) Get(sid string) (domain.Session, error) {
	var row struct {
		ID       string         `db:"id"`
		Username sql.NullString `db:"username"`
	}
	err := r.DB.Get(&row, `SELECT id,username FROM sessions WHERE id=?`, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{ID: sid, State: domain.Unauthenticated}, nil
	}
	if err != nil {
		return domain.Session{ID: sid, State: domain.Unauthenticated}, err
	}
	s := domain.Session{ID: row.ID, State: domain.Unauthenticated}
	if row.Username.Valid && row.Username.String != "" {
		s.User = row.Username.String
		s.State = domain.Authenticated
	}
	return s, nil
}

func (r *SessionRepo) Touch(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}
