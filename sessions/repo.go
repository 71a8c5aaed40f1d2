package sessions

// Repo is the session table. Sessions are not persisted across restarts.
type Repo interface {
	Upsert(token string, session Session) error
	// Get returns errors.ErrSessionNotFound for unknown tokens.
	Get(token string) (Session, error)
	Delete(token string) error
}
