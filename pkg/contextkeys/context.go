package contextkeys

// Кастомный тип ключа, чтобы избежать коллизий в context
type contextKey string

// DBContextKey - ключ, по которому *gorm.DB (пул или транзакция) хранится в context
const DBContextKey = contextKey("db")

// SessionCookieName - имя cookie с сессионным токеном
const SessionCookieName = "jb_session"

// OAuthStateCookieName - имя cookie с анти-CSRF state для OAuth редиректа
const OAuthStateCookieName = "jb_oauth_state"
