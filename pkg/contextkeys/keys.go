package contextkeys

type contextKey string

// ActorKey — единственный ключ авторизации: под ним auth-middleware
// кладёт загруженного *entities.User целиком.
const ActorKey contextKey = "Actor"
