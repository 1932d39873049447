package authz

// Action — фиксированный набор действий, проверяемых воротами доступа.
type Action string

const (
	CreateRequest   Action = "requests:create"
	ReadRequest     Action = "requests:view"
	UpdateRequest   Action = "requests:update"
	DeleteRequest   Action = "requests:delete"
	CompleteRequest Action = "requests:complete"
	PostMessage     Action = "messages:create"
	ReadMessages    Action = "messages:view"
	ManageUser      Action = "users:manage"
)
