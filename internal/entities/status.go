package entities

// RequestStatus — статус заявки. Жизненный цикл маленький и жёсткий:
// CREATED -> INCORRECT -> COMPLETED, CREATED -> COMPLETED.
// COMPLETED — терминальный статус, из него переходов нет.
type RequestStatus string

const (
	StatusCreated   RequestStatus = "CREATED"
	StatusIncorrect RequestStatus = "INCORRECT"
	StatusCompleted RequestStatus = "COMPLETED"
)

// AllStatuses — порядок важен только для предсказуемости в тестах.
var AllStatuses = []RequestStatus{StatusCreated, StatusIncorrect, StatusCompleted}

var allowedTransitions = map[RequestStatus][]RequestStatus{
	StatusCreated:   {StatusIncorrect, StatusCompleted},
	StatusIncorrect: {StatusCompleted},
	StatusCompleted: {},
}

func (s RequestStatus) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

func (s RequestStatus) String() string {
	return string(s)
}

// CanTransitionTo проверяет допустимость перехода s -> next.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsFinal — терминальный ли статус.
func (s RequestStatus) IsFinal() bool {
	return len(allowedTransitions[s]) == 0
}

func ParseRequestStatus(s string) (RequestStatus, bool) {
	st := RequestStatus(s)
	return st, st.Valid()
}
