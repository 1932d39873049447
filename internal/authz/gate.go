// Package authz — ворота доступа: по актору, действию и целевой заявке
// решают Allowed/Forbidden. Таблица способностей фиксированная, ролей
// три, правила проверяются по порядку — первое совпадение решает.
//
// Видимость (ReadRequest/ReadMessages/PostMessage по конкретной заявке)
// ворота не считают сами: её определяет движок scope через запрос к
// хранилищу, и невидимая заявка для вызывающего — NotFound, а не
// Forbidden. Сюда такие действия приходят уже после того, как сервис
// нашёл заявку в видимой области актора.
package authz

import (
	"request-tracker/internal/entities"
	apperrors "request-tracker/pkg/errors"
)

type Gate struct{}

func NewGate() *Gate {
	return &Gate{}
}

// Can возвращает nil (Allowed) либо ErrUnauthorized/ErrForbidden.
// target обязателен для действий над конкретной заявкой и nil для
// CreateRequest/ManageUser.
func (g *Gate) Can(actor *entities.User, action Action, target *entities.Request) error {
	if actor == nil {
		return apperrors.ErrUnauthorized
	}

	switch action {
	case ManageUser:
		if actor.Role == entities.RoleAdmin {
			return nil
		}
		return apperrors.ErrForbidden

	case CreateRequest:
		// Заявку может создать любой аутентифицированный; владельцем
		// всегда становится сам вызывающий.
		return nil

	case DeleteRequest:
		if actor.Role == entities.RoleAdmin || (target != nil && target.IsOwnedBy(actor.ID)) {
			return nil
		}
		// Диспетчер сам по себе удалять не может.
		return apperrors.ErrForbidden

	case UpdateRequest, CompleteRequest:
		if actor.Role == entities.RoleAdmin || actor.Role == entities.RoleDispatcher {
			return nil
		}
		if target != nil && target.IsOwnedBy(actor.ID) {
			return nil
		}
		return apperrors.ErrForbidden

	case ReadRequest, ReadMessages, PostMessage:
		// Заявка уже найдена в видимой области актора; дополнительных
		// ограничений нет.
		return nil
	}

	return apperrors.ErrForbidden
}

// CanTriggerCorrection — кто имеет право флагом needCorrection перевести
// заявку в INCORRECT. Менеджерский флаг молча игнорируется (сообщение
// сохраняется, статус не трогается) — в исходной системе менеджеру этот
// флаг вообще не показывался.
func (g *Gate) CanTriggerCorrection(actor *entities.User) bool {
	return actor != nil && (actor.Role == entities.RoleDispatcher || actor.Role == entities.RoleAdmin)
}
