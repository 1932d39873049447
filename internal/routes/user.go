package routes

import (
	"request-tracker/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runUserRouter(secureGroup *echo.Group, userCtrl *controllers.UserController) {
	{
		secureGroup.GET("/profile", userCtrl.GetProfile)
		secureGroup.PUT("/profile", userCtrl.UpdateProfile)

		// Админские операции; проверка роли — в сервисе.
		secureGroup.GET("/users", userCtrl.GetUsers)
		secureGroup.PUT("/users/:id", userCtrl.UpdateUser)
		secureGroup.DELETE("/users/:id", userCtrl.DeleteUser)
	}
}
