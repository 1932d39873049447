package routes

import (
	"request-tracker/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runRequestRouter(secureGroup *echo.Group, requestCtrl *controllers.RequestController, messageCtrl *controllers.MessageController) {
	{
		secureGroup.GET("/requests", requestCtrl.GetRequests)
		secureGroup.POST("/requests", requestCtrl.CreateRequest)
		secureGroup.GET("/requests/:id", requestCtrl.FindRequest)
		secureGroup.PUT("/requests/:id", requestCtrl.UpdateRequest)
		secureGroup.POST("/requests/:id/complete", requestCtrl.CompleteRequest)
		secureGroup.DELETE("/requests/:id", requestCtrl.DeleteRequest)

		secureGroup.GET("/requests/:id/messages", messageCtrl.GetMessages)
		secureGroup.POST("/requests/:id/messages", messageCtrl.PostMessage)
	}
}
