package routes

import (
	"request-tracker/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runReportRouter(secureGroup *echo.Group, reportCtrl *controllers.ReportController) {
	{
		secureGroup.GET("/reports/requests", reportCtrl.GetReport)
	}
}
