package docs

import "github.com/swaggo/swag"

// @title           Team Task API
// @version         1.0
// @description     API for managing team tasks, assignees, the dashboard and chat notifications

// @host      localhost:8080
// @BasePath  /

// @tag.name Tasks
// @tag.description Task lifecycle operations

// @tag.name Assignees
// @tag.description Assignee management operations

// @tag.name Views
// @tag.description Dashboard, UI state and form defaults

// @tag.name Notifications
// @tag.description Chat notification delivery

// Register swagger info
func SwaggerInfo() *swag.Spec {
	return swag.Instance
}
