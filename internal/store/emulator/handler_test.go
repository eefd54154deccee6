package emulator_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"teamtask/internal/model"
	"teamtask/internal/store/emulator"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupHandler(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	gin.SetMode(gin.TestMode)
	gormDB, mock := setupMockDB(t)

	h := emulator.NewHandler(emulator.NewTaskRepository(gormDB), emulator.NewAssigneeRepository(gormDB))
	r := gin.Default()
	h.Register(r)
	return r, mock
}

// The real scripted endpoint only accepts text/plain posts, so the
// dispatcher must bind JSON regardless of the declared content type.
func TestDispatch_CreateOverTextPlain(t *testing.T) {
	// Arrange
	router, mock := setupHandler(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "task_rows"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body := `{"action":"create","task":{"title":"Write report","assignee":"Ann"}}`
	req, _ := http.NewRequest("POST", "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	// Act
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)

	var response struct {
		Task model.Task `json:"task"`
	}
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Task.ID)
	assert.Equal(t, model.StatusToDo, response.Task.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDispatch_SendNotificationAcknowledged(t *testing.T) {
	router, _ := setupHandler(t)

	body := `{"action":"sendNotification","id":"42"}`
	req, _ := http.NewRequest("POST", "/", bytes.NewBufferString(body))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"ok":true}`, resp.Body.String())
}

func TestDispatch_UnknownAction(t *testing.T) {
	router, _ := setupHandler(t)

	body := `{"action":"explode"}`
	req, _ := http.NewRequest("POST", "/", bytes.NewBufferString(body))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestDispatch_CreateWithoutPayload(t *testing.T) {
	router, _ := setupHandler(t)

	body := `{"action":"create"}`
	req, _ := http.NewRequest("POST", "/", bytes.NewBufferString(body))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestList_AssigneesByTypeQuery(t *testing.T) {
	router, mock := setupHandler(t)

	mock.ExpectQuery(`SELECT .* FROM "assignee_rows" ORDER BY name`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "position", "role"}))

	req, _ := http.NewRequest("GET", "/?type=assignees", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
