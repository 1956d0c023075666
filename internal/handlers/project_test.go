package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skyventures/tasks-api/internal/constants"
	"github.com/skyventures/tasks-api/internal/models"
	"github.com/skyventures/tasks-api/internal/repository"
	"github.com/skyventures/tasks-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ProjectHandlerTestSuite defines the test suite for ProjectHandler
type ProjectHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *ProjectHandler
}

// SetupTest runs before each test
func (suite *ProjectHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Project{}, &models.Task{})
	suite.Require().NoError(err)

	projectRepo := repository.NewProjectRepository(suite.db)
	suite.handler = NewProjectHandler(services.NewProjectService(projectRepo))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ProjectHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ProjectHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *ProjectHandlerTestSuite) createTestProject(name string, ownerID uuid.UUID) *models.Project {
	project := &models.Project{
		Name:    name,
		OwnerID: ownerID,
	}
	suite.Require().NoError(suite.db.Create(project).Error)
	return project
}

// createAuthContext simulates RequireAuth having resolved the caller.
func (suite *ProjectHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uuid.UUID) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

// setProjectContext simulates RequireProjectAccess having resolved the project.
func (suite *ProjectHandlerTestSuite) setProjectContext(c *gin.Context, project models.Project) {
	c.Set(constants.ContextKeyProject, project)
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_Success() {
	user := suite.createTestUser("maria")

	body, _ := json.Marshal(map[string]string{
		"name":        "Website Redesign",
		"description": "Relaunch the marketing site",
	})
	c, w := suite.createAuthContext("POST", "/api/projects", body, user.ID)

	suite.handler.CreateProject(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	project := response["project"]
	assert.Equal(suite.T(), "Website Redesign", project["name"])
	assert.Equal(suite.T(), "Relaunch the marketing site", project["description"])
	assert.Equal(suite.T(), user.ID.String(), project["owner"])
	assert.Equal(suite.T(), false, project["is_deleted"])
	assert.NotEmpty(suite.T(), project["_id"])
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_MissingName() {
	user := suite.createTestUser("maria")

	body, _ := json.Marshal(map[string]string{"description": "no name"})
	c, w := suite.createAuthContext("POST", "/api/projects", body, user.ID)

	suite.handler.CreateProject(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Project name is required", response["error"]["message"])
}

func (suite *ProjectHandlerTestSuite) TestListProjects_OnlyOwnedAndNotDeleted() {
	owner := suite.createTestUser("maria")
	other := suite.createTestUser("other")

	kept := suite.createTestProject("Kept", owner.ID)
	suite.createTestProject("Foreign", other.ID)
	deleted := suite.createTestProject("Deleted", owner.ID)
	suite.Require().NoError(suite.db.Model(deleted).Update("is_deleted", true).Error)

	c, w := suite.createAuthContext("GET", "/api/projects", nil, owner.ID)

	suite.handler.ListProjects(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string][]map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response["projects"], 1)
	assert.Equal(suite.T(), kept.ID.String(), response["projects"][0]["_id"])
}

func (suite *ProjectHandlerTestSuite) TestGetProject() {
	owner := suite.createTestUser("maria")
	project := suite.createTestProject("Website Redesign", owner.ID)

	c, w := suite.createAuthContext("GET", "/api/projects/"+project.ID.String(), nil, owner.ID)
	suite.setProjectContext(c, *project)

	suite.handler.GetProject(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), project.ID.String(), response["project"]["_id"])
	assert.Equal(suite.T(), "Website Redesign", response["project"]["name"])
}

func (suite *ProjectHandlerTestSuite) TestUpdateProject_Partial() {
	owner := suite.createTestUser("maria")
	project := suite.createTestProject("Old Name", owner.ID)
	suite.Require().NoError(suite.db.Model(project).Update("description", "keep me").Error)

	body, _ := json.Marshal(map[string]string{"name": "New Name"})
	c, w := suite.createAuthContext("PUT", "/api/projects/"+project.ID.String(), body, owner.ID)
	suite.setProjectContext(c, *project)

	suite.handler.UpdateProject(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "New Name", response["project"]["name"])
	// Fields absent from the payload are untouched.
	assert.Equal(suite.T(), "keep me", response["project"]["description"])
}

func (suite *ProjectHandlerTestSuite) TestUpdateProject_EmptyName() {
	owner := suite.createTestUser("maria")
	project := suite.createTestProject("Old Name", owner.ID)

	body, _ := json.Marshal(map[string]string{"name": "   "})
	c, w := suite.createAuthContext("PUT", "/api/projects/"+project.ID.String(), body, owner.ID)
	suite.setProjectContext(c, *project)

	suite.handler.UpdateProject(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestSoftDeleteProject_Idempotent() {
	owner := suite.createTestUser("maria")
	project := suite.createTestProject("Website Redesign", owner.ID)

	for i := 0; i < 2; i++ {
		c, w := suite.createAuthContext("PUT", "/api/projects/"+project.ID.String()+"/soft-delete", nil, owner.ID)
		c.Params = gin.Params{{Key: "projectID", Value: project.ID.String()}}

		suite.handler.SoftDeleteProject(c)

		assert.Equal(suite.T(), http.StatusOK, w.Code)

		var response map[string]string
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(suite.T(), "Project soft deleted successfully", response["message"])
	}

	var stored models.Project
	suite.Require().NoError(suite.db.First(&stored, "id = ?", project.ID).Error)
	assert.True(suite.T(), stored.IsDeleted)
}

func (suite *ProjectHandlerTestSuite) TestSoftDeleteProject_NotOwner() {
	owner := suite.createTestUser("maria")
	intruder := suite.createTestUser("intruder")
	project := suite.createTestProject("Website Redesign", owner.ID)

	c, w := suite.createAuthContext("PUT", "/api/projects/"+project.ID.String()+"/soft-delete", nil, intruder.ID)
	c.Params = gin.Params{{Key: "projectID", Value: project.ID.String()}}

	suite.handler.SoftDeleteProject(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var stored models.Project
	suite.Require().NoError(suite.db.First(&stored, "id = ?", project.ID).Error)
	assert.False(suite.T(), stored.IsDeleted)
}

func (suite *ProjectHandlerTestSuite) TestSoftDeleteProject_MalformedID() {
	owner := suite.createTestUser("maria")

	c, w := suite.createAuthContext("PUT", "/api/projects/not-a-uuid/soft-delete", nil, owner.ID)
	c.Params = gin.Params{{Key: "projectID", Value: "not-a-uuid"}}

	suite.handler.SoftDeleteProject(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response map[string]map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Invalid project ID format", response["error"]["message"])
}

// TestProjectHandlerTestSuite runs the test suite
func TestProjectHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectHandlerTestSuite))
}
