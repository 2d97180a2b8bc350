package queries_test

import (
	"context"
	"testing"
	"time"

	"courier-tracker/internal/adapters/out/postgres/sessionrepo"
	"courier-tracker/internal/core/application/usecases/queries"
	"courier-tracker/internal/core/domain/model/order"
	"courier-tracker/internal/core/domain/model/session"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetSessionQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *sessionrepo.GormSessionRepository
	handler   queries.GetSessionQueryHandler
}

func (suite *GetSessionQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&sessionrepo.SessionDTO{}))

	suite.repo = sessionrepo.NewGormSessionRepository(db, "default")
	suite.handler = queries.NewGetSessionQueryHandler(db, "default")
}

func (suite *GetSessionQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetSessionQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE sessions").Error)
}

func (suite *GetSessionQueryHandlerTestSuite) TestHandle_NoSession_Unauthenticated() {
	_, err := suite.handler.Handle(context.Background(), queries.NewGetSessionQuery())

	suite.Require().ErrorIs(err, session.ErrUnauthenticated)
}

func (suite *GetSessionQueryHandlerTestSuite) TestHandle_Courier() {
	ctx := context.Background()
	id := order.CourierID(8)
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	s, err := session.NewSession("tok", "ref", session.User{
		ID: 3, Name: "Luis", Email: "luis@example.com", Phone: "6000-0000",
		Role: session.RoleCourier, CourierID: &id,
	}, expires)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Save(ctx, s))

	r, err := suite.handler.Handle(ctx, queries.NewGetSessionQuery())

	suite.Require().NoError(err)
	suite.Equal(int64(3), r.UserID)
	suite.Require().NotNil(r.CourierID)
	suite.Equal(int64(8), *r.CourierID)
	suite.Equal("Luis", r.Name)
	suite.Equal("repartidor", r.Role)
	suite.Equal("/homeRepartidor", r.DefaultRoute)
	suite.Require().NotNil(r.ExpiresAt)
	suite.True(expires.Equal(*r.ExpiresAt))
}

func (suite *GetSessionQueryHandlerTestSuite) TestHandle_CompanyLandsOnFirstCompany() {
	ctx := context.Background()
	s, err := session.NewSession("tok", "", session.User{
		ID: 4, Name: "Roma", Role: session.RoleCompany, Companies: []string{"PizzaRoma", "Other"},
	}, time.Time{})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Save(ctx, s))

	r, err := suite.handler.Handle(ctx, queries.NewGetSessionQuery())

	suite.Require().NoError(err)
	suite.Nil(r.CourierID)
	suite.Nil(r.ExpiresAt)
	suite.Equal([]string{"PizzaRoma", "Other"}, r.Companies)
	suite.Equal("/PizzaRoma/home", r.DefaultRoute)
}

func (suite *GetSessionQueryHandlerTestSuite) TestHandle_Expired_Unauthenticated() {
	ctx := context.Background()
	s, err := session.NewSession("tok", "", session.User{ID: 4, Role: session.RoleAdmin}, time.Now().Add(-time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Save(ctx, s))

	_, err = suite.handler.Handle(ctx, queries.NewGetSessionQuery())

	suite.Require().ErrorIs(err, session.ErrUnauthenticated)
}

func (suite *GetSessionQueryHandlerTestSuite) TestHandle_NotConstructed() {
	_, err := suite.handler.Handle(context.Background(), queries.GetSessionQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetSessionQueryIsNotConstructed)
}

func TestGetSessionQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetSessionQueryHandlerTestSuite))
}
