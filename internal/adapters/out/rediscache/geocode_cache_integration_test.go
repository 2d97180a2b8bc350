package rediscache_test

import (
	"context"
	"testing"
	"time"

	"courier-tracker/internal/adapters/out/rediscache"
	"courier-tracker/internal/core/domain/model/kernel"
	"courier-tracker/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// GeocodeCacheIntegrationTestSuite runs the cache against a real Redis.
type GeocodeCacheIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	rdb       *redis.Client
	cache     *rediscache.GeocodeCache
}

func (suite *GeocodeCacheIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	addr, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	suite.rdb = redis.NewClient(&redis.Options{Addr: addr})
	suite.Require().NoError(suite.rdb.Ping(ctx).Err())

	suite.cache, err = rediscache.NewGeocodeCache(suite.rdb)
	suite.Require().NoError(err)
}

func (suite *GeocodeCacheIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.rdb.FlushAll(context.Background()).Err())
}

func (suite *GeocodeCacheIntegrationTestSuite) TearDownSuite() {
	if suite.rdb != nil {
		suite.Require().NoError(suite.rdb.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GeocodeCacheIntegrationTestSuite) TestMiss() {
	_, found, err := suite.cache.Get(context.Background(), "Calle 50")

	suite.Require().NoError(err)
	suite.False(found)
}

func (suite *GeocodeCacheIntegrationTestSuite) TestSetThenGet() {
	ctx := context.Background()
	p, err := kernel.NewGeoPoint(8.98, -79.52)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.cache.Set(ctx, "Calle 50, Bella Vista", p, time.Hour))

	got, found, err := suite.cache.Get(ctx, "  calle 50,   BELLA vista ")
	suite.Require().NoError(err)
	suite.True(found, "lookups ignore case and spacing")
	suite.Equal(p, got)

	ttl, err := suite.rdb.TTL(ctx, rediscache.Key("Calle 50, Bella Vista")).Result()
	suite.Require().NoError(err)
	suite.Greater(ttl, 59*time.Minute)
}

func (suite *GeocodeCacheIntegrationTestSuite) TestExpiry() {
	ctx := context.Background()
	p, err := kernel.NewGeoPoint(8.98, -79.52)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.cache.Set(ctx, "Calle 50", p, time.Second))

	suite.Eventually(func() bool {
		_, found, err := suite.cache.Get(ctx, "Calle 50")
		return err == nil && !found
	}, 5*time.Second, 100*time.Millisecond)
}

func (suite *GeocodeCacheIntegrationTestSuite) TestCorruptEntry() {
	ctx := context.Background()
	suite.Require().NoError(suite.rdb.HSet(ctx, rediscache.Key("Calle 50"), "lat", "north").Err())

	_, _, err := suite.cache.Get(ctx, "Calle 50")

	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func TestGeocodeCacheIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(GeocodeCacheIntegrationTestSuite))
}
