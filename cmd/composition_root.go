package cmd

import (
	"log/slog"

	httpadapter "courier-tracker/internal/adapters/in/http"
	"courier-tracker/internal/adapters/out/backend"
	"courier-tracker/internal/adapters/out/device"
	"courier-tracker/internal/adapters/out/geocoding"
	"courier-tracker/internal/adapters/out/httpclient"
	"courier-tracker/internal/adapters/out/memory"
	"courier-tracker/internal/adapters/out/osrm"
	"courier-tracker/internal/adapters/out/postgres"
	"courier-tracker/internal/adapters/out/rediscache"
	"courier-tracker/internal/core/application/usecases/commands"
	"courier-tracker/internal/core/application/usecases/queries"
	"courier-tracker/internal/core/ports"
	"courier-tracker/internal/jobs"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const userAgent = "courier-tracker/1.0"

type CompositionRoot struct {
	cfg        Config
	logger     *slog.Logger
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	feeds     *memory.FeedStore
	trackers  *memory.TrackerStore
	views     *memory.ViewRegistry
	source    *device.PositionSource
	backend   *backend.Client
	router    ports.Router
	geocoder  ports.Geocoder
	publisher ports.EventPublisher
}

// NewCompositionRoot wires the outbound adapters. rdb may be nil, in which
// case geocoding results are not cached.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	rdb *redis.Client,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	newClient := func(service, baseURL string) (*httpclient.Client, error) {
		return httpclient.New(httpclient.Config{
			Service:    service,
			BaseURL:    baseURL,
			Timeout:    cfg.HTTPClientTimeout,
			MaxElapsed: cfg.RetryMaxElapsed,
			UserAgent:  userAgent,
		}, logger)
	}

	backendHTTP, err := newClient("backend", cfg.BackendBaseURL)
	if err != nil {
		return nil, err
	}
	backendClient, err := backend.NewClient(backendHTTP, logger)
	if err != nil {
		return nil, err
	}

	osrmHTTP, err := newClient("osrm", cfg.OsrmBaseURL)
	if err != nil {
		return nil, err
	}
	router, err := osrm.NewRouter(osrmHTTP)
	if err != nil {
		return nil, err
	}

	geocoder, err := newGeocoder(cfg, rdb, newClient, logger)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, cfg.SessionSlot),
		feeds:      memory.NewFeedStore(),
		trackers:   memory.NewTrackerStore(),
		views:      memory.NewViewRegistry(),
		source:     device.NewPositionSource(cfg.PositionMaxAge, cfg.PositionTimeout),
		backend:    backendClient,
		router:     router,
		geocoder:   geocoder,
		publisher:  publisher,
	}, nil
}

// newGeocoder builds the lookup chain: Nominatim with the country suffix and
// filter, plain Nominatim, then Photon with the suffix.
func newGeocoder(
	cfg Config,
	rdb *redis.Client,
	newClient func(service, baseURL string) (*httpclient.Client, error),
	logger *slog.Logger,
) (ports.Geocoder, error) {
	country := geocoding.Country{Name: cfg.GeocodeCountryName, Code: cfg.GeocodeCountryCode}

	nominatimHTTP, err := newClient("nominatim", cfg.NominatimBaseURL)
	if err != nil {
		return nil, err
	}
	qualified, err := geocoding.NewNominatim(nominatimHTTP, country)
	if err != nil {
		return nil, err
	}
	plain, err := geocoding.NewNominatim(nominatimHTTP, geocoding.Country{})
	if err != nil {
		return nil, err
	}

	photonHTTP, err := newClient("photon", cfg.PhotonBaseURL)
	if err != nil {
		return nil, err
	}
	photon, err := geocoding.NewPhoton(photonHTTP, country)
	if err != nil {
		return nil, err
	}

	chain := geocoding.NewChain(logger, qualified, plain, photon)
	if rdb == nil {
		return chain, nil
	}

	cache, err := rediscache.NewGeocodeCache(rdb)
	if err != nil {
		return nil, err
	}
	return geocoding.NewCached(chain, cache, cfg.GeocodeCacheTTL, logger), nil
}

func (c *CompositionRoot) sessionUoWFactory() commands.SessionUoWFactory {
	return FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) sessionKeeper() commands.SessionKeeper {
	return commands.NewSessionKeeper(c.sessionUoWFactory(), c.feeds, c.trackers, c.views, c.logger)
}

func (c *CompositionRoot) mapRefresher() commands.MapRefresher {
	return commands.NewMapRefresher(c.router, c.views, c.logger)
}

func (c *CompositionRoot) CreateLoginCommandHandler() commands.LoginCommandHandler {
	return commands.NewLoginCommandHandler(c.backend, c.sessionUoWFactory(), c.feeds, c.trackers, c.views)
}

func (c *CompositionRoot) CreateLogoutCommandHandler() commands.LogoutCommandHandler {
	return commands.NewLogoutCommandHandler(c.sessionKeeper())
}

func (c *CompositionRoot) CreateRefreshFeedCommandHandler() commands.RefreshFeedCommandHandler {
	return commands.NewRefreshFeedCommandHandler(c.sessionKeeper(), c.backend, c.feeds)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.sessionKeeper(), c.backend, c.feeds, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.sessionKeeper(), c.backend, c.feeds, c.views, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateOpenMapViewCommandHandler() commands.OpenMapViewCommandHandler {
	return commands.NewOpenMapViewCommandHandler(
		c.sessionKeeper(), c.feeds, c.trackers, c.source, c.geocoder, c.views, c.mapRefresher(), c.cfg.StyleURL(),
	)
}

func (c *CompositionRoot) CreateCloseMapViewCommandHandler() commands.CloseMapViewCommandHandler {
	return commands.NewCloseMapViewCommandHandler(c.views)
}

func (c *CompositionRoot) CreateInitializeTrackingCommandHandler() commands.InitializeTrackingCommandHandler {
	return commands.NewInitializeTrackingCommandHandler(c.sessionKeeper(), c.trackers, c.source, c.logger)
}

func (c *CompositionRoot) CreateTrackPositionCommandHandler() commands.TrackPositionCommandHandler {
	return commands.NewTrackPositionCommandHandler(
		c.sessionKeeper(), c.trackers, c.feeds, c.source, c.backend, c.publisher, c.mapRefresher(), c.logger,
	)
}

func (c *CompositionRoot) CreateDismissBannerCommandHandler() commands.DismissBannerCommandHandler {
	return commands.NewDismissBannerCommandHandler(c.trackers)
}

func (c *CompositionRoot) CreateRecordPositionCommandHandler() commands.RecordPositionCommandHandler {
	return commands.NewRecordPositionCommandHandler(c.source)
}

func (c *CompositionRoot) CreateSetDeviceStateCommandHandler() commands.SetDeviceStateCommandHandler {
	return commands.NewSetDeviceStateCommandHandler(c.source)
}

func (c *CompositionRoot) CreateGetSessionQueryHandler() queries.GetSessionQueryHandler {
	return queries.NewGetSessionQueryHandler(c.gormDB, c.cfg.SessionSlot)
}

func (c *CompositionRoot) CreateGetOrderFeedQueryHandler() queries.GetOrderFeedQueryHandler {
	return queries.NewGetOrderFeedQueryHandler(c.feeds)
}

func (c *CompositionRoot) CreateGetMapViewQueryHandler() queries.GetMapViewQueryHandler {
	return queries.NewGetMapViewQueryHandler(c.views)
}

func (c *CompositionRoot) CreateGetTrackingStatusQueryHandler() queries.GetTrackingStatusQueryHandler {
	return queries.NewGetTrackingStatusQueryHandler(c.trackers)
}

// CreateServer builds the inbound HTTP adapter over every handler.
func (c *CompositionRoot) CreateServer() *httpadapter.Server {
	handlers := httpadapter.Handlers{
		Login:              c.CreateLoginCommandHandler(),
		Logout:             c.CreateLogoutCommandHandler(),
		RefreshFeed:        c.CreateRefreshFeedCommandHandler(),
		AcceptOrder:        c.CreateAcceptOrderCommandHandler(),
		DeliverOrder:       c.CreateDeliverOrderCommandHandler(),
		OpenMapView:        c.CreateOpenMapViewCommandHandler(),
		CloseMapView:       c.CreateCloseMapViewCommandHandler(),
		InitializeTracking: c.CreateInitializeTrackingCommandHandler(),
		DismissBanner:      c.CreateDismissBannerCommandHandler(),
		RecordPosition:     c.CreateRecordPositionCommandHandler(),
		SetDeviceState:     c.CreateSetDeviceStateCommandHandler(),
		GetSession:         c.CreateGetSessionQueryHandler(),
		GetOrderFeed:       c.CreateGetOrderFeedQueryHandler(),
		GetMapView:         c.CreateGetMapViewQueryHandler(),
		GetTrackingStatus:  c.CreateGetTrackingStatusQueryHandler(),
	}
	return httpadapter.NewServer(handlers, c.sessionKeeper(), c.views, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewTrackingJob(
			c.CreateInitializeTrackingCommandHandler(),
			c.CreateTrackPositionCommandHandler(),
			c.trackers,
			c.cfg.TrackingInterval,
			c.logger,
		),
	)
}

// Shutdown disposes every open map view so stream subscribers are released.
func (c *CompositionRoot) Shutdown() {
	c.views.CloseAll()
}

type FuncSessionUoWFactory func() commands.SessionUoW

func (f FuncSessionUoWFactory) Create() commands.SessionUoW {
	return f()
}
