package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dentware/clinicdesk/config"
	"github.com/dentware/clinicdesk/internal/domain"
	"github.com/dentware/clinicdesk/internal/service"
	"github.com/dentware/clinicdesk/pkg/auth"
	"github.com/dentware/clinicdesk/pkg/metrics"
)

// RouterDeps carries everything the router wires together.
type RouterDeps struct {
	Config      *config.Config
	Log         *zap.Logger
	Metrics     *metrics.Collector
	JWTManager  *auth.JWTManager
	AuthSvc     *service.AuthService
	PatientSvc  *service.PatientService
	IncidentSvc *service.IncidentService
	ReportSvc   *service.ReportService
	PortalSvc   *service.PortalService
	SettingsSvc *service.SettingsService
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(deps.Log))
	r.Use(Metrics(deps.Metrics))
	r.Use(CORS(deps.Config.CORS))
	r.Use(RateLimit(deps.Config.RateLimit.RequestsPerSecond, deps.Config.RateLimit.BurstSize))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": deps.Config.App.Version})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	authHandler := NewAuthHandler(deps.AuthSvc)
	patientHandler := NewPatientHandler(deps.PatientSvc)
	incidentHandler := NewIncidentHandler(deps.IncidentSvc)
	reportHandler := NewReportHandler(deps.ReportSvc)
	portalHandler := NewPortalHandler(deps.PortalSvc)
	settingsHandler := NewSettingsHandler(deps.SettingsSvc)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", AuthRateLimit(deps.Config.RateLimit.AuthRequestsPerMinute), authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.GET("/session", authHandler.Me)
		authGroup.POST("/logout", Authenticate(deps.JWTManager), authHandler.Logout)
	}

	admin := api.Group("", Authenticate(deps.JWTManager), RequireRole(domain.RoleAdmin))
	{
		admin.GET("/patients", patientHandler.List)
		admin.POST("/patients", patientHandler.Create)
		admin.GET("/patients/:id", patientHandler.Get)
		admin.PATCH("/patients/:id", patientHandler.Update)
		admin.DELETE("/patients/:id", patientHandler.Delete)

		admin.GET("/incidents", incidentHandler.List)
		admin.POST("/incidents", incidentHandler.Create)
		admin.GET("/incidents/:id", incidentHandler.Get)
		admin.PATCH("/incidents/:id", incidentHandler.Update)
		admin.DELETE("/incidents/:id", incidentHandler.Delete)
		admin.POST("/incidents/:id/notes", incidentHandler.AppendNote)
		admin.POST("/incidents/:id/files", incidentHandler.AttachFile)

		admin.GET("/reports/summary", reportHandler.Summary)
		admin.GET("/reports/revenue", reportHandler.Revenue)
		admin.GET("/reports/revenue/monthly", reportHandler.RevenueByMonth)
		admin.GET("/reports/appointments/next", reportHandler.NextAppointments)
		admin.GET("/reports/appointments/today", reportHandler.TodaysAppointments)
		admin.GET("/reports/appointments/upcoming", reportHandler.Upcoming)
		admin.GET("/reports/appointments/completed", reportHandler.Completed)
		admin.GET("/reports/top/patients", reportHandler.TopPatients)
		admin.GET("/reports/top/services", reportHandler.TopServices)
		admin.GET("/calendar/month", reportHandler.MonthCalendar)
		admin.GET("/calendar/week", reportHandler.WeekCalendar)
		admin.GET("/catalog", reportHandler.Catalog)

		admin.GET("/settings", settingsHandler.Get)
		admin.PUT("/settings", settingsHandler.Update)
	}

	portal := api.Group("/portal", Authenticate(deps.JWTManager), RequireRole(domain.RolePatient))
	{
		portal.GET("/profile", portalHandler.Profile)
		portal.GET("/appointments/upcoming", portalHandler.Upcoming)
		portal.GET("/appointments/history", portalHandler.History)
		portal.GET("/totals", portalHandler.Totals)
	}

	return r
}
