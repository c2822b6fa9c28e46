package handler

import (
	"io"

	"go-recordshop/internal/middleware"
	"go-recordshop/internal/model"
	"go-recordshop/internal/service"
	"go-recordshop/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const livenessText = "Record Shop API is running"

// AppConfig configures the fiber application.
type AppConfig struct {
	Name string
	// RequestLog receives one line per request; nil disables request logging.
	RequestLog io.Writer
}

// NewApp creates the fiber app with the shared middleware stack.
func NewApp(cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: cfg.Name,
	})

	if cfg.RequestLog != nil {
		app.Use(logger.New(logger.Config{Output: cfg.RequestLog}))
	}
	app.Use(recover.New())
	app.Use(cors.New())

	return app
}

// Routes bundles what SetupRoutes wires.
type Routes struct {
	Auth        *AuthHandler
	Records     *RecordHandler
	AuthService service.AuthService
	Hub         *ws.Hub
	// Enforce requires a token and the matching privilege on every /api/records route.
	Enforce bool
	// LoginLimiter guards POST /api/login when set.
	LoginLimiter fiber.Handler
}

func SetupRoutes(app *fiber.App, r Routes) {
	// Health check
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(livenessText)
	})

	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	if r.LoginLimiter != nil {
		api.Post("/login", r.LoginLimiter, r.Auth.Login)
	} else {
		api.Post("/login", r.Auth.Login)
	}
	api.Post("/validate-token", r.Auth.ValidateToken)

	api.Get("/formats", r.Records.GetFormats)
	api.Get("/genres", r.Records.GetGenres)

	// ============ RECORD ROUTES ============
	var records fiber.Router
	privilege := func(code string) fiber.Handler {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if r.Enforce {
		records = api.Group("/records", middleware.RequireAuth(r.AuthService))
		privilege = middleware.RequirePrivilege
	} else {
		records = api.Group("/records", middleware.IdentifyUser(r.AuthService))
	}

	records.Get("", privilege(model.PrivRecordView), r.Records.GetRecords)
	records.Get("/:id", privilege(model.PrivRecordView), r.Records.GetRecord)
	records.Post("", privilege(model.PrivRecordCreate), r.Records.CreateRecord)
	records.Put("/:id", privilege(model.PrivRecordUpdate), r.Records.UpdateRecord)
	records.Delete("/:id", privilege(model.PrivRecordDelete), r.Records.DeleteRecord)

	// Roles (read only, lets clients show who can do what)
	api.Get("/roles", func(c *fiber.Ctx) error {
		return c.JSON(model.DefaultRoles)
	})
	api.Get("/privileges", func(c *fiber.Ctx) error {
		return c.JSON(model.DefaultPrivileges)
	})

	// WebSocket Route
	if r.Hub != nil {
		hub := r.Hub
		app.Use("/ws", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return c.SendStatus(fiber.StatusUpgradeRequired)
		})
		app.Get("/ws", websocket.New(func(c *websocket.Conn) {
			hub.Register(c)
			defer hub.Unregister(c)

			for {
				// Keep alive loop
				if _, _, err := c.ReadMessage(); err != nil {
					break
				}
			}
		}))
	}
}
