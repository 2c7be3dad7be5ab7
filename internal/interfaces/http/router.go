package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Auth        *AuthHandler
	Assets      *AssetHandler
	Maintenance *MaintenanceHandler
	Sectors     *SectorHandler
	Users       *UserHandler
	Dashboard   *DashboardHandler
	Backups     *BackupHandler
	Custody     *CustodyHandler

	JWTSecret string
	// LoginMaxAttempts intentos de login por IP en LoginWindow; 0 desactiva el límite.
	LoginMaxAttempts int
	LoginWindow      time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Login (público, con límite por IP)
	login := []fiber.Handler{}
	if deps.LoginMaxAttempts > 0 {
		login = append(login, limiter.New(limiter.Config{
			Max:        deps.LoginMaxAttempts,
			Expiration: deps.LoginWindow,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
					Code: "TOO_MANY_REQUESTS", Message: "Muitas tentativas de login. Tente novamente mais tarde.",
				})
			},
		}))
	}
	api.Post("/login", append(login, deps.Auth.Login)...)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/simple-search", deps.Assets.SimpleSearch)

	admin := protected.Group("/", RequireRole(RoleAdmin))

	// Patrimonios: rutas fijas antes de /:id
	assets := admin.Group("/patrimonios")
	assets.Get("/", deps.Assets.List)
	assets.Get("/next-tag", deps.Assets.NextTag)
	assets.Get("/export", deps.Assets.Export)
	assets.Post("/import", deps.Assets.Import)
	assets.Post("/bulk-update", deps.Assets.BulkUpdate)
	assets.Post("/delete-lote", deps.Assets.DeleteBatch)
	assets.Post("/", deps.Assets.Create)
	assets.Get("/:id<int>", deps.Assets.GetByID)
	assets.Post("/:id<int>", deps.Assets.Update)
	assets.Patch("/:id<int>", deps.Assets.QuickUpdate)
	assets.Get("/:id<int>/historico", deps.Assets.History)
	assets.Get("/:id<int>/manutencoes", deps.Maintenance.List)
	assets.Post("/:id<int>/manutencoes", deps.Maintenance.Open)
	admin.Get("/patrimonio/tag/:tag", deps.Assets.GetByTag)

	// Manutenções
	admin.Put("/manutencoes/:manutencao_id<int>", deps.Maintenance.Close)
	admin.Delete("/manutencoes/:manutencao_id<int>", deps.Maintenance.Delete)

	// Setores
	admin.Get("/setores", deps.Sectors.List)
	admin.Post("/setores", deps.Sectors.Create)

	// Usuários
	admin.Get("/users", deps.Users.List)
	admin.Post("/users", deps.Users.Create)
	admin.Put("/users/:id<int>", deps.Users.Update)
	admin.Delete("/users/:id<int>", deps.Users.Delete)
	admin.Post("/user/avatar", deps.Users.UploadAvatar)

	// Dashboard
	admin.Get("/dashboard", deps.Dashboard.GetSummary)

	// Termo de responsabilidade
	admin.Get("/termo/responsavel/:responsavel", deps.Custody.Term)
	admin.Get("/termo/responsavel/:responsavel/pdf", deps.Custody.TermPDF)

	// Backups
	backups := admin.Group("/backups")
	backups.Get("/", deps.Backups.List)
	backups.Post("/", deps.Backups.Create)
	backups.Post("/import", deps.Backups.Import)
	backups.Get("/:filename", deps.Backups.Download)
	backups.Delete("/:filename", deps.Backups.Delete)
	backups.Post("/:filename/restore", deps.Backups.Restore)
}
