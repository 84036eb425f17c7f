package router

import (
	"road_watch/core/api/handler"
	"road_watch/core/api/middleware"
	"road_watch/core/api/services"
	"road_watch/core/realtime"

	"github.com/gofiber/fiber/v3"
)

// ============================================================================
// ⚠️ QUAN TRỌNG: FIBER V3 - CÁCH ĐĂNG KÝ MIDDLEWARE
// ============================================================================
//
// Fiber v3 KHÔNG gọi middleware khi truyền trực tiếp trong route:
//
// ❌ CÁCH SAI (middleware bị bỏ qua):
//    router.Get("/path", middleware.AuthMiddleware(), handler)
//
// ✅ CÁCH ĐÚNG:
//    registerRouteWithMiddleware(router, "/prefix", "GET", "/path",
//        []fiber.Handler{authMiddleware}, handler)
//    → Middleware được gắn qua .Use() trên group, chạy đúng thứ tự.
//
// Mọi route mới trong file này PHẢI dùng registerRouteWithMiddleware.
// ============================================================================

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string
}

// NewRoutePrefix tạo mới RoutePrefix với giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	return RoutePrefix{
		Base: "/api",
	}
}

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// NewRouter tạo mới Router
func NewRouter(app *fiber.App) *Router {
	return &Router{app: app}
}

// registerRouteWithMiddleware đăng ký một route với chuỗi middleware qua group.
// Xem ghi chú ở đầu file về lý do bắt buộc dùng hàm này.
func registerRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, h fiber.Handler) {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch method {
	case "GET":
		routeGroup.Get(path, h)
	case "POST":
		routeGroup.Post(path, h)
	case "PUT":
		routeGroup.Put(path, h)
	case "DELETE":
		routeGroup.Delete(path, h)
	}
}

// SetupRoutes đăng ký toàn bộ route của subsystem.
// Mọi route đều yêu cầu JWT bearer từ cổng đăng nhập của portal.
func SetupRoutes(app *fiber.App, hub *realtime.Hub, assignmentService *services.AssignmentService, notificationService *services.NotificationService) {
	prefix := NewRoutePrefix()
	api := app.Group(prefix.Base)

	auth := middleware.AuthMiddleware()
	authChain := []fiber.Handler{auth}

	reportHandler := handler.NewReportHandler()
	employeeHandler := handler.NewEmployeeHandler()
	assignmentHandler := handler.NewAssignmentHandler(assignmentService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// Báo cáo hư hỏng đường (read-only)
	registerRouteWithMiddleware(api, "/reports", "GET", "/list-all", authChain, reportHandler.HandleListAll)

	// Roster nhân sự (read-only)
	registerRouteWithMiddleware(api, "/user", "GET", "/list-all", authChain, employeeHandler.HandleListAll)

	// Vòng đời phiếu phân công
	registerRouteWithMiddleware(api, "/assignments", "GET", "/list-all", authChain, assignmentHandler.HandleListAll)
	registerRouteWithMiddleware(api, "/assignments", "GET", "/worklist", authChain, assignmentHandler.HandleWorklist)
	registerRouteWithMiddleware(api, "/assignments", "POST", "/create", authChain, assignmentHandler.HandleCreate)
	registerRouteWithMiddleware(api, "/assignments", "PUT", "/update/:id", authChain, assignmentHandler.HandleUpdate)
	registerRouteWithMiddleware(api, "/assignments", "DELETE", "/delete/:id", authChain, assignmentHandler.HandleDelete)
	registerRouteWithMiddleware(api, "/assignments", "PUT", "/unarchive/:id", authChain, assignmentHandler.HandleUnarchive)
	registerRouteWithMiddleware(api, "/assignments", "POST", "/upload-report/:id", authChain, assignmentHandler.HandleUploadReport)
	registerRouteWithMiddleware(api, "/assignments", "GET", "/download-report/:fileId", authChain, assignmentHandler.HandleDownloadReport)

	// Thông báo: backlog qua REST, kênh trực tiếp qua websocket
	registerRouteWithMiddleware(api, "/notifications", "GET", "/", authChain, notificationHandler.HandleList)
	registerRouteWithMiddleware(api, "/notifications", "PUT", "/mark-one/:id", authChain, notificationHandler.HandleMarkOne)
	registerRouteWithMiddleware(api, "/notifications", "GET", "/stream", authChain, realtime.StreamHandler(hub))
}
