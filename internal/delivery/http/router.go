package http

import (
	"net/http"

	"dailywag-backend/internal/delivery/http/handler"
	"dailywag-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

const (
	uuidPattern = "[0-9a-fA-F-]{36}"
	idPath      = "/{id:" + uuidPattern + "}"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	scheduleHandler   *handler.ScheduleHandler
	bookingHandler    *handler.BookingHandler
	petHandler        *handler.PetHandler
	adoptionHandler   *handler.AdoptionHandler
	doctorHandler     *handler.DoctorHandler
	productHandler    *handler.ProductHandler
	auditLogHandler   *handler.AuditLogHandler
	membershipHandler *handler.MembershipHandler
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	rateLimiter       *middleware.RateLimitMiddleware
}

type Handlers struct {
	Auth       *handler.AuthHandler
	Schedule   *handler.ScheduleHandler
	Booking    *handler.BookingHandler
	Pet        *handler.PetHandler
	Adoption   *handler.AdoptionHandler
	Doctor     *handler.DoctorHandler
	Product    *handler.ProductHandler
	AuditLog   *handler.AuditLogHandler
	Membership *handler.MembershipHandler
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	rateLimiter *middleware.RateLimitMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       handlers.Auth,
		scheduleHandler:   handlers.Schedule,
		bookingHandler:    handlers.Booking,
		petHandler:        handlers.Pet,
		adoptionHandler:   handlers.Adoption,
		doctorHandler:     handlers.Doctor,
		productHandler:    handlers.Product,
		auditLogHandler:   handlers.AuditLog,
		membershipHandler: handlers.Membership,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		rateLimiter:       rateLimiter,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (protected)
	api.Handle("/auth/logout", r.protect(r.authHandler.Logout)).Methods(http.MethodPost)
	api.Handle("/auth/me", r.protect(r.authHandler.GetCurrentUser)).Methods(http.MethodGet)

	// Calendars and slots
	api.HandleFunc("/schedules", r.scheduleHandler.GetSchedule).Methods(http.MethodGet)
	api.Handle("/schedules", r.protect(r.scheduleHandler.SetSchedule, middleware.RequireAdminOrDoctor)).Methods(http.MethodPost)
	api.HandleFunc("/slots", r.scheduleHandler.GetSlots).Methods(http.MethodGet)

	// Bookings
	api.Handle("/bookings/grooming", r.protect(r.bookingHandler.CreateGroomingBooking, middleware.RequireCustomer, r.rateLimiter.Limit)).Methods(http.MethodPost)
	api.Handle("/bookings/medical", r.protect(r.bookingHandler.CreateMedicalBooking, middleware.RequireCustomer, r.rateLimiter.Limit)).Methods(http.MethodPost)
	api.Handle("/bookings/me", r.protect(r.bookingHandler.GetMyBookings, middleware.RequireCustomer)).Methods(http.MethodGet)
	api.Handle("/bookings/doctor", r.protect(r.bookingHandler.GetDoctorBookings, middleware.RequireDoctor)).Methods(http.MethodGet)
	api.Handle("/bookings"+idPath, r.protect(r.bookingHandler.GetBooking)).Methods(http.MethodGet)
	api.Handle("/bookings"+idPath+"/status", r.protect(r.bookingHandler.UpdateStatus, middleware.RequireAdminOrDoctor)).Methods(http.MethodPut)
	api.Handle("/bookings"+idPath+"/check-in", r.protect(r.bookingHandler.CheckIn, middleware.RequireCustomer, r.rateLimiter.Limit)).Methods(http.MethodPut)

	// Pets and immunizations
	api.Handle("/pets/me", r.protect(r.petHandler.GetMyPets)).Methods(http.MethodGet)
	api.Handle("/pets", r.protect(r.petHandler.CreatePet)).Methods(http.MethodPost)
	api.Handle("/pets"+idPath, r.protect(r.petHandler.GetPet)).Methods(http.MethodGet)
	api.Handle("/pets"+idPath, r.protect(r.petHandler.UpdatePet)).Methods(http.MethodPut)
	api.Handle("/pets"+idPath, r.protect(r.petHandler.DeletePet)).Methods(http.MethodDelete)
	api.Handle("/pets"+idPath+"/immunizations", r.protect(r.petHandler.GetImmunizations)).Methods(http.MethodGet)
	api.Handle("/pets"+idPath+"/immunizations", r.protect(r.petHandler.AddImmunization, middleware.RequireAdminOrDoctor)).Methods(http.MethodPost)
	api.Handle("/pets"+idPath+"/immunizations/{immunizationId:[0-9]+}", r.protect(r.petHandler.DeleteImmunization, middleware.RequireAdminOrDoctor)).Methods(http.MethodDelete)

	// Adoption
	api.HandleFunc("/adoptions/pets", r.adoptionHandler.GetAvailablePets).Methods(http.MethodGet)
	api.Handle("/adoptions/pets"+idPath+"/request", r.protect(r.adoptionHandler.RequestAdoption, middleware.RequireCustomer)).Methods(http.MethodPost)
	api.Handle("/adoptions/requests/me", r.protect(r.adoptionHandler.GetMyRequests, middleware.RequireCustomer)).Methods(http.MethodGet)

	// Memberships
	api.Handle("/memberships/me", r.protect(r.membershipHandler.GetMyMembership, middleware.RequireCustomer)).Methods(http.MethodGet)
	api.Handle("/memberships", r.protect(r.membershipHandler.Subscribe, middleware.RequireCustomer)).Methods(http.MethodPost)

	// Doctors directory and store catalog (public)
	api.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors"+idPath, r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/products", r.productHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/products"+idPath, r.productHandler.GetByID).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/bookings", r.bookingHandler.GetAllBookings).Methods(http.MethodGet)
	admin.HandleFunc("/pets", r.petHandler.GetAllPets).Methods(http.MethodGet)
	admin.HandleFunc("/pets"+idPath+"/adoption", r.adoptionHandler.ListPetForAdoption).Methods(http.MethodPost)
	admin.HandleFunc("/adoptions", r.adoptionHandler.GetPendingRequests).Methods(http.MethodGet)
	admin.HandleFunc("/adoptions"+idPath+"/decision", r.adoptionHandler.DecideRequest).Methods(http.MethodPut)
	admin.HandleFunc("/products", r.productHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/products"+idPath, r.productHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/products"+idPath, r.productHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id:[0-9]+}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

// protect authenticates the request and then applies guards in order.
func (r *Router) protect(h http.HandlerFunc, guards ...func(http.Handler) http.Handler) http.Handler {
	var next http.Handler = h
	for i := len(guards) - 1; i >= 0; i-- {
		next = guards[i](next)
	}
	return r.authMiddleware.Authenticate(next)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
