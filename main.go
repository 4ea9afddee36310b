package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meraki/admin"
	"meraki/cart"
	"meraki/catalog"
	"meraki/checkout"
	"meraki/db"
	"meraki/globals"
	"meraki/notify"
	"meraki/ratelim"
	"meraki/rdx"
	"meraki/routes"
	"meraki/storage"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("200"))
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	ctx := context.Background()

	// open the persistence handles; both are closed on shutdown
	store, err := db.Open(ctx, globals.Getenv("MONGODB_URI", "mongodb://localhost:27017"))
	if err != nil {
		log.Fatalf("MongoDB connect failed: %v", err)
	}

	cache := rdx.New(globals.Getenv("REDIS_ADDR", "localhost:6379"))
	if err := cache.Ping(ctx); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	rateLimiter := ratelim.NewRateLimiter()

	// admin notification hub
	hub := notify.NewHub()
	go hub.Run()

	// wire the storefront
	catalogStore := catalog.NewStore(store, cache)
	cartManager := cart.NewManager(storage.NewRedisAdapter(cache))
	tracker := checkout.NewTracker(globals.Getenv("TRACKING_URL", "http://localhost"+port+"/api/track-purchase"))
	phone := globals.Getenv("WHATSAPP_PHONE", "+919789909362")
	uploadDir := globals.Getenv("UPLOAD_DIR", "./uploads")

	catalogHandler := catalog.NewHandler(catalogStore)
	cartHandler := cart.NewHandler(cartManager, catalogStore)
	checkoutHandler := checkout.NewHandler(cartManager, store, hub, tracker, phone)
	adminHandler := admin.NewHandler(store, catalogStore, uploadDir)

	router := httprouter.New()
	router.GET("/health", Index)
	routes.AddCatalogRoutes(router, catalogHandler)
	routes.AddCartRoutes(router, cartHandler)
	routes.AddCheckoutRoutes(router, checkoutHandler, rateLimiter)
	routes.AddAdminRoutes(router, adminHandler, rateLimiter)
	routes.AddNotifyRoutes(router, hub)
	router.ServeFiles("/uploads/*filepath", http.Dir(uploadDir))

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Session-ID"},
		ExposedHeaders:   []string{"X-Session-ID"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		log.Println("Shutting down notification hub...")
		hub.Stop()
	})

	go func() {
		log.Printf("Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}

	if err := cache.Close(); err != nil {
		log.Println("Redis close error:", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Println("MongoDB disconnect error:", err)
	}

	log.Println("Server stopped cleanly")
}
