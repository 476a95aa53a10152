package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/nexumpay/api-afiliados/internal/afiliado"
	"github.com/nexumpay/api-afiliados/internal/asaas"
	"github.com/nexumpay/api-afiliados/internal/assinatura"
	"github.com/nexumpay/api-afiliados/internal/auth"
	"github.com/nexumpay/api-afiliados/internal/checkout"
	"github.com/nexumpay/api-afiliados/internal/cliente"
	"github.com/nexumpay/api-afiliados/internal/config"
	"github.com/nexumpay/api-afiliados/internal/dashboard"
	"github.com/nexumpay/api-afiliados/internal/pagamento"
	"github.com/nexumpay/api-afiliados/internal/saque"
	"github.com/nexumpay/api-afiliados/internal/utils/db"
	"github.com/nexumpay/api-afiliados/internal/webhook"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Arquivo .env não encontrado, usando variáveis do ambiente")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Erro na configuração:", err)
	}

	auth.Init(cfg.JWTSecret)

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := database.AutoMigrate(
		&afiliado.Afiliado{},
		&cliente.Customer{},
		&pagamento.Payment{},
		&assinatura.Subscription{},
		&saque.Saque{},
		&webhook.WebhookEvent{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	// Cliente do provedor de pagamentos, injetado nos handlers
	asaasClient := asaas.NewClient(cfg.AsaasBaseURL, cfg.AsaasAPIKey, nil)

	// Handlers
	afiliadoHandler := afiliado.NewHandler(database)
	saqueHandler := saque.NewHandler(saque.NewRepository(database))
	webhookHandler := webhook.NewHandler(database, asaasClient)
	dashboardHandler := dashboard.NewHandler(database, asaasClient, dashboard.NewCache(cfg.RedisAddr))
	checkoutHandler := checkout.NewHandler(asaasClient)

	// Router
	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/afiliados", afiliadoHandler.CriarAfiliado).Methods("POST")
	r.HandleFunc("/login", afiliadoHandler.Login).Methods("POST")
	r.HandleFunc("/api/webhook", webhookHandler.Receber).Methods("POST")
	r.HandleFunc("/api/checkout", checkoutHandler.Criar).Methods("POST")
	r.HandleFunc("/api/dashboard", dashboardHandler.Obter).Methods("GET")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)
	api.HandleFunc("/afiliados", afiliadoHandler.ListarAfiliados).Methods("GET")
	api.HandleFunc("/afiliados/{id}", afiliadoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/afiliados/{id}", afiliadoHandler.AtualizarAfiliado).Methods("PUT")
	api.HandleFunc("/afiliados/{id}", afiliadoHandler.DeletarAfiliado).Methods("DELETE")
	api.HandleFunc("/me", afiliadoHandler.Me).Methods("GET")
	api.HandleFunc("/saques", saqueHandler.Criar).Methods("POST")
	api.HandleFunc("/saques", saqueHandler.Listar).Methods("GET")

	// Rotas de administração
	admin := api.NewRoute().Subrouter()
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/saques/{id}/status", saqueHandler.AtualizarStatus).Methods("PATCH")
	admin.HandleFunc("/afiliados/{id}/reset-senha", afiliadoHandler.ResetSenha).Methods("POST")

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(r)

	// Inicia servidor
	fmt.Println("Servidor rodando em http://localhost:" + cfg.Porta)
	log.Fatal(http.ListenAndServe(":"+cfg.Porta, handler))
}
