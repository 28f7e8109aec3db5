package sales

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StartSalesService wires the sales ingestion routes onto their own port; the
// gateway proxies /sales/ here.
func StartSalesService() {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_NAME"))

	pgxPool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("Sales Service: failed to connect to pgxpool DB: %v", err)
	}

	router := mux.NewRouter()
	router.HandleFunc("/sales/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Sales Service is active"))
	}).Methods("GET")

	router.HandleFunc("/sales/upload-preview", UploadPreview(pgxPool)).Methods("POST")
	router.HandleFunc("/sales/confirm-save", ConfirmSave(pgxPool)).Methods("POST")
	router.HandleFunc("/sales/recent", RecentSales(pgxPool)).Methods("GET")
	router.HandleFunc("/sales/goals", GetMonthlyGoals(pgxPool)).Methods("GET")
	router.HandleFunc("/sales/goals", CreateMonthlyGoal(pgxPool)).Methods("POST")

	log.Println("Sales Service started on :6143")
	if err := http.ListenAndServe(":6143", router); err != nil {
		log.Fatalf("Sales Service failed: %v", err)
	}
}
