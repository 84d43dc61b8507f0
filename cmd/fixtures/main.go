// cmd/fixtures/main.go
//
// Small static server exposing the fixture directory over HTTP, so the
// dashboard server can be pointed at DATA_BASE_URL instead of a local
// directory. Useful for exercising the HTTP snapshot source end to end.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	dir := os.Getenv("DATA_DIR")
	if dir == "" {
		dir = "./data/demo_data_100k"
	}
	port := os.Getenv("FIXTURES_PORT")
	if port == "" {
		port = "9090"
	}

	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	r.HandleFunc("/{name:[a-z_]+\\.json}", func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, path)
	}).Methods("GET")

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Fixture server starting on %s serving %s\n", addr, dir)
	log.Fatal(http.ListenAndServe(addr, r))
}
