package cmd

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/jsphweid/chartpak/chart"
	"github.com/jsphweid/chartpak/config"
	"github.com/jsphweid/chartpak/model"
	"github.com/jsphweid/chartpak/pack"
)

// largest request body accepted by /pack and /inspect
const maxBodyBytes = 16 << 20

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the packer over HTTP",
	Long: `Serves POST /pack (chart JSON in, packed bytes out), POST /inspect
(packed bytes in, JSON tables out) and GET /health.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cfg)
	},
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var malformed *model.MalformedChartError
	if errors.As(err, &malformed) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

func HandlePack(w http.ResponseWriter, r *http.Request) {
	reqBody, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "could not read request body"))
		return
	}

	song, err := chart.Parse(reqBody)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	c, err := pack.Convert(song)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	dat, err := pack.Bytes(c)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Write(dat)
}

func HandleInspect(w http.ResponseWriter, r *http.Request) {
	reqBody, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "could not read request body"))
		return
	}

	c, err := pack.Decode(reqBody)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	dat, err := chartJSON(c)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(dat)
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model.HealthResponse{Status: "ok"})
}

func NewRouter(c *config.Config) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/pack", HandlePack).Methods("POST")
	router.HandleFunc("/inspect", HandleInspect).Methods("POST")
	router.HandleFunc("/health", HandleHealth).Methods("GET")

	return cors.New(cors.Options{
		AllowedOrigins: c.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(router)
}

func serve(c *config.Config) error {
	log.Printf("Listening on %s\n", c.ServeAddr)
	return http.ListenAndServe(c.ServeAddr, NewRouter(c))
}
