package cmd

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/pianobench/catalog"
	"github.com/jsphweid/pianobench/compare"
	"github.com/jsphweid/pianobench/constants"
	"github.com/jsphweid/pianobench/extract"
	"github.com/jsphweid/pianobench/model"
	"github.com/jsphweid/pianobench/truth"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

const ReloadDelay = 500 * time.Millisecond

var (
	casesMu     sync.RWMutex
	allCases    []model.TestCase
	catalogPath string
	serveRunId  = uuid.New().String()
	debounced   = debounce.New(ReloadDelay)
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves ground truth over HTTP",
	Long:  `Serves the catalog, frame level ground truth and score comparisons so algorithms outside Go can check themselves.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := LoadServeFiles(cfg.CatalogPath); err != nil {
			return err
		}
		log.Printf("Run %s serving %d cases on :%s", serveRunId, len(allCases), cfg.Port)
		return http.ListenAndServe(":"+cfg.Port, NewRouter())
	},
}

func LoadServeFiles(path string) error {
	cases, err := catalog.Load(path)
	if err != nil {
		return err
	}

	casesMu.Lock()
	defer casesMu.Unlock()
	catalogPath = path
	allCases = cases
	return nil
}

func currentCases() []model.TestCase {
	casesMu.RLock()
	defer casesMu.RUnlock()
	return allCases
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(withRunId)
	router.HandleFunc("/cases", HandleCases).Methods("GET")
	router.HandleFunc("/cases/{filename}/truth", HandleTruth).Methods("GET")
	router.HandleFunc("/score", HandleScore).Methods("POST")
	router.HandleFunc("/reload", HandleReload).Methods("POST")

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		ExposedHeaders: []string{"X-Run-Id"},
	}).Handler(router)
}

func withRunId(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Run-Id", serveRunId)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Could not encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, model.ErrorResponse{Error: detail})
}

func HandleCases(w http.ResponseWriter, r *http.Request) {
	res := make([]model.CaseOverview, 0)
	for i, tc := range currentCases() {
		overview := model.CaseOverview{
			Index:         i,
			Filename:      tc.Filename,
			IdealFilename: tc.IdealFilename,
			NumTracks:     len(tc.Tracks),
		}
		for _, track := range tc.Tracks {
			overview.NumNotes += len(track)
		}
		res = append(res, overview)
	}
	writeJSON(w, http.StatusOK, res)
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func HandleTruth(w http.ResponseWriter, r *http.Request) {
	sampleRate, err := intParam(r, "sr", constants.DefaultSampleRate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "sr must be an integer")
		return
	}
	hopLength, err := intParam(r, "hop", constants.DefaultHopLength)
	if err != nil {
		writeError(w, http.StatusBadRequest, "hop must be an integer")
		return
	}

	tc, ok := catalog.Find(currentCases(), mux.Vars(r)["filename"])
	if !ok {
		writeError(w, http.StatusNotFound, "unknown test case")
		return
	}

	track, _ := tc.FirstTrack()
	codes, durations, _ := extract.ExtractTrack(track)
	if err := truth.Validate(durations, sampleRate, hopLength); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, model.TruthResponse{
		Filename:    tc.Filename,
		SampleRate:  sampleRate,
		HopLength:   hopLength,
		PitchCodes:  codes,
		Durations:   durations,
		GroundTruth: truth.Build(durations, sampleRate, hopLength),
	})
}

func HandleScore(w http.ResponseWriter, r *http.Request) {
	var input model.ScoreRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Could not unmarshal request body: "+err.Error())
		return
	}

	tc, ok := catalog.Find(currentCases(), input.Filename)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown test case")
		return
	}

	writeJSON(w, http.StatusOK, compare.Scores(tc.Filename, compare.Expected(tc), input.ScoreResult))
}

// HandleReload rereads the catalog once requests stop arriving for
// ReloadDelay.
func HandleReload(w http.ResponseWriter, r *http.Request) {
	casesMu.RLock()
	path := catalogPath
	casesMu.RUnlock()

	debounced(func() {
		if err := LoadServeFiles(path); err != nil {
			log.Printf("Could not reload catalog: %v", err)
		}
	})
	w.WriteHeader(http.StatusAccepted)
}
