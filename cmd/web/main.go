package main

import (
	_ "embed"
	"html/template"
	"net"
	"net/http"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/tomz197/steady/internal/config"
	"github.com/tomz197/steady/internal/store"
)

// recentRecords is how many finished sessions the page lists.
const recentRecords = 10

//go:embed index.html
var htmlPage string

var pageTmpl = template.Must(template.New("index").Parse(htmlPage))

type pageData struct {
	SSHHost string
	SSHPort string
	Best    int
	Records []store.Record
}

func main() {
	settings, err := config.LoadDefault()
	if err != nil {
		log.Fatal("failed to load settings", "err", err)
	}
	logger := config.NewLogger(os.Stderr, settings.Log.Level)

	st, err := store.Open(settings.DataDir, logger)
	if err != nil {
		logger.Fatal("failed to open data dir", "err", err)
	}

	http.Handle("/", newHandler(st, settings, logger))

	addr := net.JoinHostPort(settings.Web.Host, settings.Web.Port)
	logger.Info("starting web server", "url", "http://"+addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

// newHandler serves the landing page with connect instructions and scores.
func newHandler(st *store.Store, settings config.Settings, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		records, err := st.Records()
		if err != nil {
			// Show what parsed; the page is informational.
			logger.Warn("session log unreadable", "err", err)
		}
		if len(records) > recentRecords {
			records = records[len(records)-recentRecords:]
		}
		slices.Reverse(records)

		data := pageData{
			SSHHost: settings.Web.SSHDisplayHost,
			SSHPort: settings.SSH.Port,
			Best:    st.LoadBest(),
			Records: records,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTmpl.Execute(w, data); err != nil {
			logger.Error("render page", "err", err)
		}
	})
}
