package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/bluelinehq/police-records-api/api"
	"github.com/bluelinehq/police-records-api/config"
	"github.com/bluelinehq/police-records-api/databases"
	"github.com/bluelinehq/police-records-api/mailer"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router *mux.Router
	Config config.Config
	Store  *databases.Store
	Hub    *TrackingHub

	memory *databases.MemoryStore
	mongo  *databases.MongoStore
}

// Initialize picks the backing store from the config. With DB_URI set the
// records land in MongoDB, otherwise everything lives in a seeded in-memory
// store that resets on restart.
func (a *App) Initialize(ctx context.Context) error {
	if a.Config.URL != "" {
		store, mongo, err := databases.NewMongoStore(ctx, &a.Config)
		if err != nil {
			return err
		}
		a.Store = store
		a.mongo = mongo
		zap.S().Infow("connected to mongo", "database", a.Config.DatabaseName)
	} else {
		store, memory := databases.NewMemoryBackedStore()
		if err := memory.Seed(); err != nil {
			return err
		}
		a.Store = store
		a.memory = memory
		zap.S().Info("using in-memory store with seed data")
	}

	a.Hub = NewTrackingHub()
	go a.Hub.Run()

	a.Router = a.New()
	return nil
}

// Shutdown stops the tracking hub and releases the mongo connection when
// one is open.
func (a *App) Shutdown(ctx context.Context) error {
	a.Hub.Stop()
	if a.mongo != nil {
		return a.mongo.Disconnect(ctx)
	}
	return nil
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	api.SetupGoGuardian()

	r := mux.NewRouter()

	authH := Auth{DB: a.Store.Users, Tokens: a.Store.ResetTokens, Config: a.Config, Mail: mailer.New(a.Config)}
	u := User{DB: a.Store.Users}
	c := Case{DB: a.Store.Cases}
	ob := OBEntry{DB: a.Store.OBEntries}
	lp := LicensePlate{DB: a.Store.Plates}
	ev := Evidence{DB: a.Store.Evidence}
	gf := Geofile{DB: a.Store.Geofiles}
	rep := Report{DB: a.Store.Reports}
	v := Vehicle{DB: a.Store.Vehicles, Hub: a.Hub}
	up := Upload{Config: a.Config}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api").Subrouter()

	apiCreate.Handle("/auth/login", http.HandlerFunc(authH.LoginHandler)).Methods("POST")
	apiCreate.Handle("/auth/logout", http.HandlerFunc(authH.LogoutHandler)).Methods("POST")
	apiCreate.Handle("/auth/me", api.Middleware(http.HandlerFunc(authH.MeHandler))).Methods("GET")
	apiCreate.Handle("/auth/register", api.Middleware(api.AdminOnly(http.HandlerFunc(authH.RegisterHandler)))).Methods("POST")
	apiCreate.Handle("/auth/forgot-password", http.HandlerFunc(authH.ForgotPasswordHandler)).Methods("POST")
	apiCreate.Handle("/auth/reset-password", http.HandlerFunc(authH.ResetPasswordHandler)).Methods("POST")
	apiCreate.Handle("/profile", api.Middleware(http.HandlerFunc(authH.UpdateProfileHandler))).Methods("PUT")

	apiCreate.Handle("/users", api.Middleware(api.AdminOnly(http.HandlerFunc(u.UsersHandler)))).Methods("GET")
	apiCreate.Handle("/users/{id}", api.Middleware(api.AdminOnly(http.HandlerFunc(u.DeleteUserHandler)))).Methods("DELETE")

	apiCreate.Handle("/officers", api.Middleware(api.AdminOnly(http.HandlerFunc(u.OfficersHandler)))).Methods("GET")
	apiCreate.Handle("/officers", api.Middleware(api.AdminOnly(http.HandlerFunc(u.CreateOfficerHandler)))).Methods("POST")
	apiCreate.Handle("/officers/{id}", api.Middleware(api.AdminOnly(http.HandlerFunc(u.UpdateOfficerHandler)))).Methods("PUT")
	apiCreate.Handle("/officers/{id}", api.Middleware(api.AdminOnly(http.HandlerFunc(u.DeleteOfficerHandler)))).Methods("DELETE")

	apiCreate.Handle("/cases", api.Middleware(http.HandlerFunc(c.CasesHandler))).Methods("GET")
	apiCreate.Handle("/cases", api.Middleware(http.HandlerFunc(c.CreateCaseHandler))).Methods("POST")
	apiCreate.Handle("/cases/{id}", api.Middleware(http.HandlerFunc(c.UpdateCaseHandler))).Methods("PUT")
	apiCreate.Handle("/cases/{id}", api.Middleware(http.HandlerFunc(c.DeleteCaseHandler))).Methods("DELETE")

	apiCreate.Handle("/ob-entries", api.Middleware(http.HandlerFunc(ob.OBEntriesHandler))).Methods("GET")
	apiCreate.Handle("/ob-entries", api.Middleware(http.HandlerFunc(ob.CreateOBEntryHandler))).Methods("POST")
	apiCreate.Handle("/ob-entries/{id}", api.Middleware(http.HandlerFunc(ob.UpdateOBEntryHandler))).Methods("PUT")
	apiCreate.Handle("/ob-entries/{id}", api.Middleware(http.HandlerFunc(ob.DeleteOBEntryHandler))).Methods("DELETE")

	apiCreate.Handle("/license-plates", api.Middleware(http.HandlerFunc(lp.LicensePlatesHandler))).Methods("GET")
	apiCreate.Handle("/license-plates/search/{plateNumber}", api.Middleware(http.HandlerFunc(lp.SearchLicensePlateHandler))).Methods("GET")
	apiCreate.Handle("/license-plates", api.Middleware(http.HandlerFunc(lp.CreateLicensePlateHandler))).Methods("POST")
	apiCreate.Handle("/license-plates/{id}", api.Middleware(http.HandlerFunc(lp.UpdateLicensePlateHandler))).Methods("PUT")
	apiCreate.Handle("/license-plates/{id}", api.Middleware(http.HandlerFunc(lp.DeleteLicensePlateHandler))).Methods("DELETE")

	apiCreate.Handle("/evidence", api.Middleware(http.HandlerFunc(ev.EvidenceListHandler))).Methods("GET")
	apiCreate.Handle("/evidence/{id}", api.Middleware(http.HandlerFunc(ev.EvidenceByIDHandler))).Methods("GET")
	apiCreate.Handle("/evidence", api.Middleware(http.HandlerFunc(ev.CreateEvidenceHandler))).Methods("POST")
	apiCreate.Handle("/evidence/{id}", api.Middleware(http.HandlerFunc(ev.UpdateEvidenceHandler))).Methods("PUT")
	apiCreate.Handle("/evidence/{id}", api.Middleware(http.HandlerFunc(ev.DeleteEvidenceHandler))).Methods("DELETE")

	apiCreate.Handle("/geofiles", api.Middleware(http.HandlerFunc(gf.GeofilesHandler))).Methods("GET")
	apiCreate.Handle("/geofiles/{id}", api.Middleware(http.HandlerFunc(gf.GeofileByIDHandler))).Methods("GET")
	apiCreate.Handle("/geofiles", api.Middleware(http.HandlerFunc(gf.CreateGeofileHandler))).Methods("POST")
	apiCreate.Handle("/geofiles/{id}", api.Middleware(http.HandlerFunc(gf.UpdateGeofileHandler))).Methods("PUT")
	apiCreate.Handle("/geofiles/{id}", api.Middleware(http.HandlerFunc(gf.DeleteGeofileHandler))).Methods("DELETE")

	apiCreate.Handle("/reports", api.Middleware(http.HandlerFunc(rep.ReportsHandler))).Methods("GET")
	apiCreate.Handle("/reports/{id}", api.Middleware(http.HandlerFunc(rep.ReportByIDHandler))).Methods("GET")
	apiCreate.Handle("/reports", api.Middleware(http.HandlerFunc(rep.CreateReportHandler))).Methods("POST")
	apiCreate.Handle("/reports/{id}", api.Middleware(http.HandlerFunc(rep.UpdateReportHandler))).Methods("PUT")
	apiCreate.Handle("/reports/{id}", api.Middleware(http.HandlerFunc(rep.DeleteReportHandler))).Methods("DELETE")

	apiCreate.Handle("/police-vehicles", api.Middleware(http.HandlerFunc(v.VehiclesHandler))).Methods("GET")
	apiCreate.Handle("/police-vehicles/map", api.Middleware(http.HandlerFunc(v.FleetMapHandler))).Methods("GET")
	apiCreate.Handle("/police-vehicles/live", api.Middleware(http.HandlerFunc(a.Hub.ServeWS))).Methods("GET")
	apiCreate.Handle("/police-vehicles", api.Middleware(http.HandlerFunc(v.CreateVehicleHandler))).Methods("POST")
	apiCreate.Handle("/police-vehicles/{id}", api.Middleware(http.HandlerFunc(v.VehicleByIDHandler))).Methods("GET")
	apiCreate.Handle("/police-vehicles/{id}", api.Middleware(http.HandlerFunc(v.UpdateVehicleHandler))).Methods("PUT")
	apiCreate.Handle("/police-vehicles/{id}", api.Middleware(http.HandlerFunc(v.DeleteVehicleHandler))).Methods("DELETE")
	apiCreate.Handle("/police-vehicles/{id}/location", api.Middleware(http.HandlerFunc(v.UpdateVehicleLocationHandler))).Methods("PATCH")
	apiCreate.Handle("/police-vehicles/{id}/status", api.Middleware(http.HandlerFunc(v.UpdateVehicleStatusHandler))).Methods("PATCH")

	apiCreate.Handle("/uploads/signature", api.Middleware(http.HandlerFunc(up.SignatureHandler))).Methods("POST")

	apiCreate.Handle("/metrics/summary", api.Middleware(api.AdminOnly(http.HandlerFunc(metricsSummaryHandler)))).Methods("GET")

	r.Use(api.MetricsMiddleware)

	// Websocket upgrades bypass the timeout wrapper; it would write to a
	// hijacked connection when the deadline fires.
	timeout := api.TimeoutMiddleware(30 * time.Second)
	r.Use(func(next http.Handler) http.Handler {
		limited := timeout(next)
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if websocket.IsWebSocketUpgrade(req) {
				next.ServeHTTP(w, req)
				return
			}
			limited.ServeHTTP(w, req)
		})
	})

	return r
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, `{"alive": true}`)
}

func metricsSummaryHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(api.GetMetrics().Summary())
}
